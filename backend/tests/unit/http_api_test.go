package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gamecrowd/backend/internal/app"
	"gamecrowd/backend/internal/bootstrap"
	"gamecrowd/backend/internal/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestApplication 在独立的内存库上装配完整应用。
func newTestApplication(t *testing.T, name string) (*bootstrap.Application, *gorm.DB) {
	t.Helper()

	db := openTestDB(t, name)
	application, err := bootstrap.BuildApplication(zap.NewNop().Sugar(), &app.Resources{
		Flags: config.RuntimeFlags{Mode: config.ModeLocal},
		DB:    db,
	})
	if err != nil {
		t.Fatalf("build application: %v", err)
	}
	return application, db
}

func perform(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestHTTPListGamesEnvelope(t *testing.T) {
	application, db := newTestApplication(t, "http_games")
	category, publisher := seedCatalog(t, db)
	for _, title := range []string{"Pipeline Panic", "Agile Adventures", "Kernel Quest"} {
		seedGame(t, db, title, category.ID, publisher.ID)
	}

	rec := perform(t, application.Router, http.MethodGet, "/api/games?page=1&pageSize=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	payload := decodeBody(t, rec)
	games, ok := payload["games"].([]any)
	if !ok {
		t.Fatalf("games = %T, want array", payload["games"])
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}

	meta, ok := payload["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("pagination = %T, want object", payload["pagination"])
	}
	if meta["page"] != float64(1) || meta["pageSize"] != float64(2) {
		t.Fatalf("pagination = %v", meta)
	}
	if meta["totalCount"] != float64(3) || meta["totalPages"] != float64(2) {
		t.Fatalf("pagination totals = %v", meta)
	}
}

func TestHTTPGetGameNotFound(t *testing.T) {
	application, _ := newTestApplication(t, "http_game404")

	for _, path := range []string{"/api/games/9999", "/api/games/abc"} {
		rec := perform(t, application.Router, http.MethodGet, path, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want 404", path, rec.Code)
		}
		payload := decodeBody(t, rec)
		if payload["error"] != "Game not found" {
			t.Fatalf("GET %s body = %v", path, payload)
		}
	}
}

func TestHTTPCreateGameValidationErrors(t *testing.T) {
	application, db := newTestApplication(t, "http_gamecreate")
	category, publisher := seedCatalog(t, db)

	// 空请求体。
	rec := perform(t, application.Router, http.MethodPost, "/api/games", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty body status = %d, want 400", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["error"] != "No data provided" {
		t.Fatalf("empty body = %v", payload)
	}

	// 缺少必填字段。
	rec = perform(t, application.Router, http.MethodPost, "/api/games", `{"title": "Agile Adventures"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing field status = %d, want 400", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["error"] != "Missing required field: description" {
		t.Fatalf("missing field body = %v", payload)
	}

	// 引用不存在的分类按 404 处理。
	body := `{"title": "Agile Adventures", "description": "Navigate sprints and dodge scope creep", "categoryId": 9999, "publisherId": ` + itoa(publisher.ID) + `}`
	rec = perform(t, application.Router, http.MethodPost, "/api/games", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("bad category status = %d, want 404", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["error"] != "Category not found" {
		t.Fatalf("bad category body = %v", payload)
	}

	// 合法请求返回 201 与完整表示。
	body = `{"title": "Agile Adventures", "description": "Navigate sprints and dodge scope creep", "categoryId": ` + itoa(category.ID) + `, "publisherId": ` + itoa(publisher.ID) + `, "starRating": 4.0}`
	rec = perform(t, application.Router, http.MethodPost, "/api/games", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["title"] != "Agile Adventures" {
		t.Fatalf("created title = %v", payload["title"])
	}
	if _, ok := payload["category"].(map[string]any); !ok {
		t.Fatalf("created category = %T, want embedded object", payload["category"])
	}
}

func TestHTTPDeleteGameConfirmation(t *testing.T) {
	application, db := newTestApplication(t, "http_gamedelete")
	category, publisher := seedCatalog(t, db)
	game := seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)

	rec := perform(t, application.Router, http.MethodDelete, "/api/games/"+itoa(game.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["message"] != "Game deleted successfully" {
		t.Fatalf("delete body = %v", payload)
	}

	rec = perform(t, application.Router, http.MethodDelete, "/api/games/"+itoa(game.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestHTTPStretchGoalCreateAndErrors(t *testing.T) {
	application, db := newTestApplication(t, "http_goals")
	category, publisher := seedCatalog(t, db)
	game := seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)
	base := "/api/games/" + itoa(game.ID) + "/stretch-goals"

	// 非法目标类型返回 400。
	rec := perform(t, application.Router, http.MethodPost, base,
		`{"title": "Bad Goal", "description": "Should bounce at validation", "goalType": "invalid_type", "targetAmount": 100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad goalType status = %d, want 400", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["error"] != "Goal type must be one of: pledge_total, pledge_count" {
		t.Fatalf("bad goalType body = %v", payload)
	}

	// 缺少必填字段。
	rec = perform(t, application.Router, http.MethodPost, base,
		`{"description": "No title in sight", "goalType": "pledge_total", "targetAmount": 100}`)
	if payload := decodeBody(t, rec); rec.Code != http.StatusBadRequest || payload["error"] != "Missing required field: title" {
		t.Fatalf("missing title: status %d body %v", rec.Code, payload)
	}

	// 正常创建返回 201，派生字段已计算。
	rec = perform(t, application.Router, http.MethodPost, base,
		`{"title": "Soundtrack Release", "description": "Original soundtrack released to all backers", "goalType": "pledge_total", "targetAmount": 50000, "currentAmount": 25000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["progressPercentage"] != float64(50) || payload["isAchieved"] != false {
		t.Fatalf("derived fields = %v / %v", payload["progressPercentage"], payload["isAchieved"])
	}

	// 挂在不存在的游戏下返回 404。
	rec = perform(t, application.Router, http.MethodPost, "/api/games/9999/stretch-goals",
		`{"title": "Orphan", "description": "No game to attach to", "goalType": "pledge_total", "targetAmount": 100}`)
	if payload := decodeBody(t, rec); rec.Code != http.StatusNotFound || payload["error"] != "Game not found" {
		t.Fatalf("orphan goal: status %d body %v", rec.Code, payload)
	}
}

func TestHTTPSubscriptionLifecycle(t *testing.T) {
	application, db := newTestApplication(t, "http_subs")
	category, publisher := seedCatalog(t, db)
	game := seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)
	base := "/api/games/" + itoa(game.ID) + "/subscriptions"

	rec := perform(t, application.Router, http.MethodPost, base, `{"email": "backer@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("subscribe status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody(t, rec)
	if created["frequency"] != "weekly" || created["isActive"] != true {
		t.Fatalf("created subscription = %v", created)
	}
	id := itoa(uint(created["id"].(float64)))

	// 补丁中显式为 null 的字段视作未提供，其余字段照常生效。
	rec = perform(t, application.Router, http.MethodPatch, "/api/subscriptions/"+id, `{"frequency": null, "isActive": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("null patch status = %d, want 200", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["frequency"] != "weekly" || payload["isActive"] != true {
		t.Fatalf("null patch changed fields: %v", payload)
	}

	// 全部字段都缺失（或都为 null）的补丁等同于空请求体。
	rec = perform(t, application.Router, http.MethodPatch, "/api/subscriptions/"+id, `{"frequency": null, "isActive": null}`)
	if payload := decodeBody(t, rec); rec.Code != http.StatusBadRequest || payload["error"] != "No data provided" {
		t.Fatalf("all-null patch: status %d body %v", rec.Code, payload)
	}

	// 退订返回更新后的记录，isActive 翻转为 false。
	rec = perform(t, application.Router, http.MethodDelete, "/api/subscriptions/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unsubscribe status = %d, want 200", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["isActive"] != false {
		t.Fatalf("unsubscribe body = %v", payload)
	}

	// 软删除后的记录仍可查询到。
	rec = perform(t, application.Router, http.MethodGet, "/api/subscriptions/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get after unsubscribe status = %d, want 200", rec.Code)
	}

	// 但不再出现在游戏的生效订阅列表里。
	rec = perform(t, application.Router, http.MethodGet, base, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list []any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list %q: %v", rec.Body.String(), err)
	}
	if len(list) != 0 {
		t.Fatalf("active list len = %d, want 0", len(list))
	}

	// 非法邮箱返回 400。
	rec = perform(t, application.Router, http.MethodPost, base, `{"email": "not-an-email"}`)
	if payload := decodeBody(t, rec); rec.Code != http.StatusBadRequest || payload["error"] != "Subscriber email must be a valid email address" {
		t.Fatalf("bad email: status %d body %v", rec.Code, payload)
	}
}

func TestHTTPCatalogEndpoints(t *testing.T) {
	application, db := newTestApplication(t, "http_catalog")
	category, publisher := seedCatalog(t, db)
	seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)

	rec := perform(t, application.Router, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories status = %d, want 200", rec.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode categories %q: %v", rec.Body.String(), err)
	}
	if len(list) != 1 || list[0]["name"] != category.Name {
		t.Fatalf("categories = %v", list)
	}
	if _, present := list[0]["gameCount"]; present {
		t.Fatal("list representation must not carry gameCount")
	}

	rec = perform(t, application.Router, http.MethodGet, "/api/publishers/"+itoa(publisher.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get publisher status = %d, want 200", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["gameCount"] != float64(1) {
		t.Fatalf("publisher gameCount = %v, want 1", payload["gameCount"])
	}

	rec = perform(t, application.Router, http.MethodGet, "/api/categories/9999", "")
	if payload := decodeBody(t, rec); rec.Code != http.StatusNotFound || payload["error"] != "Category not found" {
		t.Fatalf("missing category: status %d body %v", rec.Code, payload)
	}
}

func TestHTTPEmptyObjectPayloads(t *testing.T) {
	application, db := newTestApplication(t, "http_emptyobj")
	category, publisher := seedCatalog(t, db)
	game := seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)

	goalBase := "/api/games/" + itoa(game.ID) + "/stretch-goals"
	rec := perform(t, application.Router, http.MethodPost, goalBase,
		`{"title": "Soundtrack Release", "description": "Original soundtrack released to all backers", "goalType": "pledge_total", "targetAmount": 50000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create stretch goal status = %d: %s", rec.Code, rec.Body.String())
	}
	goalID := itoa(uint(decodeBody(t, rec)["id"].(float64)))

	// {} 在所有写接口上都等同于空请求体，不落到缺字段提示或静默成功。
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/games"},
		{http.MethodPut, "/api/games/" + itoa(game.ID)},
		{http.MethodPost, goalBase},
		{http.MethodPut, "/api/stretch-goals/" + goalID},
		{http.MethodPost, "/api/games/" + itoa(game.ID) + "/subscriptions"},
	}
	for _, tc := range cases {
		rec := perform(t, application.Router, tc.method, tc.path, `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s %s with {} status = %d, want 400", tc.method, tc.path, rec.Code)
		}
		if payload := decodeBody(t, rec); payload["error"] != "No data provided" {
			t.Fatalf("%s %s with {} body = %v", tc.method, tc.path, payload)
		}
	}

	// 未知键同样视作没有可识别字段。
	rec = perform(t, application.Router, http.MethodPut, "/api/games/"+itoa(game.ID), `{"unknown": 1}`)
	if payload := decodeBody(t, rec); rec.Code != http.StatusBadRequest || payload["error"] != "No data provided" {
		t.Fatalf("unknown-key patch: status %d body %v", rec.Code, payload)
	}

	// 游戏本身不应被上述请求改动。
	rec = perform(t, application.Router, http.MethodGet, "/api/games/"+itoa(game.ID), "")
	if payload := decodeBody(t, rec); payload["title"] != "Pipeline Panic" {
		t.Fatalf("game mutated by empty payloads: %v", payload)
	}
}

func TestHTTPMalformedJSON(t *testing.T) {
	application, db := newTestApplication(t, "http_badjson")
	category, publisher := seedCatalog(t, db)
	game := seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/games"},
		{http.MethodPut, "/api/games/" + itoa(game.ID)},
	} {
		rec := perform(t, application.Router, tc.method, tc.path, `{"title":`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s %s malformed status = %d, want 400", tc.method, tc.path, rec.Code)
		}
		if payload := decodeBody(t, rec); payload["error"] != "Invalid request body" {
			t.Fatalf("%s %s malformed body = %v", tc.method, tc.path, payload)
		}
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
