package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gamecrowd/backend/internal/domain/pledge"
	"gamecrowd/backend/internal/domain/validation"
	"gamecrowd/backend/internal/repository"
	gamesvc "gamecrowd/backend/internal/service/game"
	stretchgoalsvc "gamecrowd/backend/internal/service/stretchgoal"
	subscriptionsvc "gamecrowd/backend/internal/service/subscription"

	"gorm.io/gorm"
)

func newGameService(db *gorm.DB) *gamesvc.Service {
	return gamesvc.NewService(
		repository.NewGameRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewPublisherRepository(db),
	)
}

func TestGameCreatePreloadsRelations(t *testing.T) {
	db := openTestDB(t, "game_create")
	category, publisher := seedCatalog(t, db)

	svc := newGameService(db)
	rating := 4.2
	game, err := svc.Create(context.Background(), gamesvc.CreateParams{
		Title:       "Agile Adventures",
		Description: "Navigate sprints and dodge scope creep in this thrilling quest",
		CategoryID:  category.ID,
		PublisherID: publisher.ID,
		StarRating:  &rating,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	if game.Category == nil || game.Publisher == nil {
		t.Fatal("created game should come back with relations preloaded")
	}

	dict := game.ToDict()
	nested, ok := dict["category"].(map[string]any)
	if !ok {
		t.Fatalf("category = %T, want minimal dict", dict["category"])
	}
	if nested["name"] != category.Name {
		t.Fatalf("nested category name = %v, want %q", nested["name"], category.Name)
	}
	if _, present := nested["description"]; present {
		t.Fatal("minimal dict must not carry description")
	}
	if dict["starRating"] != 4.2 {
		t.Fatalf("starRating = %v, want 4.2", dict["starRating"])
	}
}

func TestGameCreateUnknownForeignKeys(t *testing.T) {
	db := openTestDB(t, "game_badfk")
	category, publisher := seedCatalog(t, db)

	svc := newGameService(db)

	_, err := svc.Create(context.Background(), gamesvc.CreateParams{
		Title:       "Agile Adventures",
		Description: "Navigate sprints and dodge scope creep in this thrilling quest",
		CategoryID:  9999,
		PublisherID: publisher.ID,
	})
	if !errors.Is(err, gamesvc.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}

	_, err = svc.Create(context.Background(), gamesvc.CreateParams{
		Title:       "Agile Adventures",
		Description: "Navigate sprints and dodge scope creep in this thrilling quest",
		CategoryID:  category.ID,
		PublisherID: 9999,
	})
	if !errors.Is(err, gamesvc.ErrPublisherNotFound) {
		t.Fatalf("err = %v, want ErrPublisherNotFound", err)
	}

	// 外键校验失败时不允许写入任何行。
	var count int64
	if err := db.Table("games").Count(&count).Error; err != nil {
		t.Fatalf("count games: %v", err)
	}
	if count != 0 {
		t.Fatalf("games table has %d rows, want 0", count)
	}
}

func TestGameCreateInvalidRating(t *testing.T) {
	db := openTestDB(t, "game_badrating")
	category, publisher := seedCatalog(t, db)

	svc := newGameService(db)
	rating := 5.5
	_, err := svc.Create(context.Background(), gamesvc.CreateParams{
		Title:       "Agile Adventures",
		Description: "Navigate sprints and dodge scope creep in this thrilling quest",
		CategoryID:  category.ID,
		PublisherID: publisher.ID,
		StarRating:  &rating,
	})
	if !validation.IsValidation(err) || err.Error() != "Star rating must be between 0 and 5" {
		t.Fatalf("err = %v", err)
	}
}

func TestGameListPagination(t *testing.T) {
	db := openTestDB(t, "game_paging")
	category, publisher := seedCatalog(t, db)
	for i := 0; i < 12; i++ {
		seedGame(t, db, fmt.Sprintf("Game %02d", i), category.ID, publisher.ID)
	}

	svc := newGameService(db)

	games, meta, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(games) != 10 {
		t.Fatalf("page 1 len = %d, want 10", len(games))
	}
	if meta.TotalCount != 12 || meta.TotalPages != 2 {
		t.Fatalf("meta = %+v, want totalCount 12 totalPages 2", meta)
	}

	games, meta, err = svc.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("page 2 len = %d, want 2", len(games))
	}
	if meta.Page != 2 {
		t.Fatalf("meta.Page = %d, want 2", meta.Page)
	}

	// page 与 pageSize 越界时回退到合法值。
	_, meta, err = svc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list with zero params: %v", err)
	}
	if meta.Page != 1 || meta.PageSize != 10 {
		t.Fatalf("meta = %+v, want defaults page 1 pageSize 10", meta)
	}

	_, meta, err = svc.List(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("list with oversized pageSize: %v", err)
	}
	if meta.PageSize != 100 {
		t.Fatalf("pageSize = %d, want clamped to 100", meta.PageSize)
	}
	if meta.TotalPages != 1 {
		t.Fatalf("totalPages = %d, want 1 at pageSize 100", meta.TotalPages)
	}

	// 超出范围的页码返回空列表而非错误。
	games, _, err = svc.List(context.Background(), 99, 10)
	if err != nil {
		t.Fatalf("list page 99: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("page 99 len = %d, want 0", len(games))
	}
}

func TestGamePartialUpdate(t *testing.T) {
	db := openTestDB(t, "game_patch")
	category, publisher := seedCatalog(t, db)
	game := seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)

	svc := newGameService(db)

	title := "Pipeline Panic Remastered"
	updated, err := svc.Update(context.Background(), game.ID, gamesvc.UpdateParams{Title: &title})
	if err != nil {
		t.Fatalf("update title: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title = %q, want %q", updated.Title, title)
	}
	if updated.Description != game.Description {
		t.Fatalf("description changed by a title-only patch: %q", updated.Description)
	}
	if updated.CategoryID != category.ID || updated.PublisherID != publisher.ID {
		t.Fatal("foreign keys changed by a title-only patch")
	}

	missing := uint(9999)
	if _, err := svc.Update(context.Background(), game.ID, gamesvc.UpdateParams{CategoryID: &missing}); !errors.Is(err, gamesvc.ErrCategoryNotFound) {
		t.Fatalf("patch with missing category err = %v, want ErrCategoryNotFound", err)
	}

	if _, err := svc.Update(context.Background(), 9999, gamesvc.UpdateParams{}); !errors.Is(err, gamesvc.ErrGameNotFound) {
		t.Fatalf("update missing game err = %v, want ErrGameNotFound", err)
	}
}

func TestGameDeleteCascades(t *testing.T) {
	db := openTestDB(t, "game_cascade")
	category, publisher := seedCatalog(t, db)
	game := seedGame(t, db, "Pipeline Panic", category.ID, publisher.ID)
	other := seedGame(t, db, "Agile Adventures", category.ID, publisher.ID)

	goals := stretchgoalsvc.NewService(repository.NewStretchGoalRepository(db), repository.NewGameRepository(db))
	subs := subscriptionsvc.NewService(repository.NewSubscriptionRepository(db), repository.NewGameRepository(db))

	if _, err := goals.Create(context.Background(), game.ID, stretchgoalsvc.CreateParams{
		Title:        "Soundtrack Release",
		Description:  "Original soundtrack released to all backers",
		GoalType:     "pledge_total",
		TargetAmount: 50000,
	}); err != nil {
		t.Fatalf("create stretch goal: %v", err)
	}
	if _, err := subs.Subscribe(context.Background(), game.ID, "backer@example.com", ""); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	survivor, err := subs.Subscribe(context.Background(), other.ID, "other@example.com", "")
	if err != nil {
		t.Fatalf("subscribe to other game: %v", err)
	}

	svc := newGameService(db)
	if err := svc.Delete(context.Background(), game.ID); err != nil {
		t.Fatalf("delete game: %v", err)
	}

	if _, err := svc.Get(context.Background(), game.ID); !errors.Is(err, gamesvc.ErrGameNotFound) {
		t.Fatalf("get after delete err = %v, want ErrGameNotFound", err)
	}

	var goalCount, subCount int64
	if err := db.Model(&pledge.StretchGoal{}).Count(&goalCount).Error; err != nil {
		t.Fatalf("count stretch goals: %v", err)
	}
	if err := db.Model(&pledge.Subscription{}).Count(&subCount).Error; err != nil {
		t.Fatalf("count subscriptions: %v", err)
	}
	if goalCount != 0 {
		t.Fatalf("stretch goals remaining = %d, want 0", goalCount)
	}
	if subCount != 1 {
		t.Fatalf("subscriptions remaining = %d, want only the other game's", subCount)
	}

	// 其它游戏的数据不受级联影响。
	remaining, err := subs.Get(context.Background(), survivor.ID)
	if err != nil {
		t.Fatalf("get surviving subscription: %v", err)
	}
	if remaining.GameID != other.ID {
		t.Fatalf("survivor gameID = %d, want %d", remaining.GameID, other.ID)
	}

	if err := svc.Delete(context.Background(), game.ID); !errors.Is(err, gamesvc.ErrGameNotFound) {
		t.Fatalf("double delete err = %v, want ErrGameNotFound", err)
	}
}
