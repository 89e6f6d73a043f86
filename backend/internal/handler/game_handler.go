package handler

import (
	"errors"
	"net/http"

	"gamecrowd/backend/internal/domain/validation"
	response "gamecrowd/backend/internal/infra/common"
	appLogger "gamecrowd/backend/internal/infra/logger"
	gamesvc "gamecrowd/backend/internal/service/game"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GameHandler 负责游戏资源的 HTTP 入口。
type GameHandler struct {
	service *gamesvc.Service
	logger  *zap.SugaredLogger
}

// NewGameHandler 构造游戏 handler。
func NewGameHandler(service *gamesvc.Service) *GameHandler {
	return &GameHandler{
		service: service,
		logger:  appLogger.S().With("component", "game.handler"),
	}
}

func (h *GameHandler) scope(op string) *zap.SugaredLogger {
	return h.logger.With("operation", op)
}

// List 返回分页的游戏列表，内嵌分类与发行商的精简表示。
func (h *GameHandler) List(c *gin.Context) {
	log := h.scope("list")

	page := intQuery(c, "page", gamesvc.DefaultPage)
	pageSize := intQuery(c, "pageSize", gamesvc.DefaultPageSize)

	games, meta, err := h.service.List(c.Request.Context(), page, pageSize)
	if err != nil {
		log.Errorw("list games failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list games")
		return
	}

	items := make([]map[string]any, 0, len(games))
	for i := range games {
		items = append(items, games[i].ToDict())
	}
	response.JSON(c, http.StatusOK, gin.H{
		"games":      items,
		"pagination": meta,
	})
}

// Get 返回单个游戏的完整表示。
func (h *GameHandler) Get(c *gin.Context) {
	log := h.scope("get")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, gamesvc.ErrGameNotFound.Error())
		return
	}

	game, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, log, err, "Failed to load game")
		return
	}
	response.JSON(c, http.StatusOK, game.ToDict())
}

// CreateGameRequest 描述创建游戏的请求体，指针字段用于区分缺失与零值。
type CreateGameRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"categoryId"`
	PublisherID *uint    `json:"publisherId"`
	StarRating  *float64 `json:"starRating"`
}

// empty 报告请求体是否不含任何可识别字段（如 {} 或只有未知键）。
func (r CreateGameRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.CategoryID == nil &&
		r.PublisherID == nil && r.StarRating == nil
}

// Create 新建游戏：必填字段齐全、外键可解析、实体校验通过后才落库。
func (h *GameHandler) Create(c *gin.Context) {
	log := h.scope("create")

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isEmptyBody(err) {
			response.Error(c, http.StatusBadRequest, "No data provided")
			return
		}
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.empty() {
		response.Error(c, http.StatusBadRequest, "No data provided")
		return
	}

	for _, field := range []struct {
		name    string
		present bool
	}{
		{"title", req.Title != nil},
		{"description", req.Description != nil},
		{"categoryId", req.CategoryID != nil},
		{"publisherId", req.PublisherID != nil},
	} {
		if !field.present {
			response.Error(c, http.StatusBadRequest, "Missing required field: "+field.name)
			return
		}
	}

	game, err := h.service.Create(c.Request.Context(), gamesvc.CreateParams{
		Title:       *req.Title,
		Description: *req.Description,
		CategoryID:  *req.CategoryID,
		PublisherID: *req.PublisherID,
		StarRating:  req.StarRating,
	})
	if err != nil {
		h.fail(c, log, err, "Failed to create game")
		return
	}

	log.Infow("game created", "game_id", game.ID)
	response.Created(c, game.ToDict())
}

// UpdateGameRequest 描述局部更新的请求体，缺失（或显式 null）的字段保持原值。
type UpdateGameRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"categoryId"`
	PublisherID *uint    `json:"publisherId"`
	StarRating  *float64 `json:"starRating"`
}

// empty 报告补丁是否不含任何可识别字段。
func (r UpdateGameRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.CategoryID == nil &&
		r.PublisherID == nil && r.StarRating == nil
}

// Update 对游戏做局部更新，每个提交的字段重跑与创建时相同的校验。
func (h *GameHandler) Update(c *gin.Context) {
	log := h.scope("update")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, gamesvc.ErrGameNotFound.Error())
		return
	}

	var req UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isEmptyBody(err) {
			response.Error(c, http.StatusBadRequest, "No data provided")
			return
		}
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.empty() {
		response.Error(c, http.StatusBadRequest, "No data provided")
		return
	}

	game, err := h.service.Update(c.Request.Context(), id, gamesvc.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PublisherID: req.PublisherID,
		StarRating:  req.StarRating,
	})
	if err != nil {
		h.fail(c, log, err, "Failed to update game")
		return
	}

	log.Infow("game updated", "game_id", id)
	response.JSON(c, http.StatusOK, game.ToDict())
}

// Delete 删除游戏及其全部解锁目标与订阅。
func (h *GameHandler) Delete(c *gin.Context) {
	log := h.scope("delete")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, gamesvc.ErrGameNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, log, err, "Failed to delete game")
		return
	}

	log.Infow("game deleted", "game_id", id)
	response.Message(c, "Game deleted successfully")
}

// fail 将业务错误映射到状态码：外键/资源缺失是 404，字段校验失败是 400，
// 其余都按 500 返回通用提示，内部细节只进日志不出网。
func (h *GameHandler) fail(c *gin.Context, log *zap.SugaredLogger, err error, generic string) {
	switch {
	case errors.Is(err, gamesvc.ErrGameNotFound),
		errors.Is(err, gamesvc.ErrCategoryNotFound),
		errors.Is(err, gamesvc.ErrPublisherNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case validation.IsValidation(err):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		log.Errorw("game operation failed", "error", err)
		response.Error(c, http.StatusInternalServerError, generic)
	}
}
