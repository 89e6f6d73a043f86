package handler

import (
	"errors"
	"net/http"

	"gamecrowd/backend/internal/domain/validation"
	response "gamecrowd/backend/internal/infra/common"
	appLogger "gamecrowd/backend/internal/infra/logger"
	stretchgoalsvc "gamecrowd/backend/internal/service/stretchgoal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StretchGoalHandler 负责解锁目标的 HTTP 入口。
type StretchGoalHandler struct {
	service *stretchgoalsvc.Service
	logger  *zap.SugaredLogger
}

// NewStretchGoalHandler 构造解锁目标 handler。
func NewStretchGoalHandler(service *stretchgoalsvc.Service) *StretchGoalHandler {
	return &StretchGoalHandler{
		service: service,
		logger:  appLogger.S().With("component", "stretchgoal.handler"),
	}
}

func (h *StretchGoalHandler) scope(op string) *zap.SugaredLogger {
	return h.logger.With("operation", op)
}

// ListForGame 返回指定游戏的全部解锁目标。
func (h *StretchGoalHandler) ListForGame(c *gin.Context) {
	log := h.scope("list_for_game")

	gameID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, stretchgoalsvc.ErrGameNotFound.Error())
		return
	}

	goals, err := h.service.ListForGame(c.Request.Context(), gameID)
	if err != nil {
		h.fail(c, log, err, "Failed to list stretch goals")
		return
	}

	items := make([]map[string]any, 0, len(goals))
	for i := range goals {
		items = append(items, goals[i].ToDict())
	}
	response.JSON(c, http.StatusOK, items)
}

// CreateStretchGoalRequest 描述创建解锁目标的请求体。
type CreateStretchGoalRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	GoalType      *string `json:"goalType"`
	TargetAmount  *int    `json:"targetAmount"`
	CurrentAmount *int    `json:"currentAmount"`
}

// empty 报告请求体是否不含任何可识别字段（如 {} 或只有未知键）。
func (r CreateStretchGoalRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.GoalType == nil &&
		r.TargetAmount == nil && r.CurrentAmount == nil
}

// Create 在指定游戏下新建解锁目标，currentAmount 缺省为 0。
func (h *StretchGoalHandler) Create(c *gin.Context) {
	log := h.scope("create")

	gameID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, stretchgoalsvc.ErrGameNotFound.Error())
		return
	}

	var req CreateStretchGoalRequest
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
		{"goalType", req.GoalType != nil},
		{"targetAmount", req.TargetAmount != nil},
	} {
		if !field.present {
			response.Error(c, http.StatusBadRequest, "Missing required field: "+field.name)
			return
		}
	}

	currentAmount := 0
	if req.CurrentAmount != nil {
		currentAmount = *req.CurrentAmount
	}

	goal, err := h.service.Create(c.Request.Context(), gameID, stretchgoalsvc.CreateParams{
		Title:         *req.Title,
		Description:   *req.Description,
		GoalType:      *req.GoalType,
		TargetAmount:  *req.TargetAmount,
		CurrentAmount: currentAmount,
	})
	if err != nil {
		h.fail(c, log, err, "Failed to create stretch goal")
		return
	}

	log.Infow("stretch goal created", "stretch_goal_id", goal.ID, "game_id", gameID)
	response.Created(c, goal.ToDict())
}

// Get 返回单个解锁目标，进度字段在序列化时实时计算。
func (h *StretchGoalHandler) Get(c *gin.Context) {
	log := h.scope("get")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, stretchgoalsvc.ErrGoalNotFound.Error())
		return
	}

	goal, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, log, err, "Failed to load stretch goal")
		return
	}
	response.JSON(c, http.StatusOK, goal.ToDict())
}

// UpdateStretchGoalRequest 描述局部更新的请求体，缺失（或显式 null）的字段保持原值。
type UpdateStretchGoalRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	GoalType      *string `json:"goalType"`
	TargetAmount  *int    `json:"targetAmount"`
	CurrentAmount *int    `json:"currentAmount"`
}

// empty 报告补丁是否不含任何可识别字段。
func (r UpdateStretchGoalRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.GoalType == nil &&
		r.TargetAmount == nil && r.CurrentAmount == nil
}

// Update 对解锁目标做局部更新。
func (h *StretchGoalHandler) Update(c *gin.Context) {
	log := h.scope("update")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, stretchgoalsvc.ErrGoalNotFound.Error())
		return
	}

	var req UpdateStretchGoalRequest
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

	goal, err := h.service.Update(c.Request.Context(), id, stretchgoalsvc.UpdateParams{
		Title:         req.Title,
		Description:   req.Description,
		GoalType:      req.GoalType,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	})
	if err != nil {
		h.fail(c, log, err, "Failed to update stretch goal")
		return
	}

	log.Infow("stretch goal updated", "stretch_goal_id", id)
	response.JSON(c, http.StatusOK, goal.ToDict())
}

// Delete 物理删除解锁目标。
func (h *StretchGoalHandler) Delete(c *gin.Context) {
	log := h.scope("delete")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, stretchgoalsvc.ErrGoalNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, log, err, "Failed to delete stretch goal")
		return
	}

	log.Infow("stretch goal deleted", "stretch_goal_id", id)
	response.Message(c, "Stretch goal deleted successfully")
}

func (h *StretchGoalHandler) fail(c *gin.Context, log *zap.SugaredLogger, err error, generic string) {
	switch {
	case errors.Is(err, stretchgoalsvc.ErrGameNotFound),
		errors.Is(err, stretchgoalsvc.ErrGoalNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case validation.IsValidation(err):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		log.Errorw("stretch goal operation failed", "error", err)
		response.Error(c, http.StatusInternalServerError, generic)
	}
}
