package handler

import (
	"errors"
	"net/http"

	"gamecrowd/backend/internal/domain/validation"
	response "gamecrowd/backend/internal/infra/common"
	appLogger "gamecrowd/backend/internal/infra/logger"
	subscriptionsvc "gamecrowd/backend/internal/service/subscription"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler 负责订阅的 HTTP 入口。
type SubscriptionHandler struct {
	service *subscriptionsvc.Service
	logger  *zap.SugaredLogger
}

// NewSubscriptionHandler 构造订阅 handler。
func NewSubscriptionHandler(service *subscriptionsvc.Service) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		logger:  appLogger.S().With("component", "subscription.handler"),
	}
}

func (h *SubscriptionHandler) scope(op string) *zap.SugaredLogger {
	return h.logger.With("operation", op)
}

// CreateSubscriptionRequest 描述订阅请求体，frequency 缺省为 weekly。
type CreateSubscriptionRequest struct {
	Email     *string `json:"email"`
	Frequency *string `json:"frequency"`
}

// empty 报告请求体是否不含任何可识别字段（如 {} 或只有未知键）。
func (r CreateSubscriptionRequest) empty() bool {
	return r.Email == nil && r.Frequency == nil
}

// Create 为指定游戏创建订阅。
func (h *SubscriptionHandler) Create(c *gin.Context) {
	log := h.scope("create")

	gameID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, subscriptionsvc.ErrGameNotFound.Error())
		return
	}

	var req CreateSubscriptionRequest
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

	if req.Email == nil {
		response.Error(c, http.StatusBadRequest, "Missing required field: email")
		return
	}
	frequency := ""
	if req.Frequency != nil {
		frequency = *req.Frequency
	}

	sub, err := h.service.Subscribe(c.Request.Context(), gameID, *req.Email, frequency)
	if err != nil {
		h.fail(c, log, err, "Failed to create subscription")
		return
	}

	log.Infow("subscription created", "subscription_id", sub.ID, "game_id", gameID)
	response.Created(c, sub.ToDict())
}

// ListForGame 返回指定游戏下仍然生效的订阅。
func (h *SubscriptionHandler) ListForGame(c *gin.Context) {
	log := h.scope("list_for_game")

	gameID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, subscriptionsvc.ErrGameNotFound.Error())
		return
	}

	subs, err := h.service.ListActiveForGame(c.Request.Context(), gameID)
	if err != nil {
		h.fail(c, log, err, "Failed to list subscriptions")
		return
	}

	items := make([]map[string]any, 0, len(subs))
	for i := range subs {
		items = append(items, subs[i].ToDict())
	}
	response.JSON(c, http.StatusOK, items)
}

// Get 返回单个订阅，软删除后的记录同样可以查询。
func (h *SubscriptionHandler) Get(c *gin.Context) {
	log := h.scope("get")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, subscriptionsvc.ErrSubscriptionNotFound.Error())
		return
	}

	sub, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, log, err, "Failed to load subscription")
		return
	}
	response.JSON(c, http.StatusOK, sub.ToDict())
}

// UpdateSubscriptionRequest 描述局部更新的请求体，缺失（或显式 null）的字段保持原值。
type UpdateSubscriptionRequest struct {
	Frequency *string `json:"frequency"`
	IsActive  *bool   `json:"isActive"`
}

// empty 报告补丁是否不含任何可识别字段。
func (r UpdateSubscriptionRequest) empty() bool {
	return r.Frequency == nil && r.IsActive == nil
}

// Update 调整订阅的频率或生效状态。
func (h *SubscriptionHandler) Update(c *gin.Context) {
	log := h.scope("update")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, subscriptionsvc.ErrSubscriptionNotFound.Error())
		return
	}

	var req UpdateSubscriptionRequest
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

	sub, err := h.service.Update(c.Request.Context(), id, subscriptionsvc.UpdateParams{
		Frequency: req.Frequency,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.fail(c, log, err, "Failed to update subscription")
		return
	}

	log.Infow("subscription updated", "subscription_id", id)
	response.JSON(c, http.StatusOK, sub.ToDict())
}

// Delete 退订：软删除，行保留且仍可按 ID 查询。
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	log := h.scope("delete")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, subscriptionsvc.ErrSubscriptionNotFound.Error())
		return
	}

	sub, err := h.service.Unsubscribe(c.Request.Context(), id)
	if err != nil {
		h.fail(c, log, err, "Failed to delete subscription")
		return
	}

	log.Infow("subscription deactivated", "subscription_id", id)
	response.JSON(c, http.StatusOK, sub.ToDict())
}

func (h *SubscriptionHandler) fail(c *gin.Context, log *zap.SugaredLogger, err error, generic string) {
	switch {
	case errors.Is(err, subscriptionsvc.ErrGameNotFound),
		errors.Is(err, subscriptionsvc.ErrSubscriptionNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case validation.IsValidation(err):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		log.Errorw("subscription operation failed", "error", err)
		response.Error(c, http.StatusInternalServerError, generic)
	}
}
