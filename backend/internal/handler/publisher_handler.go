package handler

import (
	"errors"
	"net/http"

	response "gamecrowd/backend/internal/infra/common"
	appLogger "gamecrowd/backend/internal/infra/logger"
	catalogsvc "gamecrowd/backend/internal/service/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PublisherHandler 负责发行商目录的 HTTP 入口。
type PublisherHandler struct {
	service *catalogsvc.Service
	logger  *zap.SugaredLogger
}

// NewPublisherHandler 构造发行商 handler。
func NewPublisherHandler(service *catalogsvc.Service) *PublisherHandler {
	return &PublisherHandler{
		service: service,
		logger:  appLogger.S().With("component", "publisher.handler"),
	}
}

func (h *PublisherHandler) scope(op string) *zap.SugaredLogger {
	return h.logger.With("operation", op)
}

// List 返回按名称排序的发行商精简列表。
func (h *PublisherHandler) List(c *gin.Context) {
	log := h.scope("list")

	publishers, err := h.service.ListPublishers(c.Request.Context())
	if err != nil {
		log.Errorw("list publishers failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list publishers")
		return
	}
	response.JSON(c, http.StatusOK, publishers)
}

// Get 返回单个发行商的完整表示。
func (h *PublisherHandler) Get(c *gin.Context) {
	log := h.scope("get")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, catalogsvc.ErrPublisherNotFound.Error())
		return
	}

	publisher, err := h.service.GetPublisher(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrPublisherNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		log.Errorw("get publisher failed", "publisher_id", id, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load publisher")
		return
	}
	response.JSON(c, http.StatusOK, publisher)
}
