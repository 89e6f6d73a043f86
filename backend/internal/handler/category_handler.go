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

// CategoryHandler 负责分类目录的 HTTP 入口。
type CategoryHandler struct {
	service *catalogsvc.Service
	logger  *zap.SugaredLogger
}

// NewCategoryHandler 构造分类 handler。
func NewCategoryHandler(service *catalogsvc.Service) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  appLogger.S().With("component", "category.handler"),
	}
}

func (h *CategoryHandler) scope(op string) *zap.SugaredLogger {
	return h.logger.With("operation", op)
}

// List 返回按名称排序的分类精简列表。
func (h *CategoryHandler) List(c *gin.Context) {
	log := h.scope("list")

	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		log.Errorw("list categories failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	response.JSON(c, http.StatusOK, categories)
}

// Get 返回单个分类的完整表示。
func (h *CategoryHandler) Get(c *gin.Context) {
	log := h.scope("get")

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, catalogsvc.ErrCategoryNotFound.Error())
		return
	}

	category, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		log.Errorw("get category failed", "category_id", id, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load category")
		return
	}
	response.JSON(c, http.StatusOK, category)
}
