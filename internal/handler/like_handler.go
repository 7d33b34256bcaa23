package handler

import (
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// LikeHandler handles work like requests
type LikeHandler struct {
	service service.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(service service.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// Toggle handles POST /api/v1/works/:id/like
// @Summary 좋아요 토글
// @Tags likes
// @Produce json
// @Param id path string true "작품 ID"
// @Success 200 {object} common.APIResponse{data=domain.LikeStatus}
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/like [post]
func (h *LikeHandler) Toggle(c *gin.Context) {
	status, err := h.service.Toggle(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, status, nil)
}

// Status handles GET /api/v1/works/:id/like
// @Summary 좋아요 상태
// @Tags likes
// @Produce json
// @Param id path string true "작품 ID"
// @Success 200 {object} common.APIResponse{data=domain.LikeStatus}
// @Router /works/{id}/like [get]
func (h *LikeHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, status, nil)
}
