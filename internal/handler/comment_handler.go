package handler

import (
	"net/http"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles work comment requests
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List handles GET /api/v1/works/:id/comments
// @Summary 댓글 목록
// @Tags comments
// @Produce json
// @Param id path string true "작품 ID"
// @Success 200 {object} common.APIResponse{data=[]domain.CommentData}
// @Router /works/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, comments, nil)
}

// Create handles POST /api/v1/works/:id/comments
// @Summary 댓글 작성
// @Description 공개 작품에만 댓글을 달 수 있습니다
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "작품 ID"
// @Param request body domain.CreateCommentRequest true "댓글 내용"
// @Success 201 {object} common.APIResponse{data=domain.CommentData}
// @Failure 400 {object} common.APIResponse
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var req domain.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.service.Create(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.CreatedResponse(c, comment)
}

// Delete handles DELETE /api/v1/works/:id/comments/:commentId
// @Summary 댓글 삭제
// @Description 댓글 작성자 또는 작품 작성자만 삭제할 수 있습니다
// @Tags comments
// @Param id path string true "작품 ID"
// @Param commentId path string true "댓글 ID"
// @Success 204
// @Failure 403 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), c.Param("commentId"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
