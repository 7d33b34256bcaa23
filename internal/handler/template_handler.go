package handler

import (
	"net/http"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// TemplateHandler handles template requests
type TemplateHandler struct {
	service service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(service service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// List handles GET /api/v1/templates
// @Summary 공개 템플릿 목록
// @Tags templates
// @Produce json
// @Param category query string false "카테고리"
// @Param page query int false "페이지 번호" default(1)
// @Param limit query int false "페이지당 개수 (최대 100)" default(10)
// @Success 200 {object} common.APIResponse{data=[]domain.TemplateData}
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	p := common.ParsePagination(c)

	items, total, err := h.service.ListPublic(c.Request.Context(), c.Query("category"), p)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, items, common.NewMeta(p.Page, p.Limit, total))
}

// Get handles GET /api/v1/templates/:id
// @Summary 템플릿 조회
// @Tags templates
// @Produce json
// @Param id path string true "템플릿 ID"
// @Success 200 {object} common.APIResponse{data=domain.TemplateData}
// @Failure 404 {object} common.APIResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	tmpl, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, tmpl, nil)
}

// Create handles POST /api/v1/templates
// @Summary 템플릿 생성
// @Tags templates
// @Accept json
// @Produce json
// @Param request body domain.TemplateRequest true "템플릿 정보"
// @Success 201 {object} common.APIResponse{data=domain.TemplateData}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req domain.TemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	tmpl, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.CreatedResponse(c, tmpl)
}

// Update handles PUT /api/v1/templates/:id
// @Summary 템플릿 수정
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "템플릿 ID"
// @Param request body domain.TemplateRequest true "템플릿 정보"
// @Success 200 {object} common.APIResponse{data=domain.TemplateData}
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req domain.TemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	tmpl, err := h.service.Update(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, tmpl, nil)
}

// Delete handles DELETE /api/v1/templates/:id
// @Summary 템플릿 삭제
// @Tags templates
// @Param id path string true "템플릿 ID"
// @Success 204
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		common.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Use handles POST /api/v1/templates/:id/use
// @Summary 템플릿으로 작품 만들기
// @Description 템플릿 슬라이드를 복사한 새 작품을 만들고 사용 횟수를 올립니다
// @Tags templates
// @Produce json
// @Param id path string true "템플릿 ID"
// @Success 201 {object} common.APIResponse{data=domain.WorkData}
// @Failure 403 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates/{id}/use [post]
func (h *TemplateHandler) Use(c *gin.Context) {
	work, err := h.service.Use(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.CreatedResponse(c, work)
}
