package handler

import (
	"net/http"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AutosaveHandler handles autosave requests
type AutosaveHandler struct {
	service service.AutosaveService
}

// NewAutosaveHandler creates a new AutosaveHandler
func NewAutosaveHandler(service service.AutosaveService) *AutosaveHandler {
	return &AutosaveHandler{service: service}
}

// Save handles PUT /api/v1/autosave/:kind/:id
// @Summary 자동 저장
// @Description 편집 중인 내용을 임시 저장합니다. 입력이 멈춘 뒤 한 번만 기록됩니다
// @Tags autosave
// @Accept json
// @Produce json
// @Param kind path string true "work 또는 template"
// @Param id path string true "문서 ID"
// @Param request body domain.AutosaveRequest true "저장할 내용"
// @Success 202 {object} common.APIResponse{data=domain.AutosaveResponse}
// @Failure 400 {object} common.APIResponse
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /autosave/{kind}/{id} [put]
func (h *AutosaveHandler) Save(c *gin.Context) {
	var req domain.AutosaveRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Save(c.Request.Context(), middleware.GetUserID(c),
		domain.AutosaveKind(c.Param("kind")), c.Param("id"), req.Data)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, common.APIResponse{Success: true, Data: resp})
}

// Get handles GET /api/v1/autosave/:kind/:id
// @Summary 자동 저장본 조회
// @Description 저장본이 없거나 만료되었으면 data 가 null 입니다
// @Tags autosave
// @Produce json
// @Param kind path string true "work 또는 template"
// @Param id path string true "문서 ID"
// @Success 200 {object} common.APIResponse{data=autosave.Record}
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /autosave/{kind}/{id} [get]
func (h *AutosaveHandler) Get(c *gin.Context) {
	rec, err := h.service.Load(c.Request.Context(), middleware.GetUserID(c),
		domain.AutosaveKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	if rec == nil {
		c.JSON(http.StatusOK, common.APIResponse{Success: true, Data: nil})
		return
	}
	common.SuccessResponse(c, rec, nil)
}

// Delete handles DELETE /api/v1/autosave/:kind/:id
// @Summary 자동 저장본 삭제
// @Tags autosave
// @Param kind path string true "work 또는 template"
// @Param id path string true "문서 ID"
// @Success 204
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /autosave/{kind}/{id} [delete]
func (h *AutosaveHandler) Delete(c *gin.Context) {
	err := h.service.Discard(c.Request.Context(), middleware.GetUserID(c),
		domain.AutosaveKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
