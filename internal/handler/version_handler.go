package handler

import (
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// VersionHandler handles work version history requests
type VersionHandler struct {
	service service.VersionService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(service service.VersionService) *VersionHandler {
	return &VersionHandler{service: service}
}

// List handles GET /api/v1/works/:id/versions
// @Summary 버전 목록
// @Tags versions
// @Produce json
// @Param id path string true "작품 ID"
// @Success 200 {object} common.APIResponse{data=[]domain.VersionSummary}
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/versions [get]
func (h *VersionHandler) List(c *gin.Context) {
	versions, err := h.service.ListForUser(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, versions, nil)
}

// Create handles POST /api/v1/works/:id/versions
// @Summary 현재 상태를 버전으로 저장
// @Tags versions
// @Produce json
// @Param id path string true "작품 ID"
// @Success 201 {object} common.APIResponse{data=domain.VersionData}
// @Failure 403 {object} common.APIResponse
// @Failure 409 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/versions [post]
func (h *VersionHandler) Create(c *gin.Context) {
	version, err := h.service.SnapshotWork(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.CreatedResponse(c, version)
}

// Get handles GET /api/v1/works/:id/versions/:version
// @Summary 버전 조회
// @Tags versions
// @Produce json
// @Param id path string true "작품 ID"
// @Param version path int true "버전 번호"
// @Success 200 {object} common.APIResponse{data=domain.VersionData}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/versions/{version} [get]
func (h *VersionHandler) Get(c *gin.Context) {
	v, ok := versionParam(c)
	if !ok {
		return
	}

	version, err := h.service.GetForUser(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), v)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, version, nil)
}

// Restore handles POST /api/v1/works/:id/versions/:version/restore
// @Summary 버전 복원
// @Description 저장된 버전으로 작품을 되돌립니다. 복원 자체는 새 버전을 만들지 않습니다
// @Tags versions
// @Produce json
// @Param id path string true "작품 ID"
// @Param version path int true "버전 번호"
// @Success 200 {object} common.APIResponse{data=domain.WorkData}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/versions/{version}/restore [post]
func (h *VersionHandler) Restore(c *gin.Context) {
	v, ok := versionParam(c)
	if !ok {
		return
	}

	work, err := h.service.RestoreForUser(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), v)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, work, nil)
}
