package handler

import (
	"net/http"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// maxActionsBody caps an editor action batch
const maxActionsBody = 1 << 20

// WorkHandler handles card news work requests
type WorkHandler struct {
	works   service.WorkService
	exports service.ExportService
}

// NewWorkHandler creates a new WorkHandler
func NewWorkHandler(works service.WorkService, exports service.ExportService) *WorkHandler {
	return &WorkHandler{works: works, exports: exports}
}

// ListMine handles GET /api/v1/works
// @Summary 내 작품 목록
// @Description 최근 수정 순으로 정렬된 내 작품 목록을 조회합니다
// @Tags works
// @Produce json
// @Param page query int false "페이지 번호" default(1)
// @Param limit query int false "페이지당 개수 (최대 100)" default(10)
// @Success 200 {object} common.APIResponse{data=[]domain.WorkData}
// @Failure 401 {object} common.APIResponse
// @Security BearerAuth
// @Router /works [get]
func (h *WorkHandler) ListMine(c *gin.Context) {
	p := common.ParsePagination(c)

	items, total, err := h.works.ListMine(c.Request.Context(), middleware.GetUserID(c), p)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, items, common.NewMeta(p.Page, p.Limit, total))
}

// Create handles POST /api/v1/works
// @Summary 작품 생성
// @Tags works
// @Accept json
// @Produce json
// @Param request body domain.CreateWorkRequest true "작품 정보"
// @Success 201 {object} common.APIResponse{data=domain.WorkData}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /works [post]
func (h *WorkHandler) Create(c *gin.Context) {
	var req domain.CreateWorkRequest
	if !bindJSON(c, &req) {
		return
	}

	work, err := h.works.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.CreatedResponse(c, work)
}

// Get handles GET /api/v1/works/:id
// @Summary 작품 조회
// @Description 공개 작품 또는 본인 작품을 조회합니다. lang 지정 시 번역본으로 표시합니다
// @Tags works
// @Produce json
// @Param id path string true "작품 ID"
// @Param lang query string false "표시 언어"
// @Success 200 {object} common.APIResponse{data=domain.WorkData}
// @Failure 401 {object} common.APIResponse
// @Failure 403 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /works/{id} [get]
func (h *WorkHandler) Get(c *gin.Context) {
	work, err := h.works.Get(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), c.Query("lang"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, work, nil)
}

// Preview handles GET /api/v1/works/:id/preview
// @Summary 작품 미리보기
// @Tags works
// @Produce json
// @Param id path string true "작품 ID"
// @Param lang query string false "표시 언어"
// @Success 200 {object} common.APIResponse{data=domain.WorkData}
// @Failure 403 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /works/{id}/preview [get]
func (h *WorkHandler) Preview(c *gin.Context) {
	work, err := h.works.Preview(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), c.Query("lang"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, work, nil)
}

// Update handles PUT /api/v1/works/:id
// @Summary 작품 수정
// @Description 작품 내용을 전체 교체합니다. 저장 후 자동 저장 임시본은 삭제됩니다
// @Tags works
// @Accept json
// @Produce json
// @Param id path string true "작품 ID"
// @Param request body domain.UpdateWorkRequest true "작품 정보"
// @Success 200 {object} common.APIResponse{data=domain.WorkData}
// @Failure 403 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id} [put]
func (h *WorkHandler) Update(c *gin.Context) {
	var req domain.UpdateWorkRequest
	if !bindJSON(c, &req) {
		return
	}

	work, err := h.works.Update(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, work, nil)
}

// Delete handles DELETE /api/v1/works/:id
// @Summary 작품 삭제
// @Tags works
// @Param id path string true "작품 ID"
// @Success 204
// @Failure 403 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id} [delete]
func (h *WorkHandler) Delete(c *gin.Context) {
	if err := h.works.Delete(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		common.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Share handles POST /api/v1/works/:id/share
// @Summary 공개 여부 변경
// @Tags works
// @Accept json
// @Produce json
// @Param id path string true "작품 ID"
// @Param request body domain.ShareRequest true "공개 여부"
// @Success 200 {object} common.APIResponse{data=domain.ShareResponse}
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/share [post]
func (h *WorkHandler) Share(c *gin.Context) {
	var req domain.ShareRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.works.Share(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), *req.IsPublic)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// ApplyActions handles POST /api/v1/works/:id/actions
// @Summary 편집 액션 적용
// @Description 편집기 액션 목록을 순서대로 적용하고 결과를 저장합니다. 하나라도 잘못되면 아무것도 적용하지 않습니다
// @Tags works
// @Accept json
// @Produce json
// @Param id path string true "작품 ID"
// @Success 200 {object} common.APIResponse{data=service.EditorResult}
// @Failure 400 {object} common.APIResponse
// @Failure 403 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/actions [post]
func (h *WorkHandler) ApplyActions(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxActionsBody)
	raw, err := c.GetRawData()
	if err != nil {
		common.HandleError(c, common.Validation(err.Error()))
		return
	}

	result, err := h.works.ApplyActions(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), raw)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// Export handles GET /api/v1/works/:id/export
// @Summary 작품 내보내기
// @Tags works
// @Produce json
// @Param id path string true "작품 ID"
// @Success 200 {object} common.APIResponse{data=domain.CardNewsData}
// @Failure 403 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /works/{id}/export [get]
func (h *WorkHandler) Export(c *gin.Context) {
	data, err := h.exports.Export(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// Import handles POST /api/v1/works/import
// @Summary 작품 가져오기
// @Description 내보낸 카드뉴스 문서로 비공개 작품을 새로 만듭니다
// @Tags works
// @Accept json
// @Produce json
// @Param request body domain.CardNewsData true "카드뉴스 문서"
// @Success 201 {object} common.APIResponse{data=domain.WorkData}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/import [post]
func (h *WorkHandler) Import(c *gin.Context) {
	var req domain.CardNewsData
	if !bindJSON(c, &req) {
		return
	}

	work, err := h.exports.Import(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.CreatedResponse(c, work)
}

// Archive handles POST /api/v1/works/:id/export/archive
// @Summary 내보내기 파일 보관
// @Description 내보내기 문서를 스토리지에 업로드하고 다운로드 URL을 반환합니다
// @Tags works
// @Produce json
// @Param id path string true "작품 ID"
// @Success 200 {object} common.APIResponse{data=domain.ArchiveResponse}
// @Failure 403 {object} common.APIResponse
// @Failure 500 {object} common.APIResponse
// @Security BearerAuth
// @Router /works/{id}/export/archive [post]
func (h *WorkHandler) Archive(c *gin.Context) {
	resp, err := h.exports.Archive(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}
