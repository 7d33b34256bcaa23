package handler

import (
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/v1/auth/register
// @Summary 회원가입
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "가입 정보"
// @Success 201 {object} common.APIResponse{data=domain.AuthorSummary}
// @Failure 400 {object} common.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.CreatedResponse(c, user)
}

// Login handles POST /api/v1/auth/login
// @Summary 로그인
// @Description 이메일과 비밀번호로 access/refresh 토큰을 발급합니다
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "로그인 정보"
// @Success 200 {object} common.APIResponse{data=domain.LoginResponse}
// @Failure 401 {object} common.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary 토큰 재발급
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.RefreshRequest true "refresh 토큰"
// @Success 200 {object} common.APIResponse{data=domain.LoginResponse}
// @Failure 401 {object} common.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req domain.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Me handles GET /api/v1/auth/me
// @Summary 내 정보 조회
// @Tags auth
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.AuthorSummary}
// @Failure 401 {object} common.APIResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessResponse(c, user, nil)
}
