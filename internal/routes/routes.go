package routes

import (
	"github.com/cardnews/cardnews-backend/internal/handler"
	"github.com/cardnews/cardnews-backend/internal/middleware"
	"github.com/cardnews/cardnews-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Handlers every HTTP handler the API mounts
type Handlers struct {
	Auth     *handler.AuthHandler
	Work     *handler.WorkHandler
	Version  *handler.VersionHandler
	Template *handler.TemplateHandler
	Comment  *handler.CommentHandler
	Like     *handler.LikeHandler
	Autosave *handler.AutosaveHandler
	WS       *handler.WSHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager) {
	requireAuth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalAuth(jwtManager)

	api := router.Group("/api/v1")

	// Authentication endpoints
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.GET("/me", requireAuth, h.Auth.Me)

	works := api.Group("/works")
	{
		works.GET("", requireAuth, h.Work.ListMine)
		works.POST("", requireAuth, h.Work.Create)
		works.POST("/import", requireAuth, h.Work.Import)

		works.GET("/:id", optionalAuth, h.Work.Get)
		works.PUT("/:id", requireAuth, h.Work.Update)
		works.DELETE("/:id", requireAuth, h.Work.Delete)
		works.POST("/:id/share", requireAuth, h.Work.Share)
		works.GET("/:id/preview", optionalAuth, h.Work.Preview)
		works.GET("/:id/export", optionalAuth, h.Work.Export)
		works.POST("/:id/export/archive", requireAuth, h.Work.Archive)
		works.POST("/:id/actions", requireAuth, h.Work.ApplyActions)

		// 버전 기록 (작성자 전용)
		versions := works.Group("/:id/versions", requireAuth)
		versions.GET("", h.Version.List)
		versions.POST("", h.Version.Create)
		versions.GET("/:version", h.Version.Get)
		versions.POST("/:version/restore", h.Version.Restore)

		works.GET("/:id/comments", h.Comment.List)
		works.POST("/:id/comments", requireAuth, h.Comment.Create)
		works.DELETE("/:id/comments/:commentId", requireAuth, h.Comment.Delete)

		works.GET("/:id/like", optionalAuth, h.Like.Status)
		works.POST("/:id/like", requireAuth, h.Like.Toggle)
	}

	templates := api.Group("/templates")
	{
		templates.GET("", h.Template.List)
		templates.POST("", requireAuth, h.Template.Create)
		templates.GET("/:id", optionalAuth, h.Template.Get)
		templates.PUT("/:id", requireAuth, h.Template.Update)
		templates.DELETE("/:id", requireAuth, h.Template.Delete)
		templates.POST("/:id/use", requireAuth, h.Template.Use)
	}

	// 자동 저장 (작성 중 임시본)
	autosave := api.Group("/autosave/:kind/:id", requireAuth)
	autosave.GET("", h.Autosave.Get)
	autosave.PUT("", h.Autosave.Save)
	autosave.DELETE("", h.Autosave.Delete)

	router.GET("/ws/activity", requireAuth, h.WS.Connect)
}
