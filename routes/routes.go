// File: /routes/routes.go
package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yatube-api/config"
	"yatube-api/controllers"
	"yatube-api/middleware"
	"yatube-api/repositories"
	"yatube-api/services"
	"yatube-api/storage"
	"yatube-api/utils"
)

// SetupRoutes wires the repositories, services and controllers onto r.
// notifier may be nil.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, fileStorage storage.FileStorage, notifier services.FollowNotifier) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	followRepo := repositories.NewFollowRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, fileStorage)
	groupService := services.NewGroupService(groupRepo)
	followService := services.NewFollowService(userRepo, followRepo, notifier)
	postService := services.NewPostService(postRepo, groupRepo, userRepo, commentRepo, followRepo, fileStorage, services.PostServiceConfig{
		PerPage:       cfg.PostsPerPage,
		MaxImageBytes: cfg.MaxImageBytes,
	})

	// Controllers
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(postService)
	groupController := controllers.NewGroupController(groupService, postService)
	profileController := controllers.NewProfileController(postService, followService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
			"email":   cfg.MailEnabled(),
		})
	})

	if local, ok := fileStorage.(*storage.LocalStorage); ok {
		r.Static(strings.TrimSuffix(cfg.MediaURL, "/"), local.Root())
	}

	r.NoRoute(func(c *gin.Context) {
		utils.SendError(c, http.StatusNotFound, "Resource not found")
	})

	writeLimit := middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ValidateContentType())

	auth := v1.Group("/auth")
	auth.Use(writeLimit)
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Public routes, the viewer is known when a token is sent
	public := v1.Group("/")
	public.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		public.GET("/posts", postController.Index)
		public.GET("/posts/:id", postController.Detail)
		public.GET("/posts/:id/comments", commentController.GetComments)

		public.GET("/groups", groupController.List)
		public.GET("/groups/:slug/posts", groupController.Posts)

		public.GET("/profiles/:username", profileController.Get)
		public.GET("/profiles/:username/followers", profileController.Followers)
		public.GET("/profiles/:username/following", profileController.Following)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret, userRepo), writeLimit)
	{
		protected.POST("/posts", postController.Create)
		protected.PUT("/posts/:id", postController.Update)
		protected.DELETE("/posts/:id", postController.Delete)
		protected.POST("/posts/:id/comments", commentController.CreateComment)

		protected.GET("/follow", postController.FollowIndex)
		protected.POST("/profiles/:username/follow", profileController.Follow)
		protected.DELETE("/profiles/:username/follow", profileController.Unfollow)

		protected.GET("/users/me", userController.Me)

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnly(userRepo))
		{
			admin.POST("/groups", groupController.Create)
			admin.DELETE("/groups/:slug", groupController.Delete)
			admin.DELETE("/users/:username", userController.Delete)
		}
	}
}
