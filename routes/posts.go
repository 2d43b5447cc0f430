package routes

import (
	"fanloop-backend/handlers/posts"
	"fanloop-backend/handlers/posts/comments"
	"fanloop-backend/handlers/posts/likes"
	"fanloop-backend/handlers/reports"
	"fanloop-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine) {
	// Public reads still honor the viewer's token when one is sent,
	// so gated bodies stay visible to subscribers.
	r.GET("/posts", middleware.OptionalJWTAuth(), posts.GetAllPosts)
	r.GET("/posts/:id", middleware.OptionalJWTAuth(), posts.GetPostByID)
	r.GET("/posts/:id/comments", middleware.OptionalJWTAuth(), comments.GetCommentsByPostID)
	r.GET("/posts/:id/likes", likes.CountLikes)

	postsRoutes := r.Group("/posts")
	postsRoutes.Use(middleware.JWTAuth())
	{
		postsRoutes.POST("", posts.CreatePost)
		postsRoutes.PUT("/:id", posts.UpdatePost)
		postsRoutes.DELETE("/:id", posts.DeletePost)

		postsRoutes.POST("/:id/like", likes.ToggleLike)
		postsRoutes.POST("/:id/comments", comments.CreateComment)
		postsRoutes.POST("/:id/report", reports.ReportPost)
	}

	commentsRoutes := r.Group("/comments")
	commentsRoutes.Use(middleware.JWTAuth())
	{
		commentsRoutes.DELETE("/:id", comments.DeleteComment)
		commentsRoutes.POST("/:id/report", reports.ReportComment)
	}
}
