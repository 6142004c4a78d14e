package router

import (
	"time"

	"github.com/curalink-dev/curalink/internal/handlers"
	"github.com/curalink-dev/curalink/internal/middleware"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware()

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", authRequired, handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", authRequired, handlers.Me)
		}

		users := api.Group("/users")
		{
			users.GET("/:user_id", handlers.GetUser)
			users.PATCH("/me", authRequired, handlers.UpdateAccount)
			users.PUT("/role", authRequired, handlers.UpdateRole)
		}

		patients := api.Group("/patients", authRequired)
		{
			patients.PATCH("/profile", handlers.UpdatePatientProfile)
		}

		researchers := api.Group("/researchers")
		{
			researchers.GET("", handlers.SearchCollaborators)
			researchers.GET("/recommended", authRequired, handlers.GetRecommendedExperts)
			researchers.PATCH("/profile", authRequired, handlers.UpdateResearcherProfile)
			researchers.POST("/:researcher_id/follow", authRequired, handlers.FollowExpert)
			researchers.DELETE("/:researcher_id/follow", authRequired, handlers.UnfollowExpert)
		}

		trials := api.Group("/trials")
		{
			trials.POST("", authRequired, handlers.CreateTrial)
			trials.GET("", handlers.ListTrials)
			trials.GET("/recommended", authRequired, handlers.GetRecommendedTrials)
			trials.GET("/:trial_id", handlers.GetTrial)
			trials.PATCH("/:trial_id", authRequired, handlers.UpdateTrial)
		}

		publications := api.Group("/publications")
		{
			publications.POST("", authRequired, handlers.CreatePublication)
			publications.GET("", handlers.ListPublications)
			publications.GET("/recommended", authRequired, handlers.GetRecommendedPublications)
		}

		favorites := api.Group("/favorites", authRequired)
		{
			favorites.POST("", handlers.AddFavorite)
			favorites.DELETE("", handlers.RemoveFavorite)
			favorites.GET("", handlers.ListFavorites)
		}

		forums := api.Group("/forums")
		{
			forums.POST("/communities", authRequired, handlers.CreateCommunity)
			forums.GET("/communities", handlers.ListCommunities)
			forums.POST("/communities/:community_id/posts", authRequired, handlers.CreatePost)
			forums.GET("/communities/:community_id/posts", handlers.ListPosts)
			forums.POST("/posts/:post_id/replies", authRequired, handlers.CreateReply)
			forums.GET("/posts/:post_id/replies", handlers.ListReplies)
		}

		connections := api.Group("/connections", authRequired)
		{
			connections.POST("", handlers.SendConnection)
			connections.GET("", handlers.ListConnections)
			connections.POST("/:request_id/respond", handlers.RespondConnection)
		}

		messages := api.Group("/messages", authRequired)
		{
			messages.POST("", handlers.SendMessage)
			messages.GET("/unread/count", handlers.GetUnreadCount)
			messages.GET("/:user_id", handlers.GetConversation)
			messages.POST("/:message_id/read", handlers.MarkMessageRead)
		}
	}

	return r
}
