// server/internal/api/routes/routes.go
package routes

import (
	"surat-palm-api-server/config"
	"surat-palm-api-server/internal/api/handlers"
	"surat-palm-api-server/internal/api/middleware"
	"surat-palm-api-server/internal/queue"
	"surat-palm-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers and their dependencies into the route tree.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	queueStore *queue.Store,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	factoryHandler := &handlers.FactoryHandler{DB: db}
	messageHandler := &handlers.MessageHandler{DB: db, Hub: wsHub}
	appointmentHandler := &handlers.AppointmentHandler{DB: db}
	queueHandler := &handlers.QueueHandler{Store: queueStore}
	userHandler := &handlers.UserHandler{DB: db}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		// WebSocket endpoint for chat push.
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		factory := apiV1.Group("/factory")
		{
			factory.POST("/register", factoryHandler.Register)
			factory.POST("/login", factoryHandler.Login)
		}

		factories := apiV1.Group("/factories")
		{
			factories.GET("", factoryHandler.GetAllFactories)
			factories.GET("/recommendations", factoryHandler.GetRecommendations)
			factories.GET("/:id", factoryHandler.GetFactoryByID)
		}

		messages := apiV1.Group("/messages")
		{
			messages.GET("/:factoryId", messageHandler.GetMessages)
			messages.POST("", messageHandler.CreateMessage)
		}
		apiV1.GET("/conversations", messageHandler.GetConversations)

		appointments := apiV1.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.GetAppointments)
			appointments.POST("", appointmentHandler.CreateAppointment)
		}

		// Queue Palm system.
		queueRoutes := apiV1.Group("/queue")
		{
			queueRoutes.GET("/lanes/:factoryId", queueHandler.GetLanes)
			queueRoutes.GET("/settings/:factoryId", queueHandler.GetSettings)
			queueRoutes.PUT("/settings", queueHandler.UpdateSettings)
			queueRoutes.GET("/entries/:factoryId", queueHandler.GetEntries)
			queueRoutes.POST("/entries", queueHandler.CreateEntry)
			queueRoutes.PATCH("/entries/:id/status", queueHandler.UpdateEntryStatus)
		}

		// === PROTECTED ROUTES ===

		// A factory edits its own profile.
		factoryProtected := apiV1.Group("/factory")
		factoryProtected.Use(middleware.Authenticate())
		factoryProtected.Use(middleware.Authorize("factory", "admin"))
		{
			factoryProtected.PUT("/:id", factoryHandler.UpdateFactory)
		}

		// Directory administration requires the "admin" role.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("admin"))
		{
			adminFactories := admin.Group("/factories")
			{
				adminFactories.POST("", factoryHandler.AdminCreateFactory)
				adminFactories.PUT("/:id", factoryHandler.UpdateFactory)
				adminFactories.DELETE("/:id", factoryHandler.DeleteFactory)
			}
		}
	}

	return router
}
