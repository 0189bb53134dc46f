package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"weddingChat/configs"
	"weddingChat/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx                 context.Context
	redis               *redis.Client
	config              *configs.Config
	router              *gin.Engine
	restHandler         *handlers.RestHandler
	socketThreadHandler *handlers.SocketThreadHandler
	socketUnreadHandler *handlers.SocketUnreadHandler
}

func NewHttpServer(
	ctx context.Context,
	redis *redis.Client,
	config *configs.Config,
	restHandler *handlers.RestHandler,
	socketThreadHandler *handlers.SocketThreadHandler,
	socketUnreadHandler *handlers.SocketUnreadHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:                 ctx,
			redis:               redis,
			config:              config,
			restHandler:         restHandler,
			socketThreadHandler: socketThreadHandler,
			socketUnreadHandler: socketUnreadHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.router = gin.Default()

	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()

	hs.socketThreadHandler.StartSocket()

	server := hs.startServer()
	hs.waitForShutdown(server)
}

func (hs *HttpServer) setupRestfulRoutes() {
	hs.router.POST("/login", hs.restHandler.Login)
	hs.router.POST("/register", hs.restHandler.Register)

	authorized := hs.router.Group("/")
	authorized.Use(hs.restHandler.MustAuthenticateMiddleware())
	{
		authorized.GET("/users", hs.restHandler.GetAllUsersWithPagination)
		authorized.GET("/users/:id", hs.restHandler.GetSingleUser)
		authorized.POST("/users/profile-photo", hs.restHandler.UploadUserProfilePhoto)

		authorized.GET("/providers", hs.restHandler.GetProviders)
		authorized.GET("/halls", hs.restHandler.GetHalls)
		authorized.GET("/dresses", hs.restHandler.GetDresses)

		authorized.POST("/conversations", hs.restHandler.GetOrCreateConversation)
		authorized.GET("/conversations", hs.restHandler.GetUserConversationsByToken)
		authorized.GET("/conversations/:id/messages", hs.restHandler.GetConversationMessages)
		authorized.POST("/messages", hs.restHandler.SaveMessage)
		authorized.POST("/messages/attachments", hs.restHandler.UploadMessageAttachments)
		authorized.GET("/unread", hs.restHandler.GetUnreadCount)
	}
}

func (hs *HttpServer) setupWebSocketRoutes() {
	hs.router.GET("/ws/thread", hs.socketThreadHandler.HandleSocketThreadRoute)
	hs.router.GET("/ws/unread", hs.socketUnreadHandler.HandleSocketUnreadRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	address := hs.config.Viper.GetString("server.address")
	server := &http.Server{
		Addr:    address,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := server.Shutdown(hs.ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
