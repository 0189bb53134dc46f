package app

import (
	"context"
	"sync"
	"time"

	"weddingChat/configs"
	"weddingChat/internal/handlers"
	"weddingChat/internal/repositories"
	"weddingChat/internal/servers/database"
	"weddingChat/internal/servers/http"
	"weddingChat/internal/services"

	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	db := database.GetDB(app.configs)
	authRepo := repositories.NewAuthenticationRepository(db)
	authService := services.NewAuthenticationService(authRepo, app.configs)
	chatRepo := repositories.NewChatRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	chatService := services.NewChatService(chatRepo, listingRepo)
	listingService := services.NewListingService(listingRepo)

	minioService := services.NewMinioService(app.configs)
	fileManagerService := services.NewFileManagerService(minioService)

	restHandler := handlers.NewRestHandler(
		authService,
		chatService,
		listingService,
		fileManagerService,
	)

	socketThreadHandler := handlers.NewSocketThreadHandler(app.redis, app.ctx, chatService)
	socketUnreadHandler := handlers.NewSocketUnreadHandler(app.redis, app.ctx, authService, chatService)

	unreadInterval := time.Duration(app.configs.Viper.GetInt("chat.unread_refresh_seconds")) * time.Second
	unreadPoller := services.NewUnreadPoller(chatRepo, unreadInterval, socketUnreadHandler.PublishUnreadCount)
	socketUnreadHandler.SetPoller(unreadPoller)
	go unreadPoller.Start(app.ctx)

	http.NewHttpServer(
		app.ctx,
		app.redis,
		app.configs,
		restHandler,
		socketThreadHandler,
		socketUnreadHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.address"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}
