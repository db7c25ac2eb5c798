package app

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"canvasChat/configs"
	"canvasChat/internal/handlers"
	"canvasChat/internal/hub"
	"canvasChat/internal/llm"
	"canvasChat/internal/repositories"
	"canvasChat/internal/servers/database"
	"canvasChat/internal/servers/http"
	"canvasChat/internal/services"
	"canvasChat/internal/tools"
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
	shapeRepo := repositories.NewShapeRepository(db)
	boardRepo := repositories.NewBoardRepository(db)
	chatRepo := repositories.NewChatRepository(db)

	minioService := services.NewMinioService(app.configs)
	fileManagerService := services.NewFileManagerService(minioService)
	renderService := services.NewRenderService(
		app.configs.Viper.GetString("renderer.endpoint"),
		fileManagerService,
	)

	snapshotTTL := time.Duration(app.configs.Viper.GetInt("snapshot.ttl_seconds")) * time.Second
	snapshotService := services.NewSnapshotService(app.redis, shapeRepo, renderService, snapshotTTL)
	tokenService := services.NewTokenService(
		app.redis,
		app.configs.Viper.GetInt64("tokens.monthly_limit"),
		app.configs.Viper.GetFloat64("tokens.warning_ratio"),
	)
	boardService := services.NewBoardService(shapeRepo, boardRepo, snapshotService)

	socketHub := hub.NewHub()
	engine := tools.NewEngine(shapeRepo, boardRepo, snapshotService, socketHub)

	provider := llm.NewOpenAIProvider(
		app.configs.Viper.GetString("llm.api_key"),
		app.configs.Viper.GetString("llm.base_url"),
	)
	chatService := services.NewChatService(
		chatRepo,
		provider,
		engine,
		tokenService,
		app.configs.Viper.GetInt("chat.history_window"),
		app.configs.Viper.GetString("chat.default_model"),
	)

	jwtKey := []byte(app.configs.Viper.GetString("auth.jwt_key"))
	restHandler := handlers.NewRestHandler(boardService, fileManagerService)
	socketHandler := handlers.NewSocketCanvasHandler(
		socketHub,
		chatService,
		jwtKey,
		app.configs.Viper.GetInt("chat.mailbox_size"),
	)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		socketHub,
		restHandler,
		socketHandler,
		jwtKey,
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
