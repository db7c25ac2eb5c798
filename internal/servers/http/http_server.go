package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"canvasChat/configs"
	"canvasChat/internal/handlers"
	"canvasChat/internal/hub"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx           context.Context
	config        *configs.Config
	router        *gin.Engine
	hub           *hub.Hub
	restHandler   *handlers.RestHandler
	socketHandler *handlers.SocketCanvasHandler
	jwtKey        []byte
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	h *hub.Hub,
	restHandler *handlers.RestHandler,
	socketHandler *handlers.SocketCanvasHandler,
	jwtKey []byte,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:           ctx,
			config:        config,
			hub:           h,
			restHandler:   restHandler,
			socketHandler: socketHandler,
			jwtKey:        jwtKey,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()

	go hs.hub.Run()

	server := hs.startServer()
	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.Default()
}

func (hs *HttpServer) setupRestfulRoutes() {
	hs.router.GET("/health", hs.restHandler.Health)

	authenticated := hs.router.Group("/", handlers.MustAuthenticateMiddleware(hs.jwtKey))
	authenticated.GET("/boards/:boardId/shapes", hs.restHandler.GetBoardShapes)
	authenticated.PUT("/boards/:boardId/shapes", hs.restHandler.SyncBoardShapes)
	authenticated.POST("/uploads/references", hs.restHandler.UploadReferenceImage)
}

func (hs *HttpServer) setupWebSocketRoutes() {
	hs.router.GET("/ws/canvas", hs.socketHandler.HandleSocketCanvasRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	addr := fmt.Sprintf(":%d", hs.config.Viper.GetInt("server.port"))
	server := &http.Server{
		Addr:    addr,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on %v", addr)
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

	// Close all WebSocket connections
	hs.hub.Stop()

	log.Println("Server exiting")
}
