package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealerdesk/dealerdesk/pkg/config"
	"github.com/dealerdesk/dealerdesk/pkg/db"
	"github.com/dealerdesk/dealerdesk/pkg/event"
	"github.com/dealerdesk/dealerdesk/pkg/handler"
	"github.com/dealerdesk/dealerdesk/pkg/service"
	"github.com/dealerdesk/dealerdesk/pkg/tools"
	_ "github.com/dealerdesk/dealerdesk/pkg/tools/dealership"
	"github.com/dealerdesk/dealerdesk/pkg/utils"
)

type Server struct {
	ginEngine *gin.Engine
	logger    *slog.Logger
	cfg       *config.AppConfig
	port      int
}

func NewServer() (*Server, error) {
	cfg, _, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery())

	// CORS middleware: allow common localhost dev origins. The dashboard dev
	// server runs on a different port than the API.
	ginEngine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// If there's no Origin header, it's not a browser CORS request.
		if origin != "" {
			allowed := strings.HasPrefix(origin, "http://localhost") ||
				strings.HasPrefix(origin, "http://127.0.0.1") ||
				strings.HasPrefix(origin, "https://localhost") ||
				strings.HasPrefix(origin, "https://127.0.0.1")

			if allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			} else {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	server := &Server{
		ginEngine: ginEngine,
		logger:    utils.GetLogger(),
		cfg:       cfg,
	}

	if err := server.setupRoutes(); err != nil {
		return nil, err
	}

	return server, nil
}

func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host(), s.cfg.Port())
	srv := &http.Server{Addr: addr, Handler: s.ginEngine}

	// Listen first so an occupied port surfaces immediately.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	} else {
		s.port = s.cfg.Port()
	}
	s.logger.Info("server listening", "addr", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	default:
	}
	return nil
}

func (s *Server) setupRoutes() error {
	dbPath, err := s.cfg.DatabasePath()
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	chatModel, err := service.NewChatModel(context.Background(), s.cfg)
	if err != nil {
		return fmt.Errorf("create chat model: %w", err)
	}

	inventoryService := service.NewInventoryService(database)
	videoService := service.NewYouTubeVideoService(s.cfg.YouTubeAPIKey())
	analyticsService := service.NewAnalyticsService(database)
	summaryService := service.NewSummaryService(database, chatModel, s.cfg.Model(), analyticsService)

	toolCtx := &tools.ToolContext{
		Inventory: inventoryService,
		Videos:    videoService,
	}

	chatService, err := service.NewChatService(chatModel, s.cfg.Model(), toolCtx, summaryService, analyticsService)
	if err != nil {
		return fmt.Errorf("create chat service: %w", err)
	}

	// API group
	// /api
	apiGroup := s.ginEngine.Group("/api")

	handler.NewChatHandler(chatService, summaryService).RegisterRoutes(apiGroup)
	handler.NewInventoryHandler(inventoryService, videoService).RegisterRoutes(apiGroup)
	handler.NewAnalyticsHandler(analyticsService, s.cfg.Model()).RegisterRoutes(apiGroup)

	// Live event stream for the dashboard
	// /api/events/ws
	apiGroup.GET("/events/ws", event.NewWSHandler().Handle)

	return nil
}
