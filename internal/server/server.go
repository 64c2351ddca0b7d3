package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/TermBridge/internal/config"
	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/monitoring"
	terminalProvider "github.com/GriffinCanCode/TermBridge/internal/providers/terminal"
	"github.com/GriffinCanCode/TermBridge/internal/service"
	"github.com/GriffinCanCode/TermBridge/internal/session"
	"github.com/GriffinCanCode/TermBridge/internal/terminal"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	sessions *session.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance around an already-selected
// platform driver and its session manager.
func NewServer(cfg *config.Config, logger *logging.Logger, driver terminal.Driver, sessions *session.Manager) (*Server, error) {
	logger.Info("Initializing TermBridge server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("platform", string(driver.Platform())),
	)

	metrics := monitoring.NewMetrics()

	registry := service.NewRegistry()
	if err := registry.Register(terminalProvider.NewProvider(sessions, cfg.Terminal.MaxOutputLines)); err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(CORS(DefaultCORSConfig()))

	handlers := NewHandlers(registry, sessions, driver.Platform(), metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close tears down every terminal session and flushes logs. Safe to
// call from signal handlers; all teardown is synchronous.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.sessions.CloseAll()
	s.logger.Sync()

	return nil
}
