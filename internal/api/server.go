// Package api provides the HTTP API server for Tunedeck.
// It uses the Echo framework to serve REST endpoints and WebSocket
// connections for real-time bus and diagnostic monitoring.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"tunedeck.org/tunedeck/internal/auth"
	"tunedeck.org/tunedeck/internal/backup"
	"tunedeck.org/tunedeck/internal/canbus"
	"tunedeck.org/tunedeck/internal/config"
	"tunedeck.org/tunedeck/internal/diag"
	"tunedeck.org/tunedeck/internal/integrity"
	"tunedeck.org/tunedeck/internal/store"
	"tunedeck.org/tunedeck/internal/validation"
	"tunedeck.org/tunedeck/internal/version"
)

// Server represents the Tunedeck API server.
type Server struct {
	echo       *echo.Echo
	store      *store.Store
	backups    *backup.Manager
	bus        *canbus.Simulator
	diag       *diag.Engine
	integrity  *integrity.Service
	validator  *validation.Validator
	config     *config.Config
	wsHub      *Hub
	authMiddle *auth.Middleware
	metrics    *Metrics
}

// debugLog logs a message only if debug mode is enabled in config
func (s *Server) debugLog(format string, args ...interface{}) {
	if s.config.Server.Debug {
		log.Printf(format, args...)
	}
}

// New creates a new API server instance wired to the given store.
func New(cfg *config.Config, st *store.Store) *Server {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug

	e.HTTPErrorHandler = HTTPErrorHandler

	hub := NewHub()

	server := &Server{
		echo:       e,
		store:      st,
		backups:    backup.New(st),
		bus:        canbus.New(cfg.Bus.BufferSize),
		diag:       diag.New(st, cfg.Diagnostics.HistoryLimit),
		integrity:  integrity.NewService(st),
		validator:  validation.New(),
		config:     cfg,
		wsHub:      hub,
		authMiddle: auth.NewMiddleware(cfg),
		metrics:    NewMetrics(hub),
	}

	go hub.Run()

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))

	s.echo.Use(middleware.Recover())

	s.echo.Use(SecurityHeaders)

	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, auth.HeaderAPIKey},
		}))
	}

	s.echo.Use(middleware.RequestID())

	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	s.echo.Use(ValidateContentType)
	s.echo.Use(ValidateAcceptHeader)

	// Request counting for /metrics
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if ae, ok := err.(*APIError); ok {
					status = ae.Code
				}
			}
			s.metrics.RequestsTotal.WithLabelValues(
				c.Request().Method,
				strconv.Itoa(status/100)+"xx",
			).Inc()
			return err
		}
	})
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	// Health check and metrics
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/", s.healthCheck)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		s.metrics.Registry(), promhttp.HandlerOpts{},
	)))

	// API v1 group
	v1 := s.echo.Group("/api/v1")

	// Vehicle catalog routes
	vehicles := v1.Group("/vehicles")
	vehicles.Use(ValidateQueryParams)
	vehicles.GET("", s.listVehicles, s.authMiddle.RequireRead)
	vehicles.GET("/:id", s.getVehicle, ValidateIDFormat, s.authMiddle.RequireRead)
	vehicles.POST("", s.createVehicle, s.authMiddle.RequireWrite)
	vehicles.PUT("/:id", s.updateVehicle, ValidateIDFormat, s.authMiddle.RequireWrite)

	v1.GET("/manufacturers", s.listManufacturers, s.authMiddle.RequireRead)

	// ECU profile routes (nested under vehicles)
	vehicles.GET("/:id/profiles", s.listProfiles, ValidateIDFormat, s.authMiddle.RequireRead)
	vehicles.POST("/:id/profiles", s.createProfile, ValidateIDFormat, s.authMiddle.RequireWrite)
	v1.PUT("/profiles/:id", s.updateProfile, ValidateIDFormat, s.authMiddle.RequireWrite)

	// Tune routes (nested under vehicles)
	vehicles.GET("/:id/tunes", s.listTunes, ValidateIDFormat, s.authMiddle.RequireRead)
	vehicles.GET("/:id/tunes/:tuneId", s.getTune, ValidateIDFormat, s.authMiddle.RequireRead)
	vehicles.POST("/:id/tunes", s.createTune, ValidateIDFormat, s.authMiddle.RequireWrite)

	// Settings routes
	settings := v1.Group("/settings")
	settings.GET("", s.getAllSettings, s.authMiddle.RequireRead)
	settings.GET("/:key", s.getSetting, s.authMiddle.RequireRead)
	settings.PUT("/:key", s.setSetting, s.authMiddle.RequireWrite)

	// Log routes
	logs := v1.Group("/logs")
	logs.Use(ValidateQueryParams)
	logs.GET("", s.listLogs, s.authMiddle.RequireRead)
	logs.POST("", s.createLog, s.authMiddle.RequireWrite)

	// Backup routes
	backups := v1.Group("/backups")
	backups.GET("", s.listBackups, s.authMiddle.RequireRead)
	backups.POST("", s.createBackup, s.authMiddle.RequireWrite)
	backups.POST("/:id/restore", s.restoreBackup, ValidateIDFormat, s.authMiddle.RequireAdmin)

	// CAN bus routes
	bus := v1.Group("/bus")
	bus.GET("", s.listBuses, s.authMiddle.RequireRead)
	bus.GET("/messages", s.allMessages, s.authMiddle.RequireRead)
	bus.POST("/:id/init", s.initBus, s.authMiddle.RequireWrite)
	bus.GET("/:id/status", s.busStatus, s.authMiddle.RequireRead)
	bus.POST("/:id/messages", s.sendMessage, s.authMiddle.RequireWrite)
	bus.GET("/:id/messages", s.receiveMessages, s.authMiddle.RequireRead)
	bus.POST("/simulate", s.simulateFrame, s.authMiddle.RequireWrite)

	// Diagnostic routes
	diagnostics := v1.Group("/diagnostics")
	diagnostics.POST("/run/:id", s.runDiagnostic, ValidateIDFormat, s.authMiddle.RequireWrite)
	diagnostics.GET("/alerts", s.listAlerts, s.authMiddle.RequireRead)
	diagnostics.GET("/history", s.diagnosticHistory, s.authMiddle.RequireRead)
	diagnostics.DELETE("/history", s.clearDiagnosticHistory, s.authMiddle.RequireWrite)

	// OBD reference routes
	obdRoutes := v1.Group("/obd")
	obdRoutes.GET("/pids", s.listPIDs, s.authMiddle.RequireRead)
	obdRoutes.GET("/pids/:code", s.getPID, s.authMiddle.RequireRead)
	obdRoutes.GET("/dtcs", s.listDTCs, s.authMiddle.RequireRead)
	obdRoutes.GET("/dtcs/:code", s.getDTC, s.authMiddle.RequireRead)

	// Integrity routes
	integrityRoutes := v1.Group("/integrity")
	integrityRoutes.POST("/scan", s.integrityScan, s.authMiddle.RequireRead)
	integrityRoutes.POST("/repair", s.integrityRepair, s.authMiddle.RequireAdmin)

	// WebSocket routes
	ws := v1.Group("/ws")
	ws.GET("", s.handleWebSocket, s.authMiddle.RequireRead)
	ws.GET("/stats", s.getWebSocketStats, s.authMiddle.RequireRead)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := s.config.Server.Address()

	log.Printf("Starting Tunedeck API server on http://%s (content root: %s, debug: %v)",
		addr, s.store.ContentRoot(), s.config.Server.Debug)

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	if s.config.Server.TLSEnabled {
		return s.echo.StartTLS(addr, s.config.Server.TLSCert, s.config.Server.TLSKey)
	}

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down Tunedeck API server...")

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	log.Println("Server shutdown complete")
	return nil
}

// Backups exposes the backup manager, used by the auto-snapshot scheduler.
func (s *Server) Backups() *backup.Manager {
	return s.backups
}

// healthCheck handles health check requests.
func (s *Server) healthCheck(c echo.Context) error {
	vehicles, err := s.store.GetVehicles()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   "document store unavailable",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"service":      "tunedeck",
		"version":      version.Version,
		"content_root": s.store.ContentRoot(),
		"vehicles":     len(vehicles),
		"buses":        len(s.bus.Buses()),
	})
}

// broadcast pushes an event to all WebSocket clients.
func (s *Server) broadcast(eventType EventType, data interface{}) {
	s.debugLog("Broadcasting %s to %d WebSocket clients", eventType, s.wsHub.ClientCount())
	if err := s.wsHub.BroadcastEvent(Event{Type: eventType, Data: data}); err != nil {
		log.Printf("Failed to broadcast event: %v", err)
	}
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
