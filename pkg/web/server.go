// Package web serves the aura HTTP API and websocket event streams.
//
// The server is the concurrency boundary for the core engines: fusion, the
// alert engine and the capsule are single-threaded by contract, so every
// handler that touches them does so under one mutex.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/auralab/go-aura/internal/log"
	"github.com/auralab/go-aura/pkg/alerts"
	"github.com/auralab/go-aura/pkg/capsule"
	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/fusion"
	"github.com/auralab/go-aura/pkg/hub"
	"github.com/auralab/go-aura/pkg/ring"
)

// Config holds the server's listen address and buffer sizes.
type Config struct {
	// Port to listen on, without the colon.
	Port string

	// RecentAlerts bounds the alert feed served by GET /api/alerts.
	RecentAlerts int
}

// DefaultConfig returns the recommended server configuration.
func DefaultConfig() Config {
	return Config{Port: "8787", RecentAlerts: 50}
}

// Server wires the engines behind the HTTP API.
type Server struct {
	cfg Config
	app *fiber.App

	// mu serializes all engine access. The engines themselves are not
	// concurrency-safe.
	mu      sync.Mutex
	fuser   *fusion.Engine
	alerts  *alerts.Engine
	capsule *capsule.Capsule
	store   capsule.Store

	lastState *emotion.State
	recent    *ring.Buffer[alerts.Alert]
	dismissed map[string]bool

	stateHub *hub.Hub
	alertHub *hub.Hub
}

// New creates the server. store may be nil when persistence is disabled.
func New(cfg Config, fuser *fusion.Engine, alertEngine *alerts.Engine, caps *capsule.Capsule, store capsule.Store) *Server {
	if cfg.Port == "" {
		cfg.Port = DefaultConfig().Port
	}
	if cfg.RecentAlerts < 1 {
		cfg.RecentAlerts = DefaultConfig().RecentAlerts
	}

	s := &Server{
		cfg:       cfg,
		fuser:     fuser,
		alerts:    alertEngine,
		capsule:   caps,
		store:     store,
		recent:    ring.New[alerts.Alert](cfg.RecentAlerts),
		dismissed: make(map[string]bool),
		stateHub:  hub.New("states"),
		alertHub:  hub.New("alerts"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "aura",
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(cors.New())

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/signals", s.handleSignals)
	api.Get("/state", s.handleState)
	api.Get("/alerts", s.handleAlerts)
	api.Post("/alerts/:key/dismiss", s.handleDismiss)

	caps := api.Group("/capsule")
	caps.Post("/entries", s.handleAddEntry)
	caps.Get("/summary", s.handleSummary)
	caps.Get("/summary/text", s.handleSummaryText)
	caps.Get("/export", s.handleExport)
	caps.Post("/import", s.handleImport)
	caps.Delete("/", s.handleClearCapsule)

	// Websocket upgrade gate
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws/states", websocket.New(func(conn *websocket.Conn) {
		hub.NewClient(s.stateHub, conn).Run()
	}))
	s.app.Get("/ws/alerts", websocket.New(func(conn *websocket.Conn) {
		hub.NewClient(s.alertHub, conn).Run()
	}))
}

// Start runs the hub loops and blocks serving HTTP.
func (s *Server) Start() error {
	go s.stateHub.Run()
	go s.alertHub.Run()
	log.Info("aura server listening", "port", s.cfg.Port)
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown gracefully stops the HTTP listener and flushes the capsule to
// the store when one is configured.
func (s *Server) Shutdown() error {
	if err := s.app.Shutdown(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.capsule.SaveTo(s.store); err != nil {
			return err
		}
	}
	return nil
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }
