package web

import (
	"errors"
	"math/rand"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/auralab/go-aura/internal/log"
	"github.com/auralab/go-aura/pkg/alerts"
	"github.com/auralab/go-aura/pkg/capsule"
	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/fusion"
	"github.com/auralab/go-aura/pkg/signal"
)

// expressionJitter is the cosmetic wobble added to the displayed intensity.
// It exists only in API responses; fused states and history stay exact.
const expressionJitter = 0.05

// Expression is the presentation-side rendering of a state.
type Expression struct {
	Emotion   emotion.Emotion `json:"emotion"`
	Intensity float64         `json:"intensity"`
}

// signalsResponse is the POST /api/signals payload.
type signalsResponse struct {
	State      emotion.State  `json:"state"`
	Expression Expression     `json:"expression"`
	Alerts     []alerts.Alert `json:"alerts"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{
		"status":         "ok",
		"history":        s.alerts.HistoryLen(),
		"capsule_states": s.capsule.StateCount(),
		"state_clients":  s.stateHub.ClientCount(),
		"alert_clients":  s.alertHub.ClientCount(),
	})
}

// handleSignals runs one full inference pass: fuse the posted modalities,
// feed the state to the alert and capsule histories, and evaluate alerts.
func (s *Server) handleSignals(c *fiber.Ctx) error {
	var in fusion.Inputs
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid signal payload")
	}

	s.mu.Lock()
	state := s.fuser.Fuse(in)
	s.lastState = &state
	s.alerts.AddState(state)
	s.capsule.AddState(state)
	fired := s.alerts.Check(in.Activity)
	for _, a := range fired {
		s.recent.Push(a)
	}
	s.pruneDismissed()
	s.mu.Unlock()

	if err := s.stateHub.BroadcastEvent("state", state); err != nil {
		log.Warn("state broadcast failed", "error", err)
	}
	for _, a := range fired {
		if err := s.alertHub.BroadcastEvent("alert", a); err != nil {
			log.Warn("alert broadcast failed", "error", err)
		}
	}

	return c.JSON(signalsResponse{
		State:      state,
		Expression: express(state),
		Alerts:     fired,
	})
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastState == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no state inferred yet"})
	}
	return c.JSON(fiber.Map{
		"state":      *s.lastState,
		"expression": express(*s.lastState),
	})
}

func (s *Server) handleAlerts(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.recent.Snapshot()
	out := make([]alerts.Alert, 0, len(snapshot))
	// Newest first, dismissed hidden
	for i := len(snapshot) - 1; i >= 0; i-- {
		if !s.dismissed[snapshot[i].Key()] {
			out = append(out, snapshot[i])
		}
	}
	return c.JSON(fiber.Map{"alerts": out})
}

func (s *Server) handleDismiss(c *fiber.Ctx) error {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		return badRequest(c, "invalid alert key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.recent.Snapshot() {
		if a.Key() == key {
			s.dismissed[key] = true
			return c.JSON(fiber.Map{"dismissed": key})
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown alert key"})
}

func (s *Server) handleAddEntry(c *fiber.Ctx) error {
	var e capsule.Entry
	if err := c.BodyParser(&e); err != nil {
		return badRequest(c, "invalid entry payload")
	}

	s.mu.Lock()
	stored := s.capsule.AddEntry(e)
	s.persist()
	s.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	s.mu.Lock()
	summary := s.capsule.Summarize(period)
	s.mu.Unlock()

	return c.JSON(summary)
}

func (s *Server) handleSummaryText(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	opts := capsule.DefaultSummaryOptions()
	if a := c.Query("audience"); a != "" {
		opts.Audience = capsule.Audience(a)
	}
	if c.Query("contexts") == "false" {
		opts.IncludeContexts = false
	}
	if ml := c.QueryInt("max_length"); ml > 0 {
		opts.MaxLength = ml
	}
	if focus := c.Query("focus"); focus != "" {
		for _, f := range strings.Split(focus, ",") {
			e := emotion.Emotion(strings.TrimSpace(f))
			if !e.IsValid() {
				return badRequest(c, "unknown focus emotion: "+string(e))
			}
			opts.FocusAreas = append(opts.FocusAreas, e)
		}
	}

	s.mu.Lock()
	text := s.capsule.TherapistSummary(period, opts)
	s.mu.Unlock()

	return c.JSON(fiber.Map{"text": text})
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	s.mu.Lock()
	snap := s.capsule.Export()
	s.mu.Unlock()
	return c.JSON(snap)
}

func (s *Server) handleImport(c *fiber.Ctx) error {
	var snap capsule.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return badRequest(c, "invalid snapshot payload")
	}

	s.mu.Lock()
	s.capsule.Import(snap)
	entries, states := s.capsule.EntryCount(), s.capsule.StateCount()
	s.persist()
	s.mu.Unlock()

	return c.JSON(fiber.Map{"entries": entries, "states": states})
}

func (s *Server) handleClearCapsule(c *fiber.Ctx) error {
	s.mu.Lock()
	s.capsule.Clear()
	s.persist()
	s.mu.Unlock()
	return c.SendStatus(fiber.StatusNoContent)
}

// pruneDismissed drops dismissal marks whose alerts have been evicted from
// the bounded feed, keeping the map from growing without bound. Caller must
// hold the mutex.
func (s *Server) pruneDismissed() {
	if len(s.dismissed) == 0 {
		return
	}
	live := make(map[string]bool, s.recent.Len())
	for _, a := range s.recent.Snapshot() {
		live[a.Key()] = true
	}
	for k := range s.dismissed {
		if !live[k] {
			delete(s.dismissed, k)
		}
	}
}

// persist flushes the capsule through the store when one is configured.
// States accumulate too fast to flush per signal; they are written here on
// capsule mutations and again at shutdown.
func (s *Server) persist() {
	if s.store == nil {
		return
	}
	if err := s.capsule.SaveTo(s.store); err != nil {
		log.Warn("capsule save failed", "error", err)
	}
}

// express derives the displayed expression from a state, adding a small
// random wobble so the rendered intensity feels alive.
func express(state emotion.State) Expression {
	jitter := (rand.Float64()*2 - 1) * expressionJitter
	return Expression{
		Emotion:   state.Mood,
		Intensity: signal.Clamp01(state.Confidence + jitter),
	}
}

// parsePeriod reads optional from/to query params (ms epoch). Both absent
// means nil, the capsule's full-history default.
func parsePeriod(c *fiber.Ctx) (*capsule.Period, error) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		return nil, nil
	}

	p := &capsule.Period{}
	var err error
	if from != "" {
		if p.Start, err = strconv.ParseInt(from, 10, 64); err != nil {
			return nil, errInvalidPeriod
		}
	}
	if to != "" {
		if p.End, err = strconv.ParseInt(to, 10, 64); err != nil {
			return nil, errInvalidPeriod
		}
	}
	if p.End <= p.Start {
		return nil, errInvalidPeriod
	}
	return p, nil
}

var errInvalidPeriod = errors.New("period must be from/to millisecond timestamps with to > from")

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
