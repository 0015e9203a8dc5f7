package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/divecatch-server/internal/game"
	"github.com/ugaemi/divecatch-server/internal/metrics"
	"github.com/ugaemi/divecatch-server/internal/record"
	"github.com/ugaemi/divecatch-server/internal/store"
	"github.com/ugaemi/divecatch-server/internal/ws"
)

const (
	maxClients  = 8
	saveTimeout = 5 * time.Second
)

var (
	ErrNotController = errors.New("only the controller can steer")
	ErrNotRunning    = errors.New("session is not running")
	ErrFull          = errors.New("session is full")
)

// Settings configures a new session.
type Settings struct {
	Tunables     game.Tunables
	Screen       game.Screen
	TickInterval time.Duration
	Duration     time.Duration // zero means no time limit
	Seed         int64
	Metrics      *metrics.Metrics // optional
}

// Session is one chase: a pursuer steered by the controlling client, an
// evader, and the clients watching them. All simulation state is mutated
// under mu, one tick at a time.
type Session struct {
	ID    string            `json:"id"`
	Code  string            `json:"code"`
	State game.SessionState `json:"state"`

	ControllerID string `json:"controller_id"`

	settings Settings
	clock    *game.SimClock
	pursuer  *game.Pursuer
	evader   *game.Evader
	overlap  game.OverlapFunc
	input    game.Input

	clients map[string]*ws.Client

	ticks         int
	capture       *game.CaptureEvent
	outcome       game.Outcome
	startedAt     time.Time
	remainingTime time.Duration

	records store.RecordStore

	stopCh chan struct{}
	mu     sync.RWMutex
}

// NewSession creates a waiting session with both actors spawned apart.
func NewSession(code string, s Settings, records store.RecordStore) *Session {
	rnd := game.NewRandomizer(s.Seed)
	minGap := s.Tunables.Evader.ScaredDistance + game.MinSpawnGap
	pPos, ePos := game.SpawnPositions(s.Screen, rnd, minGap)

	return &Session{
		ID:            uuid.New().String(),
		Code:          code,
		State:         game.StateWaiting,
		settings:      s,
		clock:         &game.SimClock{},
		pursuer:       game.NewPursuer(s.Tunables.Pursuer, pPos),
		evader:        game.NewEvader(s.Tunables.Evader, rnd, ePos),
		overlap:       game.CircleOverlap(s.Tunables.CatchRadius),
		clients:       make(map[string]*ws.Client),
		remainingTime: s.Duration,
		records:       records,
	}
}

// AddClient attaches a client. The first client becomes the controller.
func (s *Session) AddClient(client *ws.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clients) >= maxClients {
		return ErrFull
	}
	s.clients[client.ID] = client
	if s.ControllerID == "" {
		s.ControllerID = client.ID
	}
	return nil
}

// RemoveClient detaches a client. Control passes to any remaining client.
func (s *Session) RemoveClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.clients, clientID)

	if s.ControllerID == clientID {
		s.ControllerID = ""
		s.input = game.Input{}
		for id := range s.clients {
			s.ControllerID = id
			break
		}
	}
}

// ClientCount returns the number of attached clients.
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// IsEmpty returns true if no client is attached.
func (s *Session) IsEmpty() bool {
	return s.ClientCount() == 0
}

// HasClient reports whether the client is attached.
func (s *Session) HasClient(clientID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.clients[clientID]
	return ok
}

// SetInput stores the controller's latest pointer sample. The next tick
// reads it; intermediate samples are overwritten.
func (s *Session) SetInput(clientID string, in game.Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != game.StateRunning {
		return ErrNotRunning
	}
	if clientID != s.ControllerID {
		return ErrNotController
	}
	s.input = in
	return nil
}

// Snapshot is the per-tick view sent to clients.
type Snapshot struct {
	Tick          int                  `json:"tick"`
	Time          float64              `json:"time"`
	RemainingTime float64              `json:"remaining_time,omitempty"`
	Pursuer       game.PursuerSnapshot `json:"pursuer"`
	Evader        game.EvaderSnapshot  `json:"evader"`
}

// StepResult is what one tick produced.
type StepResult struct {
	Snapshot Snapshot
	Capture  *game.CaptureEvent
	Outcome  game.Outcome
}

// Step advances the simulation by one tick of dt seconds.
func (s *Session) Step(dt float64) StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(dt)
}

// step runs one tick. The pursuer moves first; capture and the evader
// then both read the same post-move pursuer snapshot. Caller must hold s.mu.
func (s *Session) step(dt float64) StepResult {
	now := s.clock.Advance(dt)
	s.ticks++

	prevPursuer, prevEvader := s.pursuer.Mode(), s.evader.Mode()

	s.pursuer.Tick(dt, now, s.input, s.settings.Screen)
	ps := s.pursuer.Snapshot()

	var res StepResult
	overlapping := s.overlap(ps.Position, s.evader.Position())
	if ev, ok := game.ProcessCapture(s.pursuer, s.evader, overlapping, now); ok {
		s.capture = &ev
		res.Capture = &ev
		s.settings.Metrics.Captured()
		slog.Info("evader caught", "session", s.Code, "time", now, "dives", s.pursuer.Dives())
	}

	s.evader.Tick(dt, now, ps.Position, s.settings.Screen)

	if m := s.pursuer.Mode(); m != prevPursuer {
		slog.Debug("pursuer mode", "session", s.Code, "from", prevPursuer.String(), "to", m.String())
	}
	if m := s.evader.Mode(); m != prevEvader {
		slog.Debug("evader mode", "session", s.Code, "from", prevEvader.String(), "to", m.String())
	}

	timerExpired := false
	if s.settings.Duration > 0 {
		s.remainingTime -= time.Duration(dt * float64(time.Second))
		timerExpired = s.remainingTime <= 0
	}
	res.Outcome = game.DecideOutcome(s.evader, timerExpired)

	res.Snapshot = Snapshot{
		Tick:          s.ticks,
		Time:          now,
		RemainingTime: max(s.remainingTime.Seconds(), 0),
		Pursuer:       ps,
		Evader:        s.evader.Snapshot(),
	}
	return res
}

// Start begins the tick loop. Calling it on a running or ended session is a
// no-op.
func (s *Session) Start() {
	s.mu.Lock()
	if s.State != game.StateWaiting {
		s.mu.Unlock()
		return
	}
	s.State = game.StateRunning
	s.startedAt = time.Now()
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.settings.Metrics.SessionStarted()
	slog.Info("session started", "session", s.Code, "id", s.ID)
	go s.loop()
}

// Stop ends the session, broadcasts the result and records it. Safe to call
// more than once; only the first call has any effect.
func (s *Session) Stop(outcome game.Outcome) {
	s.mu.Lock()
	if s.State != game.StateRunning {
		s.mu.Unlock()
		return
	}
	s.State = game.StateEnded
	s.outcome = outcome

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	rec := s.recordLocked()
	s.mu.Unlock()

	s.settings.Metrics.SessionEnded(outcome.String(), rec.Dives, rec.Hops)

	msg, _ := ws.NewMessage(ws.TypeSessionOver, sessionOverMessage{
		Outcome: outcome.String(),
		Ticks:   rec.Ticks,
		Hops:    rec.Hops,
		Dives:   rec.Dives,
	})
	s.Broadcast(msg)

	if s.records != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.records.Save(ctx, rec); err != nil {
			slog.Error("failed to save chase record", "session", s.Code, "error", err)
		}
	}

	slog.Info("session ended", "session", s.Code, "outcome", outcome.String(), "ticks", rec.Ticks)
}

// Outcome returns how the session ended, OutcomeNone while running.
func (s *Session) Outcome() game.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome
}

// CurrentState returns the lifecycle state.
func (s *Session) CurrentState() game.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State
}

// Controller returns the client ID allowed to steer.
func (s *Session) Controller() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ControllerID
}

// View returns the current snapshot without advancing.
func (s *Session) View() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Tick:          s.ticks,
		Time:          s.clock.Now(),
		RemainingTime: max(s.remainingTime.Seconds(), 0),
		Pursuer:       s.pursuer.Snapshot(),
		Evader:        s.evader.Snapshot(),
	}
}

// Broadcast sends a message to every attached client.
func (s *Session) Broadcast(msg ws.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal broadcast", "session", s.Code, "error", err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		c.SendRaw(data)
	}
}

// recordLocked builds the persisted summary. Caller must hold s.mu.
func (s *Session) recordLocked() *record.Record {
	var rec *record.Record
	if s.capture != nil {
		rec = record.NewCaughtRecord(s.ID, s.capture.Time, s.startedAt)
	} else {
		rec = record.NewEndedRecord(s.ID, s.outcome.String(), s.startedAt)
	}
	rec.Hops = s.evader.Hops()
	rec.Dives = s.pursuer.Dives()
	rec.Ticks = s.ticks
	return rec
}

type sessionOverMessage struct {
	Outcome string `json:"outcome"`
	Ticks   int    `json:"ticks"`
	Hops    int    `json:"hops"`
	Dives   int    `json:"dives"`
}

// loop ticks the simulation at the configured interval until stopped.
// dt is the nominal interval so runs are reproducible for a given input
// stream.
func (s *Session) loop() {
	interval := s.settings.TickInterval
	if interval <= 0 {
		interval = game.TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	dt := interval.Seconds()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			began := time.Now()
			s.mu.Lock()
			if s.State != game.StateRunning {
				s.mu.Unlock()
				return
			}
			res := s.step(dt)
			s.mu.Unlock()

			msg, _ := ws.NewMessage(ws.TypeSimState, res.Snapshot)
			s.Broadcast(msg)

			if res.Capture != nil {
				capMsg, _ := ws.NewMessage(ws.TypeCaptured, res.Capture)
				s.Broadcast(capMsg)
			}
			s.settings.Metrics.Tick(time.Since(began))

			if res.Outcome != game.OutcomeNone {
				s.Stop(res.Outcome)
				return
			}
		}
	}
}
