package handler

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/ugaemi/divecatch-server/internal/game"
	"github.com/ugaemi/divecatch-server/internal/motion"
	"github.com/ugaemi/divecatch-server/internal/session"
	"github.com/ugaemi/divecatch-server/internal/ws"
)

// GameplayHandler handles in-session messages.
type GameplayHandler struct {
	sm     *session.Manager
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(sm *session.Manager, router *Router) *GameplayHandler {
	return &GameplayHandler{sm: sm, router: router}
}

type pointerInputRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Action bool    `json:"action"`
}

// HandlePointerInput stores the controller's pointer sample for the next
// tick. Coordinates are world units; the pursuer clamps itself to the
// screen, so off-screen pointers are accepted.
func (h *GameplayHandler) HandlePointerInput(client *ws.Client, msg ws.Message) {
	var req pointerInputRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid input data"))
		return
	}
	if !finite(req.X) || !finite(req.Y) {
		client.SendMessage(ws.NewErrorMessage("pointer must be finite"))
		return
	}

	code := h.router.GetSessionCode(client.ID)
	s := h.sm.GetSession(code)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("not in a session"))
		return
	}

	err := s.SetInput(client.ID, game.Input{
		Pointer: motion.Vec2{X: req.X, Y: req.Y},
		Action:  req.Action,
	})
	switch {
	case errors.Is(err, session.ErrNotController):
		client.SendMessage(ws.NewErrorMessage("only the controller can steer"))
	case errors.Is(err, session.ErrNotRunning):
		// Input racing the session end is expected; drop it quietly.
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
