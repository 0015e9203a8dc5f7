package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ugaemi/divecatch-server/internal/game"
	"github.com/ugaemi/divecatch-server/internal/session"
	"github.com/ugaemi/divecatch-server/internal/ws"
)

// LobbyHandler handles session lifecycle messages.
type LobbyHandler struct {
	sm     *session.Manager
	router *Router
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(sm *session.Manager, router *Router) *LobbyHandler {
	return &LobbyHandler{
		sm:     sm,
		router: router,
	}
}

type createSessionRequest struct {
	Seed int64 `json:"seed,omitempty"`
}

type joinSessionResponse struct {
	Code       string `json:"code"`
	SessionID  string `json:"session_id"`
	Controller bool   `json:"controller"`
}

// HandleCreateSession creates a session controlled by the sender.
func (h *LobbyHandler) HandleCreateSession(client *ws.Client, msg ws.Message) {
	var req createSessionRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid create request"))
			return
		}
	}
	if h.router.GetSessionCode(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a session"))
		return
	}

	s := h.sm.CreateSession(req.Seed)
	if err := s.AddClient(client); err != nil {
		h.sm.RemoveSession(s.Code)
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterClient(client.ID, s.Code)

	resp, _ := ws.NewMessage(ws.TypeCreateSession, joinSessionResponse{
		Code:       s.Code,
		SessionID:  s.ID,
		Controller: true,
	})
	client.SendMessage(resp)

	slog.Info("client created session", "client", client.ID, "session", s.Code)
}

type joinSessionRequest struct {
	Code string `json:"code"`
}

// HandleJoinSession attaches the sender to an existing session, as a
// spectator unless the session has no controller.
func (h *LobbyHandler) HandleJoinSession(client *ws.Client, msg ws.Message) {
	var req joinSessionRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" {
		client.SendMessage(ws.NewErrorMessage("code is required"))
		return
	}
	if h.router.GetSessionCode(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a session"))
		return
	}

	s := h.sm.GetSession(req.Code)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("session not found"))
		return
	}

	if err := s.AddClient(client); err != nil {
		if errors.Is(err, session.ErrFull) {
			client.SendMessage(ws.NewErrorMessage("session is full"))
			return
		}
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterClient(client.ID, s.Code)

	resp, _ := ws.NewMessage(ws.TypeJoinSession, joinSessionResponse{
		Code:       s.Code,
		SessionID:  s.ID,
		Controller: s.Controller() == client.ID,
	})
	client.SendMessage(resp)

	h.broadcastSessionInfo(s)

	slog.Info("client joined session", "client", client.ID, "session", s.Code)
}

// HandleStartSession starts the tick loop. Only the controller may start.
func (h *LobbyHandler) HandleStartSession(client *ws.Client, _ ws.Message) {
	s := h.sessionOf(client)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("not in a session"))
		return
	}
	if s.Controller() != client.ID {
		client.SendMessage(ws.NewErrorMessage("only the controller can start"))
		return
	}
	if s.CurrentState() != game.StateWaiting {
		client.SendMessage(ws.NewErrorMessage("session already started"))
		return
	}

	s.Start()
	h.broadcastSessionInfo(s)
}

// HandleLeaveSession detaches the sender from its session.
func (h *LobbyHandler) HandleLeaveSession(client *ws.Client, _ ws.Message) {
	h.removeClient(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removeClient(client)
}

func (h *LobbyHandler) sessionOf(client *ws.Client) *session.Session {
	code := h.router.GetSessionCode(client.ID)
	if code == "" {
		return nil
	}
	return h.sm.GetSession(code)
}

func (h *LobbyHandler) removeClient(client *ws.Client) {
	code := h.router.GetSessionCode(client.ID)
	if code == "" {
		return
	}

	if s := h.sm.GetSession(code); s != nil {
		s.RemoveClient(client.ID)
		if s.IsEmpty() {
			h.sm.RemoveSession(s.Code)
		} else {
			h.broadcastSessionInfo(s)
		}
	}

	h.router.UnregisterClient(client.ID)
	slog.Info("client left session", "client", client.ID, "session", code)
}

type sessionInfoResponse struct {
	Code         string `json:"code"`
	SessionID    string `json:"session_id"`
	State        string `json:"state"`
	ControllerID string `json:"controller_id"`
	Clients      int    `json:"clients"`
}

func (h *LobbyHandler) broadcastSessionInfo(s *session.Session) {
	resp, _ := ws.NewMessage(ws.TypeSessionInfo, sessionInfoResponse{
		Code:         s.Code,
		SessionID:    s.ID,
		State:        s.CurrentState().String(),
		ControllerID: s.Controller(),
		Clients:      s.ClientCount(),
	})
	s.Broadcast(resp)
}
