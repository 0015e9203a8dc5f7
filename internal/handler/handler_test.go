package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ugaemi/divecatch-server/internal/game"
	"github.com/ugaemi/divecatch-server/internal/session"
	"github.com/ugaemi/divecatch-server/internal/store"
	"github.com/ugaemi/divecatch-server/internal/ws"
)

type sentMessage struct {
	Type string
	Data json.RawMessage
}

func newTestClient(id string) (*ws.Client, chan sentMessage) {
	ch := make(chan sentMessage, 10)
	client := &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}

	// Read sent messages in background
	go func() {
		for data := range client.Send {
			var msg sentMessage
			json.Unmarshal(data, &msg)
			ch <- msg
		}
	}()

	return client, ch
}

func readResponse(t *testing.T, ch chan sentMessage) sentMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for response")
		return sentMessage{}
	}
}

func expectNoResponse(t *testing.T, ch chan sentMessage) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message %s: %s", msg.Type, msg.Data)
	case <-time.After(50 * time.Millisecond):
	}
}

// setupRouter builds a router whose sessions never tick by themselves, so
// tests drive the simulation with Step.
func setupRouter() (*Router, *session.Manager) {
	settings := session.Settings{
		Tunables:     game.DefaultTunables(),
		Screen:       game.NewScreen(20, 12),
		TickInterval: time.Hour,
		Seed:         1,
	}
	sm := session.NewManager(settings, store.NewMemoryStore())
	return NewRouter(sm), sm
}

func send(r *Router, client *ws.Client, msgType string, payload any) {
	msg := ws.Message{Type: msgType}
	if payload != nil {
		msg, _ = ws.NewMessage(msgType, payload)
	}
	data, _ := json.Marshal(msg)
	r.HandleMessage(&ws.ClientMessage{Client: client, Data: data})
}

func errorText(t *testing.T, msg sentMessage) string {
	t.Helper()
	var e ws.ErrorMessage
	json.Unmarshal(msg.Data, &e)
	return e.Message
}
