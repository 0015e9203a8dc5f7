package handler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/divecatch-server/internal/game"
	"github.com/ugaemi/divecatch-server/internal/motion"
	"github.com/ugaemi/divecatch-server/internal/session"
	"github.com/ugaemi/divecatch-server/internal/ws"
)

// setupGameplayTest creates a running session with a controller and a
// spectator, with both clients' queues drained.
func setupGameplayTest(t *testing.T) (*Router, *session.Session, *ws.Client, chan sentMessage, *ws.Client, chan sentMessage) {
	t.Helper()
	router, sm := setupRouter()
	t.Cleanup(sm.StopAll)

	c1, ch1 := newTestClient("controller")
	c2, ch2 := newTestClient("spectator")
	created := createSession(t, router, c1, ch1)
	send(router, c2, ws.TypeJoinSession, joinSessionRequest{Code: created.Code})
	readResponse(t, ch2) // join_session
	readResponse(t, ch2) // session_info
	readResponse(t, ch1) // session_info

	send(router, c1, ws.TypeStartSession, nil)
	readResponse(t, ch1) // session_info
	readResponse(t, ch2) // session_info

	s := sm.GetSession(created.Code)
	require.Equal(t, game.StateRunning, s.CurrentState())
	return router, s, c1, ch1, c2, ch2
}

func TestHandlePointerInput_ActionStartsDive(t *testing.T) {
	router, s, c1, ch1, _, _ := setupGameplayTest(t)

	send(router, c1, ws.TypePointerInput, pointerInputRequest{X: 1, Y: 1, Action: true})
	expectNoResponse(t, ch1)

	res := s.Step(game.TickInterval.Seconds())
	assert.Equal(t, game.PursuerDiving, res.Snapshot.Pursuer.Mode)
}

func TestHandlePointerInput_PointerSteers(t *testing.T) {
	router, s, c1, _, _, _ := setupGameplayTest(t)
	before := s.View().Pursuer.Position

	// A pointer two units away is inside the slow band, so the pursuer
	// drifts toward it on the same tick.
	target := before.Add(motion.Vec2{X: 2})
	send(router, c1, ws.TypePointerInput, pointerInputRequest{X: target.X, Y: target.Y})

	res := s.Step(game.TickInterval.Seconds())
	assert.Equal(t, game.PursuerSlow, res.Snapshot.Pursuer.Mode)
	assert.Greater(t, res.Snapshot.Pursuer.Position.X, before.X)
}

func TestHandlePointerInput_SpectatorRejected(t *testing.T) {
	router, s, _, _, c2, ch2 := setupGameplayTest(t)

	send(router, c2, ws.TypePointerInput, pointerInputRequest{X: 1, Y: 1, Action: true})

	resp := readResponse(t, ch2)
	assert.Equal(t, ws.TypeError, resp.Type)
	assert.Equal(t, "only the controller can steer", errorText(t, resp))

	res := s.Step(game.TickInterval.Seconds())
	assert.NotEqual(t, game.PursuerDiving, res.Snapshot.Pursuer.Mode)
}

func TestHandlePointerInput_NotInSession(t *testing.T) {
	router, _ := setupRouter()
	client, ch := newTestClient("c1")

	send(router, client, ws.TypePointerInput, pointerInputRequest{X: 1, Y: 1})

	assert.Equal(t, "not in a session", errorText(t, readResponse(t, ch)))
}

func TestHandlePointerInput_BeforeStartIsDropped(t *testing.T) {
	router, _ := setupRouter()
	client, ch := newTestClient("c1")
	createSession(t, router, client, ch)

	send(router, client, ws.TypePointerInput, pointerInputRequest{X: 1, Y: 1})

	expectNoResponse(t, ch)
}

func TestHandlePointerInput_InvalidData(t *testing.T) {
	router, _ := setupRouter()
	client, ch := newTestClient("c1")

	send(router, client, ws.TypePointerInput, map[string]string{"x": "left"})

	assert.Equal(t, "invalid input data", errorText(t, readResponse(t, ch)))
}

func TestFinite(t *testing.T) {
	assert.True(t, finite(3.5))
	assert.False(t, finite(math.NaN()))
	assert.False(t, finite(math.Inf(-1)))
}
