package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ugaemi/divecatch-server/internal/ws"
)

func TestHandleMessage_InvalidFormat(t *testing.T) {
	router, _ := setupRouter()
	client, ch := newTestClient("c1")

	router.HandleMessage(&ws.ClientMessage{Client: client, Data: []byte("{not json")})

	resp := readResponse(t, ch)
	assert.Equal(t, ws.TypeError, resp.Type)
	assert.Equal(t, "invalid message format", errorText(t, resp))
}

func TestHandleMessage_UnknownType(t *testing.T) {
	router, _ := setupRouter()
	client, ch := newTestClient("c1")

	send(router, client, "teleport", nil)

	resp := readResponse(t, ch)
	assert.Equal(t, ws.TypeError, resp.Type)
	assert.Equal(t, "unknown message type: teleport", errorText(t, resp))
}

func TestRouter_SessionMapping(t *testing.T) {
	router, _ := setupRouter()

	router.RegisterClient("c1", "ABCD")
	assert.Equal(t, "ABCD", router.GetSessionCode("c1"))

	router.UnregisterClient("c1")
	assert.Empty(t, router.GetSessionCode("c1"))
}
