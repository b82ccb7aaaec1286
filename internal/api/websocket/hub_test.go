package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte(`{"player":"Stephen Curry"}`))
	select {
	case msg := <-client.send:
		assert.JSONEq(t, `{"player":"Stephen Curry"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open, "unregister must close the send channel")
}

func TestHubDropsMessagesForSlowConsumers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("second"))

	select {
	case msg := <-client.send:
		assert.Equal(t, "first", string(msg))
	case <-time.After(time.Second):
		t.Fatal("first broadcast never arrived")
	}
}
