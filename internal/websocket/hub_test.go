package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"learner-account-be/internal/dto"
	"learner-account-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SendStateReachesEveryDeviceOfUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	phone := &Client{Hub: hub, UserId: "42", Send: make(chan []byte, 4)}
	laptop := &Client{Hub: hub, UserId: "42", Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, UserId: "7", Send: make(chan []byte, 4)}
	for _, c := range []*Client{phone, laptop, other} {
		require.True(t, hub.Register(c))
	}
	require.Eventually(t, func() bool { return hub.ConnectedClients("42") == 2 }, time.Second, 5*time.Millisecond)

	hub.SendState("42", dto.FlowStateMessage{Status: "pending"})

	for _, c := range []*Client{phone, laptop} {
		select {
		case msg := <-c.Send:
			var got struct {
				Type string               `json:"type"`
				Data dto.FlowStateMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(msg, &got))
			assert.Equal(t, "delete_account_state", got.Type)
			assert.Equal(t, "pending", got.Data.Status)
		case <-time.After(time.Second):
			t.Fatal("state not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	c := &Client{Hub: hub, UserId: "42", Send: make(chan []byte, 1)}
	require.True(t, hub.Register(c))
	hub.Unregister(c)

	require.Eventually(t, func() bool { return hub.ConnectedClients("42") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_StoppedHubDoesNotBlockCallers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := &Client{Hub: hub, UserId: "42", Send: make(chan []byte)}
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ConnectedClients("42") == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped

	finished := make(chan struct{})
	go func() {
		// unbuffered Send is full, so delivery falls back to unregistering
		hub.SendState("42", dto.FlowStateMessage{Status: "deleted"})
		hub.Unregister(c)
		assert.False(t, hub.Register(&Client{Hub: hub, UserId: "7", Send: make(chan []byte, 1)}))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run returned")
	}
}
