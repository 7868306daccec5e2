package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addClient registers a client and waits until the registration has
// been applied. The Register channel is unbuffered, so once a second
// handshake is accepted the first one's processing has finished.
func addClient(hub *Hub, userID string) *Client {
	client := NewClient(hub, nil, userID)
	hub.Register <- client
	sentinel := NewClient(hub, nil, "")
	hub.Register <- sentinel
	hub.Unregister <- sentinel
	return client
}

func TestNotifyUserDeliversToEveryConnectionOfOneUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := addClient(hub, "user-1")
	second := addClient(hub, "user-1")
	other := addClient(hub, "user-2")

	hub.NotifyUser("user-1", "stylist.result", map[string]string{"step": "result"})

	for _, client := range []*Client{first, second} {
		raw := <-client.Send
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "stylist.result", msg.Action)
	}

	select {
	case raw := <-other.Send:
		t.Fatalf("user-2 received user-1's message: %s", raw)
	default:
	}
}

func TestNotifyUserDuringConnectionChurn(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Deliveries come from request goroutines while connections come
	// and go through Run. Both touch the same maps; this must never
	// trip the race detector or panic on an evicted client's channel.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hub.NotifyUser("user-1", "stylist.processing", map[string]int{"n": i})
		}
	}()

	for i := 0; i < 100; i++ {
		client := NewClient(hub, nil, "user-1")
		hub.Register <- client
		hub.Unregister <- client
	}
	wg.Wait()
}

func TestSendToSkipsEvictedClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := addClient(hub, "user-1")
	hub.Unregister <- client
	// Drain the unregister through a handshake.
	sentinel := NewClient(hub, nil, "")
	hub.Register <- sentinel
	hub.Unregister <- sentinel

	// The client's Send channel is closed now; the hub must drop the
	// message instead of sending into it.
	hub.SendTo(client, []byte(`{"action":"error"}`))
}

func TestSendToEvictsClientWithFullBuffer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := addClient(hub, "user-1")
	payload := []byte(`{"action":"stylist.processing"}`)
	// Nothing reads from the client, so the buffer eventually fills
	// and the hub evicts rather than blocks.
	for i := 0; i < cap(client.Send)+2; i++ {
		hub.SendTo(client, payload)
	}

	hub.mu.Lock()
	registered := hub.clients[client]
	hub.mu.Unlock()
	assert.False(t, registered)
}
