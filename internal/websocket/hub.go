package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and broadcasts messages to
// them. Register/unregister flow through Run; delivery entry points
// (BroadcastTo, NotifyUser, SendTo) are called from request goroutines,
// so the client and subscription maps are guarded by a mutex.
type Hub struct {
	mu sync.Mutex

	// Registered clients.
	clients map[*Client]bool

	// Inbound messages from the clients for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of user IDs to the set of clients signed in as that user.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			if client.UserID != "" {
				h.addSubscriptionLocked(client, client.UserID)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Info().Int("total_clients", total).Msg("Client connected")
		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.evictLocked(client)
				total := len(h.clients)
				h.mu.Unlock()
				log.Info().Int("total_clients", total).Msg("Client disconnected")
			} else {
				h.mu.Unlock()
			}
		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.evictLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastTo sends a message to all clients signed in as one user.
// Clients whose send buffer is full are evicted rather than blocked on.
func (h *Hub) BroadcastTo(userID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.subscriptions[userID] {
		select {
		case client.Send <- message:
		default:
			h.evictLocked(client)
		}
	}
}

// SendTo delivers a message to one client, if it is still registered.
// The hub owns every send into client channels: a client evicted a
// moment earlier has a closed Send channel, and only the membership
// check under the lock makes sending safe.
func (h *Hub) SendTo(client *Client, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.Send <- message:
	default:
		h.evictLocked(client)
	}
}

// NotifyUser marshals an action/payload message and delivers it to
// every connection of one user. Satisfies the services.Notifier
// interface.
func (h *Hub) NotifyUser(userID, action string, payload interface{}) {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to marshal websocket message")
		return
	}
	h.BroadcastTo(userID, data)
}

// evictLocked removes a client from every map and closes its send
// channel. Callers must hold h.mu; the channel is closed exactly once
// because the membership check gates every caller.
func (h *Hub) evictLocked(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	h.removeSubscriptionLocked(client)
}

func (h *Hub) addSubscriptionLocked(client *Client, userID string) {
	if h.subscriptions[userID] == nil {
		h.subscriptions[userID] = make(map[*Client]bool)
	}
	h.subscriptions[userID][client] = true
}

func (h *Hub) removeSubscriptionLocked(client *Client) {
	for userID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, userID)
			}
		}
	}
}
