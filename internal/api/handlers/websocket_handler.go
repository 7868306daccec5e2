package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/auth"
	"github.com/aurastyle/wardrobe-be/internal/services"
	ws "github.com/aurastyle/wardrobe-be/internal/websocket"
)

// WebSocketHandler handles upgrading HTTP connections to WebSocket
// connections scoped to the authenticated user.
type WebSocketHandler struct {
	hub     *ws.Hub
	stylist *services.StylistService
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, stylist *services.StylistService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, stylist: stylist}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. The connection is
// subscribed to the signed-in user's channel; the stylist workflow
// pushes progress and results through it.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register <- client

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(h.handleMessage)
	}()

	// Cleanup on disconnect.
	go func() {
		wg.Wait()
		h.hub.Unregister <- client
	}()
}

// handleMessage dispatches an inbound client message. The only defined
// action is a state refresh; anything else gets an error reply. All
// replies go through the hub, which skips clients it has evicted.
func (h *WebSocketHandler) handleMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		h.hub.SendTo(client, ws.NewErrorMessage("Invalid message format"))
		return
	}

	switch msg.Action {
	case "stylist.state":
		state := h.stylist.State(client.UserID)
		data, err := json.Marshal(ws.Message{Action: "stylist.state", Payload: state})
		if err != nil {
			log.Error().Err(err).Str("user_id", client.UserID).Msg("Failed to marshal state message")
			return
		}
		h.hub.SendTo(client, data)
	default:
		h.hub.SendTo(client, ws.NewErrorMessage("Unknown action: "+msg.Action))
	}
}
