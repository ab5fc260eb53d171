package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tourkita/tourkita-backend/internal/services"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the router; the socket trusts the session token.
		return true
	},
}

const (
	feedWriteWait  = 10 * time.Second
	feedPingPeriod = 30 * time.Second
)

// FeedWebSocket streams live dashboard events (new feedback, sent
// notifications) to a connected admin. Browsers can't set headers on a
// WebSocket handshake, so the session token rides the query string.
func FeedWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	_, ok, err := services.ValidateAdminSession(token)
	if err != nil || !ok {
		http.Error(w, "Admin authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := services.SubscribeFeed()
	defer unsubscribe()

	// Reader loop: the dashboard never sends data, but reading is how we
	// notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
