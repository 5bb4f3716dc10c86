package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"tapminer/internal/domain"
	"tapminer/internal/logger"
	"tapminer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// WSSync keeps a live session-merge channel open. The client pushes its
// optimistic counters as JSON frames and gets the merged authoritative
// snapshot back on every frame. Pure read path: mutations still go
// through the REST endpoints.
func (h *Handler) WSSync(c *gin.Context) {
	// JWT from query
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}

	playerID, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	go h.runSyncLoop(conn, playerID)
}

// wsWritePump is the connection's only writer: merge replies and pings
// both go through it, so frames never interleave. It owns conn teardown
// and signals its exit by closing done.
func wsWritePump(conn *websocket.Conn, send <-chan any, done chan<- struct{}, pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) runSyncLoop(conn *websocket.Conn, playerID int64) {
	log := logger.With("component", "ws_sync", "player_id", playerID)

	send := make(chan any, 8)
	writerDone := make(chan struct{})
	go wsWritePump(conn, send, writerDone, wsPingPeriod)
	defer close(send)

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		var local domain.ClientState
		if err := conn.ReadJSON(&local); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("ws read error", "error", err)
			}
			return
		}

		var msg any
		merged, err := h.Game.Sync(context.Background(), playerID, local)
		if err != nil {
			msg = gin.H{"error": "sync failed"}
		} else {
			msg = gin.H{"player": merged}
		}

		select {
		case send <- msg:
		case <-writerDone:
			return
		}
	}
}
