package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// Floods the write pump with frames while the ping ticker fires between
// them; every frame must arrive intact through the single writer.
func TestWSWritePumpInterleavesPingsAndFrames(t *testing.T) {
	const frames = 200

	send := make(chan any, frames)
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		// ping on nearly every frame boundary
		wsWritePump(conn, send, done, time.Millisecond)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	var pings atomic.Int64
	client.SetPingHandler(func(string) error {
		pings.Add(1)
		return nil
	})

	go func() {
		for i := 0; i < frames; i++ {
			send <- map[string]int{"seq": i}
			time.Sleep(100 * time.Microsecond)
		}
		close(send)
	}()

	for i := 0; i < frames; i++ {
		var msg struct {
			Seq int `json:"seq"`
		}
		client.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := client.ReadJSON(&msg); err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if msg.Seq != i {
			t.Fatalf("frame %d arrived out of order as %d", i, msg.Seq)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("write pump did not exit after send closed")
	}

	if pings.Load() == 0 {
		t.Fatalf("expected at least one ping interleaved with frames")
	}
}
