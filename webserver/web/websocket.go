package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/mordilloSan/appsettings/common/ipc"
)

// WebSocket keepalive configuration
const (
	// How often to send ping frames to the client
	pingInterval = 25 * time.Second

	// How long to wait for a pong response before considering connection dead
	// This is the read deadline - must be longer than pingInterval to allow
	// the ping/pong cycle to complete even when no data is being sent
	pongWait = 35 * time.Second // pingInterval + 10 seconds buffer

	// Maximum time allowed to write a message (ping or data)
	writeWait = 10 * time.Second

	// Largest accepted request frame
	maxMessageBytes = 64 * 1024
)

var upgrader = websocket.Upgrader{
	// The relay only listens on loopback; the front-end is served from its own origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsConn serializes writes; gorilla allows one concurrent writer.
type wsConn struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *wsConn) keepalive() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				logger.Debugf("[WSRelay] ping failed: %v", err)
				return
			}
		}
	}
}

// WebSocketHandler upgrades the connection and serves one Request per text
// frame, replying with one Response per request in order.
func WebSocketHandler(d *ipc.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warnf("[WSRelay] upgrade failed: %v", err)
			return
		}
		conn := &wsConn{ws: ws, done: make(chan struct{})}
		defer func() {
			close(conn.done)
			_ = ws.Close()
		}()

		ws.SetReadLimit(maxMessageBytes)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
		go conn.keepalive()

		logger.Debugf("[WSRelay] client connected from %s", r.RemoteAddr)
		for {
			msgType, data, err := ws.ReadMessage()
			if err != nil {
				if !isExpectedWSClose(err) {
					logger.Warnf("[WSRelay] read failed: %v", err)
				}
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(pongWait))
			if msgType != websocket.TextMessage {
				continue
			}

			var req ipc.Request
			var resp ipc.Response
			if err := json.Unmarshal(data, &req); err != nil || req.Command == "" {
				resp = ipc.Response{Status: ipc.StatusError, Error: "bad_request:invalid request frame"}
			} else {
				resp = d.Dispatch(r.Context(), "ws", req)
			}
			if err := conn.writeJSON(resp); err != nil {
				logger.Warnf("[WSRelay] write failed: %v", err)
				return
			}
		}
	})
}

func isExpectedWSClose(err error) bool {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		switch ce.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway,
			websocket.CloseNoStatusReceived:
			return true
		}
	}
	return false
}
