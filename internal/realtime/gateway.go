// Package realtime is the websocket chat gateway. Connections are
// authorized with the same session as the HTTP API, and the session is
// re-read from the store before every inbound message.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lingo-service/internal/logger"
	"lingo-service/internal/presence"
	"lingo-service/internal/session"
)

const reloadTimeout = 5 * time.Second

// Sessions resolves the session behind a websocket request.
type Sessions interface {
	SessionID(r *http.Request) (string, bool)
	Reload(ctx context.Context, sessionID string) (*session.Session, error)
}

type Gateway struct {
	sessions Sessions
	registry *presence.Registry
	upgrader websocket.Upgrader
}

// NewGateway builds a gateway. allowedOrigin, when set, is the only
// cross-origin Origin header accepted during the handshake.
func NewGateway(sessions Sessions, registry *presence.Registry, allowedOrigin string) *Gateway {
	g := &Gateway{
		sessions: sessions,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if allowedOrigin != "" {
		g.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin || sameHost(r, origin)
		}
	}
	return g
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := g.authorize(r)
	if !ok {
		logger.Info("unauthenticated realtime connection refused", map[string]any{
			"ip": r.RemoteAddr,
		})
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger.Warn("websocket upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	email := sess.User.Email
	client := newClient(conn, email, sess.ID)

	if prev := g.registry.Register(email, client); prev != nil {
		logger.Info("realtime connection superseded", map[string]any{"email": email})
		prev.Close()
	}
	logger.Info("realtime client connected", map[string]any{"email": email})

	go client.writePump()
	g.registry.Broadcast(enteredChat(email).encode())

	client.readPump(func(msg []byte) bool {
		return g.handleMessage(client, msg)
	})

	g.disconnect(client)
}

// Online lists the emails with a live connection, sorted.
func (g *Gateway) Online() []string {
	return g.registry.Emails()
}

// Close disconnects every client. Used at shutdown.
func (g *Gateway) Close() {
	g.registry.CloseAll()
}

func (g *Gateway) authorize(r *http.Request) (*session.Session, bool) {
	id, ok := g.sessions.SessionID(r)
	if !ok {
		return nil, false
	}

	sess, err := g.sessions.Reload(r.Context(), id)
	if err != nil || !sess.IsLoggedIn() {
		return nil, false
	}
	return sess, true
}

// handleMessage processes one inbound frame and reports whether the
// connection may stay open.
func (g *Gateway) handleMessage(c *Client, msg []byte) bool {
	if !g.stillAuthenticated(c) {
		logger.Info("realtime session no longer valid, disconnecting", map[string]any{
			"email": c.email,
		})
		return false
	}

	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		logger.Debug("malformed realtime frame", map[string]any{
			"email": c.email,
			"error": err.Error(),
		})
		return true
	}

	switch ev.Type {
	case EventChatMessage:
		logger.Debug("chat message received", map[string]any{"email": c.email})
		g.registry.Broadcast(chatMessage(c.email, ev.Message).encode())
	default:
		logger.Debug("unknown realtime event", map[string]any{
			"email": c.email,
			"type":  ev.Type,
		})
	}
	return true
}

func (g *Gateway) stillAuthenticated(c *Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	sess, err := g.sessions.Reload(ctx, c.sessionID)
	if err != nil {
		return false
	}
	return sess.IsLoggedIn() && sess.User.Email == c.email
}

func (g *Gateway) disconnect(c *Client) {
	c.Close()

	// A superseded client is no longer registered; its replacement keeps
	// the presence entry, so nothing is announced.
	if !g.registry.Remove(c.email, c) {
		return
	}

	logger.Info("realtime client disconnected", map[string]any{"email": c.email})
	g.registry.Broadcast(exitedChat(c.email).encode())
}

func sameHost(r *http.Request, origin string) bool {
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
