package workspace

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"growthai/portal/internal/simulation"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second
	maxReadBytes = 512
	sendBuffer   = 256
)

// Manager serves agent workspace playback over WebSocket connections. Each
// connection owns its own player, so reconnecting replays the script from
// the start.
type Manager struct {
	connections    map[string]*Connection
	mu             sync.RWMutex
	upgrader       websocket.Upgrader
	typingInterval time.Duration
	logger         *zap.Logger
	wg             sync.WaitGroup
	closed         bool
}

// Connection represents a WebSocket client watching a workspace
type Connection struct {
	ID          string
	SessionID   uuid.UUID
	Conn        *websocket.Conn
	Send        chan Message
	ConnectedAt time.Time

	player *simulation.Player
	script simulation.Script
	cancel context.CancelFunc
}

// NewManager creates a new WebSocket manager
func NewManager(typingInterval time.Duration, logger *zap.Logger) *Manager {
	if typingInterval <= 0 {
		typingInterval = simulation.DefaultTypingInterval
	}
	return &Manager{
		connections:    make(map[string]*Connection),
		typingInterval: typingInterval,
		logger:         logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Serve upgrades the request and plays the script to the client. It blocks
// until the client disconnects, ctx is cancelled, or the manager is closed.
// Playback timers are stopped before Serve returns.
func (m *Manager) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, sessionID uuid.UUID, script simulation.Script) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("workspace manager closed")
	}
	m.wg.Add(1)
	m.mu.Unlock()
	defer m.wg.Done()

	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn := &Connection{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Conn:        ws,
		Send:        make(chan Message, sendBuffer),
		ConnectedAt: time.Now(),
		player:      simulation.NewPlayer(script),
		script:      script,
		cancel:      cancel,
	}

	m.register(conn)
	defer m.unregister(conn)

	// Unblocks the read pump when the view is torn down server side.
	go func() {
		<-connCtx.Done()
		ws.Close()
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		m.writePump(conn)
	}()

	conn.Send <- snapshotMessage(script, conn.player.Snapshot())

	playerDone := make(chan struct{})
	go func() {
		defer close(playerDone)
		err := conn.player.Run(connCtx, m.typingInterval, func(f simulation.Frame) {
			m.send(connCtx, conn, frameMessage(script, f))
		})
		if err == nil {
			m.logger.Debug("Workspace playback finished", zap.String("connection_id", conn.ID))
		}
	}()

	m.readPump(connCtx, conn)

	cancel()
	<-playerDone
	close(conn.Send)
	<-writerDone
	return nil
}

// readPump handles client messages until the connection fails
func (m *Manager) readPump(ctx context.Context, conn *Connection) {
	conn.Conn.SetReadLimit(maxReadBytes)
	conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := conn.Conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Debug("Workspace connection closed", zap.String("connection_id", conn.ID), zap.Error(err))
			}
			return
		}
		m.handleMessage(ctx, conn, &msg)
	}
}

// writePump writes queued messages and keeps the connection alive
func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.Conn.WriteJSON(message); err != nil {
				conn.cancel()
				drain(conn.Send)
				return
			}

		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.cancel()
				drain(conn.Send)
				return
			}
		}
	}
}

// handleMessage processes incoming client messages
func (m *Manager) handleMessage(ctx context.Context, conn *Connection, msg *ClientMessage) {
	switch msg.Type {
	case ClientPreviewLoaded:
		m.send(ctx, conn, frameMessage(conn.script, conn.player.PreviewLoaded()))
	case ClientPreviewError:
		m.send(ctx, conn, frameMessage(conn.script, conn.player.PreviewFailed()))
	case ClientSnapshot:
		m.send(ctx, conn, snapshotMessage(conn.script, conn.player.Snapshot()))
	default:
		m.send(ctx, conn, Message{
			Type:      MessageTypeError,
			Error:     fmt.Sprintf("unknown message type: %q", msg.Type),
			Timestamp: time.Now(),
		})
	}
}

func (m *Manager) send(ctx context.Context, conn *Connection, msg Message) {
	select {
	case conn.Send <- msg:
	case <-ctx.Done():
	}
}

func (m *Manager) register(conn *Connection) {
	m.mu.Lock()
	m.connections[conn.ID] = conn
	m.mu.Unlock()

	m.logger.Info("Workspace connection registered",
		zap.String("connection_id", conn.ID),
		zap.String("session_id", conn.SessionID.String()))
}

func (m *Manager) unregister(conn *Connection) {
	m.mu.Lock()
	delete(m.connections, conn.ID)
	m.mu.Unlock()

	m.logger.Info("Workspace connection unregistered",
		zap.String("connection_id", conn.ID),
		zap.Duration("duration", time.Since(conn.ConnectedAt)))
}

// GetConnectionCount returns the number of active connections
func (m *Manager) GetConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// DisconnectSession closes every connection watching the session
func (m *Manager) DisconnectSession(sessionID uuid.UUID) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, conn := range m.connections {
		if conn.SessionID == sessionID {
			conn.cancel()
		}
	}
}

// Close disconnects all clients and waits for their playback to stop or for
// ctx to expire.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	for _, conn := range m.connections {
		conn.cancel()
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain discards queued messages until the channel is closed
func drain(ch <-chan Message) {
	for range ch {
	}
}
