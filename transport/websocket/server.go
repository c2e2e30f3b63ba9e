package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
)

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error)

	Play(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.Game, error)
	Restart(ctx context.Context, sessionID string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, sessionID string, payload *RequestPayload) (*entity.Game, error)

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	sessionTTL  time.Duration
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc

	connectionsMutex sync.Mutex
	connections      map[*websocket.Conn]struct{}
}

func New(logger *slog.Logger, gameUseCase gameUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		sessionTTL:  sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers:    make(map[string]handlerFunc),
		connections: make(map[*websocket.Conn]struct{}),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionRestart] = server.handleRestart

	return server
}

func (that *Server) RegisterHTTP(r chi.Router) {
	r.Get("/ws", that.upgradeToWebSocket)
}

// CloseAll - closes every open connection. Hijacked connections are not closed by http.Server.Shutdown.
func (that *Server) CloseAll() {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for conn := range that.connections {
		deadline := time.Now().Add(writeWait)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"), deadline)
		_ = conn.Close()
		delete(that.connections, conn)
	}
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	header := http.Header{}

	sessionID, ok := pkg.SessionFromRequest(req)
	if !ok {
		cookie := pkg.NewSessionCookie(that.sessionTTL)
		header.Add("Set-Cookie", cookie.String())
		sessionID = cookie.Value
		log.Info("session cookie not found, new one created")
	}

	conn, err := that.upgrader.Upgrade(w, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	that.track(conn)
	defer that.untrack(conn)

	log.Info("WebSocket connection established", "session", sessionID)

	if err = that.handleMessages(req.Context(), conn, sessionID); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	conn.SetReadLimit(maxMessageSize)

	for {
		_, body, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || errors.Is(err, websocket.ErrCloseSent) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			if err = that.sendMessage(conn, actionError, ResponsePayload{Error: "malformed message"}); err != nil {
				return err
			}
			continue
		}

		if err = that.processMessage(ctx, conn, sessionID, &message); err != nil {
			return err
		}
	}
}

func (that *Server) processMessage(ctx context.Context, conn *websocket.Conn, sessionID string, message *Message) error {
	log := that.logger.With("method", "processMessage", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action")
		return that.sendMessage(conn, actionError, ResponsePayload{Error: "unknown action"})
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return that.sendMessage(conn, message.Action, ResponsePayload{Error: "malformed payload"})
		}
	}

	game, err := handler(ctx, sessionID, &payload)

	return that.sendMessage(conn, message.Action, that.response(message.Action, game, err))
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	message, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) track(conn *websocket.Conn) {
	that.connectionsMutex.Lock()
	that.connections[conn] = struct{}{}
	that.connectionsMutex.Unlock()
}

func (that *Server) untrack(conn *websocket.Conn) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	if _, ok := that.connections[conn]; ok {
		_ = conn.Close()
		delete(that.connections, conn)
	}
}
