package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"tictactoe-server/internal/apperror"
	"tictactoe-server/internal/config"
	"tictactoe-server/internal/entity"
	"tictactoe-server/internal/registry"
)

type handlerFunc func(ctx context.Context, player *entity.Player, payload json.RawMessage) error

type Server struct {
	logger  *slog.Logger
	conf    *config.Config
	players *registry.PlayerRegistry
	games   *registry.GameRegistry

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, conf *config.Config, players *registry.PlayerRegistry, games *registry.GameRegistry) *Server {
	server := &Server{
		logger:  logger,
		conf:    conf,
		players: players,
		games:   games,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionNewGame] = server.handleNewGame
	server.handlers[ActionJoinGame] = server.handleJoinGame
	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionGamesAvailable] = server.handleGamesAvailable
	server.handlers[ActionKeepAlive] = server.handleKeepAlive

	return server
}

// Start - starts the WebSocket server and the liveness sweeper.
func (that *Server) Start(ctx context.Context, port string) error {
	go that.watchPlayers(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection, resolves the player identity from the
// query string (ws://host/ws?name=John&userId=...) and runs the read loop.
func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConn(ws)

	query := req.URL.Query()
	player, err := that.players.Resolve(conn, query.Get("userId"), query.Get("name"))
	if err != nil {
		if errors.Is(err, apperror.ErrServerFull) {
			log.Warn("connection refused, server is full")
			_ = conn.Close(websocket.ClosePolicyViolation, "server full")
			return
		}

		log.Error("failed to resolve player", "error", err)
		_ = conn.Close(websocket.CloseInternalServerErr, "")
		return
	}

	if err = conn.Send(newMessage(ActionConnect, ConnectPayload{UserID: player.ID})); err != nil {
		log.Error("failed to send connect message", "playerID", player.ID, "error", err)
	}

	log.Info("WebSocket connection established", "playerID", player.ID)

	that.readLoop(ctx, player, conn)
}

// readLoop - processes messages from the client until the channel closes,
// then cascades the departure into both registries. The cascade is skipped
// when the player already resumed on a newer connection.
func (that *Server) readLoop(ctx context.Context, player *entity.Player, conn *Conn) {
	log := that.logger.With("method", "readLoop", "playerID", player.ID)

	defer func() {
		_ = conn.Close(websocket.CloseNormalClosure, "")

		if that.players.Disconnect(player.ID, conn) {
			that.games.DeleteGamesByPlayer(player.ID)
			log.Info("player disconnected")
		}
	}()

	for {
		data, err := conn.ReadMessage()
		if err != nil {
			log.Debug("read loop ended", "error", err)
			return
		}

		that.players.Touch(player.ID)

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("dropping unparseable message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("dropping message with unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, player, message.Payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// watchPlayers - the single periodic task: pushes keep-alive frames and
// evicts players silent past the configured timeout. Eviction closes the
// channel, cascades game deletion and removes the registry entry, in that
// order.
func (that *Server) watchPlayers(ctx context.Context) {
	log := that.logger.With("method", "watchPlayers")

	ticker := time.NewTicker(that.conf.KeepAliveInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			that.players.Broadcast(newMessage(ActionKeepAlive, nil), that.players.All())

			for _, player := range that.players.SweepExpired(now, that.conf.ConnectionTimeout()) {
				if conn := player.Conn(); conn != nil {
					_ = conn.Close(websocket.CloseGoingAway, "connection expired")
				}
				that.games.DeleteGamesByPlayer(player.ID)
				that.players.Remove(player.ID)

				log.Info("evicted idle player", "playerID", player.ID)
			}
		}
	}
}
