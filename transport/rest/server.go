package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"tictactoe-server/internal/registry"
)

type gamesLister interface {
	AvailableGames(excludePlayerID string) []registry.GameSummary
}

// Start - serves the health check and the lobby listing. CORS is wide open
// so browser lobbies can poll /games directly.
func Start(logger *slog.Logger, port string, games gamesLister) error {
	router := mux.NewRouter()
	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)
	router.HandleFunc("/games", listGamesHandler(logger, games)).Methods(http.MethodGet)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(router)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func listGamesHandler(logger *slog.Logger, games gamesLister) http.HandlerFunc {
	log := logger.With("method", "listGamesHandler")

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		response := struct {
			Games []registry.GameSummary `json:"games"`
		}{
			Games: games.AvailableGames(""),
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Error("failed to encode games listing", "error", err)
		}
	}
}
