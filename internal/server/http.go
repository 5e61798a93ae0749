package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/google/uuid"

	"worldbridge/internal/engine"
	"worldbridge/internal/network"
	"worldbridge/internal/version"
	"worldbridge/pkg/api"
	"worldbridge/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Server - read-only окно в мир: кадры для зрителей по WebSocket и debug-эндпоинты.
// Акторы с миром через сервер не общаются.
type Server struct {
	World *engine.World
	Hub   *network.Broadcaster
	Port  string
}

func New(world *engine.World, hub *network.Broadcaster, port string) *Server {
	return &Server{
		World: world,
		Hub:   hub,
		Port:  port,
	}
}

// Handler собирает роутер. Отдельный mux, чтобы тесты могли поднимать несколько серверов.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Регистрируем роуты
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/schema/", enableCORS(s.handleSchema))

	NewDebugHandler(s.World).RegisterRoutes(mux)

	// Profiling
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("World bridge spectator server running on :%s", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Log.Info("HTTP server stopped")
	return nil
}

// RunFrames рассылает кадры зрителям каждые every до отмены ctx.
// Пока зрителей нет, кадры не собираются.
func (s *Server) RunFrames(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if s.Hub.SubscriberCount() == 0 {
				continue
			}
			s.Hub.Broadcast(s.World.Frame())
		}
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS подключает зрителя
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	sessionID := uuid.NewString()
	frames := s.Hub.Register(sessionID)
	client := NewClient(s.Hub, conn, sessionID)

	logger.Log.WithField("session_id", sessionID).Info("Spectator connected")

	// Первый кадр сразу, не дожидаясь тикера
	s.Hub.SendTo(sessionID, s.World.Frame())

	// Запускаем пампы
	go client.writePump(frames)
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Current())
}

// /schema/snapshot, /schema/event - JSON-схемы записей протокола
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	record := strings.TrimPrefix(r.URL.Path, "/schema/")
	schema, err := api.Schema(record)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	json.NewEncoder(w).Encode(schema)
}
