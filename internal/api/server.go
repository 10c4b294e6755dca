// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tamzrod/udp-pixel-driver/internal/device"
	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
	"github.com/tamzrod/udp-pixel-driver/internal/pipeline"
	"github.com/tamzrod/udp-pixel-driver/internal/source"
	"github.com/tamzrod/udp-pixel-driver/internal/status"
)

// MaxFrameBytes caps a frame request body or stream message.
const MaxFrameBytes = 1 << 20

// Controller is the subset of the runner the API drives.
type Controller interface {
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

// Server is the HTTP control surface.
type Server struct {
	router   *mux.Router
	ctl      Controller
	board    *status.Board
	store    *source.Store
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// FrameRequest is the JSON frame body.
// Channel values outside 0..255 are clamped.
type FrameRequest struct {
	Pixels [][]float64 `json:"pixels"`
}

func NewServer(ctl Controller, board *status.Board, store *source.Store, log zerolog.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		ctl:    ctl,
		board:  board,
		store:  store,
		log:    log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	api.HandleFunc("/devices", s.handleListDevices).Methods("GET")
	api.HandleFunc("/devices/{id}", s.handleGetDevice).Methods("GET")
	api.HandleFunc("/devices/{id}/activate", s.handleActivate).Methods("POST")
	api.HandleFunc("/devices/{id}/deactivate", s.handleDeactivate).Methods("POST")

	api.HandleFunc("/devices/{id}/frame", s.handlePutFrame).Methods("PUT")
	api.HandleFunc("/devices/{id}/stream", s.handleStream)
}

// Handler returns the router wrapped in CORS.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.router)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("listen", addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ---- handlers ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.List())
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.board.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "unknown device", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.ctl.Activate(r.Context(), id); err != nil {
		s.writeControlError(w, id, err)
		return
	}
	s.writeDevice(w, id)
}

func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.ctl.Deactivate(r.Context(), id); err != nil {
		s.writeControlError(w, id, err)
		return
	}
	s.writeDevice(w, id)
}

func (s *Server) handlePutFrame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.board.Get(id); !ok {
		http.Error(w, "unknown device", http.StatusNotFound)
		return
	}

	var req FrameRequest
	body := http.MaxBytesReader(w, r.Body, MaxFrameBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.store.Put(id, pixel.FromFloats(req.Pixels))
	writeJSON(w, http.StatusOK, map[string]int{"pixels": len(req.Pixels)})
}

// handleStream accepts frames over a websocket until the client goes away.
// Binary messages are flat channel bytes (?channels=N, default 3); text
// messages are FrameRequest JSON.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.board.Get(id); !ok {
		http.Error(w, "unknown device", http.StatusNotFound)
		return
	}

	channels := 3
	if v := r.URL.Query().Get("channels"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "channels must be a positive integer", http.StatusBadRequest)
			return
		}
		channels = n
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("device", id).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(MaxFrameBytes)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Str("device", id).Msg("stream closed")
			}
			return
		}

		switch kind {
		case websocket.BinaryMessage:
			s.store.Put(id, pixel.FromFlat(data, channels))

		case websocket.TextMessage:
			var req FrameRequest
			if err := json.Unmarshal(data, &req); err != nil {
				s.log.Warn().Err(err).Str("device", id).Msg("bad stream frame")
				continue
			}
			s.store.Put(id, pixel.FromFloats(req.Pixels))
		}
	}
}

// ---- helpers ----

func (s *Server) writeDevice(w http.ResponseWriter, id string) {
	snap, _ := s.board.Get(id)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) writeControlError(w http.ResponseWriter, id string, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, pipeline.ErrUnknownDevice):
		code = http.StatusNotFound
	case errors.Is(err, device.ErrResolve):
		code = http.StatusBadGateway
	case errors.Is(err, pipeline.ErrStopped):
		code = http.StatusServiceUnavailable
	}

	s.log.Warn().Err(err).Str("device", id).Int("code", code).Msg("control request failed")
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
