package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/clambin/keymatrix/internal/animation"
	"github.com/clambin/keymatrix/internal/dispatcher"
	"github.com/clambin/keymatrix/internal/keypad"
	"github.com/clambin/keymatrix/internal/rgb"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"iter"
	"net/http"
	"time"
)

// Matrix returns the pixels currently shown on the LED matrix
type Matrix interface {
	Pixels() []rgb.Word
}

// Bindings returns the commands bound to the keypad
type Bindings interface {
	Bindings() iter.Seq2[keypad.Key, dispatcher.Command]
}

// Server runs the read-only status API and exposes the Prometheus metrics
type Server struct {
	Port     int
	Matrix   Matrix
	Bindings Bindings
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(prometheusMiddleware)
	r.Path("/metrics").Handler(promhttp.Handler())
	r.HandleFunc("/matrix", s.handleMatrix).Methods(http.MethodGet)
	r.HandleFunc("/animations", handleAnimations).Methods(http.MethodGet)
	r.HandleFunc("/keys", s.handleKeys).Methods(http.MethodGet)
	return r
}

// Run serves the API until the context is canceled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: fmt.Sprintf(":%d", s.Port), Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.WithField("port", s.Port).Info("server started")

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(stopCtx)
	if err2 := <-errCh; !errors.Is(err2, http.ErrServerClosed) && err == nil {
		err = err2
	}
	log.Info("server stopped")
	return err
}

type matrixResponse struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Pixels []string `json:"pixels"`
}

func (s *Server) handleMatrix(w http.ResponseWriter, _ *http.Request) {
	words := s.Matrix.Pixels()
	response := matrixResponse{
		Width:  rgb.Width,
		Height: rgb.Height,
		Pixels: make([]string, len(words)),
	}
	for i, word := range words {
		response.Pixels[i] = word.Color().Hex()
	}
	writeJSON(w, response)
}

type animationResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func handleAnimations(w http.ResponseWriter, _ *http.Request) {
	response := make([]animationResponse, 0)
	for a := range animation.All() {
		response = append(response, animationResponse{ID: int(a.ID), Name: a.Name})
	}
	writeJSON(w, response)
}

type keyResponse struct {
	Key     string `json:"key"`
	Command string `json:"command"`
}

func (s *Server) handleKeys(w http.ResponseWriter, _ *http.Request) {
	response := make([]keyResponse, 0)
	for key, cmd := range s.Bindings.Bindings() {
		response = append(response, keyResponse{Key: key.String(), Command: cmd.String()})
	}
	writeJSON(w, response)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warning("failed to write response")
	}
}

var httpDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "keymatrix_http_duration_seconds",
	Help: "API duration of HTTP requests.",
}, []string{"path"})

func prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, _ := mux.CurrentRoute(r).GetPathTemplate()
		timer := prometheus.NewTimer(httpDuration.WithLabelValues(path))
		next.ServeHTTP(w, r)
		timer.ObserveDuration()
	})
}
