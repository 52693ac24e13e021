package server_test

import (
	"context"
	"encoding/json"
	"github.com/clambin/keymatrix/internal/dispatcher"
	"github.com/clambin/keymatrix/internal/rgb"
	"github.com/clambin/keymatrix/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type matrix []rgb.Word

func (m matrix) Pixels() []rgb.Word {
	return m
}

func newServer() *server.Server {
	pixels := make(matrix, rgb.Pixels)
	pixels[0] = rgb.Encode(1, 0, 0)
	pixels[24] = rgb.Encode(0, 0, 1)
	return &server.Server{Matrix: pixels, Bindings: dispatcher.New(nil)}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestServer_Matrix(t *testing.T) {
	resp := get(t, newServer().Handler(), "/matrix")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))

	var body struct {
		Width  int      `json:"width"`
		Height int      `json:"height"`
		Pixels []string `json:"pixels"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 5, body.Width)
	assert.Equal(t, 5, body.Height)
	require.Len(t, body.Pixels, rgb.Pixels)
	assert.Equal(t, "#ff0000", body.Pixels[0])
	assert.Equal(t, "#000000", body.Pixels[12])
	assert.Equal(t, "#0000ff", body.Pixels[24])
}

func TestServer_Animations(t *testing.T) {
	resp := get(t, newServer().Handler(), "/animations")
	require.Equal(t, http.StatusOK, resp.Code)

	var body []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 7)
	assert.Equal(t, 1, body[0].ID)
	assert.Equal(t, "alternating-fill", body[0].Name)
	assert.Equal(t, "vertical-lines", body[6].Name)
}

func TestServer_Keys(t *testing.T) {
	resp := get(t, newServer().Handler(), "/keys")
	require.Equal(t, http.StatusOK, resp.Code)

	var body []struct {
		Key     string `json:"key"`
		Command string `json:"command"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 12)
	assert.Equal(t, "#", body[0].Key)
	assert.Equal(t, "color(#333333)", body[0].Command)
	assert.Equal(t, "0", body[1].Key)
	assert.Equal(t, "alternating-fill@10fps", body[1].Command)
}

func TestServer_Routes(t *testing.T) {
	h := newServer().Handler()
	assert.Equal(t, http.StatusOK, get(t, h, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/led").Code)

	req, _ := http.NewRequest(http.MethodPost, "/matrix", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestServer_Run(t *testing.T) {
	s := newServer()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	assert.NoError(t, <-errCh)
}
