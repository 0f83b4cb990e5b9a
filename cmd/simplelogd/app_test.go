package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/simplelog/internal/config"
	"github.com/phrazzld/simplelog/pkg/simplelog"
)

func testConfig(folder string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			ShutdownTimeout: 2 * time.Second,
		},
		Backend: config.BackendConfig{
			WorkerName:  "app-test",
			Folder:      folder,
			RecvTimeout: 10 * time.Millisecond,
		},
		Client: config.ClientConfig{
			Name:      "simplelogd",
			Threshold: "info",
		},
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApplicationInvalidThreshold(t *testing.T) {
	cfg := testConfig("")
	cfg.Client.Threshold = "loud"

	app, err := newApplication(cfg, discard())

	assert.ErrorIs(t, err, simplelog.ErrConfig)
	assert.Nil(t, app)
}

func TestNewApplicationMissingFolder(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"))

	app, err := newApplication(cfg, discard())

	assert.ErrorIs(t, err, simplelog.ErrConfig)
	assert.Nil(t, app)
}

func TestServeLifecycle(t *testing.T) {
	folder := t.TempDir()
	app, err := newApplication(testConfig(folder), discard())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/v1/logs", ln.Addr())
	resp, err := http.Post(url, "application/json",
		strings.NewReader(`{"source":"remote","level":"error","text":"from http"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	assert.True(t, app.backend.Stats().Stopped)

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(folder, entries[0].Name()))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "simplelogd - INFO - ")
	assert.Contains(t, out, "remote - ERROR - ")
	assert.Contains(t, out, " - from http\n")
	assert.Contains(t, out, "simplelogd stopping")
}

func TestBackendConfigSinks(t *testing.T) {
	cfg := testConfig("")
	cfg.Backend.Stdout = false

	backend, err := backendConfig(cfg.Backend, discard()).Spawn()
	require.NoError(t, err)
	defer backend.Shutdown(context.Background())

	stats := backend.Stats()
	assert.Equal(t, "app-test", stats.Name)
	assert.Empty(t, stats.Failures)
}
