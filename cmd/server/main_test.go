package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/opsboard/internal/config"
	"github.com/rpggio/opsboard/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
}

func TestLogFileWriter_KeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "opsboard.log")
	w, file, err := openLogFile(path, 16, 8)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)
	_, err = w.Write([]byte("abcdefghij"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cdefghij", string(data))

	_, err = w.Write([]byte("XY"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasSuffix(data, []byte("XY")))
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	path := filepath.Join(t.TempDir(), "data", "opsboard.db")
	require.NoError(t, ensureDBDir(path))
	_, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
}

func TestBootstrapKey_Idempotent(t *testing.T) {
	db, err := sqlite.New("file:bootstrap?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	keys := sqlite.NewAPIKeyRepository(db)
	auth := config.AuthConfig{DefaultTenant: "crew", BootstrapToken: "letmein"}
	ctx := context.Background()

	require.NoError(t, bootstrapKey(ctx, keys, auth))
	require.NoError(t, bootstrapKey(ctx, keys, auth))

	tenant, err := keys.ResolveTenant(ctx, "letmein")
	require.NoError(t, err)
	require.Equal(t, "crew", tenant)

	require.NoError(t, bootstrapKey(ctx, keys, config.AuthConfig{DefaultTenant: "crew"}))
}

func TestWaitForShutdown_ReturnsServeError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { busy.Close() })

	server := &http.Server{Addr: busy.Addr().String(), Handler: http.NotFoundHandler()}
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = waitForShutdown(logger, server, make(chan os.Signal), errCh)
	require.Error(t, err)
}

func TestWaitForShutdown_Signal(t *testing.T) {
	stop := make(chan os.Signal, 1)
	stop <- os.Interrupt

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, waitForShutdown(logger, &http.Server{}, stop, make(chan error)))
}
