package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/domain/calendar"
	"github.com/rpggio/opsboard/internal/mcp"
	"github.com/rpggio/opsboard/internal/sqlite"
	"github.com/rpggio/opsboard/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is a fully wired opsboard HTTP server over an in-memory database.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Keys     *sqlite.APIKeyRepository
	Token    string
	TenantID string
}

// New starts a server whose /rpc and /mcp endpoints require token, which maps to tenantID.
func New(t *testing.T, token, tenantID string, opts ...activity.Option) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.DiscardHandler)
	keys := sqlite.NewAPIKeyRepository(db)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger, opts...)
	calendarSvc := calendar.NewService(sqlite.NewCalendarRepository(db), logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Activity: activitySvc,
			Calendar: calendarSvc,
		},
		Resolver:      keys,
		AuthEnabled:   true,
		TransportMode: "http",
		Logger:        logger,
	})
	streamable := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	router := transport.NewServer(transport.Options{
		Handler:    mcp.NewHandler(activitySvc, calendarSvc),
		Streamable: streamable,
		Auth:       transport.AuthMiddleware(keys),
		Logger:     logger,
	})
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Keys:     keys,
		Token:    token,
		TenantID: tenantID,
	}

	require.NoError(t, ts.AddAPIKey(token, tenantID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddAPIKey registers another bearer token.
func (ts *TestServer) AddAPIKey(token, tenantID string) error {
	return ts.Keys.Add(context.Background(), token, tenantID, "test")
}

// Call invokes method on /rpc with the server's token and decodes the result into out.
func (ts *TestServer) Call(t *testing.T, method string, params any, out any) *transport.Error {
	t.Helper()
	return ts.CallAs(t, ts.Token, method, params, out)
}

// CallAs is Call with an explicit bearer token.
func (ts *TestServer) CallAs(t *testing.T, token, method string, params any, out any) *transport.Error {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var rpcResp struct {
		Result json.RawMessage  `json:"result"`
		Error  *transport.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &rpcResp))
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out != nil {
		require.NoError(t, json.Unmarshal(rpcResp.Result, out))
	}
	return nil
}
