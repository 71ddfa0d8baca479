package mcp

import (
	"context"
	"errors"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string]string

func (m mapResolver) ResolveTenant(_ context.Context, token string) (string, error) {
	tenant, ok := m[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return tenant, nil
}

func callRequest(header http.Header) *sdkmcp.CallToolRequest {
	return &sdkmcp.CallToolRequest{
		Params: &sdkmcp.CallToolParamsRaw{Name: "get_activity_feed"},
		Extra:  &sdkmcp.RequestExtra{Header: header},
	}
}

func captureTenant(got *string) sdkmcp.MethodHandler {
	return func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		*got = getTenantID(ctx)
		return &sdkmcp.CallToolResult{}, nil
	}
}

func TestAuthMiddleware_ResolvesTenant(t *testing.T) {
	var tenant string
	handler := authMiddleware(mapResolver{"secret": "tenant1"})(captureTenant(&tenant))

	header := http.Header{}
	header.Set("Authorization", "Bearer secret")
	_, err := handler(context.Background(), "tools/call", callRequest(header))
	require.NoError(t, err)
	require.Equal(t, "tenant1", tenant)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	var tenant string
	handler := authMiddleware(mapResolver{"secret": "tenant1"})(captureTenant(&tenant))

	_, err := handler(context.Background(), "tools/call", callRequest(nil))
	require.ErrorIs(t, err, ErrUnauthorized)

	header := http.Header{}
	header.Set("Authorization", "Bearer wrong")
	_, err = handler(context.Background(), "tools/call", callRequest(header))
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Empty(t, tenant)
}

func TestAuthMiddleware_SkipsHandshake(t *testing.T) {
	var tenant string
	handler := authMiddleware(mapResolver{})(captureTenant(&tenant))

	_, err := handler(context.Background(), "initialize", callRequest(nil))
	require.NoError(t, err)
}

func TestSessionMiddleware_Header(t *testing.T) {
	var session string
	handler := sessionMiddleware()(func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		session = getSessionID(ctx)
		return &sdkmcp.CallToolResult{}, nil
	})

	header := http.Header{}
	header.Set("Mcp-Session-Id", "sess-9")
	_, err := handler(context.Background(), "tools/call", callRequest(header))
	require.NoError(t, err)
	require.Equal(t, "sess-9", session)
}

func TestFormatPayload(t *testing.T) {
	require.Equal(t, "<nil>", formatPayload(nil))
	require.Equal(t, `{"status":"ok"}`, formatPayload(StatusResponse{Status: "ok"}))

	long := make([]byte, maxLoggedPayload*2)
	for i := range long {
		long[i] = 'x'
	}
	require.Contains(t, formatPayload(string(long)), "(truncated)")
}
