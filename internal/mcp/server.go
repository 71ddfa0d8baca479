package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/domain/calendar"
)

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	LogActivity(ctx context.Context, tenantID string, entry *activity.Activity) error
	Announce(ctx context.Context, tenantID, actorID, message string) (*activity.Activity, error)
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.Activity, error)
	GetFeed(ctx context.Context, tenantID string, opts activity.FeedOptions) ([]activity.FeedItem, error)
	Like(ctx context.Context, tenantID, activityID, userID string) error
	Unlike(ctx context.Context, tenantID, activityID, userID string) error
	AddComment(ctx context.Context, tenantID string, req activity.CommentRequest) (*activity.Comment, error)
	ListComments(ctx context.Context, tenantID, activityID string) ([]activity.Comment, error)
}

// CalendarService defines calendar operations needed by MCP.
type CalendarService interface {
	CreateEntry(ctx context.Context, tenantID string, req calendar.CreateRequest) (*calendar.Record, error)
	DeleteEntry(ctx context.Context, tenantID, id string) error
	ListEvents(ctx context.Context, tenantID string, req calendar.ListEventsRequest) ([]calendar.Event, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Activity ActivityService
	Calendar CalendarService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	DefaultTenant string
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "opsboard",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	defaultTenant := cfg.DefaultTenant
	if defaultTenant == "" {
		defaultTenant = "default"
	}

	// Stdio is local only and never authenticates.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(defaultTenant))
	}
	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services.Activity, cfg.Services.Calendar))

	return server
}
