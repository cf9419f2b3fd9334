// Package websocket provides the HTTP handler that upgrades connections
// to the live security event feed.
package websocket

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/audit"
	ws "github.com/quizforge/quizforge/internal/infrastructure/websocket"
)

const (
	defaultReadBufferSize  = 1024
	defaultWriteBufferSize = 1024

	// adminRole is required to watch the security feed.
	adminRole = "admin"
)

// Handler upgrades authenticated admin requests to feed subscriptions.
type Handler struct {
	feed         *ws.Feed
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	clientConfig ws.ClientConfig
}

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithClientConfig sets the configuration applied to accepted clients.
func WithClientConfig(config ws.ClientConfig) HandlerOption {
	return func(h *Handler) {
		h.clientConfig = config
	}
}

// WithCheckOrigin sets the origin check of the upgrader.
func WithCheckOrigin(check func(r *http.Request) bool) HandlerOption {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = check
	}
}

// NewHandler creates a handler bound to the given feed.
func NewHandler(feed *ws.Feed, opts ...HandlerOption) *Handler {
	h := &Handler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  defaultReadBufferSize,
			WriteBufferSize: defaultWriteBufferSize,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:       slog.Default(),
		clientConfig: ws.DefaultClientConfig(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleFeed upgrades the request and subscribes the caller to security
// events at or above the requested severity. The auth middleware must run
// before this handler; only admins may subscribe.
func (h *Handler) HandleFeed(c echo.Context) error {
	identity, err := appcore.IdentityFrom(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"success": false,
			"error": map[string]string{
				"code":    string(appcore.CodeUnauthorized),
				"message": "authentication required",
			},
		})
	}

	if !slices.Contains(identity.Roles, adminRole) {
		h.logger.Warn("security feed subscription rejected",
			slog.String("user_id", identity.UserID.String()),
			slog.String("remote_ip", c.RealIP()),
		)
		return c.JSON(http.StatusForbidden, map[string]any{
			"success": false,
			"error": map[string]string{
				"code":    string(appcore.CodeOwnershipViolation),
				"message": "admin role required",
			},
		})
	}

	minSeverity := parseSeverity(c.QueryParam("min_severity"))

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			slog.String("user_id", identity.UserID.String()),
			slog.String("error", err.Error()),
		)
		return nil // the upgrader already wrote an error response
	}

	client := ws.NewClient(
		h.feed,
		conn,
		identity.UserID,
		minSeverity,
		ws.WithClientConfig(h.clientConfig),
		ws.WithClientLogger(h.logger),
	)
	h.feed.Register(client)
	client.Start()

	h.logger.Info("security feed subscription established",
		slog.String("user_id", identity.UserID.String()),
		slog.String("min_severity", string(minSeverity)),
		slog.String("remote_ip", c.RealIP()),
	)

	return nil
}

// RegisterRoutes registers the feed endpoint on an Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/security/feed", h.HandleFeed)
}

func parseSeverity(raw string) audit.Severity {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(audit.SeverityCritical):
		return audit.SeverityCritical
	case string(audit.SeverityHigh):
		return audit.SeverityHigh
	case string(audit.SeverityMedium):
		return audit.SeverityMedium
	default:
		return audit.SeverityInfo
	}
}
