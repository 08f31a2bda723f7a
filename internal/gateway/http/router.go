package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/auslane/authgate/internal/gateway/service"
	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/auslane/authgate/pkg/httpx"
	"github.com/auslane/authgate/pkg/slogx"

	_ "github.com/auslane/authgate/api/gateway" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	MFAService       *service.MFAService
	DirectoryService *service.DirectoryService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerMFA()
	r.registerDirectory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AuthGate API
//	@version		0.1.0
//	@description	Authentication gateway dispatching logins to pluggable strategies
//	@description	(database or federation backed) and managing TOTP-based MFA enrollment.
//	@description
//	@description				Tokens are minted by the backing identity provider; the gateway
//	@description				never issues tokens itself.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	h := &LoginHandler{AuthService: r.AuthService}

	// All login endpoints carry credentials, so they are rate limited
	// by IP + username to slow down brute force attempts.
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /v1/login/database",
		httpx.Chain(http.HandlerFunc(h.HandleLoginDatabase),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /v1/login/federation",
		httpx.Chain(http.HandlerFunc(h.HandleLoginFederation),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("POST /v1/mfa/setup",
		httpx.Chain(http.HandlerFunc(h.HandleSetup),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Strict limit on verify to prevent brute force of TOTP codes.
	r.Mux.Handle("POST /v1/mfa/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /v1/mfa/disable",
		httpx.Chain(http.HandlerFunc(h.HandleDisable),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/mfa/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDirectory() {
	h := &DirectoryHandler{DirectoryService: r.DirectoryService}

	r.Mux.Handle("GET /v1/directory/users",
		httpx.Chain(http.HandlerFunc(h.HandleSearch),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/directory/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
