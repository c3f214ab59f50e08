package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"

	_ "github.com/aussiebroadwan/intlakaa/api/intlakaa" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.Keys
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	InviteService    *service.InviteService
	AdminService     *service.AdminService
	RequestService   *service.RequestService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	keys *jwtx.Keys,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Recover runs inside the request logger so panics carry the request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		httpx.CORS(allowedOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerAdmins()
	r.registerRequests()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Intlakaa Admin API
//	@version		1.0.0
//	@description	Backend for the Intlakaa landing site: public lead submission and the admin
//	@description	dashboard (invite-only admin accounts, owner/admin roles, lead management).
//	@description
//	@description				Admin tokens are EdDSA-signed JWTs and can be verified using the JWKS endpoint.
//	@description				Every response is wrapped as {success, message, data, errors}.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/intlakaa
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5001
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// bearer wraps h with token verification and a per-admin rate limit.
func (r *Router) bearer(h httpx.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.Protect(r.keys.Verifier, principalResolver(r.AuthService)),
		httpx.RateLimitByAdmin(limit),
	)
}

// owner is bearer plus the owner role check.
func (r *Router) owner(h httpx.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.Protect(r.keys.Verifier, principalResolver(r.AuthService)),
		httpx.OwnerOnly(),
		httpx.RateLimitByAdmin(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit by IP (credential guessing)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(httpx.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/me", r.bearer(h.HandleMe, httpx.LenientLimit))
}

func (r *Router) registerInvites() {
	h := &InviteHandler{InviteService: r.InviteService}

	// Issuing invites sends mail, so both entry points are owner-only with a
	// moderate limit.
	r.Mux.Handle("POST /api/auth/send-invite", r.owner(h.HandleSend, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/admin/invite", r.owner(h.HandleSend, httpx.ModerateLimit))

	// GET /verify-invite - keyed on IP and token so one client can't sweep tokens
	r.Mux.Handle("GET /api/auth/verify-invite",
		httpx.Chain(httpx.HandlerFunc(h.HandleVerify),
			httpx.RateLimitMiddleware(httpx.ModerateLimit,
				httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.QueryParamKeyExtractor("token")),
			),
		),
	)

	// POST /accept-invite - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /api/auth/accept-invite",
		httpx.Chain(httpx.HandlerFunc(h.HandleAccept),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdmins() {
	h := &AdminHandler{AdminService: r.AdminService}

	r.Mux.Handle("GET /api/admin", r.owner(h.HandleList, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/admin/{id}", r.owner(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/admin/{id}/role", r.owner(h.HandleUpdateRole, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/admin/{id}", r.owner(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerRequests() {
	h := &RequestHandler{RequestService: r.RequestService}

	// POST /requests - public form, moderate rate limit by IP
	r.Mux.Handle("POST /api/requests",
		httpx.Chain(httpx.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/requests", r.bearer(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /api/requests/{id}", r.bearer(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/requests/{id}/status", r.bearer(h.HandleUpdateStatus, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/requests/{id}", r.bearer(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /api/auth/bootstrap",
		httpx.Chain(httpx.HandlerFunc(h.HandleBootstrap),
			httpx.RateLimitByIP(httpx.StrictLimit),
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
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys.KeySet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys.KeySet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// "GET /{$}" only matches the root; everything else unmatched gets the
	// envelope 404.
	r.Mux.Handle("GET /{$}", RootHandler(r.buildVersion))
	r.Mux.Handle("/", httpx.NotFound())
}
