package app

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/huddle-backend/internal/auth"
	"github.com/heartmarshall/huddle-backend/internal/config"
	"github.com/heartmarshall/huddle-backend/internal/transport/graphql"
	"github.com/heartmarshall/huddle-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/huddle-backend/internal/transport/graphql/resolver"
	"github.com/heartmarshall/huddle-backend/internal/transport/middleware"
	"github.com/heartmarshall/huddle-backend/internal/transport/rest"
	"github.com/heartmarshall/huddle-backend/internal/transport/ussd"
)

// newRouter mounts every endpoint. The REST and GraphQL APIs additionally
// require an authenticated caller and are rate limited per user, falling back
// to the client host.
func newRouter(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, svc *Services, limiter *middleware.RateLimiter) http.Handler {
	components := []rest.Component{{Name: "postgres", Pinger: pool}}
	if svc.Kafka != nil {
		components = append(components, rest.Component{Name: "kafka", Pinger: svc.Kafka})
	}
	health := rest.NewHealthHandler(BuildVersion(), components...)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	api := middleware.Chain(limiter.Limit(cfg.Server.RateLimit), middleware.RequireUser)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.Handle("POST /ussd", ussd.NewHandler(svc.Menu, logger))

	rest.NewActivityHandler(svc.Activities, logger).Register(mux, api)
	rest.NewGroupHandler(svc.Groups, logger).Register(mux, api)
	rest.NewUserHandler(svc.Users, logger).Register(mux, api)
	rest.NewAlertHandler(svc.Alerts, logger).Register(mux, api)
	rest.NewInboxHandler(svc.Inbox, logger).Register(mux, api)
	mux.Handle("GET /api/obligation", api(http.HandlerFunc(rest.NewObligationHandler(svc.Obligations, logger).Get)))

	gql := graphql.NewHandler(graphql.NewExecutableSchema(
		resolver.NewResolver(logger, svc.Groups, svc.Activities, svc.Users, svc.Inbox, svc.Obligations),
	), logger)
	query := api(dataloader.Middleware(svc.Loaders)(gql))
	mux.Handle("GET /query", query)
	mux.Handle("POST /query", query)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwt),
	)(mux)
}
