package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/metrics"
)

type RouterDeps struct {
	Log            *zap.Logger
	Votes          *VoteHandler
	Summary        *SummaryHandler
	Live           http.HandlerFunc // optional websocket endpoint
	Health         metrics.HealthFunc
	AllowedOrigins []string
}

func NewHandler(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	}).Handler)

	r.Get("/", deps.Summary.Page)
	r.Post("/", deps.Votes.CastVote)
	r.Get("/api/summary", deps.Summary.Summary)
	r.Get("/healthz", metrics.HealthHandler(deps.Health))

	if deps.Live != nil {
		r.Get("/live", deps.Live)
	}

	return r
}
