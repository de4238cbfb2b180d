package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/rozennrd/dave-backend/internal/docs"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	authv1 "github.com/rozennrd/dave-backend/internal/transport/web/v1/auth"
	"github.com/rozennrd/dave-backend/internal/transport/web/v1/avatar"
	"github.com/rozennrd/dave-backend/internal/transport/web/v1/health"
	"github.com/rozennrd/dave-backend/internal/transport/web/v1/plant"
	speciesv1 "github.com/rozennrd/dave-backend/internal/transport/web/v1/species"
)

type routerDeps struct {
	health   *health.Handler
	register *authv1.HandlerRegister
	login    *authv1.HandlerLogin
	logout   *authv1.HandlerLogout
	plants   *plant.Handler
	species  *speciesv1.Handler
	avatar   *avatar.Handler
	guard    mw.AuthDeps
}

func newRouter(d routerDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /api/healthz", d.health.Liveness)
	mux.HandleFunc("GET /api/readyz", d.health.Readiness)

	// auth — без гарда
	mux.HandleFunc("POST /api/register", d.register.Register)
	mux.HandleFunc("POST /api/auth", d.login.Login)
	mux.HandleFunc("DELETE /api/auth/{token}", d.logout.Logout)

	// plants — всё за гардом, владелец берётся только из контекста
	guard := func(h http.HandlerFunc) http.Handler {
		return mw.RequireAuth(d.guard, h)
	}
	mux.Handle("POST /api/plants", guard(d.plants.Create))
	mux.Handle("GET /api/plants", guard(d.plants.List))
	mux.Handle("POST /api/plants/seed", guard(d.plants.Seed))
	mux.Handle("GET /api/plants/{id}", guard(d.plants.GetOne))
	mux.Handle("PATCH /api/plants/{id}", guard(d.plants.Update))
	mux.Handle("DELETE /api/plants/{id}", guard(d.plants.Delete))

	// species reference
	mux.Handle("GET /api/species", guard(d.species.List))
	mux.Handle("GET /api/species/{id}", guard(d.species.Details))

	// avatar
	mux.Handle("POST /api/avatar", guard(limitBody(8<<20, d.avatar.Upload)))
	mux.Handle("GET /api/avatar", guard(d.avatar.Get))
	mux.Handle("DELETE /api/avatar", guard(d.avatar.Delete))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
