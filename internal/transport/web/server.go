package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rozennrd/dave-backend/internal/config"
	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	authv1 "github.com/rozennrd/dave-backend/internal/transport/web/v1/auth"
	"github.com/rozennrd/dave-backend/internal/transport/web/v1/avatar"
	"github.com/rozennrd/dave-backend/internal/transport/web/v1/health"
	"github.com/rozennrd/dave-backend/internal/transport/web/v1/plant"
	speciesv1 "github.com/rozennrd/dave-backend/internal/transport/web/v1/species"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(
	logger *log.Logger,
	cfg *config.Config,
	repos Repos,
	auth AuthDeps,
	storage domain.AvatarStorage,
	cache domain.Cache,
	lookup speciesv1.Lookup,
) *Server {
	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	healthHandler := &health.Handler{
		Log: sub("health"), DB: repos.Users, Cache: cache, Storage: storage,
	}
	registerHandler := &authv1.HandlerRegister{
		Log: sub("auth"), Users: repos.Users, Hasher: auth.Hasher,
	}
	loginHandler := &authv1.HandlerLogin{
		Log: sub("auth"), Users: repos.Users, Hasher: auth.Hasher, Tokens: auth.Tokens,
	}
	logoutHandler := &authv1.HandlerLogout{
		Log: sub("auth"), Tokens: auth.Tokens, Blacklist: auth.Blacklist,
	}
	plantHandler := &plant.Handler{
		Log: sub("plant"), Plants: repos.Plants, Cache: cache, ListTTL: cfg.PlantListTTL,
	}
	speciesHandler := &speciesv1.Handler{Log: sub("species"), Species: lookup}
	avatarHandler := &avatar.Handler{Log: sub("avatar"), Storage: storage}

	guard := mw.AuthDeps{Tokens: auth.Tokens, Blacklist: auth.Blacklist}

	srv := &http.Server{
		Addr: cfg.AppPort,
		Handler: newRouter(routerDeps{
			health:   healthHandler,
			register: registerHandler,
			login:    loginHandler,
			logout:   logoutHandler,
			plants:   plantHandler,
			species:  speciesHandler,
			avatar:   avatarHandler,
			guard:    guard,
		}, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
