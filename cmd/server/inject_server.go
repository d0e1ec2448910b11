package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/wire"
	"github.com/pandodao/fuji-wallet/handler/api"
	"github.com/pandodao/fuji-wallet/handler/hc"
	"github.com/pandodao/fuji-wallet/handler/ws"
	"github.com/rs/cors"
)

var serverSet = wire.NewSet(
	api.New,
	ws.New,
	provideServer,
)

func provideServer(apiHandler *api.Server, wsHandler *ws.Handler) *http.Server {
	m := chi.NewMux()
	m.Use(middleware.RealIP)
	m.Use(middleware.Logger)
	m.Use(middleware.Recoverer)
	m.Use(cors.AllowAll().Handler)

	m.Mount("/api", apiHandler.Handler())
	m.Mount("/ws", wsHandler.Handler())
	m.Mount("/hc", hc.Handler(version))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", opt.port),
		Handler: m,
	}
}
