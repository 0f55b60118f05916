package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/planet-api/internal/api"
	apimiddleware "github.com/phrazzld/planet-api/internal/api/middleware"
	"github.com/phrazzld/planet-api/internal/api/shared"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// setupRouter builds the chi router with middleware, resource routes,
// the health check and the metrics endpoint.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()
	metrics := apimiddleware.NewMetrics(app.registry)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apimiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Handler)

	userHandler := api.NewUserHandler(app.userService, app.logger)
	groupHandler := api.NewGroupHandler(app.groupService, app.logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Post("/", userHandler.CreateUser)
			r.Get("/{userid}", userHandler.GetUser)
			r.Put("/{userid}", userHandler.UpdateUser)
			r.Delete("/{userid}", userHandler.DeleteUser)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.ListGroups)
			r.Post("/", groupHandler.CreateGroup)
			r.Get("/{group_name}", groupHandler.GetMembers)
			r.Put("/{group_name}", groupHandler.ReplaceMembers)
			r.Delete("/{group_name}", groupHandler.DeleteGroup)
		})
	})

	r.Get("/health", app.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}

// handleHealth reports 200 when the database answers a ping.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := app.storage.db.PingContext(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
