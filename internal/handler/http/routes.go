package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	if h.metrics != nil {
		router.Handle("/metrics", h.metrics)
	}
	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/daemon", func(r chi.Router) {
			r.Post("/pause", h.pause)
			r.Post("/reread", h.rereadConfig)
			r.Get("/noop", h.noop)
			r.Get("/status", h.status)
		})

		r.Route("/api/requests", func(r chi.Router) {
			r.Get("/", h.listRequests)
			r.Post("/install", h.requestInstall)
			r.Post("/restore", h.requestRestore)
			r.Post("/conduit", h.requestConduit)
			r.Delete("/{handle}", h.removeRequest)
		})

		r.Get("/api/cradles", h.getCradles)
		r.Route("/api/cradles/{cradle}", func(r chi.Router) {
			r.Post("/sysinfo", h.getSystemInfo)
			r.Post("/userinfo/get", h.getUserInfo)
			r.Post("/userinfo/set", h.setUserInfo)
		})

		r.Get("/api/users", h.getUsers)
		r.Route("/api/pilots", func(r chi.Router) {
			r.Get("/", h.getPilots)
			r.Get("/ids", h.getPilotIDs)
			r.Get("/by-user-name/{name}", h.getPilotsByUserName)
			r.Get("/by-user-login/{login}", h.getPilotsByUserLogin)
			r.Get("/id/{id}/name", h.getPilotNameFromID)
			r.Get("/{pilot}/basedir", h.getPilotBaseDir)
			r.Get("/{pilot}/id", h.getPilotIDFromName)
			r.Get("/{pilot}/databases", h.getDatabasesFromCache)
		})

		if h.events != nil {
			r.Handle("/api/events", h.events)
		}
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
