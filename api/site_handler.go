package api

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/bolhadev/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	sitemap     *services.SitemapService
	db          pinger
	startupTime time.Time
}

func newSiteHandler(sitemap *services.SitemapService, db pinger, startupTime time.Time) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		sitemap:     sitemap,
		db:          db,
		startupTime: startupTime,
	}
}

// @Router /sitemap.xml [get]
func (h siteHandler) sitemapXML() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := h.sitemap.Build(r.Context())
		if h.responder.CheckContextTimeout(w, r) {
			return
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		body, err := xml.Marshal(set)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteText(w, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
	}
}

// @Router /robots.txt [get]
func (h siteHandler) robotsTXT() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteText(w, "text/plain; charset=utf-8", []byte(h.sitemap.Robots()))
	}
}

// @Router /health [get]
func (h siteHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:    "ok",
			Database:  "ok",
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			resp.Status = "degraded"
			resp.Database = "unreachable"
			h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, resp)
			return
		}
		h.responder.WriteJSON(w, resp)
	}
}
