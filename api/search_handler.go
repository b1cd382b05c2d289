package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bolhadev/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const searchFailedMessage = "Erro ao processar busca. Tente novamente."

var belowThresholdMessage = fmt.Sprintf("Digite pelo menos %d caracteres", services.MinQueryLength)

type searchHandler struct {
	responder Responder
	logger    zerolog.Logger
	search    *services.SearchService
}

func newSearchHandler(search *services.SearchService) searchHandler {
	logger := log.With().Str("handlerName", "searchHandler").Logger()

	return searchHandler{
		responder: NewResponder(logger),
		logger:    logger,
		search:    search,
	}
}

// searchPosts answers the search page and the sidebar widget. Short queries
// get an informational message, not an error.
// @Router /api/search [get]
func (h searchHandler) searchPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		if !services.MeetsThreshold(query) {
			h.responder.WriteJSON(w, searchResponse{Query: query, Posts: []postLink{}, Message: belowThresholdMessage})
			return
		}

		posts, err := h.search.Query(r.Context(), query)
		if err != nil {
			h.logger.Error().Err(err).Str("query", query).Msg("search failed")
			h.responder.WriteJSONStatus(w, http.StatusInternalServerError, searchResponse{Posts: []postLink{}, Error: searchFailedMessage})
			return
		}

		links := make([]postLink, 0, len(posts))
		for _, p := range posts {
			links = append(links, postLink{Slug: p.Slug, Title: p.Title, Description: p.Description, CategorySlug: p.CategorySlug})
		}
		count := len(links)
		h.responder.WriteJSON(w, searchResponse{Query: query, Posts: links, Count: &count})
	}
}
