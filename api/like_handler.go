package api

import (
	"net/http"
	"strings"

	"github.com/bolhadev/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type likeHandler struct {
	responder Responder
	logger    zerolog.Logger
	likes     *services.LikeService
}

func newLikeHandler(likes *services.LikeService) likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return likeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		likes:     likes,
	}
}

// @Router /api/posts/{postID}/likes [get]
func (h likeHandler) countLikes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, likeCountResponse{Count: h.likes.Count(r.Context(), postID)})
	}
}

// toggleLike flips the visitor's like. Clients without a fingerprint are
// keyed by their address.
// @Router /api/posts/{postID}/likes [post]
func (h likeHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req likeRequest
		if r.ContentLength != 0 {
			if err := decodeJSON(w, r, &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		fingerprint := strings.TrimSpace(req.Fingerprint)
		if fingerprint == "" {
			fingerprint = clientIP(r)
		}

		liked, err := h.likes.Toggle(r.Context(), postID, fingerprint)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, likeResponse{Liked: liked})
	}
}
