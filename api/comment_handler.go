package api

import (
	"net/http"

	"github.com/bolhadev/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	comments  *services.CommentService
}

func newCommentHandler(comments *services.CommentService) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		comments:  comments,
	}
}

// listComments returns the approved comments of a post.
// @Router /api/posts/{postID}/comments [get]
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.comments.ListApproved(r.Context(), postID))
	}
}

// createComment queues a comment for moderation.
// @Router /api/posts/{postID}/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req commentRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.comments.Create(r.Context(), postID, services.CommentInput(req))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, comment)
	}
}

// adminListComments lists every comment; ?status=pending narrows it to the queue.
// @Router /api/admin/comments [get]
func (h commentHandler) adminListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pendingOnly := r.URL.Query().Get("status") == "pending"
		comments, err := h.comments.ListAll(r.Context(), pendingOnly)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, comments)
	}
}

// @Router /api/admin/comments/{commentID}/approve [put]
func (h commentHandler) approveComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.comments.Approve(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, comment)
	}
}

// @Router /api/admin/comments/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.comments.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
