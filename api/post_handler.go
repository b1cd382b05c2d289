package api

import (
	"net/http"

	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const trendingCount = 10

type postHandler struct {
	responder  Responder
	logger     zerolog.Logger
	posts      *services.PostService
	categories *services.CategoryService
}

func newPostHandler(posts *services.PostService, categories *services.CategoryService) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		posts:      posts,
		categories: categories,
	}
}

// listPosts returns every published post, newest first.
// @Router /api/blog [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.posts.AllPublished(r.Context()))
	}
}

// @Router /api/blog/recent [get]
func (h postHandler) recentPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := queryInt(r, "count", services.DefaultRecentCount)
		h.responder.WriteJSON(w, h.posts.Recent(r.Context(), count))
	}
}

// @Router /api/blog/most-liked [get]
func (h postHandler) mostLikedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := queryInt(r, "count", services.DefaultMostLikedCount)
		h.responder.WriteJSON(w, h.posts.MostLiked(r.Context(), count))
	}
}

// trendingPosts feeds the sidebar widget with the most liked posts in short form.
// @Router /api/recent-posts [get]
func (h postHandler) trendingPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts := h.posts.MostLiked(r.Context(), trendingCount)
		links := make([]postLink, 0, len(posts))
		for _, p := range posts {
			links = append(links, postLink{Slug: p.Slug, Title: p.Title, CategorySlug: p.CategorySlug})
		}
		h.responder.WriteJSON(w, links)
	}
}

// @Router /api/blog/{slug} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.posts.BySlug(r.Context(), chi.URLParam(r, "slug"))
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("post"))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// @Router /api/blog/tag/{tag} [get]
func (h postHandler) postsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.posts.ByTag(r.Context(), chi.URLParam(r, "tag")))
	}
}

// @Router /api/tags [get]
func (h postHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.posts.Tags(r.Context()))
	}
}

// categoryPosts returns one page of a category's posts.
// @Router /api/categories/{slug}/posts [get]
func (h postHandler) categoryPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		category, ok := h.categories.BySlug(r.Context(), slug)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("category"))
			return
		}

		page := h.posts.ByCategory(r.Context(), slug, queryInt(r, "page", 1), queryInt(r, "pageSize", services.DefaultPageSize))
		h.responder.WriteJSON(w, categoryPageResponse{Category: category, Page: page})
	}
}

// @Router /api/categories/{slug}/posts/{postSlug} [get]
func (h postHandler) categoryPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.posts.ByCategoryAndSlug(r.Context(), chi.URLParam(r, "slug"), chi.URLParam(r, "postSlug"))
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("post"))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// adminListPosts includes drafts.
// @Router /api/admin/posts [get]
func (h postHandler) adminListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.AdminList(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

// @Router /api/admin/posts/{postID} [get]
func (h postHandler) adminGetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// @Router /api/admin/posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Create(r.Context(), req.input())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		admin, _ := ctxGetAdmin(r.Context())
		h.logger.Info().Uint("postID", post.ID).Str("slug", post.Slug).Str("admin", admin).Msg("post created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// @Router /api/admin/posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req postRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Update(r.Context(), id, req.input())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// @Router /api/admin/posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.posts.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		admin, _ := ctxGetAdmin(r.Context())
		h.logger.Info().Uint("postID", id).Str("admin", admin).Msg("post deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}
