package api

import (
	"net/http"

	"github.com/bolhadev/blog-backend/cache"
	"github.com/go-chi/chi/v5"
)

type routeMiddleware struct {
	auth    authMiddleware
	limiter *rateLimiter
	cache   *cache.ResponseCache
}

// setupRoutes mounts the public site API, the admin API and the crawler files
func setupRoutes(r chi.Router, handlers *routeHandlers, mw routeMiddleware) {
	r.Use(ColoredHTTPLoggingMiddleware)

	r.Get("/health", handlers.siteHandler.health())

	// Public, cacheable reads
	r.Group(func(r chi.Router) {
		r.Use(cacheResponses(mw.cache))

		r.Get("/sitemap.xml", handlers.siteHandler.sitemapXML())
		r.Get("/robots.txt", handlers.siteHandler.robotsTXT())

		r.Get("/api/blog", handlers.postHandler.listPosts())
		r.Get("/api/blog/recent", handlers.postHandler.recentPosts())
		r.Get("/api/blog/most-liked", handlers.postHandler.mostLikedPosts())
		r.Get("/api/blog/tag/{tag}", handlers.postHandler.postsByTag())
		r.Get("/api/blog/{slug}", handlers.postHandler.getPost())
		r.Get("/api/tags", handlers.postHandler.listTags())

		r.Get("/api/categories", handlers.categoryHandler.listCategories())
		r.Get("/api/categories/{slug}", handlers.categoryHandler.getCategory())
		r.Get("/api/categories/{slug}/posts", handlers.postHandler.categoryPosts())
		r.Get("/api/categories/{slug}/posts/{postSlug}", handlers.postHandler.categoryPost())
	})

	// Public, uncached: counts change with every like and search is unbounded
	r.Get("/api/search", handlers.searchHandler.searchPosts())
	r.Get("/api/recent-posts", handlers.postHandler.trendingPosts())
	r.Get("/api/posts/{postID}/likes", handlers.likeHandler.countLikes())
	r.Get("/api/posts/{postID}/comments", handlers.commentHandler.listComments())

	// Visitor writes
	r.Group(func(r chi.Router) {
		r.Use(mw.limiter.Limit)

		r.Post("/api/posts/{postID}/likes", handlers.likeHandler.toggleLike())
		r.Post("/api/posts/{postID}/comments", handlers.commentHandler.createComment())
	})

	// Admin panel
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(mw.auth.authenticate)
		r.Use(purgeCache(mw.cache))

		r.Get("/posts", handlers.postHandler.adminListPosts())
		r.Get("/posts/{postID}", handlers.postHandler.adminGetPost())
		r.Post("/posts", handlers.postHandler.createPost())
		r.Put("/posts/{postID}", handlers.postHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

		r.Get("/categories/{categoryID}", handlers.categoryHandler.adminGetCategory())
		r.Post("/categories", handlers.categoryHandler.createCategory())
		r.Put("/categories/{categoryID}", handlers.categoryHandler.updateCategory())
		r.Delete("/categories/{categoryID}", handlers.categoryHandler.deleteCategory())

		r.Get("/comments", handlers.commentHandler.adminListComments())
		r.Put("/comments/{commentID}/approve", handlers.commentHandler.approveComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponder(handlers.siteHandler.logger).WriteJSONStatus(w, http.StatusNotFound, ErrorResponse{Error: "not found", Status: "error"})
	})
}
