package api

import (
	"time"

	"github.com/bolhadev/blog-backend/config"
	"github.com/bolhadev/blog-backend/content"
	"github.com/bolhadev/blog-backend/database"
	"github.com/bolhadev/blog-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string, startupTime time.Time) *routeHandlers {
	renderer := content.NewRenderer()

	posts := services.NewPostService(database.PostRepo(), database.TagRepo(), database.CategoryRepo(), renderer)
	categories := services.NewCategoryService(database.CategoryRepo())
	siteURL := config.GetString(c, "SITE_URL", config.DefaultSiteURL)

	var commentOpts []services.CommentOption
	if notifier := services.NewEmailNotifier(c); notifier != nil {
		commentOpts = append(commentOpts, services.WithNotifier(notifier))
	}

	return &routeHandlers{
		postHandler:     newPostHandler(posts, categories),
		categoryHandler: newCategoryHandler(categories),
		commentHandler:  newCommentHandler(services.NewCommentService(database.CommentRepo(), database.PostRepo(), commentOpts...)),
		likeHandler:     newLikeHandler(services.NewLikeService(database.LikeRepo(), database.PostRepo())),
		searchHandler:   newSearchHandler(services.NewSearchService(database.PostRepo(), renderer)),
		siteHandler: newSiteHandler(
			services.NewSitemapService(database.PostRepo(), database.TagRepo(), database.CategoryRepo(), siteURL),
			database,
			startupTime,
		),
	}
}
