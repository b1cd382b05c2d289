package database

import (
	"context"

	"github.com/bolhadev/blog-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db           *gorm.DB
	postRepo     *PostRepo
	tagRepo      *TagRepo
	categoryRepo *CategoryRepo
	commentRepo  *CommentRepo
	likeRepo     *LikeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		postRepo:     NewPostRepo(db),
		tagRepo:      NewTagRepo(db),
		categoryRepo: NewCategoryRepo(db),
		commentRepo:  NewCommentRepo(db),
		likeRepo:     NewLikeRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

// Ping runs a trivial query to check the connection.
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}

// Migrate creates or updates every table.
func (d Database) Migrate() error {
	return models.Migrate(d.db)
}
