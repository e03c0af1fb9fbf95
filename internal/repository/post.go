package repository

import (
	"context"
	"errors"

	"devconnector/internal/cache"
	"devconnector/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and their embedded
// likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	// AddLike records a like if and only if none exists for (post, user).
	// It reports whether a row was written; false means already liked.
	AddLike(ctx context.Context, postID, userID uint) (bool, error)
	// RemoveLike deletes the caller's like. False means no like existed.
	RemoveLike(ctx context.Context, postID, userID uint) (bool, error)
	AddComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withCollections preloads likes and comments newest-first (head insertion
// order is part of the API contract).
func withCollections(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id DESC")
		})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return withCollections(r.db.WithContext(ctx)).First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
		return withCollections(r.db.WithContext(ctx)).
			Order("posts.id DESC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID uint) (bool, error) {
	// INSERT ... ON CONFLICT DO NOTHING is the atomic add-if-absent:
	// two concurrent likes race on the unique index, not on a read-modify-write.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (post_id, user_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (post_id, user_id) DO NOTHING`,
		postID, userID,
	)
	if result.Error != nil {
		return false, models.NewStoreError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return result.RowsAffected > 0, nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewStoreError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return result.RowsAffected > 0, nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *postRepository) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, models.NewStoreError(err)
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, postID, commentID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return models.NewStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", commentID)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
