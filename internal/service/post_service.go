package service

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// PostService orchestrates post, like, and comment mutations. Each mutation
// loads the parent, validates and checks ownership in memory, and only then
// persists; a failure in the middle never leaves a partial write behind.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// Get returns one post with its likes and comments.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Create inserts a post authored by the caller, with the author's display
// metadata denormalized from the token claims.
func (s *PostService) Create(ctx context.Context, identity models.Identity, text string) (*models.Post, error) {
	if fieldErrs, ok := validation.Post(text); !ok {
		return nil, reject("post.create", models.NewFieldValidationError(fieldErrs))
	}

	post := &models.Post{
		UserID: identity.ID,
		Text:   text,
		Name:   identity.Name,
		Avatar: identity.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, identity models.Identity, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != identity.ID {
		return reject("post.delete", models.NewNotAuthorizedError("You can only delete your own posts"))
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records the caller's like. The write is conditional at the store
// layer, so two concurrent likes by the same user record exactly one entry.
func (s *PostService) Like(ctx context.Context, identity models.Identity, postID uint) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "post.like")
	defer span.End()
	span.AddAttributes(
		attribute.Int("post.id", int(postID)),
		attribute.Int("user.id", int(identity.ID)),
	)

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		span.SetError(err)
		return nil, err
	}

	added, err := s.postRepo.AddLike(ctx, postID, identity.ID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if !added {
		return nil, reject("post.like", models.NewConflictError("User already liked this post"))
	}

	return s.postRepo.GetByID(ctx, postID)
}

// Unlike removes the caller's like; having no like to remove is an error.
func (s *PostService) Unlike(ctx context.Context, identity models.Identity, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.postRepo.RemoveLike(ctx, postID, identity.ID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, reject("post.unlike", models.NewConflictError("You have not yet liked this post"))
	}

	return s.postRepo.GetByID(ctx, postID)
}

// AddComment inserts a comment at the head of the post's comment sequence.
func (s *PostService) AddComment(ctx context.Context, identity models.Identity, postID uint, text string) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if fieldErrs, ok := validation.Post(text); !ok {
		return nil, reject("comment.add", models.NewFieldValidationError(fieldErrs))
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: identity.ID,
		Text:   text,
		Name:   identity.Name,
		Avatar: identity.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// DeleteComment removes a comment. Only the comment's own author may delete
// it; the post's author gets no special power over other people's comments.
func (s *PostService) DeleteComment(ctx context.Context, identity models.Identity, postID, commentID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.postRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != identity.ID {
		return nil, reject("comment.delete", models.NewNotAuthorizedError("You can only delete your own comments"))
	}

	if err := s.postRepo.DeleteComment(ctx, postID, commentID); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}
