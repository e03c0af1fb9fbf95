package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context) ([]*models.Post, error)
	deleteFn        func(context.Context, uint) error
	addLikeFn       func(context.Context, uint, uint) (bool, error)
	removeLikeFn    func(context.Context, uint, uint) (bool, error)
	addCommentFn    func(context.Context, *models.Comment) error
	getCommentFn    func(context.Context, uint, uint) (*models.Comment, error)
	deleteCommentFn func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) AddLike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.addLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) RemoveLike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.removeLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *postRepoStub) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.getCommentFn(ctx, postID, commentID)
}
func (s *postRepoStub) DeleteComment(ctx context.Context, postID, commentID uint) error {
	return s.deleteCommentFn(ctx, postID, commentID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(context.Context, *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id, UserID: 1}, nil },
		listFn:          func(context.Context) ([]*models.Post, error) { return nil, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		addLikeFn:       func(context.Context, uint, uint) (bool, error) { return true, nil },
		removeLikeFn:    func(context.Context, uint, uint) (bool, error) { return true, nil },
		addCommentFn:    func(context.Context, *models.Comment) error { return nil },
		getCommentFn:    func(_ context.Context, _, id uint) (*models.Comment, error) { return &models.Comment{ID: id, UserID: 1}, nil },
		deleteCommentFn: func(context.Context, uint, uint) error { return nil },
	}
}

// likeSet mimics the store's add-if-absent like contract for (post, user).
type likeSet struct {
	mu    sync.Mutex
	likes map[[2]uint]bool
}

func newLikeSet() *likeSet {
	return &likeSet{likes: make(map[[2]uint]bool)}
}

func (l *likeSet) add(postID, userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := [2]uint{postID, userID}
	if l.likes[key] {
		return false
	}
	l.likes[key] = true
	return true
}

func (l *likeSet) remove(postID, userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := [2]uint{postID, userID}
	if !l.likes[key] {
		return false
	}
	delete(l.likes, key)
	return true
}

func (l *likeSet) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.likes)
}

func TestPostService_Create(t *testing.T) {
	caller := models.Identity{ID: 4, Name: "Jane", Avatar: "https://example.com/a.png"}

	t.Run("Denormalizes author metadata", func(t *testing.T) {
		repo := noopPostRepo()
		var created *models.Post
		repo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 10
			created = p
			return nil
		}

		svc := NewPostService(repo)
		_, err := svc.Create(context.Background(), caller, "A perfectly fine post")
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, uint(4), created.UserID)
		assert.Equal(t, "Jane", created.Name)
		assert.Equal(t, "https://example.com/a.png", created.Avatar)
	})

	t.Run("Text length bounds", func(t *testing.T) {
		svc := NewPostService(noopPostRepo())

		_, err := svc.Create(context.Background(), caller, "too short")
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, err.(*models.AppError).Code)

		_, err = svc.Create(context.Background(), caller, strings.Repeat("x", 301))
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, err.(*models.AppError).Code)

		_, err = svc.Create(context.Background(), caller, strings.Repeat("x", 300))
		require.NoError(t, err)
	})
}

func TestPostService_Delete(t *testing.T) {
	t.Run("Author can delete", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 4}, nil
		}
		deleted := false
		repo.deleteFn = func(context.Context, uint) error {
			deleted = true
			return nil
		}

		svc := NewPostService(repo)
		require.NoError(t, svc.Delete(context.Background(), models.Identity{ID: 4}, 10))
		assert.True(t, deleted)
	})

	t.Run("Non-author is rejected", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 4}, nil
		}
		repo.deleteFn = func(context.Context, uint) error {
			t.Fatal("delete should not be reached")
			return nil
		}

		svc := NewPostService(repo)
		err := svc.Delete(context.Background(), models.Identity{ID: 9}, 10)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotAuthorized, err.(*models.AppError).Code)
	})

	t.Run("Missing post", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}

		svc := NewPostService(repo)
		err := svc.Delete(context.Background(), models.Identity{ID: 4}, 10)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
	})
}

func TestPostService_Like(t *testing.T) {
	caller := models.Identity{ID: 4}

	t.Run("Second like conflicts and state is unchanged", func(t *testing.T) {
		likes := newLikeSet()
		repo := noopPostRepo()
		repo.addLikeFn = func(_ context.Context, postID, userID uint) (bool, error) {
			return likes.add(postID, userID), nil
		}

		svc := NewPostService(repo)
		_, err := svc.Like(context.Background(), caller, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, likes.count())

		_, err = svc.Like(context.Background(), caller, 10)
		require.Error(t, err)
		assert.Equal(t, models.CodeConflict, err.(*models.AppError).Code)
		assert.Equal(t, "User already liked this post", err.(*models.AppError).Message)
		assert.Equal(t, 1, likes.count())
	})

	t.Run("Concurrent likes record exactly one entry", func(t *testing.T) {
		likes := newLikeSet()
		repo := noopPostRepo()
		repo.addLikeFn = func(_ context.Context, postID, userID uint) (bool, error) {
			return likes.add(postID, userID), nil
		}

		svc := NewPostService(repo)

		const attempts = 16
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Like(context.Background(), caller, 10)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.Equal(t, models.CodeConflict, err.(*models.AppError).Code)
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, likes.count())
	})

	t.Run("Missing post", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}

		svc := NewPostService(repo)
		_, err := svc.Like(context.Background(), caller, 10)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
	})
}

func TestPostService_Unlike(t *testing.T) {
	caller := models.Identity{ID: 4}

	t.Run("Removes an existing like", func(t *testing.T) {
		likes := newLikeSet()
		likes.add(10, 4)
		repo := noopPostRepo()
		repo.removeLikeFn = func(_ context.Context, postID, userID uint) (bool, error) {
			return likes.remove(postID, userID), nil
		}

		svc := NewPostService(repo)
		_, err := svc.Unlike(context.Background(), caller, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, likes.count())
	})

	t.Run("No like to remove conflicts", func(t *testing.T) {
		repo := noopPostRepo()
		repo.removeLikeFn = func(context.Context, uint, uint) (bool, error) { return false, nil }

		svc := NewPostService(repo)
		_, err := svc.Unlike(context.Background(), caller, 10)
		require.Error(t, err)
		assert.Equal(t, models.CodeConflict, err.(*models.AppError).Code)
		assert.Equal(t, "You have not yet liked this post", err.(*models.AppError).Message)
	})
}

func TestPostService_AddComment(t *testing.T) {
	caller := models.Identity{ID: 4, Name: "Jane", Avatar: "https://example.com/a.png"}

	t.Run("Head insertion keeps newest first", func(t *testing.T) {
		repo := noopPostRepo()
		var comments []models.Comment
		nextID := uint(0)
		repo.addCommentFn = func(_ context.Context, c *models.Comment) error {
			nextID++
			c.ID = nextID
			comments = append([]models.Comment{*c}, comments...)
			return nil
		}
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Comments: comments}, nil
		}

		svc := NewPostService(repo)
		_, err := svc.AddComment(context.Background(), caller, 10, "first comment here")
		require.NoError(t, err)
		post, err := svc.AddComment(context.Background(), caller, 10, "second comment here")
		require.NoError(t, err)

		require.Len(t, post.Comments, 2)
		assert.Equal(t, "second comment here", post.Comments[0].Text)
		assert.Equal(t, "first comment here", post.Comments[1].Text)
	})

	t.Run("Denormalizes author metadata", func(t *testing.T) {
		repo := noopPostRepo()
		var created *models.Comment
		repo.addCommentFn = func(_ context.Context, c *models.Comment) error {
			created = c
			return nil
		}

		svc := NewPostService(repo)
		_, err := svc.AddComment(context.Background(), caller, 10, "a sufficiently long comment")
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, uint(10), created.PostID)
		assert.Equal(t, uint(4), created.UserID)
		assert.Equal(t, "Jane", created.Name)
	})

	t.Run("Validation applies to comments too", func(t *testing.T) {
		svc := NewPostService(noopPostRepo())
		_, err := svc.AddComment(context.Background(), caller, 10, "short")
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, err.(*models.AppError).Code)
	})
}

func TestPostService_DeleteComment(t *testing.T) {
	t.Run("Comment author can delete", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getCommentFn = func(_ context.Context, _, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 4}, nil
		}
		deleted := false
		repo.deleteCommentFn = func(context.Context, uint, uint) error {
			deleted = true
			return nil
		}

		svc := NewPostService(repo)
		_, err := svc.DeleteComment(context.Background(), models.Identity{ID: 4}, 10, 3)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("Post author cannot delete someone else's comment", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 4}, nil
		}
		repo.getCommentFn = func(_ context.Context, _, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 7}, nil
		}
		repo.deleteCommentFn = func(context.Context, uint, uint) error {
			t.Fatal("delete should not be reached")
			return nil
		}

		svc := NewPostService(repo)
		_, err := svc.DeleteComment(context.Background(), models.Identity{ID: 4}, 10, 3)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotAuthorized, err.(*models.AppError).Code)
	})

	t.Run("Missing comment", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getCommentFn = func(_ context.Context, _, id uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment", id)
		}

		svc := NewPostService(repo)
		_, err := svc.DeleteComment(context.Background(), models.Identity{ID: 4}, 10, 3)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
	})
}
