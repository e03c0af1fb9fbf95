package server

import (
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), identity, req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), identity, postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// LikePost handles POST /api/posts/like/:id.
func (s *Server) LikePost(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.Like(c.UserContext(), identity, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// UnlikePost handles POST /api/posts/unlike/:id.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.Unlike(c.UserContext(), identity, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// AddComment handles POST /api/posts/comment/:id.
func (s *Server) AddComment(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.AddComment(c.UserContext(), identity, postID, req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "comment_id", "comment ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.DeleteComment(c.UserContext(), identity, postID, commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}
