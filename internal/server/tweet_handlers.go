package server

import (
	"echo/internal/models"
	"echo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/v1/tweet/create
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.CreateTweet(c.Context(), service.CreateTweetInput{
		UserID: currentUserID(c),
		Body:   req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Tweet created successfully.",
		"tweet":   tweet,
	})
}

// GetAllTweets handles GET /api/v1/tweet/alltweets. The whole feed is
// returned unless the client asks for a page.
func (s *Server) GetAllTweets(c *fiber.Ctx) error {
	p := parsePagination(c, 0)
	tweets, err := s.tweetService.ListFeed(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tweets":  tweets,
	})
}

// GetFollowingTweets handles GET /api/v1/tweet/followingtweets/:id
func (s *Server) GetFollowingTweets(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.userService.GetProfile(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}

	p := parsePagination(c, 0)
	tweets, err := s.tweetService.ListFollowingFeed(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tweets":  tweets,
	})
}

// GetTweet handles GET /api/v1/tweet/tweet/:id
func (s *Server) GetTweet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tweet, err := s.tweetService.GetTweet(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tweet":   tweet,
	})
}

// DeleteTweet handles DELETE /api/v1/tweet/delete/:id
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tweetService.DeleteTweet(c.Context(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tweet deleted successfully.",
	})
}

// ToggleLike handles PUT /api/v1/tweet/like/:id
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	_, msg, err := s.tweetService.ToggleLike(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

// AddComment handles POST /api/v1/tweet/comment/:id
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.AddComment(c.Context(), service.AddCommentInput{
		UserID:  currentUserID(c),
		TweetID: id,
		Body:    req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Comment added successfully.",
		"tweet":   tweet,
	})
}
