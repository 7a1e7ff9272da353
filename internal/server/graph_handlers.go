package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/v1/user/follow/:id
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	msg, err := s.graphService.Follow(c.Context(), currentUserID(c), followeeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

// UnfollowUser handles POST /api/v1/user/unfollow/:id
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	msg, err := s.graphService.Unfollow(c.Context(), currentUserID(c), followeeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}
