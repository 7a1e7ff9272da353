package server

import (
	"echo/internal/models"
	"echo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/v1/user/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// GetProfile handles GET /api/v1/user/profile/:id
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// UpdateProfile handles PUT /api/v1/user/update/:id.
// Users may only edit their own profile.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if id != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only edit your own profile"))
	}

	var req struct {
		Name            string  `json:"name"`
		Username        string  `json:"username"`
		Bio             *string `json:"bio"`
		ProfileImageURL string  `json:"profileImageUrl"`
		BannerURL       string  `json:"bannerUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateProfileInput{
		UserID:          id,
		Name:            req.Name,
		Username:        req.Username,
		ProfileImageURL: req.ProfileImageURL,
		BannerURL:       req.BannerURL,
	}
	if req.Bio != nil {
		if *req.Bio == "" {
			in.ClearBio = true
		} else {
			in.Bio = *req.Bio
		}
	}

	user, err := s.userService.UpdateProfile(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully.",
		"user":    user,
	})
}

// GetOtherUsers handles GET /api/v1/user/otherusers. It returns suggested
// accounts the requesting user does not already follow.
func (s *Server) GetOtherUsers(c *fiber.Ctx) error {
	users, err := s.userService.OtherUsers(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"otherUsers": users,
	})
}

// ToggleBookmark handles PUT /api/v1/user/bookmark/:id where :id is a tweet ID.
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	_, msg, err := s.userService.ToggleBookmark(c.Context(), currentUserID(c), tweetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}
