package server

import (
	"time"

	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}

	profile, err := s.profileService.Get(c.UserContext(), identity.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetAllProfiles handles GET /api/profile/all.
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profiles)
}

// GetProfileByHandle handles GET /api/profile/handle/:handle.
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if handle == "" {
		return models.RespondWithError(c, models.NewValidationError("Invalid handle"))
	}

	profile, err := s.profileService.GetByHandle(c.UserContext(), handle)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id.
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "user_id", "user ID")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// profilePatchRequest is the wire shape of a profile create/update. Absent
// fields stay nil and never overwrite stored values.
type profilePatchRequest struct {
	Handle         *string  `json:"handle"`
	Company        *string  `json:"company"`
	Website        *string  `json:"website"`
	Location       *string  `json:"location"`
	Bio            *string  `json:"bio"`
	Status         *string  `json:"status"`
	GithubUsername *string  `json:"github_username"`
	Skills         []string `json:"skills"`
	Youtube        *string  `json:"youtube"`
	Twitter        *string  `json:"twitter"`
	Facebook       *string  `json:"facebook"`
	Linkedin       *string  `json:"linkedin"`
	Instagram      *string  `json:"instagram"`
}

func (r profilePatchRequest) toPatch() models.ProfilePatch {
	return models.ProfilePatch{
		Handle:         r.Handle,
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GithubUsername: r.GithubUsername,
		Skills:         r.Skills,
		Youtube:        r.Youtube,
		Twitter:        r.Twitter,
		Facebook:       r.Facebook,
		Linkedin:       r.Linkedin,
		Instagram:      r.Instagram,
	}
}

// CreateOrUpdateProfile handles POST /api/profile.
func (s *Server) CreateOrUpdateProfile(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}

	var req profilePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.CreateOrUpdate(c.UserContext(), identity, req.toPatch())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

type entryRequest struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	Location     string     `json:"location"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// AddExperience handles POST /api/profile/experience.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}

	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), identity, service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}
	entryID, err := s.parseID(c, "exp_id", "experience ID")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.DeleteExperience(c.UserContext(), identity, entryID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// AddEducation handles POST /api/profile/education.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}

	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), identity, service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}
	entryID, err := s.parseID(c, "edu_id", "education ID")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.DeleteEducation(c.UserContext(), identity, entryID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteAccount handles DELETE /api/profile.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	identity, err := s.identity(c)
	if err != nil {
		return nil
	}

	if err := s.profileService.DeleteAccount(c.UserContext(), identity); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
