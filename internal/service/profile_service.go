package service

import (
	"context"
	"errors"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// ProfileService orchestrates profile mutations. Profiles and their owned
// experience/education entries can only be touched by their owning user.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// Get returns the profile owned by the given user.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetByHandle resolves a profile by its unique handle.
func (s *ProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", handle)
	}
	return profile, nil
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// CreateOrUpdate creates the caller's profile on first call and merge-updates
// it afterwards. Only supplied patch fields overwrite; the handle must not be
// claimed by anyone else.
func (s *ProfileService) CreateOrUpdate(ctx context.Context, identity models.Identity, patch models.ProfilePatch) (*models.Profile, error) {
	if fieldErrs, ok := validation.Profile(patch); !ok {
		return nil, reject("profile.upsert", models.NewFieldValidationError(fieldErrs))
	}

	if patch.Handle != nil {
		taken, err := s.handleTakenByOther(ctx, *patch.Handle, identity.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, reject("profile.upsert", models.NewConflictError("That handle already exists"))
		}
	}

	existing, err := s.profileRepo.GetByUserID(ctx, identity.ID)
	switch {
	case err == nil:
		updated := patch.Apply(*existing)
		if err := s.profileRepo.Update(ctx, &updated); err != nil {
			return nil, err
		}
	case isNotFound(err):
		created := patch.Apply(models.Profile{UserID: identity.ID})
		if err := s.profileRepo.Create(ctx, &created); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, identity.ID)
}

// handleTakenByOther reports whether a different user already owns the handle.
// The check is advisory; the unique index backstops concurrent claims.
func (s *ProfileService) handleTakenByOther(ctx context.Context, handle string, userID uint) (bool, error) {
	owner, err := s.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		return false, err
	}
	return owner != nil && owner.UserID != userID, nil
}

// AddExperience validates and inserts a work history entry at the head of the
// caller's experience sequence.
func (s *ProfileService) AddExperience(ctx context.Context, identity models.Identity, in ExperienceInput) (*models.Profile, error) {
	if fieldErrs, ok := validation.Experience(in.Title, in.Company, in.From); !ok {
		return nil, reject("experience.add", models.NewFieldValidationError(fieldErrs))
	}

	profile, err := s.profileRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	entry := &models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, entry); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, identity.ID)
}

// DeleteExperience removes one entry from the caller's profile. A missing
// entry is an explicit error, never a silent no-op.
func (s *ProfileService) DeleteExperience(ctx context.Context, identity models.Identity, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.DeleteExperience(ctx, profile.ID, entryID); err != nil {
		return nil, reject("experience.delete", err)
	}

	return s.profileRepo.GetByUserID(ctx, identity.ID)
}

// AddEducation validates and inserts a schooling entry at the head of the
// caller's education sequence.
func (s *ProfileService) AddEducation(ctx context.Context, identity models.Identity, in EducationInput) (*models.Profile, error) {
	if fieldErrs, ok := validation.Education(in.School, in.Degree, in.FieldOfStudy, in.From); !ok {
		return nil, reject("education.add", models.NewFieldValidationError(fieldErrs))
	}

	profile, err := s.profileRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	entry := &models.Education{
		ProfileID:    profile.ID,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, entry); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, identity.ID)
}

// DeleteEducation removes one entry from the caller's profile.
func (s *ProfileService) DeleteEducation(ctx context.Context, identity models.Identity, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.DeleteEducation(ctx, profile.ID, entryID); err != nil {
		return nil, reject("education.delete", err)
	}

	return s.profileRepo.GetByUserID(ctx, identity.ID)
}

// DeleteAccount removes the caller's profile, then the account itself.
// The two removals are separate documents and are NOT atomic together: a
// crash between them leaves an account without a profile. That orphan is an
// accepted limitation; a store failure on the first removal aborts the
// sequence before the account is touched.
func (s *ProfileService) DeleteAccount(ctx context.Context, identity models.Identity) error {
	span, ctx := observability.NewSpan(ctx, "account.delete")
	defer span.End()
	span.AddAttributes(attribute.Int("user.id", int(identity.ID)))

	if err := s.profileRepo.DeleteByUserID(ctx, identity.ID); err != nil {
		span.SetError(err)
		return err
	}
	if err := s.userRepo.Delete(ctx, identity.ID); err != nil {
		span.SetError(err)
		return err
	}
	return nil
}

// isNotFound reports whether err carries the NOT_FOUND taxonomy code.
func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
