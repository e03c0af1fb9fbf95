package repository

import (
	"context"
	"errors"

	"devconnector/internal/cache"
	"devconnector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles and their
// owned experience/education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, entry *models.Experience) error
	DeleteExperience(ctx context.Context, profileID, entryID uint) error
	AddEducation(ctx context.Context, entry *models.Education) error
	DeleteEducation(ctx context.Context, profileID, entryID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withEntries preloads the owned collections newest-first. Newest-first is an
// observable contract: entries are inserted at the head of their sequence.
func withEntries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("experiences.id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("educations.id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := withEntries(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewStoreError(err)
	}
	return &profile, nil
}

// GetByHandle returns (nil, nil) when no profile claims the handle.
func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	err := withEntries(r.db.WithContext(ctx)).
		Where("handle = ?", handle).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := cache.Aside(ctx, cache.ProfilesListKey(), &profiles, cache.ListTTL, func() error {
		return withEntries(r.db.WithContext(ctx)).Find(&profiles).Error
	})
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("That handle already exists")
		}
		return models.NewStoreError(err)
	}
	cache.InvalidateProfilesList(ctx)
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(profile).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("That handle already exists")
		}
		return models.NewStoreError(err)
	}
	cache.InvalidateProfilesList(ctx)
	return nil
}

// DeleteByUserID removes the profile and its owned entries in one
// transaction; the profile aggregate is one document, so its removal is
// all-or-nothing.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
	if err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidateProfilesList(ctx)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, entry *models.Experience) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidateProfilesList(ctx)
	return nil
}

// DeleteExperience removes one entry scoped to its owning profile. A missing
// entry is reported, never silently ignored.
func (r *profileRepository) DeleteExperience(ctx context.Context, profileID, entryID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&models.Experience{})
	if result.Error != nil {
		return models.NewStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Experience", entryID)
	}
	cache.InvalidateProfilesList(ctx)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, entry *models.Education) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidateProfilesList(ctx)
	return nil
}

func (r *profileRepository) DeleteEducation(ctx context.Context, profileID, entryID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&models.Education{})
	if result.Error != nil {
		return models.NewStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Education", entryID)
	}
	cache.InvalidateProfilesList(ctx)
	return nil
}
