// Package service implements the application's orchestration layer. Every
// operation takes the authenticated identity explicitly; ownership is
// enforced here, before any write reaches the repositories.
package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

// tokenIssuer abstracts token creation for login responses.
type tokenIssuer interface {
	Issue(identity models.Identity) (string, error)
}

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   tokenIssuer
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens tokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates a new account. The avatar URL is derived from the email;
// a duplicate email yields a conflict and no new user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if fieldErrs, ok := validation.Register(in.Name, in.Email, in.Password); !ok {
		return nil, reject("register", models.NewFieldValidationError(fieldErrs))
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, reject("register", models.NewConflictError("Email already exists"))
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewStoreError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Avatar:   gravatarURL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a bearer token embedding the
// identity claims. The same failure is reported for an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	if fieldErrs, ok := validation.Login(in.Email, in.Password); !ok {
		return "", nil, reject("login", models.NewFieldValidationError(fieldErrs))
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !auth.VerifyPassword(in.Password, user.Password) {
		return "", nil, reject("login", models.NewUnauthenticatedError("Invalid credentials"))
	}

	token, err := s.tokens.Issue(models.Identity{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return "", nil, models.NewStoreError(err)
	}
	return token, user, nil
}

// CurrentUser returns the account behind the authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	return s.userRepo.GetByID(ctx, identity.ID)
}

// gravatarURL derives the default avatar URL from an email address
// (size 200, rating pg, mystery-man fallback).
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

// reject counts an orchestrator rejection for observability and passes the
// error through unchanged.
func reject(operation string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		observability.MutationRejections.WithLabelValues(operation, appErr.Code).Inc()
	}
	return err
}
