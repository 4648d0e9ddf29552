package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tinylink/tinylink-cli/internal/client/api"
	"github.com/tinylink/tinylink-cli/internal/client/models"
	"github.com/tinylink/tinylink-cli/internal/common"
	"github.com/tinylink/tinylink-cli/internal/logging"
)

// MinPasswordLength is enforced locally before a change-password request
// is issued.
const MinPasswordLength = 6

// ProfileService reads and updates the authenticated account.
type ProfileService interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, username, email string) error
	ChangePassword(ctx context.Context, current, next, confirm string) error
}

type profileService struct {
	api Caller
	log logging.Logger
}

func NewProfileService(api Caller, log logging.Logger) ProfileService {
	return &profileService{api: api, log: log.With("component", "profile")}
}

func (s *profileService) Get(ctx context.Context) (*models.Profile, error) {
	res, err := s.api.Call(ctx, "/api/user/profile", api.Options{})
	if err != nil {
		return nil, fmt.Errorf("fetching profile failed: %w", err)
	}
	if res.JSON == nil {
		return nil, api.ErrInvalidResponse
	}

	var profile models.Profile
	if err := json.Unmarshal(res.JSON, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrInvalidResponse, err)
	}
	return &profile, nil
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *profileService) Update(ctx context.Context, username, email string) error {
	if username == "" || email == "" {
		return fmt.Errorf("%w: username and email are required", common.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: %q is not a valid email address", common.ErrValidation, email)
	}

	_, err := s.api.Call(ctx, "/api/user/profile", api.Options{
		Method: http.MethodPut,
		Body:   updateProfileRequest{Username: username, Email: email},
	})
	if err != nil {
		return fmt.Errorf("updating profile failed: %w", err)
	}
	return nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword validates the password rules locally; nothing reaches
// the network until they pass.
func (s *profileService) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return fmt.Errorf("%w: all password fields are required", common.ErrValidation)
	}
	if next != confirm {
		return fmt.Errorf("%w: new passwords do not match", common.ErrValidation)
	}
	if len(next) < MinPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters long", common.ErrValidation, MinPasswordLength)
	}

	_, err := s.api.Call(ctx, "/api/user/change-password", api.Options{
		Method: http.MethodPost,
		Body:   changePasswordRequest{CurrentPassword: current, NewPassword: next},
	})
	if err != nil {
		return fmt.Errorf("changing password failed: %w", err)
	}
	return nil
}
