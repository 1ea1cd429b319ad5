// Package auth handles account registration, password checks and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/platelog/internal/models"
)

// Authenticator registers and verifies journal owners.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's rules.
	ValidateCredential(credential string) error
}
