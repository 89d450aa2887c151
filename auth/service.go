package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anasir-dev/portfolio-backend/database"
	"github.com/anasir-dev/portfolio-backend/errs"
	"github.com/anasir-dev/portfolio-backend/models"
)

// Service owns the credential store and the token service: seeding the single
// admin record and exchanging credentials for session tokens.
type Service struct {
	logger zerolog.Logger
	admins *database.AdminRepo
	tokens *TokenService
}

func NewService(admins *database.AdminRepo, tokens *TokenService) *Service {
	return &Service{
		logger: log.With().Str("serviceName", "authService").Logger(),
		admins: admins,
		tokens: tokens,
	}
}

// Seed creates the admin record on first boot. An existing record always wins;
// when none exists, username and password must both be provided — the service
// refuses to invent default credentials.
func (s *Service) Seed(ctx context.Context, username, password string) error {
	if _, err := s.admins.Get(ctx); err == nil {
		return nil
	} else if !errs.IsNotFound(err) {
		return fmt.Errorf("read admin record: %w", err)
	}

	if username == "" || password == "" {
		return fmt.Errorf("no admin record exists and ADMIN_USERNAME/ADMIN_PASSWORD are not set")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := s.admins.Put(ctx, admin); err != nil {
		return fmt.Errorf("seed admin record: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("Seeded admin record")
	return nil
}

// Login verifies the supplied credentials against the single admin record and
// issues a session token. Unknown username and wrong password are deliberately
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (token string, err error) {
	admin, err := s.admins.Get(ctx)
	if err != nil {
		if errs.IsNotFound(err) {
			return "", errs.NewInvalidCredentialsError()
		}
		return "", errs.NewStorageError("read", "admin record", err)
	}

	if username != admin.Username {
		return "", errs.NewInvalidCredentialsError()
	}

	ok, err := ComparePassword(admin.PasswordHash, password)
	if err != nil {
		return "", errs.NewStorageError("verify", "admin password", err)
	}
	if !ok {
		return "", errs.NewInvalidCredentialsError()
	}

	return s.tokens.Issue(username)
}

// Verify delegates to the token service.
func (s *Service) Verify(tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}
