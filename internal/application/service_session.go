package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// Login checks configured credentials and issues a signed bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return Session{}, domain.ErrInvalidInput
	}
	if s.credentials == nil || s.hasher == nil || s.tokenSigner == nil {
		return Session{}, domain.ErrInvalidCredentials
	}
	cred, ok := s.credentials.Lookup(username)
	if !ok {
		return Session{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		slog.Default().WarnContext(ctx, "login rejected",
			"module", "application",
			"layer", "application",
			"operation", "login",
			"outcome", "failure",
			"username", username,
		)
		return Session{}, domain.ErrInvalidCredentials
	}

	now := s.nowFn()
	role := domain.ParseRole(cred.Role)
	claims := ports.AuthClaims{
		SubjectID: cred.SubjectID,
		Username:  cred.Username,
		Role:      string(role),
		SessionID: uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	}
	token, err := s.tokenSigner.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	slog.Default().InfoContext(ctx, "session issued",
		"module", "application",
		"layer", "application",
		"operation", "login",
		"outcome", "success",
		"subject_id", cred.SubjectID,
		"role", string(role),
	)
	return Session{AccessToken: token, ExpiresAt: claims.ExpiresAt, Role: role}, nil
}

// ResolveActor turns a bearer token into an actor. No token means anonymous.
func (s *Service) ResolveActor(_ context.Context, rawToken string) (domain.Actor, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return domain.AnonymousActor(), nil
	}
	if s.tokenSigner == nil {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	claims, err := s.tokenSigner.ParseAndValidate(rawToken)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return domain.Actor{ID: claims.SubjectID, Role: domain.ParseRole(claims.Role)}, nil
}
