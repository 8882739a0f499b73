package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/session"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/jwt"
)

type SessionServiceImpl struct {
	dir    *user.Directory
	tokens jwt.Service
}

func NewSessionService(dir *user.Directory, tokens jwt.Service) session.Service {
	return &SessionServiceImpl{dir: dir, tokens: tokens}
}

// Create issues a token for the chosen demo role. Without a user id the
// role's synthetic id is used; a given id must exist and hold the role.
func (s *SessionServiceImpl) Create(ctx context.Context, req session.CreateSessionRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}
	role := user.Role(req.Role)

	userID := session.SyntheticUserID(role)
	if req.UserID != "" {
		u, ok := s.dir.GetByID(req.UserID)
		if !ok {
			return session.SessionResponse{}, user.ErrUserNotFound
		}
		if u.Role != role {
			return session.SessionResponse{}, fmt.Errorf("%w: %s is %s", user.ErrRoleMismatch, u.ID, u.Role)
		}
		userID = u.ID
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(userID, role)
	if err != nil {
		return session.SessionResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("session created", "user_id", userID, "role", role)
	return session.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Identity:    s.Identity(ctx, report.Identity{UserID: userID, Role: role}),
	}, nil
}

func (s *SessionServiceImpl) Identity(ctx context.Context, identity report.Identity) session.IdentityResponse {
	resp := session.IdentityResponse{
		UserID:    identity.UserID,
		Role:      string(identity.Role),
		Synthetic: session.IsSynthetic(identity.UserID),
	}
	if u, ok := s.dir.GetByID(identity.UserID); ok {
		name := u.Name
		resp.Name = &name
	}
	return resp
}

func (s *SessionServiceImpl) SSEToken(ctx context.Context, identity report.Identity) (session.SSETokenResponse, error) {
	token, expiresIn, err := s.tokens.GenerateSSEToken(identity.UserID, identity.Role)
	if err != nil {
		return session.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return session.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

func (s *SessionServiceImpl) End(ctx context.Context, tokenID string, expiresAt time.Time) {
	s.tokens.RevokeToken(tokenID, expiresAt)
	slog.Info("session ended", "token_id", tokenID)
}
