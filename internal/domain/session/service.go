package session

import (
	"context"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
)

type Service interface {
	Create(ctx context.Context, req CreateSessionRequest) (SessionResponse, error)
	Identity(ctx context.Context, identity report.Identity) IdentityResponse
	SSEToken(ctx context.Context, identity report.Identity) (SSETokenResponse, error)
	// End revokes the token with tokenID until it expires
	End(ctx context.Context, tokenID string, expiresAt time.Time)
}
