package http

import (
	"log/slog"
	"net/http"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/session"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/middleware"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
)

type SessionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SSEToken(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	sessionService session.Service
}

func NewSessionHandler(sessionService session.Service) SessionHandler {
	return &sessionHandlerImpl{sessionService: sessionService}
}

// Create handles POST /api/v1/session
func (h *sessionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req session.CreateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.sessionService.Create(r.Context(), req)
	if err != nil {
		slog.Warn("Session create failed", "role", req.Role, "user_id", req.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session created", resp)
}

// Get handles GET /api/v1/session
func (h *sessionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	response.Success(w, h.sessionService.Identity(r.Context(), identity))
}

// SSEToken handles POST /api/v1/session/sse-token
func (h *sessionHandlerImpl) SSEToken(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.sessionService.SSEToken(r.Context(), identity)
	if err != nil {
		slog.Error("SSE token generation failed", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, resp)
}

// End handles DELETE /api/v1/session
func (h *sessionHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	h.sessionService.End(r.Context(), s.TokenID, s.ExpiresAt)
	response.SuccessWithMessage(w, "Session ended", nil)
}
