package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/transcription"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/jwt"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/llm"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/whisper"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		message := ""
		if len(validationErrs) > 0 {
			message = validationErrs[0].Message
		}
		ValidationError(w, message, validationErrs.ToMap())
		return
	}

	var opErr *llm.OperationError
	var upstreamErr *whisper.UpstreamError

	switch {
	// Session
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired session token")

	// Organization
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrRoleMismatch):
		BadRequest(w, "User does not hold the requested role", nil)
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Reports
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrNotAuthorized):
		Forbidden(w, "Not authorized to modify this report")
	case errors.Is(err, report.ErrInvalidReportID):
		BadRequest(w, "Invalid report id", nil)
	case errors.Is(err, report.ErrAudioTooLarge):
		RequestTooLarge(w, "Audio attachment exceeds 25MB")
	case errors.Is(err, report.ErrAudioUnsupported):
		BadRequest(w, "Unsupported audio format", nil)

	// Transcription
	case errors.Is(err, transcription.ErrServiceUnavailable):
		ServiceUnavailable(w, "Transcription service unavailable: OpenAI API key not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, transcription.ErrNotMultipart),
		errors.Is(err, transcription.ErrNoAudio),
		errors.Is(err, transcription.ErrEmptyAudio),
		errors.Is(err, transcription.ErrInvalidForm):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, transcription.ErrUpstream), errors.As(err, &upstreamErr):
		slog.Error("transcription upstream failure", "error", err)
		BadGateway(w, "OpenAI Whisper API call failed")

	// LLM
	case errors.Is(err, llm.ErrNotConfigured):
		ServiceUnavailable(w, "OpenAI API key not configured")
	case errors.As(err, &opErr):
		slog.Error("llm operation failed", "operation", opErr.Op, "error", opErr.Err)
		InternalServerError(w, opErr.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
