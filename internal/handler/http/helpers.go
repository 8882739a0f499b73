package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/middleware"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
)

// maxJSONBody caps request bodies that are not uploads
const maxJSONBody = 1 << 20

// decodeJSON reads a JSON body into v, writing a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			response.BadRequest(w, "Request body is required", nil)
			return false
		}
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// identityFromRequest returns the session identity, writing a 401 when absent
func identityFromRequest(w http.ResponseWriter, r *http.Request) (report.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return report.Identity{}, false
	}
	return identity, true
}

// dateParam reads ?date=, defaulting to today in UTC
func dateParam(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return today()
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
