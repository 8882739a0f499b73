package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
)

type HealthInfo struct {
	Status      string            `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Headers     HealthHeaders     `json:"headers"`
	Environment HealthEnvironment `json:"environment"`
	OpenAI      HealthOpenAI      `json:"openai"`
	Storage     HealthStorage     `json:"storage"`
}

type HealthHeaders struct {
	ContentType string `json:"content_type,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	Host        string `json:"host"`
}

type HealthEnvironment struct {
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Timezone  string `json:"timezone"`
}

type HealthOpenAI struct {
	Configured bool `json:"configured"`
	KeyLength  int  `json:"key_length"`
}

type HealthStorage struct {
	Backend string `json:"backend"`
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	openAIKey      string
	storageBackend string
}

func NewHealthHandler(openAIKey, storageBackend string) HealthHandler {
	return &healthHandlerImpl{openAIKey: openAIKey, storageBackend: storageBackend}
}

// Health handles GET /api/health. Only the key length is reported, never the key.
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ua := r.UserAgent()
	if len(ua) > 50 {
		ua = ua[:50]
	}

	response.Success(w, HealthInfo{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Method:    r.Method,
		URL:       r.URL.RequestURI(),
		Headers: HealthHeaders{
			ContentType: r.Header.Get("Content-Type"),
			UserAgent:   ua,
			Host:        r.Host,
		},
		Environment: HealthEnvironment{
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			Timezone:  time.Local.String(),
		},
		OpenAI: HealthOpenAI{
			Configured: h.openAIKey != "",
			KeyLength:  len(h.openAIKey),
		},
		Storage: HealthStorage{Backend: h.storageBackend},
	})
}
