package http

import (
	"net/http"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/summary"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
)

type SummarizeHandler interface {
	Summarize(w http.ResponseWriter, r *http.Request)
}

type summarizeHandlerImpl struct {
	summaryService summary.Service
}

func NewSummarizeHandler(summaryService summary.Service) SummarizeHandler {
	return &summarizeHandlerImpl{summaryService: summaryService}
}

// Summarize handles POST /api/summarize
func (h *summarizeHandlerImpl) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summary.SummarizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.summaryService.Summarize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
