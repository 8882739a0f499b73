package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/organization"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/storage"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

// Visibility filters reports down to what a role may see
type Visibility interface {
	Resolve(reports []report.Report, role user.Role, userID, date string) []report.Report
}

type ReportHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Visible(w http.ResponseWriter, r *http.Request)
	Team(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
	AudioURL(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
	orgService    organization.Service
	source        report.Source
	visibility    Visibility
	dir           *user.Directory
}

func NewReportHandler(reportService report.Service, orgService organization.Service, source report.Source, visibility Visibility, dir *user.Directory) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		orgService:    orgService,
		source:        source,
		visibility:    visibility,
		dir:           dir,
	}
}

func (h *reportHandlerImpl) toResponse(r report.StoredReport) report.ReportResponse {
	resp := report.ToResponse(r)
	if u, ok := h.dir.GetByID(r.UserID); ok {
		resp.UserName = u.Name
		resp.UserRole = string(u.Role)
	}
	return resp
}

func (h *reportHandlerImpl) toResponses(reports []report.StoredReport) []report.ReportResponse {
	out := make([]report.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, h.toResponse(r))
	}
	return out
}

// Create handles POST /api/v1/reports, as JSON or as multipart with an audio file
func (h *reportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var req report.CreateReportRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, err := parseMultipartReport(w, r)
		if err != nil {
			slog.Warn("Report multipart parse failed", "error", err)
			response.HandleError(w, err)
			return
		}
		req = parsed
	} else if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.reportService.Create(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report saved", h.toResponse(created))
}

func parseMultipartReport(w http.ResponseWriter, r *http.Request) (report.CreateReportRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.AudioUploadOptions.MaxSize+maxJSONBody)
	if err := r.ParseMultipartForm(maxJSONBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return report.CreateReportRequest{}, report.ErrAudioTooLarge
		}
		return report.CreateReportRequest{}, validator.ValidationErrors{{Field: "body", Message: "invalid multipart form"}}
	}

	req := report.CreateReportRequest{
		Content: r.FormValue("content"),
		Date:    r.FormValue("date"),
	}
	if title := r.FormValue("title"); title != "" {
		req.Title = &title
	}

	file, header, err := r.FormFile("audio")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return report.CreateReportRequest{}, validator.ValidationErrors{{Field: "audio", Message: "invalid audio file"}}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return report.CreateReportRequest{}, validator.ValidationErrors{{Field: "audio", Message: "failed to read audio file"}}
	}
	req.Audio = &report.AudioUpload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	return req, nil
}

// List handles GET /api/v1/reports, the caller's own reports, optionally for ?date=
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var (
		reports []report.StoredReport
		err     error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		if _, valid := validator.IsValidDate(date); !valid {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		reports, err = h.reportService.ListByDate(r.Context(), date, identity.UserID)
	} else {
		reports, err = h.reportService.ListByUser(r.Context(), identity.UserID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.toResponses(reports))
}

func (h *reportHandlerImpl) reportIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidReportID(id) {
		response.HandleError(w, report.ErrInvalidReportID)
		return "", false
	}
	return id, true
}

// GetByID handles GET /api/v1/reports/{id}
func (h *reportHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reportIDParam(w, r)
	if !ok {
		return
	}

	found, err := h.reportService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.toResponse(found))
}

// Update handles PUT /api/v1/reports/{id}
func (h *reportHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := h.reportIDParam(w, r)
	if !ok {
		return
	}

	var req report.UpdateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.reportService.Update(r.Context(), identity, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report updated", h.toResponse(updated))
}

// Delete handles DELETE /api/v1/reports/{id}
func (h *reportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := h.reportIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.reportService.Delete(r.Context(), identity, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !deleted {
		response.HandleError(w, report.ErrReportNotFound)
		return
	}

	response.SuccessWithMessage(w, "Report deleted", nil)
}

// Stats handles GET /api/v1/reports/stats
func (h *reportHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.reportService.Stats(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Visible handles GET /api/v1/reports/visible?date=, demo and stored reports
// filtered by the caller's role
func (h *reportHandlerImpl) Visible(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	all, err := h.source.AllReports(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	visible := h.visibility.Resolve(all, identity.Role, identity.UserID, dateParam(r))
	response.Success(w, visible)
}

// Team handles GET /api/v1/reports/team?date=&manager_id=
func (h *reportHandlerImpl) Team(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	// Managers only see their own team. Directors and above may pick any manager.
	managerID := r.URL.Query().Get("manager_id")
	if managerID == "" {
		managerID = identity.UserID
	}
	if managerID != identity.UserID && !identity.Role.IsLeader() {
		response.HandleError(w, report.ErrNotAuthorized)
		return
	}

	view, err := h.orgService.TeamView(r.Context(), managerID, dateParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// Clear handles DELETE /api/v1/reports, removing every stored key and blob
func (h *reportHandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	cleared, err := h.reportService.ClearAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Warn("Report storage cleared", "by", identity.UserID, "keys", cleared.KeysRemoved, "blobs", cleared.BlobsRemoved)
	response.SuccessWithMessage(w, "Storage cleared", cleared)
}

// AudioURL handles GET /api/v1/reports/{id}/audio-url
func (h *reportHandlerImpl) AudioURL(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reportIDParam(w, r)
	if !ok {
		return
	}

	found, err := h.reportService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !found.HasAudio {
		response.NotFound(w, "Report has no audio")
		return
	}

	url, err := h.reportService.AudioURL(r.Context(), found)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"audio_url": url})
}
