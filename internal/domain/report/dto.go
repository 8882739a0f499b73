package report

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

// AudioUpload is a recording attached to a new report
type AudioUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

type CreateReportRequest struct {
	Title   *string      `json:"title,omitempty"`
	Content string       `json:"content"`
	Date    string       `json:"date"`
	Audio   *AudioUpload `json:"-"`
}

func (r *CreateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Audio != nil && len(r.Audio.Data) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "audio",
			Message: "audio file is empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateReportRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Date    *string `json:"date,omitempty"`
}

func (r *UpdateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title == nil && r.Content == nil && r.Date == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of title, content or date is required",
		})
	}

	if r.Content != nil && validator.IsEmpty(*r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content cannot be empty",
		})
	}

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name,omitempty"`
	UserRole  string  `json:"user_role,omitempty"`
	Date      string  `json:"date"`
	Title     *string `json:"title,omitempty"`
	Content   string  `json:"content"`
	Summary   *string `json:"summary,omitempty"`
	HasAudio  bool    `json:"has_audio"`
	AudioURL  *string `json:"audio_url,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func ToResponse(r StoredReport) ReportResponse {
	return ReportResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date,
		Title:     r.Title,
		Content:   r.Content,
		Summary:   r.Summary,
		HasAudio:  r.HasAudio,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type StatsResponse struct {
	TotalReports     int   `json:"total_reports"`
	UserReports      int   `json:"user_reports"`
	StorageKeys      int   `json:"storage_keys"`
	StorageUsedBytes int64 `json:"storage_used_bytes"`
}

type ClearResponse struct {
	KeysRemoved  int `json:"keys_removed"`
	BlobsRemoved int `json:"blobs_removed"`
}
