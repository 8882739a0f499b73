package report

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
)

const (
	// StorageKey holds every saved report as a single JSON array
	StorageKey = "lastnext24_reports"
	// KeyPrefix namespaces every key this service writes
	KeyPrefix = "lastnext24_"
	// AudioKeyPrefix is followed by the report id
	AudioKeyPrefix = "lastnext24_audio_"
)

// Report is one daily status update. Date is YYYY-MM-DD, timestamps are RFC3339.
type Report struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Date      string  `json:"date"`
	Content   string  `json:"content"`
	Summary   *string `json:"summary,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// StoredReport is the persisted form of a report created through the API
type StoredReport struct {
	Report
	Title        *string `json:"title,omitempty"`
	AudioBlobKey *string `json:"audio_blob_key,omitempty"`
	HasAudio     bool    `json:"has_audio,omitempty"`
}

// Identity is the acting session
type Identity struct {
	UserID string
	Role   user.Role
}

func AudioKey(reportID string) string {
	return AudioKeyPrefix + reportID
}

// Reports strips storage-only fields
func Reports(stored []StoredReport) []Report {
	result := make([]Report, 0, len(stored))
	for _, s := range stored {
		result = append(result, s.Report)
	}
	return result
}
