package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/sse"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/storage"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

// TimestampLayout matches JavaScript's Date.toISOString
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	idAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLength = 9
	audioURLExpiry = 15 * time.Minute
)

// EventPublisher delivers notifications to a user's open streams
type EventPublisher interface {
	Publish(userID string, event sse.Event)
}

type ReportServiceImpl struct {
	repo   report.Repository
	blobs  storage.FileStorage
	dir    *user.Directory
	events EventPublisher
	now    func() time.Time
}

func NewReportService(repo report.Repository, blobs storage.FileStorage, dir *user.Directory, events EventPublisher) *ReportServiceImpl {
	return &ReportServiceImpl{
		repo:   repo,
		blobs:  blobs,
		dir:    dir,
		events: events,
		now:    time.Now,
	}
}

func (s *ReportServiceImpl) newID() string {
	suffix := make([]byte, idSuffixLength)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("report_%d_%s", s.now().UnixMilli(), suffix)
}

func (s *ReportServiceImpl) timestamp() string {
	return s.now().UTC().Format(TimestampLayout)
}

func (s *ReportServiceImpl) Create(ctx context.Context, identity report.Identity, req report.CreateReportRequest) (report.StoredReport, error) {
	if err := req.Validate(); err != nil {
		return report.StoredReport{}, err
	}

	now := s.timestamp()
	r := report.StoredReport{
		Report: report.Report{
			ID:        s.newID(),
			UserID:    identity.UserID,
			Date:      req.Date,
			Content:   req.Content,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title: req.Title,
	}

	if req.Audio != nil {
		if err := checkAudio(req.Audio); err != nil {
			return report.StoredReport{}, err
		}
		// A failed upload keeps the report, just without audio
		key, err := s.blobs.Upload(ctx, bytes.NewReader(req.Audio.Data), report.AudioKey(r.ID), req.Audio.ContentType)
		if err != nil {
			slog.Warn("failed to store audio, saving report without audio", "report_id", r.ID, "error", err)
		} else {
			r.HasAudio = true
			r.AudioBlobKey = &key
		}
	}

	err := s.repo.Modify(ctx, func(reports []report.StoredReport) ([]report.StoredReport, error) {
		return append(reports, r), nil
	})
	if err != nil {
		if r.AudioBlobKey != nil {
			if derr := s.blobs.Delete(ctx, *r.AudioBlobKey); derr != nil {
				slog.Warn("failed to remove audio data", "report_id", r.ID, "error", derr)
			}
		}
		return report.StoredReport{}, fmt.Errorf("failed to save report: %w", err)
	}

	slog.Info("report created", "report_id", r.ID, "user_id", r.UserID, "date", r.Date, "has_audio", r.HasAudio)
	s.notifyManager(r)
	return r, nil
}

func checkAudio(a *report.AudioUpload) error {
	opts := storage.AudioUploadOptions
	if int64(len(a.Data)) > opts.MaxSize {
		return report.ErrAudioTooLarge
	}
	ext := strings.ToLower(filepath.Ext(a.Filename))
	if ext == "" || validator.IsInSlice(ext, opts.AllowedExts) {
		return nil
	}
	if strings.HasPrefix(a.ContentType, "audio/") || strings.HasPrefix(a.ContentType, "video/") {
		return nil
	}
	return report.ErrAudioUnsupported
}

func (s *ReportServiceImpl) notifyManager(r report.StoredReport) {
	if s.events == nil || s.dir == nil {
		return
	}
	mgr, ok := s.dir.Manager(r.UserID)
	if !ok {
		return
	}
	s.events.Publish(mgr.ID, sse.Event{
		Event: sse.EventReportCreated,
		Data: map[string]interface{}{
			"report_id": r.ID,
			"user_id":   r.UserID,
			"date":      r.Date,
		},
	})
}

func (s *ReportServiceImpl) GetByID(ctx context.Context, id string) (report.StoredReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return report.StoredReport{}, err
	}
	for _, r := range reports {
		if r.ID == id {
			return r, nil
		}
	}
	return report.StoredReport{}, report.ErrReportNotFound
}

// ListByUser returns userID's reports, newest first
func (s *ReportServiceImpl) ListByUser(ctx context.Context, userID string) ([]report.StoredReport, error) {
	return s.list(ctx, func(r report.StoredReport) bool { return r.UserID == userID })
}

// ListByDate returns userID's reports for date, newest first
func (s *ReportServiceImpl) ListByDate(ctx context.Context, date, userID string) ([]report.StoredReport, error) {
	return s.list(ctx, func(r report.StoredReport) bool { return r.UserID == userID && r.Date == date })
}

// ListAll returns every stored report in insertion order
func (s *ReportServiceImpl) ListAll(ctx context.Context) ([]report.StoredReport, error) {
	return s.repo.List(ctx)
}

func (s *ReportServiceImpl) list(ctx context.Context, keep func(report.StoredReport) bool) ([]report.StoredReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]report.StoredReport, 0)
	for _, r := range reports {
		if keep(r) {
			out = append(out, r)
		}
	}
	SortNewestFirst(out, func(r report.StoredReport) string { return r.CreatedAt })
	return out, nil
}

func (s *ReportServiceImpl) Update(ctx context.Context, identity report.Identity, id string, req report.UpdateReportRequest) (report.StoredReport, error) {
	if err := req.Validate(); err != nil {
		return report.StoredReport{}, err
	}

	var updated report.StoredReport
	err := s.repo.Modify(ctx, func(reports []report.StoredReport) ([]report.StoredReport, error) {
		i := indexOf(reports, id)
		if i < 0 {
			return nil, report.ErrReportNotFound
		}
		if reports[i].UserID != identity.UserID {
			return nil, report.ErrNotAuthorized
		}

		r := reports[i]
		if req.Title != nil {
			r.Title = req.Title
		}
		if req.Content != nil {
			r.Content = *req.Content
		}
		if req.Date != nil {
			r.Date = *req.Date
		}
		r.UpdatedAt = s.timestamp()

		reports[i] = r
		updated = r
		return reports, nil
	})
	if err != nil {
		return report.StoredReport{}, err
	}
	return updated, nil
}

// Delete reports false when id does not exist
func (s *ReportServiceImpl) Delete(ctx context.Context, identity report.Identity, id string) (bool, error) {
	existing, err := s.GetByID(ctx, id)
	if errors.Is(err, report.ErrReportNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if existing.UserID != identity.UserID {
		return false, report.ErrNotAuthorized
	}

	if existing.AudioBlobKey != nil {
		if err := s.blobs.Delete(ctx, *existing.AudioBlobKey); err != nil {
			slog.Warn("failed to remove audio data", "report_id", id, "error", err)
		}
	}

	deleted := false
	err = s.repo.Modify(ctx, func(reports []report.StoredReport) ([]report.StoredReport, error) {
		i := indexOf(reports, id)
		if i < 0 {
			return reports, nil
		}
		if reports[i].UserID != identity.UserID {
			return nil, report.ErrNotAuthorized
		}
		deleted = true
		return append(reports[:i], reports[i+1:]...), nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *ReportServiceImpl) Stats(ctx context.Context, identity report.Identity) (report.StatsResponse, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return report.StatsResponse{}, err
	}
	own := 0
	for _, r := range reports {
		if r.UserID == identity.UserID {
			own++
		}
	}
	keys, used, err := s.repo.Usage(ctx)
	if err != nil {
		return report.StatsResponse{}, fmt.Errorf("failed to calculate storage usage: %w", err)
	}
	return report.StatsResponse{
		TotalReports:     len(reports),
		UserReports:      own,
		StorageKeys:      keys,
		StorageUsedBytes: used,
	}, nil
}

func (s *ReportServiceImpl) ClearAll(ctx context.Context) (report.ClearResponse, error) {
	keys, err := s.repo.Clear(ctx)
	if err != nil {
		return report.ClearResponse{}, fmt.Errorf("failed to clear reports: %w", err)
	}

	blobs, err := s.blobs.List(ctx, report.AudioKeyPrefix)
	if err != nil {
		return report.ClearResponse{KeysRemoved: keys}, fmt.Errorf("failed to list audio: %w", err)
	}
	for _, b := range blobs {
		if err := s.blobs.Delete(ctx, b); err != nil {
			return report.ClearResponse{KeysRemoved: keys}, fmt.Errorf("failed to remove audio: %w", err)
		}
	}
	return report.ClearResponse{KeysRemoved: keys, BlobsRemoved: len(blobs)}, nil
}

func (s *ReportServiceImpl) AudioURL(ctx context.Context, r report.StoredReport) (string, error) {
	if r.AudioBlobKey == nil {
		return "", report.ErrReportNotFound
	}
	return s.blobs.GetURL(ctx, *r.AudioBlobKey, audioURLExpiry)
}

func indexOf(reports []report.StoredReport, id string) int {
	for i, r := range reports {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// SortNewestFirst orders items by their created_at timestamp, descending.
// Unparseable timestamps sort last.
func SortNewestFirst[T any](items []T, createdAt func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return parseTime(createdAt(items[i])).After(parseTime(createdAt(items[j])))
	})
}

func parseTime(s string) time.Time {
	t, ok := validator.IsValidDateTime(s)
	if !ok {
		return time.Time{}
	}
	return t
}

var _ report.Service = (*ReportServiceImpl)(nil)
