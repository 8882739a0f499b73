package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/fixtures"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/sse"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/storage"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
	"github.com/lastnext24/lastnext24-backend-go/internal/repository/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]sse.Event
}

func (p *recordingPublisher) Publish(userID string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[string][]sse.Event)
	}
	p.events[userID] = append(p.events[userID], event)
}

type failingStorage struct {
	*storage.MemoryStorage
}

func (failingStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	return "", errors.New("disk full")
}

type brokenRepo struct {
	report.Repository
}

func (brokenRepo) Modify(ctx context.Context, fn func([]report.StoredReport) ([]report.StoredReport, error)) error {
	return errors.New("store offline")
}

type stickyStorage struct {
	*storage.MemoryStorage
}

func (stickyStorage) Delete(ctx context.Context, path string) error {
	return errors.New("permission denied")
}

var (
	alex = report.Identity{UserID: "eng-001", Role: "Engineer"}
	maya = report.Identity{UserID: "eng-002", Role: "Engineer"}
)

func newService(t *testing.T) (*ReportServiceImpl, *storage.MemoryStorage, *recordingPublisher) {
	t.Helper()
	blobs := storage.NewMemoryStorage()
	pub := &recordingPublisher{}
	svc := NewReportService(kvstore.NewReportRepository(kvstore.NewMemoryStore()), blobs, fixtures.Directory(), pub)
	clock := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, blobs, pub
}

func create(t *testing.T, svc *ReportServiceImpl, who report.Identity, content string) report.StoredReport {
	t.Helper()
	r, err := svc.Create(context.Background(), who, report.CreateReportRequest{Content: content, Date: "2025-10-01"})
	require.NoError(t, err)
	return r
}

func TestReportService_Create(t *testing.T) {
	svc, _, pub := newService(t)
	title := "Daily"

	r, err := svc.Create(context.Background(), alex, report.CreateReportRequest{Title: &title, Content: "Finished X, blocked on Y", Date: "2025-10-01"})

	require.NoError(t, err)
	assert.True(t, validator.IsValidReportID(r.ID), r.ID)
	assert.Equal(t, "eng-001", r.UserID)
	assert.Equal(t, "2025-10-01T09:00:01.000Z", r.CreatedAt)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Equal(t, &title, r.Title)
	assert.False(t, r.HasAudio)

	stored, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, r, stored[0])

	require.Len(t, pub.events["mgr-001"], 1)
	assert.Equal(t, sse.EventReportCreated, pub.events["mgr-001"][0].Event)
}

func TestReportService_Create_Validation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), alex, report.CreateReportRequest{Content: "  ", Date: "10/01/2025"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestReportService_Create_WithAudio(t *testing.T) {
	svc, blobs, _ := newService(t)

	r, err := svc.Create(context.Background(), alex, report.CreateReportRequest{
		Content: "Voice note",
		Date:    "2025-10-01",
		Audio:   &report.AudioUpload{Data: []byte("RIFF"), Filename: "note.webm", ContentType: "audio/webm"},
	})

	require.NoError(t, err)
	assert.True(t, r.HasAudio)
	require.NotNil(t, r.AudioBlobKey)
	assert.Equal(t, report.AudioKey(r.ID), *r.AudioBlobKey)
	ok, _ := blobs.Exists(context.Background(), *r.AudioBlobKey)
	assert.True(t, ok)

	url, err := svc.AudioURL(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "memory://"+*r.AudioBlobKey, url)
}

func TestReportService_Create_AudioRejected(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), alex, report.CreateReportRequest{
		Content: "x", Date: "2025-10-01",
		Audio: &report.AudioUpload{Data: []byte("x"), Filename: "notes.txt", ContentType: "text/plain"},
	})
	assert.ErrorIs(t, err, report.ErrAudioUnsupported)

	_, err = svc.Create(context.Background(), alex, report.CreateReportRequest{
		Content: "x", Date: "2025-10-01",
		Audio: &report.AudioUpload{Data: make([]byte, storage.AudioUploadOptions.MaxSize+1), Filename: "a.webm"},
	})
	assert.ErrorIs(t, err, report.ErrAudioTooLarge)
}

func TestReportService_Create_AudioUploadFailureKeepsReport(t *testing.T) {
	repo := kvstore.NewReportRepository(kvstore.NewMemoryStore())
	svc := NewReportService(repo, failingStorage{storage.NewMemoryStorage()}, fixtures.Directory(), nil)

	r, err := svc.Create(context.Background(), alex, report.CreateReportRequest{
		Content: "x", Date: "2025-10-01",
		Audio: &report.AudioUpload{Data: []byte("x"), Filename: "a.webm"},
	})

	require.NoError(t, err)
	assert.False(t, r.HasAudio)
	assert.Nil(t, r.AudioBlobKey)
}

func TestReportService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.GetByID(context.Background(), "report_1_abc")

	assert.ErrorIs(t, err, report.ErrReportNotFound)
}

func TestReportService_ListByUser_NewestFirst(t *testing.T) {
	svc, _, _ := newService(t)
	first := create(t, svc, alex, "first")
	create(t, svc, maya, "other")
	second := create(t, svc, alex, "second")

	got, err := svc.ListByUser(context.Background(), "eng-001")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	byDate, err := svc.ListByDate(context.Background(), "2025-09-30", "eng-001")
	require.NoError(t, err)
	assert.Empty(t, byDate)
}

func TestReportService_Update(t *testing.T) {
	svc, _, _ := newService(t)
	r := create(t, svc, alex, "draft")
	content := "final"

	t.Run("owner", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), alex, r.ID, report.UpdateReportRequest{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "final", updated.Content)
		assert.Equal(t, r.CreatedAt, updated.CreatedAt)
		assert.NotEqual(t, r.UpdatedAt, updated.UpdatedAt)
	})

	t.Run("not owner", func(t *testing.T) {
		before, err := svc.ListAll(context.Background())
		require.NoError(t, err)
		intruder := "overwritten"

		_, err = svc.Update(context.Background(), maya, r.ID, report.UpdateReportRequest{Content: &intruder})
		assert.ErrorIs(t, err, report.ErrNotAuthorized)

		after, err := svc.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before, after)
		require.Len(t, after, 1)
		assert.Equal(t, "final", after[0].Content)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Update(context.Background(), alex, "report_1_missing", report.UpdateReportRequest{Content: &content})
		assert.ErrorIs(t, err, report.ErrReportNotFound)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := svc.Update(context.Background(), alex, r.ID, report.UpdateReportRequest{})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestReportService_Delete(t *testing.T) {
	svc, blobs, _ := newService(t)
	r, err := svc.Create(context.Background(), alex, report.CreateReportRequest{
		Content: "with audio", Date: "2025-10-01",
		Audio: &report.AudioUpload{Data: []byte("x"), Filename: "a.webm"},
	})
	require.NoError(t, err)

	before, err := svc.ListAll(context.Background())
	require.NoError(t, err)

	ok, err := svc.Delete(context.Background(), maya, r.ID)
	assert.ErrorIs(t, err, report.ErrNotAuthorized)
	assert.False(t, ok)

	after, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	require.Len(t, after, 1)
	assert.Equal(t, r.UpdatedAt, after[0].UpdatedAt)
	exists, _ := blobs.Exists(context.Background(), report.AudioKey(r.ID))
	assert.True(t, exists)

	ok, err = svc.Delete(context.Background(), alex, r.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	exists, _ = blobs.Exists(context.Background(), report.AudioKey(r.ID))
	assert.False(t, exists)

	ok, err = svc.Delete(context.Background(), alex, r.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportService_StatsAndClear(t *testing.T) {
	svc, _, _ := newService(t)
	create(t, svc, alex, "one")
	create(t, svc, maya, "two")
	_, err := svc.Create(context.Background(), alex, report.CreateReportRequest{
		Content: "three", Date: "2025-10-01",
		Audio: &report.AudioUpload{Data: []byte("x"), Filename: "a.webm"},
	})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), alex)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, 2, stats.UserReports)
	assert.Equal(t, 1, stats.StorageKeys)
	assert.Greater(t, stats.StorageUsedBytes, int64(len(report.StorageKey)))

	cleared, err := svc.ClearAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.ClearResponse{KeysRemoved: 1, BlobsRemoved: 1}, cleared)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMergedSource(t *testing.T) {
	svc, _, _ := newService(t)
	create(t, svc, alex, "stored")
	demo := fixtures.DemoReports()

	all, err := NewMergedSource(demo, svc.repo).AllReports(context.Background())

	require.NoError(t, err)
	require.Len(t, all, len(demo)+1)
	assert.Equal(t, demo[0].ID, all[0].ID)
	assert.Equal(t, "stored", all[len(all)-1].Content)
}

func TestSortNewestFirst(t *testing.T) {
	items := []string{"2025-01-01T00:00:00.000Z", "garbage", "2025-03-01T00:00:00.000Z"}

	SortNewestFirst(items, func(s string) string { return s })

	assert.Equal(t, []string{"2025-03-01T00:00:00.000Z", "2025-01-01T00:00:00.000Z", "garbage"}, items)
	assert.True(t, strings.HasPrefix(items[0], "2025-03"))
}

func TestReportService_Create_SaveFailureLogsCleanupError(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	svc := NewReportService(brokenRepo{}, stickyStorage{storage.NewMemoryStorage()}, fixtures.Directory(), nil)

	_, err := svc.Create(context.Background(), alex, report.CreateReportRequest{
		Content: "with audio", Date: "2025-10-01",
		Audio: &report.AudioUpload{Data: []byte("x"), Filename: "a.webm"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save report")
	assert.Contains(t, buf.String(), "failed to remove audio data")
	assert.Contains(t, buf.String(), "permission denied")
}
