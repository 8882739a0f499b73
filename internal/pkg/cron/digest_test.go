package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/fixtures"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/sse"
	"github.com/lastnext24/lastnext24-backend-go/internal/service/organization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoSource struct{}

func (demoSource) AllReports(ctx context.Context) ([]report.Report, error) {
	return fixtures.DemoReports(), nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events map[string]sse.Event
}

func (p *capturePublisher) Publish(userID string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[userID] = event
}

func TestDigestJobs_PublishReportingRates(t *testing.T) {
	dir := fixtures.Directory()
	orgSvc := organization.NewOrganizationService(dir, fixtures.Projects(), demoSource{})
	pub := &capturePublisher{events: make(map[string]sse.Event)}
	rate := func(reported, total int) aggregation.ReportingRate {
		return aggregation.ReportingRate{Reported: reported, Total: total, Percentage: reported * 100 / total}
	}
	jobs := NewDigestJobs(dir, orgSvc, pub, rate)
	jobs.now = func() time.Time { return time.Date(2025, 9, 11, 23, 0, 0, 0, time.UTC) }

	err := jobs.PublishReportingRates(context.Background())

	require.NoError(t, err)
	assert.Len(t, pub.events, 8)

	e := pub.events["mgr-005"]
	assert.Equal(t, sse.EventReportingRate, e.Event)
	payload, ok := e.Data.(ReportingRatePayload)
	require.True(t, ok)
	assert.Equal(t, "2025-09-11", payload.Date)
	assert.Equal(t, aggregation.ReportingRate{Reported: 1, Total: 3, Percentage: 33}, payload.ReportingRate)
	assert.Equal(t, []string{"Isabella Wright", "Tyler Scott"}, payload.Missing)

	full := pub.events["mgr-001"].Data.(ReportingRatePayload)
	assert.Empty(t, full.Missing)
	assert.NotNil(t, full.Missing)
}

func TestDigestJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(0)
	jobs := NewDigestJobs(fixtures.Directory(), nil, nil, nil)

	jobs.RegisterJobs(s, time.Hour)

	assert.Equal(t, []string{"team_reporting_rate_digest"}, s.Jobs())
}

func TestDigestJobs_StopsOnCancel(t *testing.T) {
	dir := fixtures.Directory()
	orgSvc := organization.NewOrganizationService(dir, nil, demoSource{})
	jobs := NewDigestJobs(dir, orgSvc, &capturePublisher{events: make(map[string]sse.Event)}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := jobs.PublishReportingRates(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
