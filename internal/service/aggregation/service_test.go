package aggregation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	summary string
	err     error
	block   bool
	calls   int
	got     []aggregation.AuthoredReport
	level   string
}

func (f *fakeSummarizer) SummarizeTeam(ctx context.Context, reports []aggregation.AuthoredReport, level string, date string) (string, error) {
	f.calls++
	f.got = reports
	f.level = level
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.summary, f.err
}

func team(t *testing.T, managerID string) []user.User {
	t.Helper()
	return fixtures.Directory().DirectReports(managerID)
}

func TestReportingRate(t *testing.T) {
	tests := []struct {
		reported, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds half away from zero
		{3, 8, 38}, // 37.5
		{3, 3, 100},
	}
	for _, tt := range tests {
		got := ReportingRate(tt.reported, tt.total)
		assert.Equal(t, tt.want, got.Percentage, "%d/%d", tt.reported, tt.total)
		assert.Equal(t, tt.reported, got.Reported)
		assert.Equal(t, tt.total, got.Total)
	}
}

func TestExtractHighlights(t *testing.T) {
	reports := []report.Report{
		{UserID: "eng-001", Content: "Finished X, blocked on Y"},
	}
	assert.Equal(t, []string{
		"✅ Finished X, blocked on Y",
		"⚠️ Finished X, blocked on Y",
	}, ExtractHighlights(reports))
}

func TestExtractHighlights_FirstSentencePerKeywordAndCap(t *testing.T) {
	reports := []report.Report{
		{Content: "Deployed the API. Completed the docs! Launched beta? Delivered slides. Achieved parity. There is an issue."},
	}
	got := ExtractHighlights(reports)
	require.Len(t, got, maxHighlights)
	assert.Equal(t, "✅ Completed the docs", got[0])
	assert.Equal(t, "✅ Launched beta", got[1])
	assert.Equal(t, "✅ Deployed the API", got[2])
}

func TestExtractHighlights_NoKeywords(t *testing.T) {
	got := ExtractHighlights([]report.Report{{Content: "Reviewed PRs"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregationService_Aggregate(t *testing.T) {
	svc := NewAggregationService(nil, time.Second)
	members := team(t, "mgr-001")
	reports := []report.Report{
		{ID: "r1", UserID: "eng-001", Date: "2025-10-01", Content: "Finished X, blocked on Y"},
	}

	// Act
	resp := svc.Aggregate(context.Background(), aggregation.AggregationRequest{
		Reports:     reports,
		TeamMembers: members,
		ManagerRole: user.RoleManager,
		Date:        "2025-10-01",
	})

	// Assert
	assert.Equal(t, aggregation.SourceLocal, resp.Source)
	assert.Equal(t, aggregation.ReportingRate{Reported: 1, Total: 3, Percentage: 33}, resp.ReportingRate)
	assert.Len(t, resp.KeyHighlights, 2)

	assert.True(t, strings.HasPrefix(resp.Summary, "## Team Summary for 10/1/2025\n\n"))
	assert.Contains(t, resp.Summary, "**Reporting Rate**: 1/3 team members (33%)")
	assert.Contains(t, resp.Summary, "Limited team reporting this period.")
	assert.Contains(t, resp.Summary, "Average report depth: 5 words")
	assert.Contains(t, resp.Summary, "Some challenges or blockers identified - requiring attention")
	assert.Contains(t, resp.Summary, "combines insights from 1 team member reports")

	assert.True(t, strings.HasPrefix(resp.AggregatedContent, resp.Summary))
	assert.Contains(t, resp.AggregatedContent, "## Detailed Team Reports:\n\n**Alex Rivera (Engineer)**:\nFinished X, blocked on Y")
}

func TestAggregationService_Aggregate_EmptyTeam(t *testing.T) {
	svc := NewAggregationService(nil, time.Second)

	resp := svc.Aggregate(context.Background(), aggregation.AggregationRequest{Date: "not-a-date"})

	assert.Equal(t, 0, resp.ReportingRate.Percentage)
	assert.Contains(t, resp.Summary, "## Team Summary for not-a-date")
	assert.Contains(t, resp.Summary, "Average report depth: 0 words")
	assert.Contains(t, resp.Summary, "No significant blockers or issues reported")
	assert.Empty(t, resp.KeyHighlights)
}

func TestAggregationService_Aggregate_OverviewBands(t *testing.T) {
	svc := NewAggregationService(nil, time.Second)
	members := fixtures.Directory().DirectReports("dir-001") // 2 managers
	reports := []report.Report{{UserID: "mgr-001", Content: "a"}, {UserID: "mgr-002", Content: "b"}}

	resp := svc.Aggregate(context.Background(), aggregation.AggregationRequest{Reports: reports, TeamMembers: members})
	assert.Contains(t, resp.Summary, "Team is actively engaged")

	resp = svc.Aggregate(context.Background(), aggregation.AggregationRequest{Reports: reports[:1], TeamMembers: members})
	assert.Contains(t, resp.Summary, "Moderate team reporting")
}

func TestAggregationService_AggregateWithAI(t *testing.T) {
	fake := &fakeSummarizer{summary: "AI summary"}
	svc := NewAggregationService(fake, time.Second)
	req := aggregation.AggregationRequest{
		Reports:     []report.Report{{UserID: "eng-002", Content: "Completed review."}},
		TeamMembers: team(t, "mgr-001"),
		ManagerRole: user.RoleManager,
		Date:        "2025-09-11",
	}

	resp := svc.AggregateWithAI(context.Background(), req)

	assert.Equal(t, aggregation.SourceAI, resp.Source)
	assert.Equal(t, "AI summary", resp.Summary)
	assert.True(t, strings.HasPrefix(resp.AggregatedContent, "AI summary\n\n## Detailed Team Reports:"))
	assert.Equal(t, []string{"✅ Completed review"}, resp.KeyHighlights)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "manager", fake.level)
	assert.Equal(t, []aggregation.AuthoredReport{{Author: "Maya Patel", Role: "Engineer", Content: "Completed review."}}, fake.got)
}

func TestAggregationService_AggregateWithAI_FallsBack(t *testing.T) {
	req := aggregation.AggregationRequest{
		Reports:     []report.Report{{UserID: "eng-001", Content: "Working"}},
		TeamMembers: team(t, "mgr-001"),
		ManagerRole: user.RoleManager,
		Date:        "2025-09-11",
	}

	tests := []struct {
		name       string
		summarizer aggregation.TeamSummarizer
	}{
		{"no summarizer", nil},
		{"error", &fakeSummarizer{err: errors.New("boom")}},
		{"blank output", &fakeSummarizer{summary: "   "}},
		{"timeout", &fakeSummarizer{block: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAggregationService(tt.summarizer, 20*time.Millisecond)
			resp := svc.AggregateWithAI(context.Background(), req)
			assert.Equal(t, aggregation.SourceLocal, resp.Source)
			assert.Contains(t, resp.Summary, "## Team Summary for 9/11/2025")
		})
	}
}

func TestAggregationService_AggregateWithAI_NoRetry(t *testing.T) {
	fake := &fakeSummarizer{err: errors.New("boom")}
	svc := NewAggregationService(fake, time.Second)

	svc.AggregateWithAI(context.Background(), aggregation.AggregationRequest{TeamMembers: team(t, "mgr-001")})

	assert.Equal(t, 1, fake.calls)
}

func TestAggregationService_FormatForManagementLevel(t *testing.T) {
	svc := NewAggregationService(nil, time.Second)
	content := svc.Aggregate(context.Background(), aggregation.AggregationRequest{
		Reports:     []report.Report{{UserID: "eng-001", Content: "Finished X"}},
		TeamMembers: team(t, "mgr-001"),
		Date:        "2025-09-11",
	}).AggregatedContent

	cto := svc.FormatForManagementLevel(content, user.RoleManager, user.RoleCTO)
	assert.True(t, strings.HasPrefix(cto, "## Team Summary"))
	assert.NotContains(t, cto, "Detailed Team Reports")

	vp := svc.FormatForManagementLevel(content, user.RoleManager, user.RoleVP)
	assert.NotContains(t, vp, "Detailed Team Reports")
	assert.Contains(t, vp, "**Manager Notes**")

	assert.Equal(t, content, svc.FormatForManagementLevel(content, user.RoleManager, user.RoleDirector))
	assert.Equal(t, content, svc.FormatForManagementLevel(content, user.RoleDirector, user.RoleCTO))

	plain := strings.Repeat("x", 600)
	truncated := svc.FormatForManagementLevel(plain, user.RoleManager, user.RoleCTO)
	assert.Equal(t, strings.Repeat("x", 500)+"...", truncated)
}
