package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const detailHeading = "## Detailed Team Reports"

var (
	winKeywords  = []string{"completed", "finished", "launched", "deployed", "delivered", "achieved"}
	riskKeywords = []string{"blocked", "issue", "problem", "delayed", "stuck"}
	// blockerKeywords drive the team status line, a subset of riskKeywords
	blockerKeywords = []string{"blocked", "issue", "problem"}

	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
	teamSummaryPart = regexp.MustCompile(`## Team Summary[^#]*`)

	errEmptySummary = errors.New("summarizer returned no text")
)

const maxHighlights = 5

type AggregationServiceImpl struct {
	summarizer aggregation.TeamSummarizer
	aiTimeout  time.Duration
}

// NewAggregationService creates the formatter. summarizer may be nil, in
// which case AggregateWithAI always uses the local formatter.
func NewAggregationService(summarizer aggregation.TeamSummarizer, aiTimeout time.Duration) aggregation.Service {
	return &AggregationServiceImpl{
		summarizer: summarizer,
		aiTimeout:  aiTimeout,
	}
}

func (s *AggregationServiceImpl) Aggregate(ctx context.Context, req aggregation.AggregationRequest) aggregation.AggregationResponse {
	rate := ReportingRate(len(req.Reports), len(req.TeamMembers))
	summary := executiveSummary(req.Reports, req.TeamMembers, rate, req.Date)

	return aggregation.AggregationResponse{
		Summary:           summary,
		AggregatedContent: withDetails(summary, req.Reports, req.TeamMembers),
		KeyHighlights:     ExtractHighlights(req.Reports),
		ReportingRate:     rate,
		Source:            aggregation.SourceLocal,
	}
}

func (s *AggregationServiceImpl) AggregateWithAI(ctx context.Context, req aggregation.AggregationRequest) aggregation.AggregationResponse {
	summary, err := s.summarize(ctx, req)
	if err != nil {
		slog.Warn("AI aggregation failed, falling back to local formatter",
			"manager_role", req.ManagerRole, "date", req.Date, "error", err)
		return s.Aggregate(ctx, req)
	}

	return aggregation.AggregationResponse{
		Summary:           summary,
		AggregatedContent: withDetails(summary, req.Reports, req.TeamMembers),
		KeyHighlights:     ExtractHighlights(req.Reports),
		ReportingRate:     ReportingRate(len(req.Reports), len(req.TeamMembers)),
		Source:            aggregation.SourceAI,
	}
}

func (s *AggregationServiceImpl) summarize(ctx context.Context, req aggregation.AggregationRequest) (string, error) {
	if s.summarizer == nil {
		return "", errors.New("no team summarizer configured")
	}
	if s.aiTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.aiTimeout)
		defer cancel()
	}

	authored := make([]aggregation.AuthoredReport, 0, len(req.Reports))
	for _, r := range req.Reports {
		name, role := author(r.UserID, req.TeamMembers)
		authored = append(authored, aggregation.AuthoredReport{Author: name, Role: role, Content: r.Content})
	}

	summary, err := s.summarizer.SummarizeTeam(ctx, authored, strings.ToLower(string(req.ManagerRole)), req.Date)
	if err != nil {
		return "", fmt.Errorf("summarize team: %w", err)
	}
	if strings.TrimSpace(summary) == "" {
		return "", errEmptySummary
	}
	return summary, nil
}

// ReportingRate is round(100 * reported / total), half away from zero. An
// empty team yields 0.
func ReportingRate(reported, total int) aggregation.ReportingRate {
	rate := aggregation.ReportingRate{Reported: reported, Total: total}
	if total == 0 {
		return rate
	}
	rate.Percentage = int(decimal.NewFromInt(int64(reported)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(0).
		IntPart())
	return rate
}

// ExtractHighlights scans each report for win keywords then risk keywords and
// emits the first sentence mentioning each one found. Duplicates are dropped
// and at most five are returned.
func ExtractHighlights(reports []report.Report) []string {
	highlights := make([]string, 0, maxHighlights)
	seen := make(map[string]bool)
	add := func(h string) {
		if !seen[h] {
			seen[h] = true
			highlights = append(highlights, h)
		}
	}

	for _, r := range reports {
		lower := strings.ToLower(r.Content)
		sentences := sentenceSplit.Split(r.Content, -1)
		for _, kw := range winKeywords {
			if s, ok := firstSentenceWith(lower, sentences, kw); ok {
				add("✅ " + s)
			}
		}
		for _, kw := range riskKeywords {
			if s, ok := firstSentenceWith(lower, sentences, kw); ok {
				add("⚠️ " + s)
			}
		}
	}

	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}
	return highlights
}

func firstSentenceWith(lowerContent string, sentences []string, keyword string) (string, bool) {
	if !strings.Contains(lowerContent, keyword) {
		return "", false
	}
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), keyword) {
			trimmed := strings.TrimSpace(s)
			return trimmed, trimmed != ""
		}
	}
	return "", false
}

func (s *AggregationServiceImpl) FormatForManagementLevel(content string, fromRole, toRole user.Role) string {
	if fromRole != user.RoleManager {
		return content
	}
	switch toRole {
	case user.RoleCTO:
		if m := teamSummaryPart.FindString(content); m != "" {
			return m
		}
		runes := []rune(content)
		if len(runes) > 500 {
			runes = runes[:500]
		}
		return string(runes) + "..."
	case user.RoleVP:
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if strings.Contains(line, detailHeading) {
				return strings.Join(lines[:i], "\n")
			}
		}
	}
	return content
}

func executiveSummary(reports []report.Report, team []user.User, rate aggregation.ReportingRate, date string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Team Summary for %s\n\n", displayDate(date))
	fmt.Fprintf(&b, "**Reporting Rate**: %d/%d team members (%d%%)\n\n", len(reports), len(team), rate.Percentage)
	fmt.Fprintf(&b, "**Overview**: %s\n\n", overview(rate.Percentage))
	fmt.Fprintf(&b, "**Team Status**: %s\n\n", teamStatus(reports))
	fmt.Fprintf(&b, "**Manager Notes**: This aggregated report combines insights from %d team member reports for effective upward communication.", len(reports))
	return b.String()
}

func withDetails(summary string, reports []report.Report, team []user.User) string {
	blocks := make([]string, 0, len(reports))
	for _, r := range reports {
		name, role := author(r.UserID, team)
		blocks = append(blocks, fmt.Sprintf("**%s (%s)**:\n%s", name, role, r.Content))
	}
	return summary + "\n\n" + detailHeading + ":\n\n" + strings.Join(blocks, "\n\n---\n\n")
}

func overview(percentage int) string {
	switch {
	case percentage >= 80:
		return "Team is actively engaged with strong communication and progress across multiple initiatives."
	case percentage >= 60:
		return "Good team engagement with most members providing regular updates on their work."
	case percentage >= 40:
		return "Moderate team reporting with some members actively communicating progress."
	default:
		return "Limited team reporting this period. Follow-up with team members may be needed."
	}
}

func teamStatus(reports []report.Report) string {
	words := 0
	blockers := false
	for _, r := range reports {
		words += len(strings.Split(r.Content, " "))
		lower := strings.ToLower(r.Content)
		for _, kw := range blockerKeywords {
			if strings.Contains(lower, kw) {
				blockers = true
			}
		}
	}
	avg := decimal.NewFromInt(int64(words)).
		Div(decimal.NewFromInt(int64(max(len(reports), 1)))).
		Round(0).
		IntPart()

	parts := []string{
		"Multiple projects and initiatives in progress",
		"Regular communication and updates being provided",
		fmt.Sprintf("Average report depth: %d words", avg),
	}
	if blockers {
		parts = append(parts, "Some challenges or blockers identified - requiring attention")
	} else {
		parts = append(parts, "No significant blockers or issues reported")
	}
	return strings.Join(parts, ". ")
}

// displayDate renders YYYY-MM-DD as M/D/YYYY, anything else unchanged
func displayDate(date string) string {
	t, ok := validator.IsValidDate(date)
	if !ok {
		return date
	}
	return t.Format("1/2/2006")
}

func author(userID string, team []user.User) (string, string) {
	for _, m := range team {
		if m.ID == userID {
			return m.Name, string(m.Role)
		}
	}
	return "Unknown", "Unknown"
}
