package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/organization"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/sse"
)

// Publisher delivers an event to one user's subscribers
type Publisher interface {
	Publish(userID string, event sse.Event)
}

// RateFunc turns reported/total counts into a reporting rate
type RateFunc func(reported, total int) aggregation.ReportingRate

// ReportingRatePayload is the data of a team.reporting_rate event
type ReportingRatePayload struct {
	ManagerID     string                    `json:"manager_id"`
	Date          string                    `json:"date"`
	ReportingRate aggregation.ReportingRate `json:"reporting_rate"`
	Missing       []string                  `json:"missing"`
}

type DigestJobs struct {
	dir       *user.Directory
	orgSvc    organization.Service
	publisher Publisher
	rate      RateFunc
	now       func() time.Time
}

func NewDigestJobs(dir *user.Directory, orgSvc organization.Service, publisher Publisher, rate RateFunc) *DigestJobs {
	return &DigestJobs{
		dir:       dir,
		orgSvc:    orgSvc,
		publisher: publisher,
		rate:      rate,
		now:       time.Now,
	}
}

func (j *DigestJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("team_reporting_rate_digest", interval, j.PublishReportingRates)
}

// PublishReportingRates sends every manager today's reporting rate for their
// direct reports
func (j *DigestJobs) PublishReportingRates(ctx context.Context) error {
	date := j.now().UTC().Format("2006-01-02")
	managers := j.dir.WithRoles(user.RoleManager)

	sent := 0
	for _, m := range managers {
		if err := ctx.Err(); err != nil {
			return err
		}
		view, err := j.orgSvc.TeamView(ctx, m.ID, date)
		if err != nil {
			return fmt.Errorf("failed to build team view for %s: %w", m.ID, err)
		}

		missing := make([]string, 0)
		for _, member := range view.Members {
			if !member.HasReport {
				missing = append(missing, member.Member.Name)
			}
		}

		j.publisher.Publish(m.ID, sse.Event{
			Event: sse.EventReportingRate,
			Data: ReportingRatePayload{
				ManagerID:     m.ID,
				Date:          date,
				ReportingRate: j.rate(view.Reported, view.Total),
				Missing:       missing,
			},
		})
		sent++
	}

	slog.Info("Cron: reporting rate digest published", "date", date, "managers", sent)
	return nil
}
