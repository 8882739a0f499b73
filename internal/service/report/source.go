package report

import (
	"context"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
)

// MergedSource serves the seeded demo reports followed by stored reports
type MergedSource struct {
	demo []report.Report
	repo report.Repository
}

func NewMergedSource(demo []report.Report, repo report.Repository) *MergedSource {
	return &MergedSource{demo: demo, repo: repo}
}

func (m *MergedSource) AllReports(ctx context.Context) ([]report.Report, error) {
	stored, err := m.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]report.Report, 0, len(m.demo)+len(stored))
	all = append(all, m.demo...)
	all = append(all, report.Reports(stored)...)
	return all, nil
}
