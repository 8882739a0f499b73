package report

import "context"

type Service interface {
	Create(ctx context.Context, identity Identity, req CreateReportRequest) (StoredReport, error)
	GetByID(ctx context.Context, id string) (StoredReport, error)
	ListByUser(ctx context.Context, userID string) ([]StoredReport, error)
	ListByDate(ctx context.Context, date, userID string) ([]StoredReport, error)
	ListAll(ctx context.Context) ([]StoredReport, error)
	Update(ctx context.Context, identity Identity, id string, req UpdateReportRequest) (StoredReport, error)
	Delete(ctx context.Context, identity Identity, id string) (bool, error)
	Stats(ctx context.Context, identity Identity) (StatsResponse, error)
	ClearAll(ctx context.Context) (ClearResponse, error)
	AudioURL(ctx context.Context, r StoredReport) (string, error)
}

// Source yields every report the organization can see: seeded demo reports
// followed by stored ones.
type Source interface {
	AllReports(ctx context.Context) ([]Report, error)
}
