package report

import "context"

// Repository persists the report array
type Repository interface {
	List(ctx context.Context) ([]StoredReport, error)
	// Modify atomically replaces the array with what fn returns. An error
	// from fn leaves storage untouched.
	Modify(ctx context.Context, fn func(reports []StoredReport) ([]StoredReport, error)) error
	// Usage counts keys and bytes under KeyPrefix
	Usage(ctx context.Context) (keys int, bytes int64, err error)
	// Clear removes every key under KeyPrefix
	Clear(ctx context.Context) (int, error)
}
