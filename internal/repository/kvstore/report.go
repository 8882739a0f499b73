package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/kv"
)

type reportRepository struct {
	store kv.Store
}

func NewReportRepository(store kv.Store) report.Repository {
	return &reportRepository{store: store}
}

func (r *reportRepository) List(ctx context.Context) ([]report.StoredReport, error) {
	data, err := r.store.Get(ctx, report.StorageKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []report.StoredReport{}, nil
		}
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	return decodeReports(data)
}

func (r *reportRepository) Modify(ctx context.Context, fn func([]report.StoredReport) ([]report.StoredReport, error)) error {
	return r.store.Update(ctx, report.StorageKey, func(current []byte, exists bool) ([]byte, error) {
		reports := []report.StoredReport{}
		if exists {
			var err error
			if reports, err = decodeReports(current); err != nil {
				return nil, err
			}
		}

		next, err := fn(reports)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []report.StoredReport{}
		}

		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode reports: %w", err)
		}
		return data, nil
	})
}

func (r *reportRepository) Usage(ctx context.Context) (int, int64, error) {
	keys, err := r.store.Keys(ctx, report.KeyPrefix)
	if err != nil {
		return 0, 0, err
	}
	var total int64
	for _, k := range keys {
		v, err := r.store.Get(ctx, k)
		if errors.Is(err, kv.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, 0, err
		}
		total += int64(len(k) + len(v))
	}
	return len(keys), total, nil
}

func (r *reportRepository) Clear(ctx context.Context) (int, error) {
	keys, err := r.store.Keys(ctx, report.KeyPrefix)
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if err := r.store.Delete(ctx, k); err != nil {
			return 0, err
		}
	}
	slog.Info("cleared report storage", "keys", len(keys))
	return len(keys), nil
}

func decodeReports(data []byte) ([]report.StoredReport, error) {
	var reports []report.StoredReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrCorruptStore, err)
	}
	if reports == nil {
		reports = []report.StoredReport{}
	}
	return reports, nil
}
