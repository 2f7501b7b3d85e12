package mock

import (
	"context"

	"github.com/offenesjena/vorhaben"
)

var _ vorhaben.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of vorhaben.SnapshotService.
type SnapshotService struct {
	SaveRunFn  func(ctx context.Context, records []*vorhaben.PageRecord) (*vorhaben.RunDiff, error)
	FindRunsFn func(ctx context.Context, filter vorhaben.RunFilter) ([]*vorhaben.Run, error)
}

func (s *SnapshotService) SaveRun(ctx context.Context, records []*vorhaben.PageRecord) (*vorhaben.RunDiff, error) {
	return s.SaveRunFn(ctx, records)
}

func (s *SnapshotService) FindRuns(ctx context.Context, filter vorhaben.RunFilter) ([]*vorhaben.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
