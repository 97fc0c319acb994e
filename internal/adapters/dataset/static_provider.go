package dataset

import (
	"context"
	"landing-sequencer-service/internal/domain"
)

// StaticDatasetProvider returns a fixed dataset, or a fixed error.
type StaticDatasetProvider struct {
	ds  domain.Dataset
	err error
}

func NewStaticDatasetProvider(ds domain.Dataset) *StaticDatasetProvider {
	return &StaticDatasetProvider{ds: ds}
}

func NewFailingDatasetProvider(err error) *StaticDatasetProvider {
	return &StaticDatasetProvider{err: err}
}

func (s *StaticDatasetProvider) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	if s.err != nil {
		return domain.Dataset{}, s.err
	}
	return s.ds, nil
}
