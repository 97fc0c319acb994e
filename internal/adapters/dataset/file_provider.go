package dataset

import (
	"context"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/platform/obs"
	"os"
)

// FileDatasetProvider reads a dataset from a local file on every load.
type FileDatasetProvider struct {
	Path   string
	Layout Layout
	Name   string
}

func NewFileDatasetProvider(path string, layout Layout, name string) *FileDatasetProvider {
	return &FileDatasetProvider{Path: path, Layout: layout, Name: name}
}

func (f *FileDatasetProvider) LoadDataset(ctx context.Context) (_ domain.Dataset, err error) {
	defer obs.Time(ctx, "dataset.file.Load")(&err)

	return loadFile(f.Path, f.Layout, f.Name)
}

func loadFile(path string, layout Layout, name string) (domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset: open %q: %w", path, err)
	}
	defer file.Close()

	ds, err := Parse(file, layout, name)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset %q: %w", path, err)
	}
	return ds, nil
}
