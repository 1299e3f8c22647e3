package dataset

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

// CaliforniaHousingURL is the remote archive for the California housing
// census dataset (one row per block group).
const CaliforniaHousingURL = "https://raw.githubusercontent.com/ageron/handson-ml2/master/datasets/housing/housing.tgz"

// CaliforniaHousingColumns is the expected column set of the extracted CSV,
// in header order.
var CaliforniaHousingColumns = []string{
	"longitude",
	"latitude",
	"housing_median_age",
	"total_rooms",
	"total_bedrooms",
	"population",
	"households",
	"median_income",
	"median_house_value",
	"ocean_proximity",
}

// CaliforniaCategoricalColumn is the single categorical column of the
// dataset, a proximity-to-ocean label.
const CaliforniaCategoricalColumn = "ocean_proximity"

// CachePath returns the archive cache file under the configured data dir.
func (c Config) CachePath() string {
	return filepath.Join(c.DataDir, "housing.tgz")
}

// ExtractDir returns the directory the archive is extracted into.
func (c Config) ExtractDir() string {
	return c.DataDir
}

// LoadCaliforniaHousing ensures the housing dataset exists locally, parses
// it and validates that every expected column is present. The cache and
// extraction locations come from cfg so tests and callers control where the
// filesystem is touched.
func LoadCaliforniaHousing(ctx context.Context, cfg Config, opts ...FetchOption) (*Table, error) {
	fetcher := NewFetcher(opts...)
	tablePath, err := fetcher.EnsureLocalDataset(ctx, cfg.RemoteURL, cfg.CachePath(), cfg.ExtractDir())
	if err != nil {
		return nil, err
	}

	table, err := ReadCSVFile(tablePath)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range CaliforniaHousingColumns {
		if !table.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewParseError(tablePath, strings.Join(missing, ","), 0, "required column missing")
	}
	return table, nil
}
