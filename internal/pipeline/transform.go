package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/epw-etl/internal/domain"
	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/google/uuid"
)

// EPWTransformer implements Transformer by decoding the file, building the
// station and stamping each record as an observation, with optional
// geocoding enrichment of the station.
type EPWTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates an EPWTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *EPWTransformer {
	return &EPWTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *EPWTransformer) Transform(ctx context.Context, raw domain.RawFile) ([]domain.Observation, error) {
	file, err := epw.ParseFile(raw.Path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", raw.Name, err)
	}

	station := domain.NewStation(file.Header.Location)
	station = domain.EnrichStation(ctx, station, t.geocoder, t.logger)

	for _, c := range domain.Validate(file) {
		if !c.Passed {
			t.logger.Warn("file check failed",
				"file", raw.Name,
				"check", c.Name,
				"detail", c.Detail,
			)
		}
	}

	return domain.BuildObservations(file, station, raw.Name, uuid.NewString()), nil
}
