package quote

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/freight-quoter/internal/dataset"
	"github.com/noah-isme/freight-quoter/internal/obs"
	"github.com/noah-isme/freight-quoter/internal/tariff"
)

// Service computes quotes against the cached dataset, with an optional Redis
// response cache in front of the pricing pipeline.
type Service struct {
	Store *dataset.Store
	Cache *Cache
	Log   zerolog.Logger
}

// Quote prices one shipment request. Cache failures are logged and fall
// through to a fresh computation; the cache is an optimisation, never a
// dependency.
func (s *Service) Quote(ctx context.Context, req tariff.ShipmentRequest) (*tariff.Quote, error) {
	start := time.Now()

	ds, err := s.Store.Get(ctx)
	if err != nil {
		s.observe("dataset_error", start)
		return nil, err
	}

	key := cacheKey(ds, req)
	var cached tariff.Quote
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Log.Debug().Err(err).Msg("quote cache read failed")
	} else if hit {
		s.observe("cache_hit", start)
		return &cached, nil
	}

	q, err := tariff.ComputeQuote(ds, req)
	if err != nil {
		s.observe(classify(err), start)
		return nil, err
	}

	if err := s.Cache.SetJSON(ctx, key, q); err != nil {
		s.Log.Debug().Err(err).Msg("quote cache write failed")
	}
	s.observe("ok", start)
	return q, nil
}

// cacheKey binds a request to the dataset generation it was priced against,
// so a reload naturally invalidates cached quotes.
func cacheKey(ds *tariff.Dataset, req tariff.ShipmentRequest) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%t|%t|%t|%g|%g|%g|%g|%d|%d",
		tariff.NormalizeCountry(req.Country),
		tariff.NormalizeZip(req.ZipPrefix),
		req.Hazmat, req.Delivery, req.Appointment,
		req.Length, req.Width, req.Height, req.UnitWeight, req.Quantity,
		ds.LoadedAt.UnixNano(),
	)
	return fmt.Sprintf("quote:%x", h.Sum64())
}

func classify(err error) string {
	var (
		notFound *tariff.NoTariffForRouteError
		oor      *tariff.WeightOutOfRangeError
		unknown  *tariff.UnknownZoneError
		invalid  *tariff.InvalidInputError
	)
	switch {
	case errors.As(err, &notFound):
		return "no_tariff"
	case errors.As(err, &oor):
		return "weight_out_of_range"
	case errors.As(err, &unknown):
		return "unknown_zone"
	case errors.As(err, &invalid):
		return "invalid_input"
	default:
		return "error"
	}
}

func (s *Service) observe(result string, start time.Time) {
	if obs.QuoteTotal != nil {
		obs.QuoteTotal.WithLabelValues(result).Inc()
	}
	if obs.QuoteDuration != nil {
		obs.QuoteDuration.Observe(obs.DurationMillis(time.Since(start)))
	}
}
