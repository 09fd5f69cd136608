package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/freight-quoter/internal/dataset"
	"github.com/noah-isme/freight-quoter/internal/tariff"
)

func TestServiceQuoteUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	var loads int
	store := &dataset.Store{
		Load: func(context.Context) (*tariff.Dataset, error) {
			loads++
			return tariff.Load(fixtureWorkbook())
		},
		TTL: time.Hour,
		Log: zerolog.Nop(),
	}
	svc := &Service{Store: store, Cache: NewCache(client, time.Minute), Log: zerolog.Nop()}

	req := tariff.ShipmentRequest{
		Country:    "france",
		ZipPrefix:  "75",
		UnitWeight: 100,
		Quantity:   1,
	}

	first, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, loads)
	require.Len(t, mr.Keys(), 1)
}

func TestServiceQuoteCacheFailureFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	svc := &Service{
		Store: testStore(t),
		Cache: NewCache(client, time.Minute),
		Log:   zerolog.Nop(),
	}

	q, err := svc.Quote(context.Background(), tariff.ShipmentRequest{
		Country:    "germany",
		ZipPrefix:  "10",
		UnitWeight: 100,
		Quantity:   1,
	})
	require.NoError(t, err)
	require.InDelta(t, 80, q.BasePrice, 1e-9)
}

func TestServiceQuoteDatasetErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	store := &dataset.Store{
		Load: func(context.Context) (*tariff.Dataset, error) { return nil, wantErr },
		Log:  zerolog.Nop(),
	}
	svc := &Service{Store: store, Log: zerolog.Nop()}

	_, err := svc.Quote(context.Background(), tariff.ShipmentRequest{
		Country:    "france",
		ZipPrefix:  "75",
		UnitWeight: 100,
		Quantity:   1,
	})
	require.ErrorIs(t, err, wantErr)
}

func TestServiceQuoteKeyChangesWithDatasetGeneration(t *testing.T) {
	dsOld, err := tariff.Load(fixtureWorkbook())
	require.NoError(t, err)
	dsNew, err := tariff.Load(fixtureWorkbook())
	require.NoError(t, err)
	dsNew.LoadedAt = dsOld.LoadedAt.Add(time.Second)

	req := tariff.ShipmentRequest{Country: "france", ZipPrefix: "75", UnitWeight: 100, Quantity: 1}
	require.NotEqual(t, cacheKey(dsOld, req), cacheKey(dsNew, req))
}
