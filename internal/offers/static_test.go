package offers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStaticServiceListDefaultsToAll(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	ctx := context.Background()

	all, err := svc.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// newest first
	for i := 1; i < len(all); i++ {
		require.False(t, all[i-1].CreatedAt.Before(all[i].CreatedAt))
	}

	explicit, err := svc.List(ctx, Query{Status: StatusAll})
	require.NoError(t, err)
	require.Equal(t, all, explicit)
}

func TestStaticServiceListByStatus(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()

	drafts, err := svc.List(context.Background(), Query{Status: StatusDraft})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, "offer-1043", drafts[0].ID)
}

func TestStaticServiceListSearch(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	ctx := context.Background()

	byPlate, err := svc.List(ctx, Query{Search: "pb 9012"})
	require.NoError(t, err)
	require.Len(t, byPlate, 1)
	require.Equal(t, "offer-1044", byPlate[0].ID)

	byItem, err := svc.List(ctx, Query{Search: "диагностика"})
	require.NoError(t, err)
	require.Len(t, byItem, 1)
	require.Equal(t, "offer-1042", byItem[0].ID)
}

func TestStaticServiceListDateRange(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	ctx := context.Background()

	from := time.Now().UTC().Add(-30 * time.Hour)
	recent, err := svc.List(ctx, Query{CreatedFrom: &from})
	require.NoError(t, err)
	require.Len(t, recent, 2)

	to := time.Now().UTC().Add(-30 * time.Hour)
	older, err := svc.List(ctx, Query{CreatedTo: &to})
	require.NoError(t, err)
	require.Len(t, older, 1)
	require.Equal(t, "offer-1042", older[0].ID)
}

func TestStaticServiceCreateNormalizesStatus(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	created, err := svc.Create(context.Background(), Draft{
		CustomerName: "Иван Тестов",
		VehicleModel: "S500 W223",
		Status:       Status("bogus"),
		Items:        []LineItem{{Description: "Преглед", Hours: 0.5, PriceMinor: 5000}},
	})
	require.NoError(t, err)
	require.Equal(t, StatusDraft, created.Status)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestStaticServiceUpdatePatchSemantics(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	ctx := context.Background()

	status := StatusAccepted
	updated, err := svc.Update(ctx, "offer-1042", Patch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, updated.Status)
	// untouched fields survive
	require.Equal(t, "Георги Иванов", updated.CustomerName)
	require.Len(t, updated.Items, 2)
}

func TestStaticServiceGetUnknown(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrOfferNotFound)
}

func TestOfferTotals(t *testing.T) {
	t.Parallel()

	o := Offer{Items: []LineItem{
		{Hours: 1.5, PriceMinor: 18000},
		{Hours: 0.5, PriceMinor: 6000},
	}}
	require.InDelta(t, 2.0, o.TotalHours(), 1e-9)
	require.Equal(t, int64(24000), o.TotalMinor())
}
