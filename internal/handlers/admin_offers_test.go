package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/offers"
)

func TestParsePriceMinor(t *testing.T) {
	cases := map[string]int64{
		"240":     24000,
		"240.50":  24050,
		"240,50":  24050,
		" 18 ":    1800,
		"":        0,
		"abc":     0,
		"-5":      0,
		"0.005":   1,
	}
	for input, want := range cases {
		assert.Equal(t, want, parsePriceMinor(input), "input %q", input)
	}
}

func TestParseItemsSkipsBlankRows(t *testing.T) {
	form := url.Values{
		"item_description": {"Смяна на масло", "", "Диагностика"},
		"item_duration":    {"1:30", "", "2h 15min"},
		"item_price":       {"180", "", "60"},
	}
	r := httptest.NewRequest("POST", "/bg/mb-admin/offers", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, r.ParseForm())

	items := parseItems(r)
	require.Len(t, items, 2)
	assert.Equal(t, offers.LineItem{Description: "Смяна на масло", Hours: 1.5, PriceMinor: 18000}, items[0])
	assert.Equal(t, offers.LineItem{Description: "Диагностика", Hours: 2.25, PriceMinor: 6000}, items[1])
}

func TestParseItemsToleratesRaggedFields(t *testing.T) {
	form := url.Values{
		"item_description": {"Преглед", "Втора позиция"},
		"item_duration":    {"1"},
	}
	r := httptest.NewRequest("POST", "/bg/mb-admin/offers", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, r.ParseForm())

	items := parseItems(r)
	require.Len(t, items, 2)
	assert.Equal(t, 1.0, items[0].Hours)
	assert.Zero(t, items[1].Hours)
	assert.Zero(t, items[1].PriceMinor)
}

func TestParseOffersQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/bg/mb-admin/offers", nil)
	q := parseOffersQuery(r)
	assert.Equal(t, offers.StatusAll, q.Status)
	assert.Empty(t, q.Search)
	assert.Nil(t, q.CreatedFrom)
	assert.Nil(t, q.CreatedTo)

	r = httptest.NewRequest("GET", "/bg/mb-admin/offers?status=bogus&search=+w205+&from=2026-08-01&to=2026-08-31", nil)
	q = parseOffersQuery(r)
	assert.Equal(t, offers.StatusAll, q.Status, "unknown status falls back to all")
	assert.Equal(t, "w205", q.Search)
	require.NotNil(t, q.CreatedFrom)
	require.NotNil(t, q.CreatedTo)
	assert.True(t, q.CreatedTo.After(*q.CreatedFrom))
	// the upper bound covers the whole closing day
	assert.Equal(t, 31, q.CreatedTo.Day())
	assert.Equal(t, 23, q.CreatedTo.Hour())
}

func TestNormalizeNext(t *testing.T) {
	assert.Equal(t, "/en/mb-admin/offers", normalizeNext("/en/mb-admin/offers", "en"))
	assert.Empty(t, normalizeNext("", "en"))
	assert.Empty(t, normalizeNext("https://evil.example", "en"))
	assert.Empty(t, normalizeNext("//evil.example", "en"))
	assert.Empty(t, normalizeNext("/en/admin-login", "en"), "login page cannot be its own next target")
}
