package clean

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
)

func newCleaner(t *testing.T) (*Cleaner, *record.StockRecord) {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return New(cat, nil), record.New(cat, "TCS", "Tata Consultancy Services")
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"plain float", 12.5, 12.5, true},
		{"int", 42, 42.0, true},
		{"int64", int64(7), 7.0, true},
		{"comma separated", "1,23,456.78", 123456.78, true},
		{"rupee symbol", "₹2,610.55", 2610.55, true},
		{"percent sign", "18.5%", 18.5, true},
		{"crore suffix", "1,234 Cr", 1234.0, true},
		{"dash placeholder", "-", 0, false},
		{"nan string", "NaN", 0, false},
		{"na string", "N/A", 0, false},
		{"empty", "", 0, false},
		{"garbage", "abc", 0, false},
		{"nan float", math.NaN(), 0, false},
		{"inf float", math.Inf(1), 0, false},
		{"nil", nil, 0, false},
		{"negative", "-12.3", -12.3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestInt(t *testing.T) {
	got, ok := Int("1,234,567")
	require.True(t, ok)
	assert.Equal(t, int64(1234567), got)

	got, ok = Int(99.9)
	require.True(t, ok)
	assert.Equal(t, int64(99), got)

	_, ok = Int("-")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	s, ok := String("  Tata   Consultancy  ")
	require.True(t, ok)
	assert.Equal(t, "Tata Consultancy", s)

	_, ok = String("N/A")
	assert.False(t, ok)
	_, ok = String("   ")
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	for _, s := range []string{"true", "Yes", "1", "y"} {
		b, ok := Bool(s)
		require.True(t, ok, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "No", "0", "n"} {
		b, ok := Bool(s)
		require.True(t, ok, s)
		assert.False(t, b, s)
	}
	_, ok := Bool("maybe")
	assert.False(t, ok)
}

func TestCleanCoercesToCatalogTypes(t *testing.T) {
	c, r := newCleaner(t)

	r.SetField("close", "2,610.55", catalog.SrcScreener)
	r.SetField("volume", "1,234,567", catalog.SrcScreener)
	r.SetField("sector", "  IT  Services ", catalog.SrcScreener)
	r.SetField("sebi_investigation", "no", catalog.SrcSEBI)

	modified := c.Clean(r)
	assert.Equal(t, 4, modified)

	f, ok := r.GetFloat("close")
	require.True(t, ok)
	assert.Equal(t, 2610.55, f)

	n, ok := r.GetField("volume")
	require.True(t, ok)
	assert.Equal(t, int64(1234567), n)

	s, _ := r.GetString("sector")
	assert.Equal(t, "IT Services", s)

	b, ok := r.GetBool("sebi_investigation")
	require.True(t, ok)
	assert.False(t, b)
}

func TestCleanCapsOutOfBoundsValues(t *testing.T) {
	c, r := newCleaner(t)

	r.SetField("pe_ratio", 99999.0, catalog.SrcScreener)
	r.SetField("promoter_holding", 120.0, catalog.SrcScreener)
	r.SetField("dividend_yield", -3.0, catalog.SrcScreener)

	c.Clean(r)

	pe, _ := r.GetFloat("pe_ratio")
	assert.Equal(t, 5000.0, pe)
	ph, _ := r.GetFloat("promoter_holding")
	assert.Equal(t, 100.0, ph)
	dy, _ := r.GetFloat("dividend_yield")
	assert.Equal(t, 0.0, dy)
}

func TestCleanInBoundsUnchanged(t *testing.T) {
	c, r := newCleaner(t)

	r.SetField("roe", 22.5, catalog.SrcScreener)
	modified := c.Clean(r)

	assert.Equal(t, 0, modified)
	roe, _ := r.GetFloat("roe")
	assert.Equal(t, 22.5, roe)
}

func TestCleanDropsUnparseable(t *testing.T) {
	c, r := newCleaner(t)

	r.SetField("pe_ratio", "n/a", catalog.SrcScreener)
	c.Clean(r)

	v, _ := r.GetField("pe_ratio")
	assert.Nil(t, v)
}

func TestCleanSanitizesPriceHistory(t *testing.T) {
	c, r := newCleaner(t)

	r.PriceHistory = []record.PriceBar{
		{Open: 100, High: math.NaN(), Low: 98, Close: math.Inf(1)},
	}
	modified := c.Clean(r)

	assert.Equal(t, 2, modified)
	assert.Equal(t, 0.0, r.PriceHistory[0].High)
	assert.Equal(t, 0.0, r.PriceHistory[0].Close)
	assert.Equal(t, 100.0, r.PriceHistory[0].Open)
}
