package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidates(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, 160, c.TotalFields())
	assert.Len(t, c.Rules, 30)
}

func TestCategoryCounts(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	want := map[Category]int{
		StockMaster:         14,
		PriceVolume:         13,
		DerivedMetrics:      11,
		IncomeStatement:     18,
		BalanceSheet:        17,
		CashFlow:            8,
		FinancialRatios:     11,
		Valuation:           17,
		Shareholding:        10,
		CorporateActions:    10,
		NewsSentiment:       8,
		Technical:           15,
		QualitativeMetadata: 8,
	}

	total := 0
	for cat, n := range want {
		got := len(c.FieldsByCategory(cat))
		assert.Equalf(t, n, got, "category %s", cat)
		total += n
	}
	assert.Equal(t, 160, total)
}

func TestFieldLookups(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	f, ok := c.FieldByName("interest_coverage")
	require.True(t, ok)
	assert.Equal(t, 86, f.ID)
	assert.Equal(t, FinancialRatios, f.Category)
	assert.Equal(t, Critical, f.Priority)
	assert.Equal(t, Quarterly, f.Frequency)
	assert.Contains(t, f.Rules, "D1")

	byID, ok := c.FieldByID(86)
	require.True(t, ok)
	assert.Same(t, f, byID)

	_, ok = c.FieldByName("no_such_field")
	assert.False(t, ok)

	_, ok = c.FieldByID(9999)
	assert.False(t, ok)
}

func TestFieldIDsAreSequential(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	for i, f := range c.Fields {
		assert.Equalf(t, i+1, f.ID, "field %q", f.Name)
	}
}

func TestRuleLookups(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	r, ok := c.RuleByID("D1")
	require.True(t, ok)
	assert.Equal(t, DealBreaker, r.Type)
	assert.Equal(t, float64(-100), r.ScoreImpact)
	assert.Equal(t, []string{"interest_coverage"}, r.RequiredFields)

	assert.Len(t, c.RulesByType(DealBreaker), 10)
	assert.Len(t, c.RulesByType(RiskPenalty), 10)
	assert.Len(t, c.RulesByType(QualityBooster), 10)
}

func TestRuleFieldsExist(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	for _, r := range c.Rules {
		for _, name := range r.RequiredFields {
			_, ok := c.FieldByName(name)
			assert.Truef(t, ok, "rule %s references field %q", r.ID, name)
		}
	}
}

func TestRuleImpactSigns(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	for _, r := range c.Rules {
		switch r.Type {
		case DealBreaker:
			assert.Equalf(t, float64(-100), r.ScoreImpact, "rule %s", r.ID)
		case RiskPenalty:
			assert.Lessf(t, r.ScoreImpact, 0.0, "rule %s", r.ID)
		case QualityBooster:
			assert.Greaterf(t, r.ScoreImpact, 0.0, "rule %s", r.ID)
		}
	}
}

func TestCriticalAndCalculatedFields(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	critical := c.CriticalFieldNames()
	assert.Contains(t, critical, "symbol")
	assert.Contains(t, critical, "close")
	assert.Contains(t, critical, "roe")
	assert.NotContains(t, critical, "website")

	calculated := c.CalculatedFieldNames()
	assert.Contains(t, calculated, "market_cap")
	assert.Contains(t, calculated, "free_cash_flow")
	assert.NotContains(t, calculated, "revenue")
}

func TestBelowInvestmentGrade(t *testing.T) {
	assert.True(t, BelowInvestmentGrade["BB+"])
	assert.True(t, BelowInvestmentGrade["D"])
	assert.False(t, BelowInvestmentGrade["BBB-"])
	assert.False(t, BelowInvestmentGrade["AAA"])
}
