package catalog

// RuleType classifies a scoring rule.
type RuleType string

const (
	DealBreaker    RuleType = "deal_breaker"
	RiskPenalty    RuleType = "risk_penalty"
	QualityBooster RuleType = "quality_booster"
)

// Severity of a rule's impact.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMedium   Severity = "medium"
	SevPositive Severity = "positive"
)

// RuleDef describes one scoring rule. The evaluation logic lives in the
// validation engine; this is the rule's identity, inputs and weight.
type RuleDef struct {
	ID             string
	Name           string
	Type           RuleType
	Severity       Severity
	Description    string
	RequiredFields []string
	ScoreImpact    float64
	Condition      string
}

// BelowInvestmentGrade holds the credit ratings that trigger D9.
var BelowInvestmentGrade = map[string]bool{
	"BB+": true, "BB": true, "BB-": true,
	"B+": true, "B": true, "B-": true,
	"CCC+": true, "CCC": true, "CCC-": true,
	"CC": true, "C": true, "D": true,
}

var ruleDefs = []RuleDef{
	// Deal-breakers: any trigger marks the stock not investable.
	{"D1", "Interest Coverage Failure", DealBreaker, SevCritical,
		"Interest coverage ratio below 2.0x indicates inability to service debt",
		[]string{"interest_coverage"}, -100, "interest_coverage < 2.0"},
	{"D2", "Regulatory Action", DealBreaker, SevCritical,
		"Active SEBI investigation or regulatory action",
		[]string{"sebi_investigation"}, -100, "sebi_investigation == true"},
	{"D3", "Revenue Decline", DealBreaker, SevCritical,
		"Revenue declining for 3+ consecutive quarters YoY",
		[]string{"revenue_growth_yoy"}, -100, "3+ quarters of negative YoY revenue growth"},
	{"D4", "Negative Operating Cash Flow", DealBreaker, SevCritical,
		"Negative operating cash flow for 3+ consecutive years",
		[]string{"operating_cash_flow"}, -100, "3+ years of negative OCF"},
	{"D5", "Negative Free Cash Flow", DealBreaker, SevCritical,
		"Negative free cash flow for 5+ consecutive years",
		[]string{"free_cash_flow"}, -100, "5+ years of negative FCF"},
	{"D6", "Trading Suspension", DealBreaker, SevCritical,
		"Stock is suspended from trading",
		[]string{"stock_status"}, -100, "stock_status == SUSPENDED"},
	{"D7", "Extreme Promoter Pledging", DealBreaker, SevCritical,
		"Promoter pledging exceeds 80% of holdings",
		[]string{"promoter_pledging"}, -100, "promoter_pledging > 80"},
	{"D8", "Extreme Leverage", DealBreaker, SevCritical,
		"Debt-to-equity ratio exceeds 5.0x",
		[]string{"debt_to_equity"}, -100, "debt_to_equity > 5.0"},
	{"D9", "Credit Downgrade", DealBreaker, SevCritical,
		"Credit rating below investment grade (BB+ or lower)",
		[]string{"credit_rating"}, -100, "credit_rating below investment grade"},
	{"D10", "Illiquid Stock", DealBreaker, SevCritical,
		"Average daily volume below 50,000 shares",
		[]string{"avg_volume_20d"}, -100, "avg_volume_20d < 50000"},

	// Risk penalties: score deductions.
	{"R1", "High Debt-to-Equity", RiskPenalty, SevHigh,
		"Debt-to-equity between 2.0x and 5.0x",
		[]string{"debt_to_equity"}, -10, "2.0 < debt_to_equity <= 5.0"},
	{"R2", "Low Interest Coverage", RiskPenalty, SevHigh,
		"Interest coverage between 2.0x and 3.0x",
		[]string{"interest_coverage"}, -8, "2.0 <= interest_coverage < 3.0"},
	{"R3", "Low ROE", RiskPenalty, SevMedium,
		"Return on equity below 10%",
		[]string{"roe"}, -5, "roe < 10"},
	{"R4", "Promoter Holding Decline", RiskPenalty, SevHigh,
		"Promoter holding declined by more than 5% in last year",
		[]string{"promoter_holding_change"}, -8, "promoter_holding_change < -5"},
	{"R5", "Significant Promoter Pledging", RiskPenalty, SevHigh,
		"Promoter pledging between 20% and 80%",
		[]string{"promoter_pledging"}, -10, "20 < promoter_pledging <= 80"},
	{"R6", "Far From 52-Week High", RiskPenalty, SevMedium,
		"Stock price more than 30% below 52-week high",
		[]string{"distance_from_52w_high"}, -5, "distance_from_52w_high < -30"},
	{"R7", "Declining Operating Margin", RiskPenalty, SevMedium,
		"Operating margin declining for 2+ consecutive quarters",
		[]string{"operating_margin"}, -5, "2+ quarters of declining operating margin"},
	{"R8", "Extreme Valuation Premium", RiskPenalty, SevHigh,
		"P/E ratio more than 2x sector average",
		[]string{"pe_ratio", "sector_avg_pe"}, -8, "pe_ratio > 2 * sector_avg_pe"},
	{"R9", "Low Delivery Percentage", RiskPenalty, SevMedium,
		"Delivery percentage below 30%",
		[]string{"delivery_percentage"}, -3, "delivery_percentage < 30"},
	{"R10", "High Contingent Liabilities", RiskPenalty, SevMedium,
		"Contingent liabilities exceeding 50% of net worth",
		[]string{"contingent_liabilities", "total_equity"}, -5, "contingent_liabilities > 0.5 * total_equity"},

	// Quality boosters: score additions, total capped per validation run.
	{"Q1", "Consistent High ROE", QualityBooster, SevPositive,
		"ROE above 20% for 5 consecutive years",
		[]string{"roe"}, 10, "roe > 20 for 5 years"},
	{"Q2", "Strong Revenue Growth", QualityBooster, SevPositive,
		"Revenue growth above 15% for 3+ years",
		[]string{"revenue_growth_yoy"}, 8, "revenue_growth_yoy > 15 for 3+ years"},
	{"Q3", "Zero Debt", QualityBooster, SevPositive,
		"Zero or negligible debt",
		[]string{"debt_to_equity"}, 8, "debt_to_equity < 0.1"},
	{"Q4", "Consistent Dividend Payer", QualityBooster, SevPositive,
		"Paid dividends for 10+ consecutive years",
		[]string{"dividends_paid"}, 5, "10+ years of consecutive dividends"},
	{"Q5", "Increasing Promoter Holding", QualityBooster, SevPositive,
		"Promoter holding increased in last 2+ quarters",
		[]string{"promoter_holding"}, 5, "promoter_holding increased 2+ quarters"},
	{"Q6", "Rising FII Interest", QualityBooster, SevPositive,
		"FII holding increased by more than 2% in last year",
		[]string{"fii_holding_change"}, 5, "fii_holding_change > 2"},
	{"Q7", "High Operating Margin", QualityBooster, SevPositive,
		"Operating margin above 25%",
		[]string{"operating_margin"}, 5, "operating_margin > 25"},
	{"Q8", "Near 52-Week High", QualityBooster, SevPositive,
		"Stock within 5% of 52-week high",
		[]string{"distance_from_52w_high"}, 3, "distance_from_52w_high > -5"},
	{"Q9", "Strong Free Cash Flow Yield", QualityBooster, SevPositive,
		"FCF yield above 5%",
		[]string{"fcf_yield"}, 5, "fcf_yield > 5"},
	{"Q10", "Improving Working Capital", QualityBooster, SevPositive,
		"Current ratio improving over last 3 years",
		[]string{"current_ratio"}, 3, "current_ratio improving for 3 years"},
}
