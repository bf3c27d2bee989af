// Package catalog is the single source of truth for the data model:
// every tracked field, its category, priority and update cadence, and
// every scoring rule. All other packages resolve fields through it.
package catalog

import "fmt"

// Category is one of the 13 data categories a field belongs to.
type Category string

const (
	StockMaster         Category = "stock_master"
	PriceVolume         Category = "price_volume"
	DerivedMetrics      Category = "derived_metrics"
	IncomeStatement     Category = "income_statement"
	BalanceSheet        Category = "balance_sheet"
	CashFlow            Category = "cash_flow"
	FinancialRatios     Category = "financial_ratios"
	Valuation           Category = "valuation"
	Shareholding        Category = "shareholding"
	CorporateActions    Category = "corporate_actions"
	NewsSentiment       Category = "news_sentiment"
	Technical           Category = "technical"
	QualitativeMetadata Category = "qualitative_metadata"
)

// Categories lists all categories in catalog order.
var Categories = []Category{
	StockMaster, PriceVolume, DerivedMetrics, IncomeStatement,
	BalanceSheet, CashFlow, FinancialRatios, Valuation, Shareholding,
	CorporateActions, NewsSentiment, Technical, QualitativeMetadata,
}

// Priority drives the completeness weighting in confidence scoring.
type Priority string

const (
	Critical    Priority = "critical"
	Important   Priority = "important"
	Standard    Priority = "standard"
	Optional    Priority = "optional"
	Metadata    Priority = "metadata"
	Qualitative Priority = "qualitative"
)

// Frequency is the expected update cadence of a field. Freshness
// thresholds in confidence scoring derive from it.
type Frequency string

const (
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Quarterly  Frequency = "quarterly"
	Annual     Frequency = "annual"
	OnEvent    Frequency = "on_event"
	RealTime   Frequency = "real_time"
	Continuous Frequency = "continuous"
	Never      Frequency = "never"
)

// Method is how a field's value is obtained.
type Method string

const (
	Download   Method = "download"
	Scrape     Method = "scrape"
	API        Method = "api"
	Calculated Method = "calculated"
	RSS        Method = "rss"
	NLP        Method = "nlp"
	Manual     Method = "manual"
	Auto       Method = "auto"
)

// Source identifies a primary or backup data source.
type Source string

const (
	SrcNSEBSE           Source = "nse_bse"
	SrcNSEBhavcopy      Source = "nse_bhavcopy"
	SrcNSE              Source = "nse"
	SrcBSE              Source = "bse"
	SrcBSEFilings       Source = "bse_filings"
	SrcBSEAnnouncements Source = "bse_announcements"
	SrcScreener         Source = "screener_in"
	SrcTrendlyne        Source = "trendlyne"
	SrcYahoo            Source = "yfinance"
	SrcRSSFeeds         Source = "rss_feeds"
	SrcRatingAgencies   Source = "rating_agencies"
	SrcSEBI             Source = "sebi"
	SrcIndicators       Source = "technical_engine"
	SrcCalculated       Source = "calculated"
	SrcManual           Source = "manual"
	SrcSystem           Source = "system"
	SrcNSEIndices       Source = "nse_indices"
	SrcAnnualReport     Source = "annual_report"
)

// Kind is the value type of a field.
type Kind string

const (
	KindString     Kind = "string"
	KindDecimal    Kind = "decimal"
	KindInteger    Kind = "integer"
	KindDate       Kind = "date"
	KindDatetime   Kind = "datetime"
	KindBoolean    Kind = "boolean"
	KindEnum       Kind = "enum"
	KindURL        Kind = "url"
	KindStringList Kind = "list_string"
	KindObjectList Kind = "list_object"
	KindBoolMap    Kind = "dict_bool"
	KindTimeMap    Kind = "dict_datetime"
	KindObjectMap  Kind = "dict_dict"
)

// FieldDef describes one tracked field.
type FieldDef struct {
	ID        int
	Name      string
	Category  Category
	Type      Kind
	Unit      string
	Priority  Priority
	Frequency Frequency
	Source    Source
	Method    Method
	Backup    Source
	UsedFor   string
	Rules     []string // scoring rules referencing this field
	History   string   // retention depth, informational
}

// Catalog holds the immutable field and rule sets plus lookup indexes.
type Catalog struct {
	Fields []FieldDef
	Rules  []RuleDef

	byID       map[int]*FieldDef
	byName     map[string]*FieldDef
	byCategory map[Category][]*FieldDef
	byPriority map[Priority][]*FieldDef
	ruleByID   map[string]*RuleDef
}

// New builds the catalog and fail-fast validates it: duplicate field
// ids or names, duplicate rule ids, or a rule referencing an unknown
// field all return an error so the process never starts on a broken
// data model.
func New() (*Catalog, error) {
	c := &Catalog{
		Fields:     fieldDefs,
		Rules:      ruleDefs,
		byID:       make(map[int]*FieldDef, len(fieldDefs)),
		byName:     make(map[string]*FieldDef, len(fieldDefs)),
		byCategory: make(map[Category][]*FieldDef),
		byPriority: make(map[Priority][]*FieldDef),
		ruleByID:   make(map[string]*RuleDef, len(ruleDefs)),
	}

	for i := range c.Fields {
		f := &c.Fields[i]
		if _, dup := c.byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate field id %d", f.ID)
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field name %q", f.Name)
		}
		c.byID[f.ID] = f
		c.byName[f.Name] = f
		c.byCategory[f.Category] = append(c.byCategory[f.Category], f)
		c.byPriority[f.Priority] = append(c.byPriority[f.Priority], f)
	}

	for i := range c.Rules {
		r := &c.Rules[i]
		if _, dup := c.ruleByID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		for _, name := range r.RequiredFields {
			if _, ok := c.byName[name]; !ok {
				return nil, fmt.Errorf("rule %s references unknown field %q", r.ID, name)
			}
		}
		c.ruleByID[r.ID] = r
	}

	return c, nil
}

// FieldByID returns the field with the given numeric id.
func (c *Catalog) FieldByID(id int) (*FieldDef, bool) {
	f, ok := c.byID[id]
	return f, ok
}

// FieldByName returns the field with the given name.
func (c *Catalog) FieldByName(name string) (*FieldDef, bool) {
	f, ok := c.byName[name]
	return f, ok
}

// FieldsByCategory returns all fields in a category, in catalog order.
func (c *Catalog) FieldsByCategory(cat Category) []*FieldDef {
	return c.byCategory[cat]
}

// FieldsByPriority returns all fields with a given priority.
func (c *Catalog) FieldsByPriority(p Priority) []*FieldDef {
	return c.byPriority[p]
}

// RuleByID returns the rule with the given id.
func (c *Catalog) RuleByID(id string) (*RuleDef, bool) {
	r, ok := c.ruleByID[id]
	return r, ok
}

// RulesByType returns all rules of the given type, in catalog order.
func (c *Catalog) RulesByType(t RuleType) []*RuleDef {
	var out []*RuleDef
	for i := range c.Rules {
		if c.Rules[i].Type == t {
			out = append(out, &c.Rules[i])
		}
	}
	return out
}

// CriticalFieldNames lists the names of all critical-priority fields.
func (c *Catalog) CriticalFieldNames() []string {
	fields := c.byPriority[Critical]
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

// CalculatedFieldNames lists the names of all derived fields.
func (c *Catalog) CalculatedFieldNames() []string {
	var names []string
	for i := range c.Fields {
		if c.Fields[i].Method == Calculated {
			names = append(names, c.Fields[i].Name)
		}
	}
	return names
}

// TotalFields returns the number of fields in the catalog.
func (c *Catalog) TotalFields() int {
	return len(c.Fields)
}
