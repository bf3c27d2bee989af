package catalog

// fieldDefs is the complete field table: 160 fields across 13
// categories. Order is catalog order; ids are stable and never reused.
//
// Columns: ID, Name, Category, Type, Unit, Priority, Frequency,
// Source, Method, Backup, UsedFor, Rules, History.
var fieldDefs = []FieldDef{
	// Category 1: stock master (14 fields)
	{1, "symbol", StockMaster, KindString, "", Critical, OnEvent, SrcNSEBSE, Download, "", "Primary identifier", nil, ""},
	{2, "company_name", StockMaster, KindString, "", Critical, OnEvent, SrcNSEBSE, Download, "", "Display name", nil, ""},
	{3, "isin", StockMaster, KindString, "", Critical, Never, SrcNSEBSE, Download, "", "Cross-exchange ID", nil, ""},
	{4, "nse_code", StockMaster, KindString, "", Critical, OnEvent, SrcNSE, Download, "", "NSE trading symbol", nil, ""},
	{5, "bse_code", StockMaster, KindString, "", Important, OnEvent, SrcBSE, Download, "", "BSE scrip code", nil, ""},
	{6, "sector", StockMaster, KindString, "", Critical, OnEvent, SrcScreener, Scrape, SrcTrendlyne, "Sector comparison", nil, ""},
	{7, "industry", StockMaster, KindString, "", Critical, OnEvent, SrcScreener, Scrape, SrcTrendlyne, "Industry peer comparison", nil, ""},
	{8, "market_cap_category", StockMaster, KindEnum, "", Important, Daily, SrcCalculated, Calculated, "", "Size classification", nil, ""},
	{9, "listing_date", StockMaster, KindDate, "", Standard, Never, SrcNSEBSE, Download, "", "Company age analysis", nil, ""},
	{10, "face_value", StockMaster, KindDecimal, "INR", Standard, OnEvent, SrcNSEBSE, Download, "", "Corp action adjustment", nil, ""},
	{11, "shares_outstanding", StockMaster, KindInteger, "shares", Important, Quarterly, SrcBSEFilings, Scrape, SrcScreener, "Market cap, EPS calc", nil, ""},
	{12, "free_float_shares", StockMaster, KindInteger, "shares", Standard, Quarterly, SrcBSEFilings, Scrape, SrcTrendlyne, "Float analysis", nil, ""},
	{13, "website", StockMaster, KindURL, "", Optional, Never, SrcScreener, Scrape, "", "Company research", nil, ""},
	{14, "registered_office", StockMaster, KindString, "", Optional, Never, SrcBSE, Scrape, "", "Company info", nil, ""},

	// Category 2: price & volume (13 fields)
	{15, "date", PriceVolume, KindDate, "", Critical, Daily, SrcNSEBhavcopy, Download, SrcYahoo, "Time series key", nil, "10 years"},
	{16, "open", PriceVolume, KindDecimal, "INR", Critical, Daily, SrcNSEBhavcopy, Download, SrcYahoo, "Candlestick, gap analysis", nil, "10 years"},
	{17, "high", PriceVolume, KindDecimal, "INR", Critical, Daily, SrcNSEBhavcopy, Download, SrcYahoo, "Range, resistance", nil, "10 years"},
	{18, "low", PriceVolume, KindDecimal, "INR", Critical, Daily, SrcNSEBhavcopy, Download, SrcYahoo, "Range, support", nil, "10 years"},
	{19, "close", PriceVolume, KindDecimal, "INR", Critical, Daily, SrcNSEBhavcopy, Download, SrcYahoo, "All calculations", nil, "10 years"},
	{20, "adjusted_close", PriceVolume, KindDecimal, "INR", Critical, Daily, SrcYahoo, API, "", "Accurate returns", nil, "10 years"},
	{21, "volume", PriceVolume, KindInteger, "shares", Critical, Daily, SrcNSEBhavcopy, Download, SrcYahoo, "Liquidity", []string{"D10"}, "10 years"},
	{22, "delivery_volume", PriceVolume, KindInteger, "shares", Important, Daily, SrcNSEBhavcopy, Download, "", "Genuine buying", nil, "10 years"},
	{23, "delivery_percentage", PriceVolume, KindDecimal, "%", Important, Daily, SrcNSEBhavcopy, Download, "", "Buyer conviction", []string{"R9"}, "10 years"},
	{24, "turnover", PriceVolume, KindDecimal, "INR_CR", Important, Daily, SrcNSEBhavcopy, Download, "", "Value traded", nil, "10 years"},
	{25, "trades_count", PriceVolume, KindInteger, "", Important, Daily, SrcNSEBhavcopy, Download, "", "Participation breadth", nil, "10 years"},
	{26, "prev_close", PriceVolume, KindDecimal, "INR", Standard, Daily, SrcNSEBhavcopy, Download, "", "Daily change calc", nil, "10 years"},
	{27, "vwap", PriceVolume, KindDecimal, "INR", Standard, Daily, SrcNSE, Scrape, "", "Institutional benchmark", nil, "1 year"},

	// Category 3: derived price metrics (11 fields)
	{28, "daily_return_pct", DerivedMetrics, KindDecimal, "%", Critical, Daily, SrcCalculated, Calculated, "", "Return analysis, volatility", nil, "10 years"},
	{29, "return_5d_pct", DerivedMetrics, KindDecimal, "%", Standard, Daily, SrcCalculated, Calculated, "", "5-day momentum", nil, "10 years"},
	{30, "return_20d_pct", DerivedMetrics, KindDecimal, "%", Standard, Daily, SrcCalculated, Calculated, "", "20-day momentum", nil, "10 years"},
	{31, "return_60d_pct", DerivedMetrics, KindDecimal, "%", Standard, Daily, SrcCalculated, Calculated, "", "60-day momentum", nil, "10 years"},
	{32, "day_range_pct", DerivedMetrics, KindDecimal, "%", Standard, Daily, SrcCalculated, Calculated, "", "Intraday volatility", nil, "10 years"},
	{33, "gap_percentage", DerivedMetrics, KindDecimal, "%", Standard, Daily, SrcCalculated, Calculated, "", "Gap detection", nil, "10 years"},
	{34, "week_52_high", DerivedMetrics, KindDecimal, "INR", Critical, Daily, SrcCalculated, Calculated, "", "Technical analysis", []string{"Q8"}, "10 years"},
	{35, "week_52_low", DerivedMetrics, KindDecimal, "INR", Critical, Daily, SrcCalculated, Calculated, "", "Support detection", nil, "10 years"},
	{36, "distance_from_52w_high", DerivedMetrics, KindDecimal, "%", Important, Daily, SrcCalculated, Calculated, "", "Drawdown from high", []string{"R6", "Q8"}, "10 years"},
	{37, "volume_ratio", DerivedMetrics, KindDecimal, "", Important, Daily, SrcCalculated, Calculated, "", "Volume spike detection", nil, "10 years"},
	{38, "avg_volume_20d", DerivedMetrics, KindInteger, "shares", Critical, Daily, SrcCalculated, Calculated, "", "Liquidity floor", []string{"D10"}, "10 years"},

	// Category 4: income statement (18 fields)
	{39, "revenue", IncomeStatement, KindDecimal, "INR_CR", Critical, Quarterly, SrcScreener, Scrape, SrcTrendlyne, "Growth, P/S", []string{"D3"}, "10 years"},
	{40, "revenue_growth_yoy", IncomeStatement, KindDecimal, "%", Critical, Quarterly, SrcCalculated, Calculated, "", "Revenue trend", []string{"D3", "Q2"}, "10 years"},
	{41, "revenue_growth_qoq", IncomeStatement, KindDecimal, "%", Important, Quarterly, SrcCalculated, Calculated, "", "Quarterly momentum", nil, "10 years"},
	{42, "operating_profit", IncomeStatement, KindDecimal, "INR_CR", Critical, Quarterly, SrcScreener, Scrape, SrcTrendlyne, "Op margin calc", nil, "10 years"},
	{43, "operating_margin", IncomeStatement, KindDecimal, "%", Critical, Quarterly, SrcScreener, Scrape, "", "Margin quality", []string{"Q7", "R7"}, "10 years"},
	{44, "gross_profit", IncomeStatement, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Gross margin", nil, "10 years"},
	{45, "gross_margin", IncomeStatement, KindDecimal, "%", Important, Annual, SrcCalculated, Calculated, "", "Pricing power", nil, "10 years"},
	{46, "net_profit", IncomeStatement, KindDecimal, "INR_CR", Critical, Quarterly, SrcScreener, Scrape, SrcTrendlyne, "EPS, P/E", nil, "10 years"},
	{47, "net_profit_margin", IncomeStatement, KindDecimal, "%", Critical, Quarterly, SrcCalculated, Calculated, "", "Profitability", nil, "10 years"},
	{48, "eps", IncomeStatement, KindDecimal, "INR", Critical, Quarterly, SrcScreener, Scrape, "", "P/E, EPS growth", nil, "10 years"},
	{49, "eps_growth_yoy", IncomeStatement, KindDecimal, "%", Critical, Quarterly, SrcCalculated, Calculated, "", "PEG calculation", nil, "10 years"},
	{50, "interest_expense", IncomeStatement, KindDecimal, "INR_CR", Critical, Quarterly, SrcScreener, Scrape, "", "Interest coverage input", []string{"D1"}, "10 years"},
	{51, "depreciation", IncomeStatement, KindDecimal, "INR_CR", Important, Quarterly, SrcScreener, Scrape, "", "EBITDA calc", nil, "10 years"},
	{52, "ebitda", IncomeStatement, KindDecimal, "INR_CR", Important, Quarterly, SrcScreener, Scrape, "", "EV/EBITDA", nil, "10 years"},
	{53, "ebit", IncomeStatement, KindDecimal, "INR_CR", Important, Quarterly, SrcCalculated, Calculated, "", "Interest coverage", nil, "10 years"},
	{54, "other_income", IncomeStatement, KindDecimal, "INR_CR", Important, Quarterly, SrcScreener, Scrape, "", "Core vs non-core", nil, "10 years"},
	{55, "tax_expense", IncomeStatement, KindDecimal, "INR_CR", Standard, Quarterly, SrcScreener, Scrape, "", "Tax rate", nil, "10 years"},
	{56, "effective_tax_rate", IncomeStatement, KindDecimal, "%", Standard, Annual, SrcCalculated, Calculated, "", "Tax efficiency", nil, "10 years"},

	// Category 5: balance sheet (17 fields)
	{57, "total_assets", BalanceSheet, KindDecimal, "INR_CR", Critical, Annual, SrcScreener, Scrape, "", "ROA calculation", nil, "10 years"},
	{58, "total_equity", BalanceSheet, KindDecimal, "INR_CR", Critical, Annual, SrcScreener, Scrape, "", "ROE, D/E, BV", nil, "10 years"},
	{59, "total_debt", BalanceSheet, KindDecimal, "INR_CR", Critical, Quarterly, SrcScreener, Scrape, "", "Leverage", []string{"D8"}, "10 years"},
	{60, "long_term_debt", BalanceSheet, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Debt structure", nil, "10 years"},
	{61, "short_term_debt", BalanceSheet, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Short-term liquidity", nil, "10 years"},
	{62, "cash_and_equivalents", BalanceSheet, KindDecimal, "INR_CR", Critical, Quarterly, SrcScreener, Scrape, "", "Net debt", []string{"Q3"}, "10 years"},
	{63, "net_debt", BalanceSheet, KindDecimal, "INR_CR", Important, Quarterly, SrcCalculated, Calculated, "", "EV calculation", nil, "10 years"},
	{64, "current_assets", BalanceSheet, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Current ratio", nil, "10 years"},
	{65, "current_liabilities", BalanceSheet, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Current/Quick ratio", nil, "10 years"},
	{66, "inventory", BalanceSheet, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Quick ratio", nil, "10 years"},
	{67, "receivables", BalanceSheet, KindDecimal, "INR_CR", Standard, Annual, SrcScreener, Scrape, "", "Receivables turnover", nil, "10 years"},
	{68, "payables", BalanceSheet, KindDecimal, "INR_CR", Standard, Annual, SrcScreener, Scrape, "", "Payables turnover", nil, "10 years"},
	{69, "fixed_assets", BalanceSheet, KindDecimal, "INR_CR", Standard, Annual, SrcScreener, Scrape, "", "Asset turnover", nil, "10 years"},
	{70, "intangible_assets", BalanceSheet, KindDecimal, "INR_CR", Standard, Annual, SrcScreener, Scrape, "", "Goodwill analysis", nil, "10 years"},
	{71, "reserves_and_surplus", BalanceSheet, KindDecimal, "INR_CR", Standard, Annual, SrcScreener, Scrape, "", "Retained earnings", nil, "10 years"},
	{72, "book_value_per_share", BalanceSheet, KindDecimal, "INR", Important, Annual, SrcScreener, Scrape, SrcCalculated, "P/B ratio", nil, "10 years"},
	{73, "contingent_liabilities", BalanceSheet, KindDecimal, "INR_CR", Standard, Annual, SrcAnnualReport, Scrape, SrcScreener, "Off-balance risk", []string{"R10"}, "10 years"},

	// Category 6: cash flow statement (8 fields)
	{74, "operating_cash_flow", CashFlow, KindDecimal, "INR_CR", Critical, Annual, SrcScreener, Scrape, "", "OCF > NI check, FCF", []string{"D4"}, "10 years"},
	{75, "investing_cash_flow", CashFlow, KindDecimal, "INR_CR", Critical, Annual, SrcScreener, Scrape, "", "CapEx analysis", nil, "10 years"},
	{76, "financing_cash_flow", CashFlow, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Debt/equity financing", nil, "10 years"},
	{77, "capital_expenditure", CashFlow, KindDecimal, "INR_CR", Critical, Annual, SrcScreener, Scrape, "", "FCF input", nil, "10 years"},
	{78, "free_cash_flow", CashFlow, KindDecimal, "INR_CR", Critical, Annual, SrcCalculated, Calculated, "", "Cash generation", []string{"D5", "Q9"}, "10 years"},
	{79, "dividends_paid", CashFlow, KindDecimal, "INR_CR", Important, Annual, SrcScreener, Scrape, "", "Dividend payout", []string{"Q4"}, "10 years"},
	{80, "debt_repayment", CashFlow, KindDecimal, "INR_CR", Standard, Annual, SrcScreener, Scrape, "", "Debt servicing", nil, "10 years"},
	{81, "equity_raised", CashFlow, KindDecimal, "INR_CR", Standard, Annual, SrcScreener, Scrape, "", "Dilution tracking", nil, "10 years"},

	// Category 7: financial ratios (11 fields)
	{82, "roe", FinancialRatios, KindDecimal, "%", Critical, Quarterly, SrcCalculated, Calculated, "", "Equity returns", []string{"Q1", "R3"}, "10 years"},
	{83, "roa", FinancialRatios, KindDecimal, "%", Important, Annual, SrcCalculated, Calculated, "", "Asset efficiency", nil, "10 years"},
	{84, "roic", FinancialRatios, KindDecimal, "%", Important, Annual, SrcCalculated, Calculated, "", "Capital efficiency", nil, "10 years"},
	{85, "debt_to_equity", FinancialRatios, KindDecimal, "", Critical, Quarterly, SrcCalculated, Calculated, "", "Leverage ratio", []string{"D8", "R1", "Q3"}, "10 years"},
	{86, "interest_coverage", FinancialRatios, KindDecimal, "", Critical, Quarterly, SrcCalculated, Calculated, "", "Debt service ability", []string{"D1", "R2"}, "10 years"},
	{87, "current_ratio", FinancialRatios, KindDecimal, "", Important, Annual, SrcCalculated, Calculated, "", "Liquidity", []string{"Q10"}, "10 years"},
	{88, "quick_ratio", FinancialRatios, KindDecimal, "", Standard, Annual, SrcCalculated, Calculated, "", "Short-term liquidity", nil, "10 years"},
	{89, "asset_turnover", FinancialRatios, KindDecimal, "", Standard, Annual, SrcCalculated, Calculated, "", "Efficiency analysis", nil, "10 years"},
	{90, "inventory_turnover", FinancialRatios, KindDecimal, "", Standard, Annual, SrcCalculated, Calculated, "", "Working capital", nil, "10 years"},
	{91, "receivables_turnover", FinancialRatios, KindDecimal, "", Standard, Annual, SrcCalculated, Calculated, "", "Collection efficiency", nil, "10 years"},
	{92, "dividend_payout_ratio", FinancialRatios, KindDecimal, "%", Important, Annual, SrcCalculated, Calculated, "", "Payout sustainability", []string{"Q4"}, "10 years"},

	// Category 8: valuation metrics (17 fields)
	{93, "market_cap", Valuation, KindDecimal, "INR_CR", Critical, Daily, SrcCalculated, Calculated, SrcScreener, "Size, EV calc", nil, "10 years"},
	{94, "enterprise_value", Valuation, KindDecimal, "INR_CR", Critical, Daily, SrcCalculated, Calculated, "", "EV/EBITDA", nil, "10 years"},
	{95, "pe_ratio", Valuation, KindDecimal, "", Critical, Daily, SrcCalculated, Calculated, SrcScreener, "Valuation", []string{"R8"}, "10 years"},
	{96, "pe_ratio_forward", Valuation, KindDecimal, "", Critical, Quarterly, SrcTrendlyne, Scrape, "", "Forward valuation", nil, "3 years"},
	{97, "peg_ratio", Valuation, KindDecimal, "", Critical, Quarterly, SrcCalculated, Calculated, "", "Growth-adjusted val", nil, "10 years"},
	{98, "pb_ratio", Valuation, KindDecimal, "", Important, Daily, SrcCalculated, Calculated, "", "Asset-based val", nil, "10 years"},
	{99, "ps_ratio", Valuation, KindDecimal, "", Important, Daily, SrcCalculated, Calculated, "", "Revenue-based val", nil, "10 years"},
	{100, "ev_to_ebitda", Valuation, KindDecimal, "", Critical, Quarterly, SrcCalculated, Calculated, "", "Valuation scoring", nil, "10 years"},
	{101, "ev_to_sales", Valuation, KindDecimal, "", Standard, Quarterly, SrcCalculated, Calculated, "", "Revenue-based EV", nil, "10 years"},
	{102, "dividend_yield", Valuation, KindDecimal, "%", Important, Daily, SrcCalculated, Calculated, SrcScreener, "Income investing", nil, "10 years"},
	{103, "fcf_yield", Valuation, KindDecimal, "%", Important, Annual, SrcCalculated, Calculated, "", "Cash yield", []string{"Q9"}, "10 years"},
	{104, "earnings_yield", Valuation, KindDecimal, "%", Important, Daily, SrcCalculated, Calculated, "", "Bond yield comparison", nil, "10 years"},
	{105, "sector_avg_pe", Valuation, KindDecimal, "", Important, Weekly, SrcScreener, Scrape, SrcTrendlyne, "Sector benchmark", []string{"R8"}, "3 years"},
	{106, "sector_avg_roe", Valuation, KindDecimal, "%", Important, Weekly, SrcScreener, Scrape, SrcTrendlyne, "Sector benchmark", nil, "3 years"},
	{107, "industry_avg_pe", Valuation, KindDecimal, "", Standard, Weekly, SrcScreener, Scrape, "", "Industry comparison", nil, "3 years"},
	{108, "historical_pe_median", Valuation, KindDecimal, "", Standard, Daily, SrcCalculated, Calculated, "", "Historical valuation", nil, "5 years"},
	{109, "sector_performance", Valuation, KindDecimal, "%", Important, Daily, SrcNSEIndices, Download, "", "Sector strength check", nil, "1 year"},

	// Category 9: shareholding pattern (10 fields)
	{110, "promoter_holding", Shareholding, KindDecimal, "%", Critical, Quarterly, SrcBSEFilings, Scrape, SrcTrendlyne, "Ownership", []string{"R4"}, "7 years"},
	{111, "promoter_pledging", Shareholding, KindDecimal, "%", Critical, Quarterly, SrcBSEFilings, Scrape, SrcTrendlyne, "Pledge risk", []string{"D7", "R5"}, "7 years"},
	{112, "fii_holding", Shareholding, KindDecimal, "%", Critical, Quarterly, SrcBSEFilings, Scrape, SrcTrendlyne, "Foreign institutional", []string{"Q6"}, "7 years"},
	{113, "dii_holding", Shareholding, KindDecimal, "%", Important, Quarterly, SrcBSEFilings, Scrape, "", "Domestic institutional", nil, "7 years"},
	{114, "public_holding", Shareholding, KindDecimal, "%", Important, Quarterly, SrcBSEFilings, Scrape, "", "Retail participation", nil, "7 years"},
	{115, "promoter_holding_change", Shareholding, KindDecimal, "%", Important, Quarterly, SrcCalculated, Calculated, "", "Ownership trend", []string{"R4", "Q5"}, "7 years"},
	{116, "fii_holding_change", Shareholding, KindDecimal, "%", Important, Quarterly, SrcCalculated, Calculated, "", "FII trend", []string{"Q6"}, "7 years"},
	{117, "num_shareholders", Shareholding, KindInteger, "", Standard, Quarterly, SrcBSEFilings, Scrape, "", "Retail breadth", nil, "7 years"},
	{118, "mf_holding", Shareholding, KindDecimal, "%", Standard, Quarterly, SrcBSEFilings, Scrape, "", "MF interest", nil, "7 years"},
	{119, "insurance_holding", Shareholding, KindDecimal, "%", Standard, Quarterly, SrcBSEFilings, Scrape, "", "Insurance interest", nil, "7 years"},

	// Category 10: corporate actions & events (10 fields)
	{120, "dividend_per_share", CorporateActions, KindDecimal, "INR", Important, OnEvent, SrcBSEAnnouncements, Scrape, SrcScreener, "Div yield", []string{"Q4"}, "10 years"},
	{121, "ex_dividend_date", CorporateActions, KindDate, "", Important, OnEvent, SrcBSEAnnouncements, Scrape, "", "Price adjustment", nil, "10 years"},
	{122, "stock_split_ratio", CorporateActions, KindString, "", Important, OnEvent, SrcBSEAnnouncements, Scrape, "", "Price/shares adjustment", nil, "10 years"},
	{123, "bonus_ratio", CorporateActions, KindString, "", Important, OnEvent, SrcBSEAnnouncements, Scrape, "", "Shares adjustment", nil, "10 years"},
	{124, "rights_issue_ratio", CorporateActions, KindString, "", Standard, OnEvent, SrcBSEAnnouncements, Scrape, "", "Dilution tracking", nil, "10 years"},
	{125, "buyback_details", CorporateActions, KindString, "", Standard, OnEvent, SrcBSEAnnouncements, Scrape, "", "Capital return", nil, "10 years"},
	{126, "next_earnings_date", CorporateActions, KindDate, "", Important, OnEvent, SrcBSEAnnouncements, Scrape, "", "Earnings calendar", nil, "current"},
	{127, "pending_events", CorporateActions, KindObjectList, "", Important, OnEvent, SrcBSEAnnouncements, Scrape, "", "Catalyst calendar", nil, "current"},
	{128, "stock_status", CorporateActions, KindEnum, "", Critical, OnEvent, SrcNSEBSE, Download, "", "Trading status", []string{"D6"}, "current"},
	{129, "sebi_investigation", CorporateActions, KindBoolean, "", Critical, OnEvent, SrcSEBI, Scrape, SrcRSSFeeds, "Regulatory risk", []string{"D2"}, "current"},

	// Category 11: news & sentiment (8 fields)
	{130, "news_headline", NewsSentiment, KindString, "", Important, RealTime, SrcRSSFeeds, RSS, "", "News display", nil, "30 days"},
	{131, "news_body_text", NewsSentiment, KindString, "", Important, RealTime, SrcRSSFeeds, RSS, "", "Full sentiment", nil, "30 days"},
	{132, "news_source", NewsSentiment, KindString, "", Standard, RealTime, SrcRSSFeeds, RSS, "", "Source credibility", nil, "30 days"},
	{133, "news_timestamp", NewsSentiment, KindDatetime, "", Important, RealTime, SrcRSSFeeds, RSS, "", "Recency weight", nil, "30 days"},
	{134, "news_sentiment_score", NewsSentiment, KindDecimal, "", Important, RealTime, SrcCalculated, NLP, "", "Sentiment scoring", nil, "30 days"},
	{135, "stock_tickers_mentioned", NewsSentiment, KindStringList, "", Standard, RealTime, SrcCalculated, NLP, "", "Stock tagging", nil, "30 days"},
	{136, "credit_rating", NewsSentiment, KindString, "", Important, OnEvent, SrcRatingAgencies, Scrape, "", "Credit risk", []string{"D9"}, "current"},
	{137, "credit_outlook", NewsSentiment, KindEnum, "", Standard, OnEvent, SrcRatingAgencies, Scrape, "", "Credit trend", nil, "current"},

	// Category 12: technical indicators (15 fields)
	{138, "sma_20", Technical, KindDecimal, "INR", Important, Daily, SrcIndicators, Calculated, "", "Short-term trend", nil, "10 years"},
	{139, "sma_50", Technical, KindDecimal, "INR", Critical, Daily, SrcIndicators, Calculated, "", "Medium trend", nil, "10 years"},
	{140, "sma_200", Technical, KindDecimal, "INR", Critical, Daily, SrcIndicators, Calculated, "", "Long-term trend", nil, "10 years"},
	{141, "ema_12", Technical, KindDecimal, "INR", Important, Daily, SrcIndicators, Calculated, "", "MACD calculation", nil, "10 years"},
	{142, "ema_26", Technical, KindDecimal, "INR", Important, Daily, SrcIndicators, Calculated, "", "MACD calculation", nil, "10 years"},
	{143, "rsi_14", Technical, KindDecimal, "", Critical, Daily, SrcIndicators, Calculated, "", "Overbought/oversold", nil, "10 years"},
	{144, "macd", Technical, KindDecimal, "", Critical, Daily, SrcIndicators, Calculated, "", "Momentum", nil, "10 years"},
	{145, "macd_signal", Technical, KindDecimal, "", Critical, Daily, SrcIndicators, Calculated, "", "Signal crossovers", nil, "10 years"},
	{146, "bollinger_upper", Technical, KindDecimal, "INR", Important, Daily, SrcIndicators, Calculated, "", "Volatility bands", nil, "10 years"},
	{147, "bollinger_lower", Technical, KindDecimal, "INR", Important, Daily, SrcIndicators, Calculated, "", "Volatility bands", nil, "10 years"},
	{148, "atr_14", Technical, KindDecimal, "", Important, Daily, SrcIndicators, Calculated, "", "Stop-loss calc", nil, "10 years"},
	{149, "adx_14", Technical, KindDecimal, "", Standard, Daily, SrcIndicators, Calculated, "", "Trend strength", nil, "10 years"},
	{150, "obv", Technical, KindInteger, "", Standard, Daily, SrcIndicators, Calculated, "", "Volume confirmation", nil, "10 years"},
	{151, "support_level", Technical, KindDecimal, "INR", Important, Daily, SrcCalculated, Calculated, "", "Stop-loss", nil, "1 year"},
	{152, "resistance_level", Technical, KindDecimal, "INR", Important, Daily, SrcCalculated, Calculated, "", "Target", nil, "1 year"},

	// Category 13: qualitative & metadata (8 fields)
	{153, "moat_assessment", QualitativeMetadata, KindString, "", Qualitative, OnEvent, SrcManual, Manual, "", "Competitive moat", nil, ""},
	{154, "management_assessment", QualitativeMetadata, KindString, "", Qualitative, OnEvent, SrcManual, Manual, "", "Management track record", nil, ""},
	{155, "industry_growth_assessment", QualitativeMetadata, KindString, "", Qualitative, OnEvent, SrcManual, Manual, "", "Industry tailwinds", nil, ""},
	{156, "disruption_risk", QualitativeMetadata, KindString, "", Qualitative, OnEvent, SrcManual, Manual, "", "Existential disruption", nil, ""},
	{157, "fraud_history", QualitativeMetadata, KindBoolean, "", Qualitative, OnEvent, SrcManual, Manual, "", "Accounting fraud history", nil, ""},
	{158, "field_availability", QualitativeMetadata, KindBoolMap, "", Metadata, Continuous, SrcSystem, Auto, "", "Completeness tracking", nil, ""},
	{159, "field_last_updated", QualitativeMetadata, KindTimeMap, "", Metadata, Continuous, SrcSystem, Auto, "", "Freshness tracking", nil, ""},
	{160, "multi_source_values", QualitativeMetadata, KindObjectMap, "", Metadata, Continuous, SrcSystem, Auto, "", "Source agreement tracking", nil, ""},
}
