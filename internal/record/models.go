package record

import (
	"time"

	"github.com/stockpulse/platform/internal/catalog"
)

// Status of an extraction attempt or pipeline run.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ExtractionAttempt records one attempt against one source.
type ExtractionAttempt struct {
	Source          catalog.Source `json:"source"`
	Symbol          string         `json:"symbol"`
	FieldsExtracted []string       `json:"fields_extracted"`
	FieldsFailed    []string       `json:"fields_failed"`
	Status          Status         `json:"status"`
	StartedAt       time.Time      `json:"started_at"`
	CompletedAt     time.Time      `json:"completed_at"`
	DurationMS      int64          `json:"duration_ms"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	RetryCount      int            `json:"retry_count"`
}

// Finish stamps the completion time and duration.
func (a *ExtractionAttempt) Finish(status Status) {
	a.Status = status
	a.CompletedAt = time.Now().UTC()
	a.DurationMS = a.CompletedAt.Sub(a.StartedAt).Milliseconds()
}

// MultiSourceValue tracks one field observed by multiple sources.
type MultiSourceValue struct {
	FieldName      string                             `json:"field_name"`
	Values         map[catalog.Source]interface{}     `json:"values"`
	Timestamps     map[catalog.Source]time.Time       `json:"timestamps"`
	AgreedValue    interface{}                        `json:"agreed_value"`
	AgreementScore float64                            `json:"agreement_score"`
}

// PriceBar is one trading day of price/volume data.
type PriceBar struct {
	Date           time.Time `json:"date"`
	Open           float64   `json:"open"`
	High           float64   `json:"high"`
	Low            float64   `json:"low"`
	Close          float64   `json:"close"`
	AdjClose       float64   `json:"adjusted_close,omitempty"`
	Volume         int64     `json:"volume"`
	DeliveryVolume int64     `json:"delivery_volume,omitempty"`
	DeliveryPct    float64   `json:"delivery_percentage,omitempty"`
	Turnover       float64   `json:"turnover,omitempty"`
	Trades         int64     `json:"trades_count,omitempty"`
	PrevClose      float64   `json:"prev_close,omitempty"`
}

// Snapshot is one dated row of a financial or shareholding series.
// Values are keyed by catalog field name.
type Snapshot struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}

// Value returns a named value from the snapshot.
func (s Snapshot) Value(name string) (float64, bool) {
	v, ok := s.Values[name]
	return v, ok
}
