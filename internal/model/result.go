package model

import "time"

// FieldResult is the verdict for one validated label field.
type FieldResult struct {
	FieldKey           FieldKey    `json:"field_key"`
	FieldName          string      `json:"field_name"`
	ExtractedValue     string      `json:"extracted_value,omitempty"`
	ExpectedValue      string      `json:"expected_value,omitempty"`
	Status             FieldStatus `json:"status"`
	Reason             string      `json:"reason,omitempty"`
	SourceImageIndices []int       `json:"source_image_indices,omitempty"`
	Candidates         []string    `json:"candidates,omitempty"`
}

// WarningResult is the verdict for the government health warning statement.
type WarningResult struct {
	ExtractedWarning string      `json:"extracted_warning,omitempty"`
	WordingStatus    FieldStatus `json:"wording_status"`
	UppercaseStatus  FieldStatus `json:"uppercase_status"`
	BoldStatus       BoldStatus  `json:"bold_status"`
	OverallStatus    FieldStatus `json:"overall_status"`
	Reason           string      `json:"reason,omitempty"`

	ObservedFontSize   FontSize   `json:"observed_font_size,omitempty"`
	ObservedVisibility Visibility `json:"observed_visibility,omitempty"`
	FormattingReason   string     `json:"formatting_reason,omitempty"`
}

// ApplicationResult is the full verification outcome for one label
// application. Constructed fresh on every run, never mutated.
type ApplicationResult struct {
	ID              string        `json:"id"`
	ApplicationID   string        `json:"application_id"`
	ApplicationName string        `json:"application_name"`
	OverallStatus   OverallStatus `json:"overall_status"`

	// TopReasons holds at most three reasons, failures before review items.
	TopReasons []string `json:"top_reasons"`

	FieldResults []FieldResult `json:"field_results"`
	Warning      WarningResult `json:"warning_result"`

	ProcessingTimeMs int64  `json:"processing_time_ms"`
	ImageCount       int    `json:"image_count"`
	ErrorMessage     string `json:"error_message,omitempty"`
}

// Report is a persisted verification result.
type Report struct {
	ID              string            `json:"id"`
	ApplicationID   string            `json:"application_id"`
	ApplicationName string            `json:"application_name"`
	Status          OverallStatus     `json:"status"`
	Result          ApplicationResult `json:"result"`
	CreatedAt       time.Time         `json:"created_at"`
}
