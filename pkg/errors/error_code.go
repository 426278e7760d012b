package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidTimeframe     ErrorCode = 110
	ErrCodeInvalidProvider      ErrorCode = 111
	ErrCodeMissingAPIKey        ErrorCode = 112

	// Data errors (200-299)
	ErrCodeDataNotFound     ErrorCode = 200
	ErrCodeInsufficientData ErrorCode = 206
	ErrCodeEmptySeries      ErrorCode = 207
	ErrCodeMisalignedSeries ErrorCode = 208

	// Upstream errors (700-799)
	ErrCodeUpstreamFetchFailed ErrorCode = 700
	ErrCodeUpstreamParseFailed ErrorCode = 702
	ErrCodeUpstreamRateLimited ErrorCode = 705
	ErrCodeUpstreamStatus      ErrorCode = 706
	ErrCodeUpstreamTimeout     ErrorCode = 707

	// Pipeline errors (800-899)
	ErrCodeAllProvidersExhausted ErrorCode = 800
	ErrCodeBacktestInputInvalid  ErrorCode = 801
	ErrCodePredictionFailed      ErrorCode = 802
	ErrCodeTrainingFailed        ErrorCode = 803
	ErrCodeExportFailed          ErrorCode = 804
)

// Category returns the human-readable category an error code belongs to.
func (c ErrorCode) Category() string {
	switch {
	case c >= 100 && c < 200:
		return "validation"
	case c >= 200 && c < 300:
		return "data"
	case c >= 700 && c < 800:
		return "upstream"
	case c >= 800 && c < 900:
		return "pipeline"
	default:
		return "general"
	}
}
