package writer

import (
	"github.com/rxtech-lab/argo-insight/internal/types"
)

// AnalysisWriter defines the interface for exporting an analysed series.
type AnalysisWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists one enriched row together with its signal.
	Write(asset string, row types.EnrichedRow, signal types.SignalRow) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
