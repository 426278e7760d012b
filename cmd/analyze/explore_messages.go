package main

import "github.com/rxtech-lab/argo-insight/pkg/analysis"

// AnalysisMsg carries the outcome of analysing one asset.
type AnalysisMsg struct {
	Asset  string
	Report analysis.Report
	Err    error
}
