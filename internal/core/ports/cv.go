package ports

import "context"

// CVAnalysis is the structured result of parsing a CV.
type CVAnalysis struct {
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
}

// CVAnalyzer is the external LLM-backed parser.
type CVAnalyzer interface {
	AnalyzeCV(ctx context.Context, text string) (*CVAnalysis, error)
}
