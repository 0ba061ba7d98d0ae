package models

// Record is one row of the output CSV, keyed by repository name.
type Record struct {
	RepositoryName string `csv:"RepositoryName"`
	Summary        string `csv:"Summary"`
	TechStack      string `csv:"TechStack"`
}

// Analysis is the two-field result extracted from the AI response.
type Analysis struct {
	Summary   string `json:"summary"`
	TechStack string `json:"tech_stack"`
}

// Sentinel values recorded when no real analysis is available. They keep
// "no data" distinguishable from "not yet processed" in the output file.
const (
	SummaryNoReadme     = "N/A - No README"
	SummaryEmptyReadme  = "N/A - Empty README"
	SummaryFailed       = "Error - analysis failed"
	SummaryNotGenerated = "Summary not generated"

	TechStackNA            = "N/A"
	TechStackFailed        = "Error"
	TechStackNotIdentified = "Tech stack not identified"
)

// NoReadmeAnalysis is recorded when a repository has no README.
func NoReadmeAnalysis() Analysis {
	return Analysis{Summary: SummaryNoReadme, TechStack: TechStackNA}
}

// EmptyReadmeAnalysis is recorded when the README exists but has no content.
func EmptyReadmeAnalysis() Analysis {
	return Analysis{Summary: SummaryEmptyReadme, TechStack: TechStackNA}
}

// FailedAnalysis is recorded when the AI call failed on every attempt.
func FailedAnalysis() Analysis {
	return Analysis{Summary: SummaryFailed, TechStack: TechStackFailed}
}
