package models

// CandidateResult is the scorecard returned for one résumé. FileName is only
// set in batch mode; single-file callers attach it themselves.
type CandidateResult struct {
	FileName          string             `json:"fileName,omitempty"`
	CandidateName     string             `json:"candidateName"`
	YearsOfExperience string             `json:"yearsOfExperience"`
	MatchScore        int                `json:"matchScore"`
	Decision          Decision           `json:"decision"`
	Summary           string             `json:"summary"`
	Skills            []SkillObservation `json:"skills"`
}

type ReviewResponse struct {
	Analysis string `json:"analysis"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type FileError struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

type BatchSummary struct {
	Total        int     `json:"total"`
	Analyzed     int     `json:"analyzed"`
	Failed       int     `json:"failed"`
	Recommended  int     `json:"recommended"`
	Consider     int     `json:"consider"`
	Rejected     int     `json:"rejected"`
	AverageScore float64 `json:"averageScore"`
}

type BatchResult struct {
	BatchID string            `json:"batchId"`
	Results []CandidateResult `json:"results"`
	Errors  []FileError       `json:"errors"`
	Summary BatchSummary      `json:"summary"`
}

// Summarize recomputes the aggregate statistics from Results and Errors.
func (b *BatchResult) Summarize() {
	s := BatchSummary{
		Analyzed: len(b.Results),
		Failed:   len(b.Errors),
	}
	s.Total = s.Analyzed + s.Failed

	total := 0
	for _, r := range b.Results {
		total += r.MatchScore
		switch r.Decision {
		case DecisionRecommended:
			s.Recommended++
		case DecisionConsider:
			s.Consider++
		case DecisionReject:
			s.Rejected++
		}
	}

	if s.Analyzed > 0 {
		s.AverageScore = float64(total) / float64(s.Analyzed)
	}

	b.Summary = s
}
