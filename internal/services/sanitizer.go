package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtractJSON recovers a JSON object from a completion that may be wrapped
// in markdown fences or surrounded by prose. It does not check brace
// balance; text without a "{...}" span is returned unchanged.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && start < end {
		return text[start : end+1]
	}

	return text
}

// AnalysisPayload is the decoded completion. Skills stays raw so its
// presence and shape can be checked before use. MatchScore and Decision stay
// raw and are read only in pass-through mode.
type AnalysisPayload struct {
	CandidateName     looseString     `json:"candidateName"`
	YearsOfExperience looseString     `json:"yearsOfExperience"`
	Summary           looseString     `json:"summary"`
	MatchScore        json.RawMessage `json:"matchScore"`
	Decision          json.RawMessage `json:"decision"`
	Skills            json.RawMessage `json:"skills"`
}

// RawSkill is one model-produced skill entry. Any weight the model echoes
// back is ignored.
type RawSkill struct {
	Name        looseString  `json:"name"`
	Evidence    looseString  `json:"evidence"`
	Proficiency *looseNumber `json:"proficiency"`
	Score       *looseNumber `json:"score"`
}

// ParseCompletion sanitizes a raw completion and decodes it.
func ParseCompletion(raw string) (*AnalysisPayload, error) {
	var payload AnalysisPayload
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &payload); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &payload, nil
}

// SkillList decodes the skills field, failing when it is absent or not an
// array.
func (p *AnalysisPayload) SkillList() ([]RawSkill, error) {
	trimmed := bytes.TrimSpace(p.Skills)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &ValidationError{Field: "skills", Msg: "is missing"}
	}
	if trimmed[0] != '[' {
		return nil, &ValidationError{Field: "skills", Msg: "is not an array"}
	}

	var skills []RawSkill
	if err := json.Unmarshal(trimmed, &skills); err != nil {
		return nil, &ValidationError{Field: "skills", Msg: fmt.Sprintf("has malformed entries: %v", err)}
	}

	return skills, nil
}

// ModelScore returns the model's own matchScore, or 0 when it is absent or
// not a number.
func (p *AnalysisPayload) ModelScore() float64 {
	var n looseNumber
	if len(p.MatchScore) == 0 || json.Unmarshal(p.MatchScore, &n) != nil {
		return 0
	}
	return float64(n)
}

// ModelDecision returns the model's own decision, or "" when it is absent or
// not a string.
func (p *AnalysisPayload) ModelDecision() string {
	var s looseString
	if len(p.Decision) == 0 || json.Unmarshal(p.Decision, &s) != nil {
		return ""
	}
	return s.String()
}

// looseString accepts a JSON string, number or boolean. Models sometimes
// answer "yearsOfExperience": 10 instead of "10 Years".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return fmt.Errorf("expected a string, got %s", data)
	}
	*s = looseString(data)
	return nil
}

func (s looseString) String() string { return strings.TrimSpace(string(s)) }

// looseNumber accepts a JSON number or a numeric string such as "85".
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		v = strings.TrimSuffix(strings.TrimSpace(v), "%")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("expected a number, got %q", v)
		}
		*n = looseNumber(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = looseNumber(f)
	return nil
}

func (n *looseNumber) value() float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}
