package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"alfredoptarigan/cv-screener/internal/models"
)

// SkillMatcher resolves a model-produced skill name to one of the caller's
// requirements.
type SkillMatcher interface {
	Match(name string, requirements []models.SkillRequirement) (models.SkillRequirement, bool)
}

// NewSkillMatcher returns the matcher registered under name: "substring"
// (default), "exact" or "token".
func NewSkillMatcher(name string) (SkillMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "substring":
		return SubstringMatcher{}, nil
	case "exact":
		return ExactMatcher{}, nil
	case "token":
		return TokenMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown skill matcher %q", name)
	}
}

// SubstringMatcher picks the first requirement whose name contains the
// observation name or is contained by it, ignoring case. Blank names never
// match.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(name string, requirements []models.SkillRequirement) (models.SkillRequirement, bool) {
	obs := strings.ToLower(strings.TrimSpace(name))
	if obs == "" {
		return models.SkillRequirement{}, false
	}

	for _, req := range requirements {
		reqName := strings.ToLower(strings.TrimSpace(req.Name))
		if reqName == "" {
			continue
		}
		if strings.Contains(reqName, obs) || strings.Contains(obs, reqName) {
			return req, true
		}
	}

	return models.SkillRequirement{}, false
}

// ExactMatcher requires case-insensitive equality of trimmed names.
type ExactMatcher struct{}

func (ExactMatcher) Match(name string, requirements []models.SkillRequirement) (models.SkillRequirement, bool) {
	obs := strings.TrimSpace(name)
	if obs == "" {
		return models.SkillRequirement{}, false
	}

	for _, req := range requirements {
		if strings.EqualFold(strings.TrimSpace(req.Name), obs) {
			return req, true
		}
	}

	return models.SkillRequirement{}, false
}

// TokenMatcher compares the sets of lowercase alphanumeric tokens, so
// "CI/CD" matches "ci cd" but "OSS" does not match "OSS or Service Assurance".
type TokenMatcher struct{}

func (TokenMatcher) Match(name string, requirements []models.SkillRequirement) (models.SkillRequirement, bool) {
	obs := tokenKey(name)
	if obs == "" {
		return models.SkillRequirement{}, false
	}

	for _, req := range requirements {
		if tokenKey(req.Name) == obs {
			return req, true
		}
	}

	return models.SkillRequirement{}, false
}

func tokenKey(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	unique := fields[:0]
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			unique = append(unique, f)
		}
	}

	sort.Strings(unique)
	return strings.Join(unique, " ")
}
