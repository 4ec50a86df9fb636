package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Decision string

const (
	DecisionRecommended Decision = "RECOMMENDED"
	DecisionConsider    Decision = "CONSIDER"
	DecisionReject      Decision = "REJECT"
)

// DefaultSkillWeight applies to observations that match no requirement.
const DefaultSkillWeight = 1

// SkillRequirement is a caller-declared skill with an importance weight.
type SkillRequirement struct {
	Name   string `json:"name" validate:"required"`
	Weight int    `json:"weight" validate:"min=1,max=5"`
}

// SkillObservation is one skill the model chose to address. Weight is set
// only after reconciliation against a requirement list.
type SkillObservation struct {
	Name        string `json:"name"`
	Evidence    string `json:"evidence"`
	Proficiency int    `json:"proficiency"`
	Score       int    `json:"score"`
	Weight      *int   `json:"weight,omitempty"`
}

type skillList struct {
	Skills []SkillRequirement `validate:"dive"`
}

var validate = validator.New()

// ValidateSkills checks every requirement for a non-blank name and a weight
// in [1,5].
func ValidateSkills(skills []SkillRequirement) error {
	for i := range skills {
		skills[i].Name = strings.TrimSpace(skills[i].Name)
	}

	if err := validate.Struct(skillList{Skills: skills}); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return fmt.Errorf("invalid skill requirement %s: failed %q", fe.Namespace(), fe.Tag())
		}
		return err
	}

	return nil
}

// ErrSkillsFormat reports a skills document that is not a JSON array of
// {name, weight} objects.
var ErrSkillsFormat = errors.New("skills must be a JSON array of {name, weight}")

// ParseSkills decodes and validates a requirement list. Blank input and an
// empty array both yield nil, meaning no requirement list.
func ParseSkills(raw []byte) ([]SkillRequirement, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var skills []SkillRequirement
	if err := json.Unmarshal(raw, &skills); err != nil {
		return nil, ErrSkillsFormat
	}
	if len(skills) == 0 {
		return nil, nil
	}

	if err := ValidateSkills(skills); err != nil {
		return nil, err
	}

	return skills, nil
}
