package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/cv-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt creates the scorecard extraction prompt. With a
// requirement list the model scores each listed skill; without one it falls
// back to the built-in telecom skill set and proposes its own score.
func (pb *PromptBuilder) BuildScreeningPrompt(resumeText string, skills []models.SkillRequirement) string {
	if len(skills) == 0 {
		return pb.buildDefaultScreeningPrompt(resumeText)
	}

	var requirements strings.Builder
	for _, skill := range skills {
		fmt.Fprintf(&requirements, "- %s (Importance: %d/5)\n", skill.Name, skill.Weight)
	}

	return fmt.Sprintf(`You are a strict data extraction AI. Analyze this resume text against the skill requirements below and extract data into a valid JSON format only.

Skill Requirements:
%s
Resume Text:
%s

For every skill requirement, find specific evidence in the resume and score the candidate.

Output Format (JSON):
{
  "candidateName": "Extract full name",
  "yearsOfExperience": "Extract total years (e.g., '10.5 Years')",
  "summary": "One sentence summary of strengths and weaknesses.",
  "skills": [
    {
      "name": "Exact skill requirement name",
      "evidence": "Extract specific evidence from CV or state 'No explicit experience found'",
      "proficiency": number (0-100),
      "score": number (0-100)
    }
  ]
}

Return ONLY the JSON object. Do not add any conversational text, explanations or markdown code fences.`,
		requirements.String(), resumeText)
}

func (pb *PromptBuilder) buildDefaultScreeningPrompt(resumeText string) string {
	return fmt.Sprintf(`You are a strict data extraction AI. Analyze this resume text and extract data into a valid JSON format only. Do not add any conversational text.

Resume Text:
%s

Output Format (JSON):
{
  "candidateName": "Extract full name",
  "yearsOfExperience": "Extract total years (e.g., '10.5 Years')",
  "matchScore": number (0-100 overall score),
  "decision": "RECOMMENDED", "CONSIDER" or "REJECT",
  "summary": "One sentence summary of strengths and weaknesses.",
  "skills": [
    {
      "name": "Wireless Networks (5G, 4G, LTE)",
      "weight": "4/5",
      "evidence": "Extract specific evidence from CV or state 'No explicit experience found'",
      "proficiency": number (0-100),
      "score": number (0-100)
    },
    {
      "name": "Fixed Networks (Fiber)",
      "weight": "4/5",
      "evidence": "Extract specific evidence...",
      "proficiency": number (0-100),
      "score": number (0-100)
    },
    {
      "name": "OSS",
      "weight": "4/5",
      "evidence": "Extract specific evidence...",
      "proficiency": number (0-100),
      "score": number (0-100)
    },
    {
      "name": "Service Assurance",
      "weight": "4/5",
      "evidence": "Extract specific evidence...",
      "proficiency": number (0-100),
      "score": number (0-100)
    }
  ]
}

Return ONLY the JSON object, without markdown code fences.`, resumeText)
}

// BuildReviewPrompt creates the free-text career coach prompt.
func (pb *PromptBuilder) BuildReviewPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert CV reviewer and career coach.
Analyze the following resume text and provide:
1. A summary of the candidate's strengths.
2. Specific improvements for their bullet points (using STAR method).
3. Missing keywords based on their apparent industry.
4. A score out of 10.

RESUME TEXT:
%s`, resumeText)
}
