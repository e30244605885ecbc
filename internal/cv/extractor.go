package cv

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Completer matches the chat-completion client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ResumeProfile is the candidate info the LLM prefills from resume text.
// Every field is optional; whatever parsed is merged into the profile.
type ResumeProfile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Position        string `json:"position"`
	ExperienceYears int    `json:"experience_years"`
	Skills          string `json:"skills"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	Summary         string `json:"summary"`
}

// ProfileExtractor prefills a candidate profile from resume text via the LLM.
type ProfileExtractor struct {
	llm Completer
}

func NewProfileExtractor(llm Completer) *ProfileExtractor {
	return &ProfileExtractor{llm: llm}
}

// Extract asks the LLM for structured candidate info. A malformed response
// returns an empty prefill and an error; callers still store the profile
// with whatever the HR user supplied.
func (e *ProfileExtractor) Extract(ctx context.Context, resumeText string) (*ResumeProfile, error) {
	if e.llm == nil {
		log.Println("[CV] LLM disabled, returning empty extraction")
		return &ResumeProfile{}, nil
	}

	response, err := e.llm.Complete(ctx, buildExtractionPrompt(resumeText))
	if err != nil {
		return &ResumeProfile{}, fmt.Errorf("resume extraction: %w", err)
	}

	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.ReplaceAll(cleaned, "```json", "")
		cleaned = strings.ReplaceAll(cleaned, "```", "")
		cleaned = strings.TrimSpace(cleaned)
	}

	var profile ResumeProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		log.Printf("[CV] Failed to parse extraction response: %.200s", response)
		return &ResumeProfile{}, fmt.Errorf("parse resume extraction: %w", err)
	}
	return &profile, nil
}

func buildExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract candidate information from this resume.

Resume text:
"""
%s
"""

Return ONLY valid JSON (no markdown, no explanation) with this exact structure:
{
  "name": "Full name",
  "email": "Email address",
  "position": "Current or most recent job title",
  "experience_years": 0,
  "skills": "Comma-separated skill list",
  "phone": "Phone number",
  "location": "City",
  "summary": "Two sentence professional summary"
}

Use empty strings and 0 for anything not present in the resume.`, resumeText)
}
