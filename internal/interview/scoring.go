package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Default placeholders used when the scoring response is missing a field or
// cannot be parsed at all. Scoring never fails outward: some result is always
// persisted for the attempt.
const (
	defaultSummaryText    = "No summary available"
	defaultStrengths      = "No strengths identified"
	defaultImprovements   = "No improvements identified"
	defaultRecommendation = "No recommendation available"
)

// violationTypes are the event classes counted against the candidate at
// scoring time. Order is fixed so the prompt is deterministic.
var violationTypes = []string{EventFaceNotDetected, EventMultipleFaces, EventTabSwitch}

// Scorer evaluates a submitted answer set via the LLM.
type Scorer struct {
	llm Completer
}

func NewScorer(llm Completer) *Scorer {
	return &Scorer{llm: llm}
}

// Score builds the review prompt, calls the LLM and parses its evaluation.
// Violations affect the recommendation only, never the score. On any LLM or
// parse failure the returned summary carries default placeholder values.
func (s *Scorer) Score(ctx context.Context, questions []Question, answers map[string]string, violations map[string]int) Summary {
	prompt := buildReviewPrompt(questions, answers, violations)

	response, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[Scoring] LLM call failed, storing default summary: %v", err)
		return defaultSummary()
	}
	return parseSummary(response)
}

func buildReviewPrompt(questions []Question, answers map[string]string, violations map[string]int) string {
	var b strings.Builder
	b.WriteString("Please review this interview and provide a comprehensive summary:\n\n")

	for _, q := range questions {
		fmt.Fprintf(&b, "Question: %s\n", q.Question)
		if len(q.Options) > 0 {
			fmt.Fprintf(&b, "Options: %s\n", strings.Join(q.Options, ", "))
		}
		answer := answers[q.ID]
		if answer == "" {
			answer = "No answer provided"
		}
		fmt.Fprintf(&b, "Answer: %s\n\n", answer)
	}

	b.WriteString("Proctoring violations recorded during the session:\n")
	for _, vt := range violationTypes {
		fmt.Fprintf(&b, "- %s: %d\n", vt, violations[vt])
	}

	b.WriteString(`
You are an experienced technical interviewer. Review the candidate's exam answers and generate a structured evaluation.

Scoring rules:
 - Each fully correct answer is worth its full points; partial credit is allowed for coding questions.
 - No negative marking for wrong or missing answers.
 - Proctoring violations must NOT reduce the score; reflect them in the recommendation only.

Output strictly in JSON format:
{
  "score": [Number 1-10],
  "summary": "[One sentence summary]",
  "strengths": "[3 bullet points separated by |]",
  "improvements": "[3 bullet points separated by |]",
  "recommendation": "[Hire/Further Interview/Don't Hire - One sentence]"
}
`)
	return b.String()
}

// parseSummary decodes the scoring response. Each field defaults
// independently when missing, null or unparseable.
func parseSummary(response string) Summary {
	cleaned := stripCodeFence(response)

	var raw struct {
		Score          *int    `json:"score"`
		Summary        *string `json:"summary"`
		Strengths      *string `json:"strengths"`
		Improvements   *string `json:"improvements"`
		Recommendation *string `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		log.Printf("[Scoring] Failed to parse LLM response: %.300s", response)
		return defaultSummary()
	}

	out := defaultSummary()
	if raw.Score != nil {
		out.Score = *raw.Score
	}
	if raw.Summary != nil && *raw.Summary != "" {
		out.Summary = *raw.Summary
	}
	if raw.Strengths != nil && *raw.Strengths != "" {
		out.Strengths = *raw.Strengths
	}
	if raw.Improvements != nil && *raw.Improvements != "" {
		out.Improvements = *raw.Improvements
	}
	if raw.Recommendation != nil && *raw.Recommendation != "" {
		out.Recommendation = *raw.Recommendation
	}
	return out
}

func defaultSummary() Summary {
	return Summary{
		Score:          0,
		Summary:        defaultSummaryText,
		Strengths:      defaultStrengths,
		Improvements:   defaultImprovements,
		Recommendation: defaultRecommendation,
	}
}

// CountViolations tallies violation-class events for one session.
func CountViolations(events []MonitoringEvent) map[string]int {
	counts := make(map[string]int, len(violationTypes))
	for _, vt := range violationTypes {
		counts[vt] = 0
	}
	for _, e := range events {
		if _, ok := counts[e.EventType]; ok {
			counts[e.EventType]++
		}
	}
	return counts
}
