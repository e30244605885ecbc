package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

// Completer is the chat-completion contract the interview package consumes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// QuestionGenerator builds a question set for a candidate profile via the LLM.
type QuestionGenerator struct {
	llm Completer
}

func NewQuestionGenerator(llm Completer) *QuestionGenerator {
	return &QuestionGenerator{llm: llm}
}

// Generate produces the question set for one profile. An LLM error or an
// empty parsed list is a hard failure: without questions there is nothing to
// schedule.
func (g *QuestionGenerator) Generate(ctx context.Context, profile *CandidateProfile) ([]Question, error) {
	seed := uuid.NewString()[:8]
	prompt := buildQuestionPrompt(profile, seed)

	response, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: question generation: %v", ErrUpstream, err)
	}

	questions := parseQuestions(response)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: question generation returned an empty set", ErrUpstream)
	}
	return questions, nil
}

func buildQuestionPrompt(profile *CandidateProfile, seed string) string {
	return fmt.Sprintf(`You are an interview question generator.
Generate exactly 25 interview questions tailored to the candidate's background.

The questions must be a mix of types:
 - 20 Multiple-Choice (MCQ) questions with 4 options each (do NOT include correct answers).
 - 5 Coding/Practical problems (short coding challenges, debugging tasks, or logic-based coding exercises).

Adjust difficulty based on experience:
 - 0-1 years: mostly beginner-friendly, fundamentals, basic coding.
 - 2-4 years: intermediate difficulty, problem-solving, OOP, APIs, SQL, algorithms.
 - 5+ years: advanced design, optimization, system design, scaling, architecture-level coding problems.

Candidate background:
Position applied: %s
Years of experience: %d
Skills: %s
Profile notes: %s

Ensure variety and randomness: use seed %s to make questions unique.
Ensure each question is concise, clear, and unambiguous.

Output strictly in JSON format only, no explanations.
JSON format:
{
  "questions": [
    {
      "id": "Q1",
      "type": "MCQ",
      "question": "...",
      "options": ["A) ...", "B) ...", "C) ...", "D) ..."]
    },
    {
      "id": "Q21",
      "type": "Coding",
      "question": "..."
    }
  ]
}
`, profile.Position, profile.Experience, profile.Skills, profile.Description, seed)
}

// parseQuestions decodes the LLM response, tolerating a markdown code-fence
// wrapper and either a {"questions": [...]} object or a bare array. Any parse
// failure yields an empty list; the raw response is logged for diagnosis.
func parseQuestions(response string) []Question {
	cleaned := stripCodeFence(response)

	var wrapper struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil && len(wrapper.Questions) > 0 {
		return wrapper.Questions
	}

	var bare []Question
	if err := json.Unmarshal([]byte(cleaned), &bare); err == nil {
		return bare
	}

	log.Printf("[Questions] Failed to parse LLM response: %.300s", response)
	return nil
}

// stripCodeFence removes an optional ```json ... ``` wrapper.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
