package ai

import (
	"fmt"
	"strings"

	"atsscore/internal/types"
)

const baseSystemPrompt = `You are an experienced technical recruiter who rewrites resume text so it reads well to both humans and applicant tracking systems.

Rules:
- Never invent employers, metrics, tools or achievements that are not in the original text
- Prefer strong action verbs and concrete, measurable outcomes already implied by the text
- Keep the candidate's voice and keep the result concise
- Respond with JSON only`

// sectionInstructions tailor the rewrite to the part of the resume being improved
var sectionInstructions = map[types.EnhanceSection]string{
	types.SectionSummary: `Rewrite this professional summary. Aim for 2 to 4 sentences and between 100 and 300 characters.
Mention the candidate's focus area and strongest skills.`,
	types.SectionBullet: `Rewrite this experience bullet point as a single line that starts with an action verb
such as Developed, Led, Optimized or Implemented. Keep any numbers that are present.`,
	types.SectionProject: `Rewrite this project description in 1 to 3 sentences. Name the technologies used
and the outcome, starting with a verb such as Built, Developed or Designed.`,
}

// buildPrompts returns the system and user prompts for input
func buildPrompts(input types.EnhanceInput) (string, string) {
	var b strings.Builder
	b.WriteString(sectionInstructions[input.Section])
	if role := strings.TrimSpace(input.TargetRole); role != "" {
		fmt.Fprintf(&b, "\nThe candidate is targeting the role: %s.", role)
	}
	b.WriteString("\nReturn the best rewrite in \"enhanced\" and up to two other options in \"alternatives\".")
	fmt.Fprintf(&b, "\n\nOriginal text:\n-----\n%s\n-----", input.Text)
	return baseSystemPrompt, b.String()
}
