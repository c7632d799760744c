package insight

import "fmt"

// mentorPromptTemplate is the fixed prompt wrapped around a diary entry.
const mentorPromptTemplate = `
You are the 'Chronos AI' mentor. Analyze this diary entry: %q
Provide a brief summary, a motivational insight, and one futuristic quote.
Tone: Empathetic, encouraging, and Cyber-Pink themed.
`

// MentorPrompt builds the reflective-analysis prompt for a diary entry.
func MentorPrompt(entryContent string) string {
	return fmt.Sprintf(mentorPromptTemplate, entryContent)
}
