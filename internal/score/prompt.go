package score

import "fmt"

// SystemPrompt is the grading instruction shared by every engine.
const SystemPrompt = `You are a helpful and friendly English teacher. Please compare the 'Original Script' with the 'Student's Dictation' below and grade it.

Grading Criteria:
1. Accuracy (typos, missing words, extra words)
2. Grammar and punctuation

You MUST return the result in the following JSON format:
{
  "score": <an integer score between 0 and 100>,
  "positive_feedback": "<A positive feedback on what the student did well>",
  "points_for_improvement": [
    {
      "original": "<The original sentence or phrase>",
      "user_input": "<What the student wrote>",
      "suggestion": "<A suggestion for improvement or an explanation>"
    }
  ]
}

Return only JSON. Any text outside the JSON is an error.`

// UserPrompt renders the graded material for one attempt.
func UserPrompt(original, userText string) string {
	return fmt.Sprintf("---\n**[Original Script]**\n%s\n\n**[Student's Dictation]**\n%s\n---", original, userText)
}
