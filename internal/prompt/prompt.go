// Package prompt builds the instruction sent to the completion model.
package prompt

import (
	"fmt"

	"codeberg.org/snonux/flashgen/internal/flashcard"
)

const template = `Extract key concepts and create flashcards from the following text.
Please generate at least 10-15 flashcards (or more if needed).

Format each flashcard as:
%s
%s

Make sure to cover all important concepts from the text.

Text to process:
%s
`

// Build embeds rawText verbatim in the flashcard instructions.
// The text is not validated or truncated.
func Build(rawText string) string {
	return fmt.Sprintf(template, flashcard.QuestionPrefix, flashcard.AnswerPrefix, rawText)
}
