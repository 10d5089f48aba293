// Package flashcard turns model output into question/answer pairs.
package flashcard

import "strings"

// Line prefixes the model is asked to use for each card
const (
	QuestionPrefix = "Question:"
	AnswerPrefix   = "Answer:"
)

// Card is a single question/answer flashcard
type Card struct {
	Question string
	Answer   string
}

// Parse scans text line by line and collects a card whenever a Question:
// line is followed by an Answer: line. Only the text on the prefixed line
// itself is captured. A question without an answer is dropped, and an
// answer seen before any question is overwritten by the next question.
func Parse(text string) []Card {
	cards := make([]Card, 0)

	var question, answer string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, QuestionPrefix):
			if question != "" && answer != "" {
				cards = append(cards, Card{Question: question, Answer: answer})
			}
			question = strings.TrimSpace(strings.TrimPrefix(line, QuestionPrefix))
			answer = ""
		case strings.HasPrefix(line, AnswerPrefix):
			answer = strings.TrimSpace(strings.TrimPrefix(line, AnswerPrefix))
		}
	}

	if question != "" && answer != "" {
		cards = append(cards, Card{Question: question, Answer: answer})
	}

	return cards
}
