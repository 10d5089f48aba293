package flashcard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
	}{
		{
			name:  "two well formed cards",
			input: "Question: What is 2+2?\nAnswer: 4\nQuestion: What is the capital of France?\nAnswer: Paris\n",
			expected: []Card{
				{Question: "What is 2+2?", Answer: "4"},
				{Question: "What is the capital of France?", Answer: "Paris"},
			},
		},
		{
			name:     "empty text",
			input:    "",
			expected: []Card{},
		},
		{
			name:     "no recognizable lines",
			input:    "Here are your flashcards:\n\n1. Something\n",
			expected: []Card{},
		},
		{
			name:  "question followed by question drops the first",
			input: "Question: dropped\nQuestion: kept\nAnswer: yes\n",
			expected: []Card{
				{Question: "kept", Answer: "yes"},
			},
		},
		{
			name:  "answer before any question is discarded",
			input: "Answer: orphan\nQuestion: What is Go?\nAnswer: A language\n",
			expected: []Card{
				{Question: "What is Go?", Answer: "A language"},
			},
		},
		{
			name:     "orphan answer is not attached to a later question without answer",
			input:    "Answer: orphan\nQuestion: lonely\n",
			expected: []Card{},
		},
		{
			name:  "trailing question without answer is dropped",
			input: "Question: one\nAnswer: 1\nQuestion: two\n",
			expected: []Card{
				{Question: "one", Answer: "1"},
			},
		},
		{
			name:  "second answer overwrites the first",
			input: "Question: q\nAnswer: first\nAnswer: second\n",
			expected: []Card{
				{Question: "q", Answer: "second"},
			},
		},
		{
			name:  "multi-line answers keep only the prefixed line",
			input: "Question: List primes\nAnswer: 2, 3\n5, 7\nand 11\n",
			expected: []Card{
				{Question: "List primes", Answer: "2, 3"},
			},
		},
		{
			name:  "indentation, blank lines and CRLF",
			input: "  Question:   Spaced out?  \r\n\r\n\tAnswer:\tYes \r\n",
			expected: []Card{
				{Question: "Spaced out?", Answer: "Yes"},
			},
		},
		{
			name:     "prefix without content",
			input:    "Question:\nAnswer:\n",
			expected: []Card{},
		},
		{
			name:     "numbered prefixes are not recognized",
			input:    "1. Question: numbered\nAnswer: ignored\n",
			expected: []Card{},
		},
		{
			name:  "lowercase prefix is not recognized",
			input: "question: lower\nanswer: lower\nQuestion: Upper\nAnswer: Upper\n",
			expected: []Card{
				{Question: "Upper", Answer: "Upper"},
			},
		},
		{
			name:  "prefix text inside the content is kept",
			input: "Question: What follows Question: in the format?\nAnswer: Answer: on the next line\n",
			expected: []Card{
				{Question: "What follows Question: in the format?", Answer: "Answer: on the next line"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestParse_PreservesOrderForManyCards(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&b, "Question: Q%d\nAnswer: A%d\n\n", i, i)
	}

	cards := Parse(b.String())

	if len(cards) != 15 {
		t.Fatalf("Expected 15 cards, got %d", len(cards))
	}
	for i, card := range cards {
		if card.Question != fmt.Sprintf("Q%d", i+1) || card.Answer != fmt.Sprintf("A%d", i+1) {
			t.Errorf("Card %d out of order: %+v", i, card)
		}
	}
}

func TestParse_CardsAreNeverEmpty(t *testing.T) {
	input := "Question: \nAnswer: a\nQuestion: q\nAnswer:   \nQuestion: ok\nAnswer: fine\n"

	for _, card := range Parse(input) {
		if card.Question == "" || card.Answer == "" {
			t.Errorf("Parse produced an incomplete card: %+v", card)
		}
	}
}
