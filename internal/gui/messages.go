package gui

import (
	"errors"
	"fmt"

	"codeberg.org/snonux/flashgen/internal/completion"
	"codeberg.org/snonux/flashgen/internal/processor"
)

const failureMessage = "Failed to generate flashcards. Please check your input."

// errorMessage keeps the fixed failure text and appends a hint for known causes
func errorMessage(err error) string {
	hint := errorHint(err)
	if hint == "" {
		return failureMessage
	}
	return failureMessage + "\n\n" + hint
}

func errorHint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, processor.ErrReadInput):
		return "The selected file could not be read."
	case errors.Is(err, processor.ErrWriteOutput):
		return "The flashcard file could not be written."
	}

	switch completion.KindOf(err) {
	case completion.KindAuthentication:
		return authHint(err)
	case completion.KindNetwork:
		return "The completion service could not be reached. Check your network connection."
	case completion.KindMalformedResponse:
		return "The completion service returned an unusable reply."
	case completion.KindRateLimit:
		return "The completion service is rate limiting requests. Try again later."
	case completion.KindUnavailable:
		return "The completion service is unavailable right now. Try again later."
	default:
		return ""
	}
}

// authHint names the credential of the provider that rejected the request
func authHint(err error) string {
	var completionErr *completion.Error
	if errors.As(err, &completionErr) {
		switch completionErr.Provider {
		case "openai":
			return "The API key was rejected or is missing. Check OPENAI_API_KEY."
		case "gemini":
			return "The API key was rejected or is missing. Check GEMINI_API_KEY."
		}
	}
	return "The completion service rejected the credentials. Check the provider configuration."
}

func successMessage(result *processor.Result) string {
	if result == nil {
		return "Flashcards generated"
	}
	return fmt.Sprintf("Flashcards generated and saved to %s", result.OutputPath)
}
