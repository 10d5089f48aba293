// Package models lists the OpenAI chat models that the configured API key
// can use for flashcard generation.
package models
