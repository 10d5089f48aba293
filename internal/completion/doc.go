// Package completion sends prompts to chat-completion services (OpenAI,
// Gemini, Ollama) and returns the text of the first response. Failures are
// reported as *Error values carrying an ErrorKind so callers can tell
// authentication, network, malformed-response and rate-limit problems apart.
package completion
