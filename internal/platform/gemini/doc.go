// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API for producing visualization payloads.
//
// This package is an infrastructure adapter, connecting the visualization
// strategies to Google's external Gemini AI service without exposing the
// details of the SDK to the rest of the application.
//
// The adapter makes exactly one call per Generate invocation. Retries, backoff
// and per-attempt timeouts are owned by the job orchestrator; this package only
// classifies failures (rate limited, overloaded, network, blocked, fatal) so the
// caller can decide whether another attempt is worthwhile.
package gemini
