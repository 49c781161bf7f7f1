// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, .env files, config files). It
// provides type-safe access to settings for the HTTP server, the language
// model provider, the job orchestrator, and the prompt composer.
package config
