// Package prompt builds the text sent to the language model.
//
// A prompt is assembled from three parts: a domain template chosen by keyword
// detection on the question (technical, business, learning, comparison, or a
// general fallback), guidance derived from the requested complexity and depth,
// and a kind-specific Format supplied by the visualization strategy that
// describes the JSON schema the model must return.
//
// Domain templates are built in but may be overridden from a YAML file.
package prompt
