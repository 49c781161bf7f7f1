// Package visualization defines the Strategy contract for turning a question
// into a diagram, the built-in flowchart and mindmap strategies, and the
// immutable Registry that maps visualization kinds to strategy constructors.
//
// A strategy composes a prompt, calls the language model once, extracts and
// decodes the fenced JSON block from the reply, renders it to diagram text and
// validates the result. Retrying failed calls is the caller's concern; the
// errors returned here are typed so the caller can tell a transient model
// failure from malformed or invalid output.
package visualization
