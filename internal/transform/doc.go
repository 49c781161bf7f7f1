// Package transform converts structured model output into diagram text.
//
// It has three concerns: extracting the fenced JSON block from a raw model
// response, rendering a mindmap tree as markdown headings, and rendering a
// node/edge graph as a Mermaid flowchart. All functions are pure.
package transform
