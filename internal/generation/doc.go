// Package generation defines the boundary between the visualizer and external
// LLM text-generation services. A Generator sends a prompt to a named model and
// returns raw text, failing with errors that are classified as rate-limited,
// overloaded, transient-network, or fatal. Vendor adapters live under
// internal/platform; nothing outside those adapters depends on a vendor SDK.
package generation
