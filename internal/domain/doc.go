// Package domain contains the core value types of the visualizer: the
// visualization kinds, the generation options attached to a job, and the
// immutable result a strategy produces. It has no dependencies on transport,
// storage, or model vendors.
package domain
