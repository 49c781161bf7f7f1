// Package events provides job lifecycle event types and a simple in-process
// emitter.
//
// The job orchestrator emits an event on every state change so that other
// components (logging, metrics, tests) can observe progress without the
// orchestrator knowing about them.
//
// The primary components are:
// - JobEvent: a single lifecycle transition of a visualization job
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
package events
