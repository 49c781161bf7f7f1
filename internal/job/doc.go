// Package job runs visualization requests in the background and tracks their
// state for polling clients.
//
// Every submitted request becomes a Job held in an in-memory Store. The
// Orchestrator spawns one goroutine per job which waits for a concurrency
// slot, resolves the visualization strategy, and runs it with a bounded
// retry budget. Transient model failures (rate limits, overload, network
// errors, attempt timeouts) back off exponentially and retry; anything else
// fails the job immediately with a user-safe summary.
//
// Status only moves forward: pending, running, then succeeded or failed.
// Jobs are evicted once their expiry window passes. Eviction never cancels a
// running task; the task notices its entry is gone on the next update and
// stops without recording anything.
package job
