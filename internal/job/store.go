package job

import (
	"fmt"
	"sync"
	"time"
)

// Store is an in-memory job table safe for concurrent use.
//
// A single RWMutex guards the map and every job's fields. Mutations run under
// the write lock through Update; readers receive deep copies taken under the
// read lock, so they never observe a partially written job.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	now  func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		jobs: make(map[string]*Job),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Insert adds job. The id must not already exist.
func (s *Store) Insert(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.ID)
	}
	stored := job.clone()
	s.jobs[job.ID] = &stored
	return nil
}

// Get returns a snapshot of the job with id. Expired jobs are deleted and
// reported as ErrJobNotFound.
func (s *Store) Get(id string) (Job, error) {
	now := s.now()

	s.mu.RLock()
	j, ok := s.jobs[id]
	if ok && !j.IsExpired(now) {
		snapshot := j.clone()
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	if ok {
		s.mu.Lock()
		if j, ok := s.jobs[id]; ok && j.IsExpired(now) {
			delete(s.jobs, id)
		}
		s.mu.Unlock()
	}
	return Job{}, ErrJobNotFound
}

// Update applies fn to the job with id under the write lock and returns the
// resulting snapshot. If fn returns an error the job is left unchanged.
func (s *Store) Update(id string, fn func(*Job) error) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrJobNotFound
	}

	working := j.clone()
	if err := fn(&working); err != nil {
		return Job{}, err
	}
	*j = working
	return j.clone(), nil
}

// Delete removes the job with id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.jobs[id]
	delete(s.jobs, id)
	return ok
}

// DeleteExpired removes every job whose expiry is at or before now and
// returns their ids.
func (s *Store) DeleteExpired(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, j := range s.jobs {
		if j.IsExpired(now) {
			delete(s.jobs, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// Len returns the number of stored jobs, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
