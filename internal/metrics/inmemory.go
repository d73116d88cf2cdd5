package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Submissions map[string]uint64 `json:"submissions"` // by status
	Emails      map[string]uint64 `json:"emails"`      // by "kind/status"
	Quotes      map[string]uint64 `json:"quotes"`      // by source
	StepCounts  map[string]uint64 `json:"step_counts"` // by step
}

// InMemoryRecorder stores metrics in memory for tests and the CLI.
type InMemoryRecorder struct {
	mu          sync.Mutex
	submissions map[string]uint64
	emails      map[string]uint64
	quotes      map[string]uint64
	steps       map[string]uint64
	stepTotal   map[string]time.Duration
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		submissions: make(map[string]uint64),
		emails:      make(map[string]uint64),
		quotes:      make(map[string]uint64),
		steps:       make(map[string]uint64),
		stepTotal:   make(map[string]time.Duration),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Submissions: copyCounts(m.submissions),
		Emails:      copyCounts(m.emails),
		Quotes:      copyCounts(m.quotes),
		StepCounts:  copyCounts(m.steps),
	}
}

// StepTotal returns the accumulated duration for a step.
func (m *InMemoryRecorder) StepTotal(step string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stepTotal[step]
}

// IncSubmission increments the submission counter.
func (m *InMemoryRecorder) IncSubmission(status string) {
	m.mu.Lock()
	m.submissions[status]++
	m.mu.Unlock()
}

// IncEmail increments the email counter for kind/status.
func (m *InMemoryRecorder) IncEmail(kind, status string) {
	m.mu.Lock()
	m.emails[kind+"/"+status]++
	m.mu.Unlock()
}

// IncQuote increments the quote counter.
func (m *InMemoryRecorder) IncQuote(source string) {
	m.mu.Lock()
	m.quotes[source]++
	m.mu.Unlock()
}

// ObserveStepDuration records a step duration.
func (m *InMemoryRecorder) ObserveStepDuration(step string, duration time.Duration) {
	m.mu.Lock()
	m.steps[step]++
	m.stepTotal[step] += duration
	m.mu.Unlock()
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
