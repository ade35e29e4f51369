package service

import (
	"fmt"
	"sync"
	"time"
)

// BatchMetrics tracks statistics about a multi-season analysis batch
type BatchMetrics struct {
	mu         sync.RWMutex
	StartTime  time.Time
	Duration   time.Duration
	Seasons    int
	Saved      int
	Empty      int
	Errors     int
	DriverRows int
}

// NewBatchMetrics creates a new metrics tracker
func NewBatchMetrics() *BatchMetrics {
	return &BatchMetrics{
		StartTime: time.Now(),
	}
}

// RecordSaved records a season whose standings were persisted
func (m *BatchMetrics) RecordSaved(drivers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Seasons++
	m.Saved++
	m.DriverRows += drivers
}

// RecordEmpty records a season without wet-session data
func (m *BatchMetrics) RecordEmpty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Seasons++
	m.Empty++
}

// RecordError records a season that failed
func (m *BatchMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Seasons++
	m.Errors++
}

// Finish stamps the batch duration
func (m *BatchMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// String returns a formatted string representation of metrics
func (m *BatchMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"Seasons: %d, Saved: %d, Empty: %d, Errors: %d, Driver rows: %d, Duration: %v",
		m.Seasons, m.Saved, m.Empty, m.Errors, m.DriverRows, m.Duration,
	)
}
