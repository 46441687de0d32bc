package metrics

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Metrics holds all application counters.
type Metrics struct {
	mu sync.RWMutex

	// Upstream fetch metrics
	SearchesTotal int64
	SearchErrors  int64

	// Cache metrics
	CacheHits   int64
	CacheMisses int64

	// Report metrics
	reportsRendered map[string]int64

	// HTTP metrics
	httpRequestsTotal map[string]map[int]int64 // endpoint -> status -> count
	httpDuration      map[string]time.Duration // endpoint -> cumulative time

	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			reportsRendered:   make(map[string]int64),
			httpRequestsTotal: make(map[string]map[int]int64),
			httpDuration:      make(map[string]time.Duration),
			startTime:         time.Now(),
		}
	})
	return instance
}

// RecordSearch counts one upstream search call and its outcome.
func (m *Metrics) RecordSearch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchesTotal++
	if err != nil {
		m.SearchErrors++
	}
}

// RecordCacheHit counts a cache lookup outcome.
func (m *Metrics) RecordCacheHit(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.CacheHits++
	} else {
		m.CacheMisses++
	}
}

// RecordReport counts one rendered report page.
func (m *Metrics) RecordReport(page string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportsRendered[page]++
}

// RecordHTTPRequest counts one completed HTTP request and accumulates
// its handling time.
func (m *Metrics) RecordHTTPRequest(endpoint string, status int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][status]++
	m.httpDuration[endpoint] += duration
}

// Snapshot is the JSON shape served by the metrics endpoint.
type Snapshot struct {
	UptimeSeconds   int64                    `json:"uptimeSeconds"`
	SearchesTotal   int64                    `json:"searchesTotal"`
	SearchErrors    int64                    `json:"searchErrors"`
	CacheHits       int64                    `json:"cacheHits"`
	CacheMisses     int64                    `json:"cacheMisses"`
	ReportsRendered map[string]int64         `json:"reportsRendered"`
	HTTPRequests    map[string]map[int]int64 `json:"httpRequests"`
	HTTPDurationMS  map[string]int64         `json:"httpDurationMs"`
}

// Handler serves the current counters as JSON.
func (m *Metrics) Handler(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	snap := Snapshot{
		UptimeSeconds:   int64(time.Since(m.startTime).Seconds()),
		SearchesTotal:   m.SearchesTotal,
		SearchErrors:    m.SearchErrors,
		CacheHits:       m.CacheHits,
		CacheMisses:     m.CacheMisses,
		ReportsRendered: make(map[string]int64, len(m.reportsRendered)),
		HTTPRequests:    make(map[string]map[int]int64, len(m.httpRequestsTotal)),
		HTTPDurationMS:  make(map[string]int64, len(m.httpDuration)),
	}
	for k, v := range m.reportsRendered {
		snap.ReportsRendered[k] = v
	}
	for endpoint, statuses := range m.httpRequestsTotal {
		snap.HTTPRequests[endpoint] = make(map[int]int64, len(statuses))
		for status, n := range statuses {
			snap.HTTPRequests[endpoint][status] = n
		}
	}
	for endpoint, d := range m.httpDuration {
		snap.HTTPDurationMS[endpoint] = d.Milliseconds()
	}
	m.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
