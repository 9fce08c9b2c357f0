package webapp

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rabiawaqar06/studycrew/internal/crew"
)

// ReportStore keeps finished reports in memory, keyed by run ID, so the
// results page and the download link can find them. Reports live for
// the lifetime of the process only.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]crew.Report
}

func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]crew.Report),
	}
}

// Put stores the report and returns its run ID.
func (s *ReportStore) Put(report crew.Report) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[id] = report
	return id
}

func (s *ReportStore) Get(id string) (crew.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return crew.Report{}, fmt.Errorf("no report with id '%v'", id)
	}
	return report, nil
}

// Delete drops a report, backing the 'clear results' button.
func (s *ReportStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, id)
}
