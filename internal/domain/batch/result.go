// Package batch describes the per-row outcome of a bulk load.
package batch

// ItemStatus is the processing outcome of a single source row.
type ItemStatus string

// Row status values.
const (
	StatusOK       ItemStatus = "ok"
	StatusRejected ItemStatus = "rejected"
)

// Result is the outcome of loading one source row.
type Result struct {
	line   int
	id     int64
	status ItemStatus
	err    error
}

// NewOK creates a successful row result.
func NewOK(line int, id int64) Result { return Result{line: line, id: id, status: StatusOK} }

// NewRejected creates a result for a row that failed parsing or validation.
// id is zero when the row could not be parsed far enough to read it.
func NewRejected(line int, id int64, err error) Result {
	return Result{line: line, id: id, status: StatusRejected, err: err}
}

// Line returns the 1-based source line of the row.
func (r Result) Line() int { return r.line }

// ID returns the restaurant identifier.
func (r Result) ID() int64 { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary aggregates the results of one load. Loaded counts rows whose batch
// was written; Failed counts valid rows whose batch write failed.
type Summary struct {
	Loaded   int
	Failed   int
	Rejected []Result
	Batches  int
}

// Add records r.
func (s *Summary) Add(r Result) {
	switch r.status {
	case StatusOK:
		s.Loaded++
	case StatusRejected:
		s.Rejected = append(s.Rejected, r)
	}
}

// Total returns the number of rows seen.
func (s *Summary) Total() int { return s.Loaded + s.Failed + len(s.Rejected) }
