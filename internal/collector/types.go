// internal/collector/types.go
package collector

import (
	"time"

	"github.com/tamzrod/diag-registry/internal/diag"
)

// Sample is the decoded value of one source.
type Sample struct {
	ID    diag.ID
	Name  string
	Value int32
}

// Failure records a source that could not be read in a cycle.
type Failure struct {
	ID   diag.ID
	Name string
	Err  error
}

// Snapshot is produced by one collection cycle.
// Values of different sources are not read atomically together.
type Snapshot struct {
	At       time.Time
	Samples  []Sample
	Failures []Failure
}

// Value returns the sample for id, if it was collected.
func (s Snapshot) Value(id diag.ID) (int32, bool) {
	for _, smp := range s.Samples {
		if smp.ID == id {
			return smp.Value, true
		}
	}
	return 0, false
}
