package gen

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

// Reporter receives the violations found while generating a type. It is
// called synchronously from the goroutine generating the type and must be
// safe for concurrent use when the driver runs with several workers.
type Reporter interface {
	Report(*Violation)
}

// The ReporterFunc type is an adapter to allow the use of ordinary function
// as Reporter.
type ReporterFunc func(*Violation)

// Report calls f(v).
func (f ReporterFunc) Report(v *Violation) { f(v) }

// NopReporter discards all violations.
var NopReporter Reporter = ReporterFunc(func(*Violation) {})

// Collector is a Reporter that records violations.
type Collector struct {
	mu         sync.Mutex
	violations []*Violation
}

// Report implements the Reporter interface.
func (c *Collector) Report(v *Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.violations = append(c.violations, v)
}

// Violations returns the recorded violations, sorted by type and kind so the
// output does not depend on the scheduling of the workers.
func (c *Collector) Violations() []*Violation {
	c.mu.Lock()
	vs := slices.Clone(c.violations)
	c.mu.Unlock()
	slices.SortStableFunc(vs, func(a, b *Violation) int {
		if n := strings.Compare(a.Type, b.Type); n != 0 {
			return n
		}
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return strings.Compare(a.Option, b.Option)
	})
	return vs
}

// Len returns the number of recorded violations.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.violations)
}

// Err returns the recorded violations joined in one error, or nil.
func (c *Collector) Err() error {
	vs := c.Violations()
	if len(vs) == 0 {
		return nil
	}
	errs := make([]error, len(vs))
	for i, v := range vs {
		errs[i] = v
	}
	return errors.Join(errs...)
}

// multiReporter fans violations out to several reporters.
type multiReporter []Reporter

func (m multiReporter) Report(v *Violation) {
	for _, r := range m {
		r.Report(v)
	}
}
