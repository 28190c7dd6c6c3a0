package diagnostic

import (
	"fmt"
	"sort"
)

// Sink accepts diagnostics as they are produced.
type Sink interface {
	Report(d *Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d *Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d *Diagnostic) { f(d) }

// CollectorConfig controls collector behavior.
type CollectorConfig struct {
	IgnoreCodes      []string
	MaxErrors        int // 0 means unlimited
	WarningsAsErrors bool
}

// Collector is a Sink that keeps every reported diagnostic.
type Collector struct {
	diagnostics []*Diagnostic
	config      CollectorConfig
	truncated   bool
}

// NewCollector creates a collector with the given configuration.
func NewCollector(config CollectorConfig) *Collector {
	return &Collector{
		diagnostics: make([]*Diagnostic, 0),
		config:      config,
	}
}

// Report adds a diagnostic to the collector.
func (c *Collector) Report(d *Diagnostic) {
	if d == nil || c.truncated || c.shouldIgnore(d) {
		return
	}

	// Convert warnings to errors if configured.
	if c.config.WarningsAsErrors && d.Level == DiagnosticWarning {
		d.Level = DiagnosticError
	}

	c.diagnostics = append(c.diagnostics, d)

	// Stop adding diagnostics if max errors reached.
	if c.config.MaxErrors > 0 && c.ErrorCount() >= c.config.MaxErrors {
		c.truncated = true
		c.diagnostics = append(c.diagnostics, NewDiagnostic().
			Info().
			Category(d.Category).
			Code("TOO_MANY_ERRORS").
			Message(fmt.Sprintf("stopping after %d errors", c.config.MaxErrors)).
			Build())
	}
}

// shouldIgnore checks if a diagnostic should be ignored based on config.
func (c *Collector) shouldIgnore(d *Diagnostic) bool {
	for _, code := range c.config.IgnoreCodes {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Diagnostics returns all diagnostics in report order.
func (c *Collector) Diagnostics() []*Diagnostic {
	return c.diagnostics
}

// Errors returns only error-level diagnostics.
func (c *Collector) Errors() []*Diagnostic {
	errors := make([]*Diagnostic, 0)

	for _, d := range c.diagnostics {
		if d.Level == DiagnosticError {
			errors = append(errors, d)
		}
	}

	return errors
}

// ErrorCount returns the number of error-level diagnostics.
func (c *Collector) ErrorCount() int {
	n := 0
	for _, d := range c.diagnostics {
		if d.Level == DiagnosticError {
			n++
		}
	}
	return n
}

// HasErrors returns true if there are any errors.
func (c *Collector) HasErrors() bool {
	return c.ErrorCount() > 0
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int { return len(c.diagnostics) }

// Clear removes all diagnostics.
func (c *Collector) Clear() {
	c.diagnostics = c.diagnostics[:0]
	c.truncated = false
}

// Sorted returns a copy of the diagnostics ordered by position and severity.
func (c *Collector) Sorted() []*Diagnostic {
	out := make([]*Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	Sort(out)
	return out
}

// Sort orders diagnostics by file, line, column, then severity.
func Sort(diags []*Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]

		// First by file, then by line, then by column.
		if a.Span.Start.Filename != b.Span.Start.Filename {
			return a.Span.Start.Filename < b.Span.Start.Filename
		}

		if a.Span.Start.Line != b.Span.Start.Line {
			return a.Span.Start.Line < b.Span.Start.Line
		}

		if a.Span.Start.Column != b.Span.Start.Column {
			return a.Span.Start.Column < b.Span.Start.Column
		}

		// Then by severity (errors first).
		return a.Level < b.Level
	})
}
