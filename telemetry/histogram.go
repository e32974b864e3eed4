// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package telemetry

import (
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/dclayer"
)

// Histogram counts promotion results. Recording is lock-free, so a reporter
// goroutine may take snapshots while a compositor thread records.
type Histogram struct {
	buckets [dclayer.NumResults]atomic.Uint64
}

// NewHistogram creates an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{}
}

// RecordResult implements dclayer.ResultRecorder. Undefined results are
// dropped.
func (h *Histogram) RecordResult(r dclayer.Result) {
	if !r.Valid() {
		return
	}
	h.buckets[r].Add(1)
}

// Snapshot returns a copy of the current counts.
func (h *Histogram) Snapshot() Snapshot {
	var s Snapshot
	for i := range h.buckets {
		s[i] = h.buckets[i].Load()
	}
	return s
}

// Reset zeroes every bucket.
func (h *Histogram) Reset() {
	for i := range h.buckets {
		h.buckets[i].Store(0)
	}
}

var _ dclayer.ResultRecorder = (*Histogram)(nil)

// Snapshot is a point-in-time copy of a histogram, indexed by result
// ordinal.
type Snapshot [dclayer.NumResults]uint64

// Count returns the number of times r was recorded.
func (s Snapshot) Count(r dclayer.Result) uint64 {
	if !r.Valid() {
		return 0
	}
	return s[r]
}

// Total returns the number of recorded results.
func (s Snapshot) Total() uint64 {
	var n uint64
	for _, c := range s {
		n += c
	}
	return n
}

// Rate returns the fraction of results equal to r, or 0 when empty.
func (s Snapshot) Rate(r dclayer.Result) float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Count(r)) / float64(total)
}

// Merge returns the bucket-wise sum of s and other.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	for i := range s {
		s[i] += other[i]
	}
	return s
}

// reportPrinter formats counts with digit grouping.
var reportPrinter = message.NewPrinter(language.English)

// WriteReport writes one line per non-empty bucket, in ordinal order,
// followed by the total.
func (s Snapshot) WriteReport(w io.Writer) error {
	total := s.Total()
	for i, c := range s {
		if c == 0 {
			continue
		}
		r := dclayer.Result(i)
		line := reportPrinter.Sprintf("%-22s %12d  %5.1f%%\n", r.String(), c, 100*s.Rate(r))
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("telemetry: write report: %w", err)
		}
	}
	line := reportPrinter.Sprintf("%-22s %12d\n", "total", total)
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("telemetry: write report: %w", err)
	}
	return nil
}
