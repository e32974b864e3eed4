// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package telemetry aggregates overlay promotion results into histograms.
//
// A Histogram implements dclayer.ResultRecorder and counts one bucket per
// dclayer.Result. Buckets are indexed by the result's stable ordinal, so
// snapshots can be persisted (see the sqlitestore sub-package) and compared
// across releases.
//
//	hist := telemetry.NewHistogram()
//	p := dclayer.NewProcessor(textures, dclayer.WithRecorder(hist))
//	...
//	_ = hist.Snapshot().WriteReport(os.Stdout)
package telemetry
