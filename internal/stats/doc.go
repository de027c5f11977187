// Package stats derives per-capita metrics from the merged dataset and
// computes its ranked statistical tables.
//
// The package is organized into three components:
//
//  1. Deriver: pure per-capita computation with guarded division
//  2. Ranker: top-K countries per year for a chosen metric
//  3. Trend: decade-over-decade emission change, increase and decrease
//
// All components consume immutable inputs and produce new slices; no
// record is mutated after creation.
package stats
