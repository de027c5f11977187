// Package loader turns heterogeneous tabular sources into normalized
// (country, year, value) records.
//
// Two source shapes exist in the wild and both are supported:
//
//  1. Long format, common for emissions exports: the year is a row field
//     and a single column carries the value.
//  2. Wide format, common for World Bank GDP/population exports: every
//     year is its own column.
//
// The shape is detected from the header row. Per-cell problems (empty or
// unparseable numbers) degrade to missing values; only a source with no
// recognizable country column is an error.
package loader
