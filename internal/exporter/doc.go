// Package exporter is the presentation layer of the pipeline. It renders
// the computed result tables on the console (plain or pretty mode) and
// writes them as CSV reports. The core computation never reaches into
// this package.
package exporter
