// Package pipeline runs the per-sample report loop: load records, aggregate
// each sample, emit its tables, render the class chart once and record the
// run in a manifest.
//
// Samples are processed strictly in order. Any load, parse or aggregation
// error aborts the run; files already written for earlier samples stay on
// disk.
package pipeline
