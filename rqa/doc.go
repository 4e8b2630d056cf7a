// Package rqa defines the core types of recurrence analysis: analysis
// settings with the delay-embedding view over a scalar time series, distance
// metrics, neighbourhood predicates, frequency distributions of line lengths,
// and the result objects that derive the quantitative measures (RR, DET, LAM,
// and friends) from those distributions.
//
// The tiled computation itself lives in package engine; this package holds
// everything the engine, the scalar baseline, and the command line share.
package rqa
