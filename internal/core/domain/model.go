package domain

import "time"

// Document is a single corpus file selected for normalization.
type Document struct {
	Name string
	Path string
}

// CorpusStats holds the outcome of a corpus normalization run.
type CorpusStats struct {
	Documents    int
	Skipped      int
	BytesWritten int64
	Duration     time.Duration
}

// AccuracyResult holds the outcome of an accuracy measurement.
type AccuracyResult struct {
	Actual   int
	Expected int
	Percent  float64
}

// SpeedResult holds the outcome of a speed measurement.
type SpeedResult struct {
	Iterations []time.Duration
	Total      time.Duration
	Sentences  int
}

// Average returns the mean iteration time.
func (r SpeedResult) Average() time.Duration {
	if len(r.Iterations) == 0 {
		return 0
	}
	return r.Total / time.Duration(len(r.Iterations))
}

// AverageSeconds returns the mean iteration time in seconds.
func (r SpeedResult) AverageSeconds() float64 {
	if len(r.Iterations) == 0 {
		return 0
	}
	return r.Total.Seconds() / float64(len(r.Iterations))
}
