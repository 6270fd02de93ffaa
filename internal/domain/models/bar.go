package models

import "time"

// Bar represents one OHLCV observation for a fixed time interval.
// Geometry (high >= open/close >= low) is assumed from upstream and
// not enforced here.
type Bar struct {
	Timestamp time.Time
	Symbol    string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Closes extracts the close series from a bar sequence.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
