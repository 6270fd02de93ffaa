package indicators

import (
	"math"

	"Elysian/internal/domain/models"
)

// Standard windows used by the signal rules.
const (
	SMAFast        = 5
	SMASlow        = 20
	SMALong        = 50
	EMAFast        = 12
	EMASlow        = 26
	MACDSignalSpan = 9
	RSIPeriod      = 14
	BBPeriod       = 20
	BBWidth        = 2.0
	VolWindow      = 20
	MomentumLag    = 5

	// Trading days per year, used to annualize realized volatility.
	AnnualizationFactor = 252
)

// Compute derives the full indicator snapshot sequence for an ordered
// bar sequence. Output is aligned index-for-index with the input.
// Pure function of its input; short input never errors, leading
// positions without enough history carry NaN (RSI carries 50).
func Compute(bars []models.Bar) []models.IndicatorSnapshot {
	closes := models.Closes(bars)

	sma5 := SMA(closes, SMAFast)
	sma20 := SMA(closes, SMASlow)
	sma50 := SMA(closes, SMALong)
	ema12 := EWM(closes, EMAFast)
	ema26 := EWM(closes, EMASlow)
	rsi := RSI(closes, RSIPeriod)

	macd := make([]float64, len(closes))
	for i := range macd {
		macd[i] = ema12[i] - ema26[i]
	}
	macdSignal := EWM(macd, MACDSignalSpan)

	bbStd := RollingStd(closes, BBPeriod)
	ret1 := PctChange(closes, 1)
	ret5 := PctChange(closes, MomentumLag)
	vol := RollingVolatility(closes, VolWindow)

	out := make([]models.IndicatorSnapshot, len(bars))
	for i := range bars {
		s := models.IndicatorSnapshot{
			SMA5:         sma5[i],
			SMA20:        sma20[i],
			SMA50:        sma50[i],
			EMA12:        ema12[i],
			EMA26:        ema26[i],
			RSI:          rsi[i],
			MACD:         macd[i],
			MACDSignal:   macdSignal[i],
			Volatility:   vol[i],
			PriceChange:  ret1[i],
			PriceChange5: ret5[i],
		}
		s.MACDHistogram = s.MACD - s.MACDSignal

		s.BBMiddle = sma20[i]
		s.BBUpper = s.BBMiddle + BBWidth*bbStd[i]
		s.BBLower = s.BBMiddle - BBWidth*bbStd[i]
		if width := s.BBUpper - s.BBLower; width != 0 {
			s.BBPercent = (closes[i] - s.BBLower) / width
		} else {
			s.BBPercent = math.NaN()
		}
		out[i] = s
	}
	return out
}

// SMA computes the trailing simple moving average of window w.
// The first w-1 positions are NaN.
func SMA(xs []float64, w int) []float64 {
	out := nanSlice(len(xs))
	if w <= 0 || len(xs) < w {
		return out
	}
	sum := 0.0
	for i, x := range xs {
		sum += x
		if i >= w {
			sum -= xs[i-w]
		}
		if i >= w-1 {
			out[i] = sum / float64(w)
		}
	}
	return out
}

// EWM computes the cumulative exponentially weighted mean with
// alpha = 2/(span+1), seeded by the first observation. This is a
// left-to-right fold carrying the previous value as state, not a
// windowed average.
func EWM(xs []float64, span int) []float64 {
	out := nanSlice(len(xs))
	if len(xs) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	prev := xs[0]
	out[0] = prev
	for i := 1; i < len(xs); i++ {
		prev = alpha*xs[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// RSI computes the Relative Strength Index over trailing simple means
// of gains and losses. Positions without a full period of history are
// filled with the neutral 50. A zero average loss yields 100; zero
// average gain and loss together yield 50.
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = 50
	}
	if period <= 0 || len(closes) <= period {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		switch {
		case avgLoss == 0 && avgGain == 0:
			out[i] = 50
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// RollingStd computes the trailing sample standard deviation of window w.
// The first w-1 positions are NaN.
func RollingStd(xs []float64, w int) []float64 {
	out := nanSlice(len(xs))
	if w <= 1 || len(xs) < w {
		return out
	}
	for i := w - 1; i < len(xs); i++ {
		out[i] = sampleStd(xs[i-w+1 : i+1])
	}
	return out
}

// PctChange computes simple percentage returns over the given lag.
// Positions without a reference value, or with a zero reference, are NaN.
func PctChange(xs []float64, lag int) []float64 {
	out := nanSlice(len(xs))
	for i := lag; i < len(xs); i++ {
		prev := xs[i-lag]
		if prev == 0 {
			continue
		}
		out[i] = (xs[i] - prev) / prev
	}
	return out
}

// RollingVolatility computes the annualized trailing standard deviation
// of simple bar-over-bar returns. Aligned with the input closes; a
// position is defined once `window` returns of history exist.
func RollingVolatility(closes []float64, window int) []float64 {
	out := nanSlice(len(closes))
	if window <= 1 || len(closes) <= window {
		return out
	}
	rets := PctChange(closes, 1)
	buf := make([]float64, 0, window)
	for i := window; i < len(closes); i++ {
		buf = buf[:0]
		defined := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(rets[j]) {
				defined = false
				break
			}
			buf = append(buf, rets[j])
		}
		if !defined {
			continue
		}
		out[i] = sampleStd(buf) * math.Sqrt(AnnualizationFactor)
	}
	return out
}

func sampleStd(xs []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return math.NaN()
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= n
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / (n - 1))
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
