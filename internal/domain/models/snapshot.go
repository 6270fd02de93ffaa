package models

// IndicatorSnapshot holds the derived indicator values for a single bar.
// Fields that require more history than is available carry NaN, except
// RSI which is filled with the neutral 50 because downstream scoring
// treats "no signal" as neutral. Consumers must distinguish NaN from a
// genuine zero.
type IndicatorSnapshot struct {
	SMA5          float64
	SMA20         float64
	SMA50         float64
	EMA12         float64
	EMA26         float64
	RSI           float64
	MACD          float64
	MACDSignal    float64
	MACDHistogram float64
	BBUpper       float64
	BBMiddle      float64
	BBLower       float64
	BBPercent     float64
	Volatility    float64
	PriceChange   float64
	PriceChange5  float64
}
