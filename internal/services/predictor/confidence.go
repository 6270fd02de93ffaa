package predictor

// Confidence maps a caller-supplied data-quality score in [0,1] to a
// coarse confidence tag. Fixed step function, upper bounds exclusive.
func (p *RulePredictor) Confidence(dataQuality float64) float64 {
	switch {
	case dataQuality > 0.8:
		return 0.75
	case dataQuality > 0.6:
		return 0.65
	case dataQuality > 0.4:
		return 0.55
	default:
		return 0.45
	}
}
