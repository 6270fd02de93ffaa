package models

// Requests for prediction HTTP endpoints. Defined in domain for consistency and reuse.

type PredictRequest struct {
	Symbol  string  `query:"symbol" json:"symbol" validate:"required"`
	N       int     `query:"n" json:"n" default:"252" validate:"gte=1,lte=5000"`
	TF      string  `query:"tf" json:"tf" default:"1d" validate:"oneof=1m 1h 1d"`
	Quality float64 `query:"quality" json:"quality" default:"0.7" validate:"gte=0,lte=1"`
}

type BatchPredictRequest struct {
	Symbols []string `query:"symbols" json:"symbols"`
	N       int      `query:"n" json:"n" default:"252" validate:"gte=1,lte=5000"`
	TF      string   `query:"tf" json:"tf" default:"1d" validate:"oneof=1m 1h 1d"`
	Quality float64  `query:"quality" json:"quality" default:"0.7" validate:"gte=0,lte=1"`
}

type IndicatorsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"252" validate:"gte=1,lte=5000"`
	TF     string `query:"tf" json:"tf" default:"1d" validate:"oneof=1m 1h 1d"`
	Last   int    `query:"last" json:"last" default:"1" validate:"gte=1,lte=100"`
}
