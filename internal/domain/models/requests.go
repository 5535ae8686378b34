package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyticsRequest struct {
	Mode          string `query:"mode" json:"mode" default:"all" validate:"oneof=paper live all"`
	LookbackHours int    `query:"hours" json:"hours" default:"168" validate:"gte=0,lte=87600"`
	Days          int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
}

type TradesRequest struct {
	Mode          string `query:"mode" json:"mode" default:"all" validate:"oneof=paper live all"`
	LookbackHours int    `query:"hours" json:"hours" default:"168" validate:"gte=0,lte=87600"`
	Limit         int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=5000"`
}

type FlagsRequest struct {
	UserID string `query:"user" json:"user"`
}

type LiveRequest struct {
	Mode     string `query:"mode" json:"mode" default:"live" validate:"oneof=paper live all"`
	Interval int    `query:"interval" json:"interval" default:"5" validate:"gte=1,lte=60"`
}
