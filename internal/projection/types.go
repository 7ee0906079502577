package projection

import (
	"time"

	v1 "github.com/wattline/wattline/internal/api/v1"
)

// Query modes of GET /v1/series.
const (
	ModeList     = "list"
	ModeOne      = "one"
	ModeCompare  = "compare"
	ModeAlwaysOn = "always_on"
	ModeProfile  = "profile"
)

// SeriesQueryRequest represents the query parameters of GET /v1/series.
type SeriesQueryRequest struct {
	Resources  string    `form:"resources" binding:"required"` // comma-separated ids
	Unit       string    `form:"unit"`
	Resolution string    `form:"resolution"`
	Option     string    `form:"option"`
	From       time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Timezone   string    `form:"tz"`
	Mode       string    `form:"mode"` // default: "list"
	Fill       bool      `form:"fill"`

	CmpFrom time.Time `form:"cmp_from" time_format:"2006-01-02T15:04:05Z07:00"`
	CmpTo   time.Time `form:"cmp_to" time_format:"2006-01-02T15:04:05Z07:00"`
	Cut     string    `form:"cut"`

	Period string `form:"period"`
}

// SeriesResponse is the body of a list, compare or profile answer. Exactly
// one of the value slices is set.
type SeriesResponse struct {
	Resources  []string                     `json:"resources"`
	Unit       string                       `json:"unit"`
	Resolution string                       `json:"resolution,omitempty"`
	Option     string                       `json:"option,omitempty"`
	Tier       string                       `json:"tier,omitempty"`
	From       *time.Time                   `json:"from,omitempty"`
	To         *time.Time                   `json:"to,omitempty"`
	Values     []v1.TimeValue               `json:"values,omitempty"`
	Compared   []v1.TimeValueWithComparison `json:"compared,omitempty"`
	Profile    []v1.HourValue               `json:"profile,omitempty"`
}
