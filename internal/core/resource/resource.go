package resource

import (
	"errors"
	"fmt"
	"time"

	"github.com/wattline/wattline/internal/core/timegrid"
)

// Unit is the physical unit a resource reports in.
type Unit string

const (
	Watt         Unit = "W"
	Kilowatt     Unit = "kW"
	WattHour     Unit = "Wh"
	KilowattHour Unit = "kWh"
	CubicMetre   Unit = "m3"
	Celsius      Unit = "degC"
	Percent      Unit = "%"
	PPM          Unit = "ppm"
	Currency     Unit = "GBP"
)

// MeterType classifies the physical meter behind a resource. Tariffs are
// matched on it.
type MeterType string

const (
	MeterElectricity MeterType = "electricity"
	MeterGas         MeterType = "gas"
	MeterSensor      MeterType = "sensor"
)

// InterpolationMode controls gap filling during ingestion.
type InterpolationMode string

const (
	InterpolationLinear   InterpolationMode = "linear"
	InterpolationDisabled InterpolationMode = "disabled"
)

// Tier selects one of the two historical tables.
type Tier string

const (
	TierDetailed Tier = "detailed"
	TierLongTerm Tier = "long_term"
)

// Resource is a monitored point (a meter, a sensor channel).
type Resource struct {
	ID                 string
	ProviderID         string
	MeterType          MeterType
	Unit               Unit
	DetailedResolution timegrid.Resolution // empty when the resource has no detailed tier
	LongTermResolution timegrid.Resolution // empty when the resource has no long-term tier
	InterpolationMode  InterpolationMode
	DetailedRetention  time.Duration

	LastValue         *float64
	LastValueTime     time.Time
	DetailedHighWater time.Time
	LongTermHighWater time.Time
}

// Sample is one persisted (resource, time, value) row of either tier.
type Sample struct {
	ResourceID string
	Time       time.Time
	Value      float64
}

// Validate checks the static configuration of a resource.
func (r *Resource) Validate() error {
	if r.ID == "" {
		return errors.New("resource id is required")
	}
	if r.Unit == "" {
		return fmt.Errorf("resource %s: unit is required", r.ID)
	}
	if r.DetailedResolution == "" && r.LongTermResolution == "" {
		return fmt.Errorf("resource %s: at least one of detailed or long-term resolution must be set", r.ID)
	}
	if r.DetailedResolution != "" && !r.DetailedResolution.Valid() {
		return fmt.Errorf("resource %s: invalid detailed resolution %q", r.ID, r.DetailedResolution)
	}
	if r.LongTermResolution != "" && !r.LongTermResolution.Valid() {
		return fmt.Errorf("resource %s: invalid long-term resolution %q", r.ID, r.LongTermResolution)
	}
	if r.DetailedResolution != "" && r.LongTermResolution != "" &&
		!r.DetailedResolution.Finer(r.LongTermResolution) {
		return fmt.Errorf("resource %s: detailed resolution must be finer than long-term resolution", r.ID)
	}
	switch r.InterpolationMode {
	case "", InterpolationLinear, InterpolationDisabled:
	default:
		return fmt.Errorf("resource %s: invalid interpolation mode %q", r.ID, r.InterpolationMode)
	}
	if r.DetailedRetention < 0 {
		return fmt.Errorf("resource %s: detailed retention must be >= 0", r.ID)
	}
	return nil
}

// HasDetailed reports whether the resource stores a detailed tier.
func (r *Resource) HasDetailed() bool { return r.DetailedResolution != "" }

// HasLongTerm reports whether the resource stores a long-term tier.
func (r *Resource) HasLongTerm() bool { return r.LongTermResolution != "" }

// LiveTier is the tier new samples are written to: detailed when configured.
func (r *Resource) LiveTier() Tier {
	if r.HasDetailed() {
		return TierDetailed
	}
	return TierLongTerm
}

// LiveResolution is the native resolution of the live tier.
func (r *Resource) LiveResolution() timegrid.Resolution {
	return r.Resolution(r.LiveTier())
}

// Resolution returns the native resolution of tier.
func (r *Resource) Resolution(tier Tier) timegrid.Resolution {
	if tier == TierDetailed {
		return r.DetailedResolution
	}
	return r.LongTermResolution
}

// HighWater returns the high-water mark of tier.
func (r *Resource) HighWater(tier Tier) time.Time {
	if tier == TierDetailed {
		return r.DetailedHighWater
	}
	return r.LongTermHighWater
}

// Interpolates reports whether linear gap filling applies to new samples.
func (r *Resource) Interpolates() bool {
	return r.InterpolationMode != InterpolationDisabled &&
		r.LiveResolution() != timegrid.Finest
}

// SameShape reports whether two resources can be aggregated together: same
// unit and same resolutions on both tiers.
func SameShape(a, b *Resource) bool {
	return a.Unit == b.Unit &&
		a.DetailedResolution == b.DetailedResolution &&
		a.LongTermResolution == b.LongTermResolution
}

// IDs returns the ids of resources in order.
func IDs(resources []Resource) []string {
	ids := make([]string, len(resources))
	for i := range resources {
		ids[i] = resources[i].ID
	}
	return ids
}
