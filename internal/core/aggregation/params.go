package aggregation

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/wattline/wattline/internal/api/v1"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
)

// Option names an aggregation variant for one (source, target) unit pair.
type Option string

const (
	OptionMean     Option = "mean"
	OptionSum      Option = "sum"
	OptionMin      Option = "min"
	OptionMax      Option = "max"
	OptionEnergy   Option = "energy"
	OptionPower    Option = "power"
	OptionCost     Option = "cost"
	OptionCashback Option = "cashback"
)

// Join names an auxiliary entity loaded per resource before combining.
type Join string

// JoinTariff makes the engine load the tariffs of each resource into
// BucketInput.Tariffs.
const JoinTariff Join = "tariff"

// Key identifies one recipe.
type Key struct {
	SourceUnit resource.Unit
	TargetUnit resource.Unit
	Option     Option
}

func (k Key) String() string {
	return fmt.Sprintf("%s->%s/%s", k.SourceUnit, k.TargetUnit, k.Option)
}

// Params is one aggregation recipe.
type Params struct {
	Name       string
	SourceUnit resource.Unit
	TargetUnit resource.Unit
	Option     Option

	// Default marks the recipe used when a request names no option.
	Default bool

	// Scale multiplies every sample before PerBucket sees it. Zero means 1.
	Scale float64

	// PerBucket folds the samples of one resource in one bucket.
	PerBucket Combinator

	// Cross names the operator (see Operators) folding per-resource values
	// of one bucket.
	Cross string

	Joins []Join

	// PreQuery may adjust the resolved rules before samples are read.
	PreQuery func(ctx context.Context, rules *Rules) error

	// PostQuery may rewrite the bucketed output of ToList.
	PostQuery func(rows []v1.TimeValue) []v1.TimeValue

	// AllowedResolutions restricts the requested resolution when non-empty.
	AllowedResolutions []timegrid.Resolution

	// Fingerprint is the SHA-256 of the recipe file for recipes loaded from
	// disk; empty for built-ins.
	Fingerprint string
}

// Key returns the composite registry key of p.
func (p *Params) Key() Key {
	return Key{SourceUnit: p.SourceUnit, TargetUnit: p.TargetUnit, Option: p.Option}
}

// Validate checks that p is complete.
func (p *Params) Validate() error {
	if p.SourceUnit == "" || p.TargetUnit == "" {
		return fmt.Errorf("recipe %q: source and target unit are required", p.Name)
	}
	if p.Option == "" {
		return fmt.Errorf("recipe %q: option is required", p.Name)
	}
	if p.PerBucket == nil {
		return fmt.Errorf("recipe %q: per-bucket combinator is required", p.Name)
	}
	if !ValidOperator(p.Cross) {
		return fmt.Errorf("recipe %q: unsupported cross-resource operator %q", p.Name, p.Cross)
	}
	for _, r := range p.AllowedResolutions {
		if !r.Valid() {
			return fmt.Errorf("recipe %q: invalid allowed resolution %q", p.Name, r)
		}
	}
	return nil
}

// HasJoin reports whether p joins j.
func (p *Params) HasJoin(j Join) bool {
	for _, have := range p.Joins {
		if have == j {
			return true
		}
	}
	return false
}

// ScaleSamples returns samples multiplied by p.Scale. The input is returned
// unchanged when no scaling applies.
func (p *Params) ScaleSamples(samples []resource.Sample) []resource.Sample {
	if p.Scale == 0 || p.Scale == 1 {
		return samples
	}
	out := make([]resource.Sample, len(samples))
	for i, s := range samples {
		s.Value *= p.Scale
		out[i] = s
	}
	return out
}

func (p *Params) allows(r timegrid.Resolution) bool {
	if len(p.AllowedResolutions) == 0 {
		return true
	}
	for _, allowed := range p.AllowedResolutions {
		if allowed == r {
			return true
		}
	}
	return false
}

// Rules is a resolved request, ready for the engine.
type Rules struct {
	Params           *Params
	Tier             resource.Tier
	NativeResolution timegrid.Resolution
	Resources        []resource.Resource
	Resolution       timegrid.Resolution
	From             time.Time // zero means unbounded
	To               time.Time
	Location         *time.Location
}
