package aggregation

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
)

// Query is what a caller asks for. Zero fields take defaults: target unit is
// the source unit, resolution is the chosen tier's native one, option is the
// recipe flagged Default, location is UTC.
type Query struct {
	TargetUnit resource.Unit
	Resolution timegrid.Resolution
	From       time.Time
	To         time.Time
	Option     Option
	Location   *time.Location
}

// Registry maps recipe keys to recipes. It is filled at start-up and only
// read afterwards.
type Registry struct {
	recipes map[Key]*Params
	nowFn   func() time.Time
}

// NewRegistry builds a registry from params. A duplicate key or an invalid
// recipe fails construction.
func NewRegistry(params ...Params) (*Registry, error) {
	r := &Registry{
		recipes: make(map[Key]*Params, len(params)),
		nowFn:   time.Now,
	}
	for i := range params {
		if err := r.Register(params[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds p. Returns ErrDuplicateRecipe when its key is taken.
func (r *Registry) Register(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	key := p.Key()
	if existing, ok := r.recipes[key]; ok {
		return fmt.Errorf("%w: %s (recipes %q and %q)", ErrDuplicateRecipe, key, existing.Name, p.Name)
	}
	r.recipes[key] = &p
	slog.Debug("[Registry] Registered recipe", "name", p.Name, "key", key.String())
	return nil
}

// Recipes returns all recipes ordered by key.
func (r *Registry) Recipes() []Params {
	out := make([]Params, 0, len(r.recipes))
	for _, p := range r.recipes {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key().String() < out[j].Key().String() })
	return out
}

// Resolve turns a query over resources into Rules.
func (r *Registry) Resolve(resources []resource.Resource, q Query) (*Rules, error) {
	if len(resources) == 0 {
		return nil, fmt.Errorf("%w: no resources", ErrInconsistentResources)
	}
	first := &resources[0]
	for i := 1; i < len(resources); i++ {
		if !resource.SameShape(first, &resources[i]) {
			return nil, fmt.Errorf("%w: %s and %s differ in unit or resolutions",
				ErrInconsistentResources, first.ID, resources[i].ID)
		}
	}

	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}
	to := q.To
	if to.IsZero() {
		to = r.nowFn()
	}
	if !q.From.IsZero() && !to.After(q.From) {
		return nil, fmt.Errorf("%w: window end %s is not after start %s", ErrUnsupportedConditions, to, q.From)
	}

	tier := r.chooseTier(first, q.Resolution, q.From, to)
	native := first.Resolution(tier)

	params, err := r.match(first.Unit, q.TargetUnit, q.Option)
	if err != nil {
		return nil, err
	}

	res := q.Resolution
	if res == "" {
		res = native
	}
	if !res.Valid() {
		return nil, fmt.Errorf("%w: invalid resolution %q", ErrUnsupportedConditions, res)
	}
	if res.Finer(native) {
		return nil, fmt.Errorf("%w: resolution %s is finer than native %s", ErrUnsupportedConditions, res, native)
	}
	if res != native && !res.Calendar() {
		return nil, fmt.Errorf("%w: resolution %s is not aggregatable", ErrUnsupportedConditions, res)
	}
	if !params.allows(res) {
		return nil, fmt.Errorf("%w: recipe %q does not allow resolution %s", ErrUnsupportedConditions, params.Name, res)
	}

	return &Rules{
		Params:           params,
		Tier:             tier,
		NativeResolution: native,
		Resources:        resources,
		Resolution:       res,
		From:             q.From,
		To:               to,
		Location:         loc,
	}, nil
}

// chooseTier picks the storage tier for a request.
func (r *Registry) chooseTier(res *resource.Resource, requested timegrid.Resolution, from, to time.Time) resource.Tier {
	switch {
	case !res.HasDetailed():
		return resource.TierLongTerm
	case !res.HasLongTerm():
		return resource.TierDetailed
	case requested != "":
		// Coarsest native resolution not finer than the request.
		if !requested.Finer(res.LongTermResolution) {
			return resource.TierLongTerm
		}
		return resource.TierDetailed
	case !from.IsZero():
		if to.Sub(from) < 2*res.LongTermResolution.Duration() {
			return resource.TierDetailed
		}
		return resource.TierLongTerm
	}
	return resource.TierDetailed
}

// match returns the single recipe for (source, target, option).
func (r *Registry) match(source, target resource.Unit, option Option) (*Params, error) {
	if target == "" {
		target = source
	}

	var found []*Params
	for key, p := range r.recipes {
		if key.SourceUnit != source || key.TargetUnit != target {
			continue
		}
		if option == "" && !p.Default {
			continue
		}
		if option != "" && key.Option != option {
			continue
		}
		found = append(found, p)
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return nil, fmt.Errorf("%w: no recipe for %s->%s option %q", ErrUnsupportedConditions, source, target, option)
	default:
		return nil, fmt.Errorf("%w: %d recipes match %s->%s option %q", ErrUnsupportedConditions, len(found), source, target, option)
	}
}
