package projection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wattline/wattline/internal/core/aggregation"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/core/timegrid"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid series query")

// Service implements the query layer over the aggregation engine.
type Service struct {
	engine    *Engine
	resources storage.ResourceRepository
	location  *time.Location
}

// NewService creates a query service. loc is the timezone used when a
// request names none.
func NewService(engine *Engine, resources storage.ResourceRepository, loc *time.Location) *Service {
	if engine == nil {
		panic("projection: engine must not be nil")
	}
	if resources == nil {
		panic("projection: resource repository must not be nil")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{engine: engine, resources: resources, location: loc}
}

// QuerySeries answers one GET /v1/series request. The returned value is a
// *SeriesResponse or a v1.ResourceValue depending on the mode.
func (s *Service) QuerySeries(ctx context.Context, req SeriesQueryRequest) (interface{}, error) {
	ids := splitIDs(req.Resources)
	if len(ids) == 0 {
		return nil, invalidQueryf("resources is required")
	}

	loc := s.location
	if req.Timezone != "" {
		l, err := time.LoadLocation(req.Timezone)
		if err != nil {
			return nil, invalidQueryf("unknown timezone %q", req.Timezone)
		}
		loc = l
	}

	var res timegrid.Resolution
	if req.Resolution != "" {
		r, err := timegrid.ParseResolution(req.Resolution)
		if err != nil {
			return nil, invalidQueryf("%v", err)
		}
		res = r
	}

	resources, err := s.resources.GetResources(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	if len(resources) != len(ids) {
		return nil, fmt.Errorf("%w: %d of %d resources exist", storage.ErrNotFound, len(resources), len(ids))
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeList
	}

	switch mode {
	case ModeAlwaysOn:
		return s.engine.AlwaysOn(ctx, resources, req.From, req.To, loc)
	case ModeProfile:
		period, ok := Periods[req.Period]
		if !ok {
			return nil, invalidQueryf("unknown period %q", req.Period)
		}
		profile, err := s.engine.PeriodicProfile(ctx, resources, resource.Unit(req.Unit), period, loc, req.Fill)
		if err != nil {
			return nil, err
		}
		return &SeriesResponse{Resources: ids, Unit: unitOr(req.Unit, resources), Profile: profile}, nil
	}

	rules, err := s.engine.Resolve(resources, aggregation.Query{
		TargetUnit: resource.Unit(req.Unit),
		Resolution: res,
		From:       req.From,
		To:         req.To,
		Option:     aggregation.Option(req.Option),
		Location:   loc,
	})
	if err != nil {
		return nil, err
	}

	resp := &SeriesResponse{
		Resources:  ids,
		Unit:       string(rules.Params.TargetUnit),
		Resolution: string(rules.Resolution),
		Option:     string(rules.Params.Option),
		Tier:       string(rules.Tier),
		To:         &rules.To,
	}
	if !rules.From.IsZero() {
		resp.From = &rules.From
	}

	switch mode {
	case ModeList:
		rows, err := s.engine.ToList(ctx, rules)
		if err != nil {
			return nil, err
		}
		if req.Fill {
			rows = GapFill(rows, rules.Resolution, rules.From, rules.To, loc)
		}
		resp.Values = rows
		return resp, nil
	case ModeOne:
		return s.engine.ToOne(ctx, rules)
	case ModeCompare:
		cut, err := ParseCut(req.Cut)
		if err != nil {
			return nil, err
		}
		rows, err := s.engine.ToListWithComparison(ctx, rules, req.CmpFrom, req.CmpTo, cut)
		if err != nil {
			return nil, err
		}
		resp.Compared = rows
		return resp, nil
	}
	return nil, invalidQueryf("invalid mode: %s (must be list, one, compare, always_on or profile)", mode)
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func unitOr(unit string, resources []resource.Resource) string {
	if unit != "" {
		return unit
	}
	return string(resources[0].Unit)
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
