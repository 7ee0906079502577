package aggregation

import "errors"

var (
	// ErrInconsistentResources is returned when the resources of one request
	// are empty or disagree on unit or resolutions.
	ErrInconsistentResources = errors.New("inconsistent resources")

	// ErrUnsupportedConditions is returned when no recipe, or more than one,
	// matches a request, or the requested resolution cannot be served.
	ErrUnsupportedConditions = errors.New("unsupported aggregation conditions")

	// ErrDuplicateRecipe is returned when a recipe key is registered twice.
	ErrDuplicateRecipe = errors.New("duplicate aggregation recipe")

	// ErrNoData is returned when no rows qualify for a request.
	ErrNoData = errors.New("no data")
)
