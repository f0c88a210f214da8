package shared

import "errors"

// ErrorClass groups planner errors by how a caller should react
type ErrorClass string

const (
	ClassNone        ErrorClass = "ok"
	ClassInvalid     ErrorClass = "invalid"
	ClassNotFound    ErrorClass = "not_found"
	ClassUnplannable ErrorClass = "unplannable"
	ClassInternal    ErrorClass = "internal"
)

// Classify maps err onto an ErrorClass. errors.As does not see through the
// embedded *PlanningError, so every concrete type is listed.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}

	var (
		validation   *ValidationError
		unknown      *UnknownAirportError
		session      *SessionNotFoundError
		substitution *SubstitutionNotFoundError
		tooLong      *RouteTooLongError
		exhausted    *CorridorSearchExhaustedError
		geodesy      *GeodesyResolutionError
		degenerate   *DegenerateWindError
		noWind       *NoWindDataError
		climb        *ClimbDistanceExceedsRouteError
		planning     *PlanningError
	)
	switch {
	case errors.As(err, &validation):
		return ClassInvalid
	case errors.As(err, &unknown), errors.As(err, &session), errors.As(err, &substitution):
		return ClassNotFound
	case errors.As(err, &tooLong), errors.As(err, &exhausted), errors.As(err, &geodesy),
		errors.As(err, &degenerate), errors.As(err, &noWind), errors.As(err, &climb),
		errors.As(err, &planning):
		return ClassUnplannable
	default:
		return ClassInternal
	}
}
