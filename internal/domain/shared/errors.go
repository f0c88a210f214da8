package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Planning errors

type PlanningError struct {
	*DomainError
}

func NewPlanningError(message string) *PlanningError {
	return &PlanningError{DomainError: &DomainError{Message: message}}
}

// GeodesyResolutionError means distance or bearing between two points could
// not be resolved. Fatal to the segment being built.
type GeodesyResolutionError struct {
	*PlanningError
	From string
	To   string
}

func NewGeodesyResolutionError(from, to string, cause error) *GeodesyResolutionError {
	msg := fmt.Sprintf("cannot resolve course from %s to %s", from, to)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &GeodesyResolutionError{
		PlanningError: NewPlanningError(msg),
		From:          from,
		To:            to,
	}
}

// NoWindDataError is absorbed by the route builder: the leg flies calm.
type NoWindDataError struct {
	*PlanningError
	Station string
}

func NewNoWindDataError(station string, cause error) *NoWindDataError {
	msg := fmt.Sprintf("no wind data for %s", station)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &NoWindDataError{PlanningError: NewPlanningError(msg), Station: station}
}

type CorridorSearchExhaustedError struct {
	*PlanningError
	From       string
	Tolerance  float64
	Iterations int
}

func NewCorridorSearchExhaustedError(from string, tolerance float64, iterations int) *CorridorSearchExhaustedError {
	return &CorridorSearchExhaustedError{
		PlanningError: NewPlanningError(fmt.Sprintf(
			"no landmark reachable from %s (tolerance %.1f, %d legs)", from, tolerance, iterations)),
		From:       from,
		Tolerance:  tolerance,
		Iterations: iterations,
	}
}

// ClimbDistanceExceedsRouteError is never returned by a build; its message is
// recorded as an advisory.
type ClimbDistanceExceedsRouteError struct {
	*PlanningError
	ClimbDistanceNM float64
	RouteDistanceNM float64
}

const ClimbDistanceExceedsRouteMessage = "Climb distance longer than route. Ignoring climb parameters."

func NewClimbDistanceExceedsRouteError(climbNM, routeNM float64) *ClimbDistanceExceedsRouteError {
	return &ClimbDistanceExceedsRouteError{
		PlanningError:   NewPlanningError(ClimbDistanceExceedsRouteMessage),
		ClimbDistanceNM: climbNM,
		RouteDistanceNM: routeNM,
	}
}

type SubstitutionNotFoundError struct {
	*PlanningError
	Place    string
	RadiusNM float64
}

func NewSubstitutionNotFoundError(place string, radiusNM float64) *SubstitutionNotFoundError {
	return &SubstitutionNotFoundError{
		PlanningError: NewPlanningError(fmt.Sprintf("no place matching %q within %.0f nm", place, radiusNM)),
		Place:         place,
		RadiusNM:      radiusNM,
	}
}

type DegenerateWindError struct {
	*PlanningError
	WindSpeed   float64
	TrueAirspd  float64
	GroundSpeed float64
}

func NewDegenerateWindError(windSpeed, tas, groundSpeed float64) *DegenerateWindError {
	return &DegenerateWindError{
		PlanningError: NewPlanningError(fmt.Sprintf(
			"degenerate wind: %.0f kt wind against %.0f kt TAS gives ground speed %.1f", windSpeed, tas, groundSpeed)),
		WindSpeed:   windSpeed,
		TrueAirspd:  tas,
		GroundSpeed: groundSpeed,
	}
}

type RouteTooLongError struct {
	*PlanningError
	DistanceNM float64
	MaxNM      float64
}

func NewRouteTooLongError(distanceNM, maxNM float64) *RouteTooLongError {
	return &RouteTooLongError{
		PlanningError: NewPlanningError(fmt.Sprintf(
			"route of %.0f nm exceeds the %.0f nm planning limit", distanceNM, maxNM)),
		DistanceNM: distanceNM,
		MaxNM:      maxNM,
	}
}

type UnknownAirportError struct {
	*PlanningError
	Code string
}

func NewUnknownAirportError(code string) *UnknownAirportError {
	return &UnknownAirportError{
		PlanningError: NewPlanningError(fmt.Sprintf("unknown airport %q", code)),
		Code:          code,
	}
}

type SessionNotFoundError struct {
	*DomainError
	SessionID string
}

func NewSessionNotFoundError(sessionID string) *SessionNotFoundError {
	return &SessionNotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("planning session %s not found or expired", sessionID)),
		SessionID:   sessionID,
	}
}
