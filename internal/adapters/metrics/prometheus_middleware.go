package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
)

// PrometheusMiddleware records duration and outcome of every command and
// query dispatched through the mediator. A nil collector disables it.
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		done := collector.Begin(extractCommandName(request))
		start := time.Now()
		response, err := next(ctx, request)
		done(time.Since(start).Seconds(), err)

		return response, err
	}
}

// extractCommandName strips pointer and package prefixes:
// "*commands.PlanRouteCommand" becomes "PlanRouteCommand"
func extractCommandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
