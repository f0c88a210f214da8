package logging

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
)

// Middleware attaches logger to the request context and logs each request's
// outcome and duration
func Middleware(logger *slog.Logger) common.Middleware {
	adapter := NewSlogAdapter(logger)
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		ctx = common.WithLogger(ctx, adapter)
		name := RequestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.WarnContext(ctx, "request failed",
				slog.String("request", name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()))
			return response, err
		}
		logger.DebugContext(ctx, "request handled",
			slog.String("request", name),
			slog.Duration("elapsed", elapsed))
		return response, nil
	}
}

// RequestName returns the bare type name of a request, e.g. "PlanRouteCommand"
func RequestName(request common.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
