package setup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/session"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/vfrplanner-go/internal/application/setup"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
)

func newRegistry() *setup.HandlerRegistry {
	fx := helpers.NewPlannerFixture()
	return setup.NewHandlerRegistry(
		fx.Providers(),
		navigation.DefaultCorridorPolicy(),
		32,
		session.NewMemoryStore(8, time.Minute),
		planning.DefaultSettings(),
		nil,
	)
}

func TestHandlerRegistry_PlanThenQuery(t *testing.T) {
	// Arrange
	m, err := newRegistry().NewPlanningMediator(nil, nil)
	require.NoError(t, err)
	ctx := context.Background()

	// Act
	_, err = m.Send(ctx, &commands.PlanRouteCommand{Origin: "KHPN", Destination: "KGON", SessionID: "s1"})
	require.NoError(t, err)
	resp, err := common.Dispatch[*queries.GetPlanResponse](ctx, m, &queries.GetPlanQuery{SessionID: "s1"})

	// Assert
	require.NoError(t, err)
	plan := resp.Plan
	assert.Equal(t, "KHPN", plan.Origin.Name)
	assert.Equal(t, "KGON", plan.Destination.Name)
}

func TestHandlerRegistry_DuplicateRegistrationFails(t *testing.T) {
	registry := newRegistry()
	m := common.NewMediator()

	require.NoError(t, registry.RegisterPlanningHandlers(m))
	assert.Error(t, registry.RegisterPlanningHandlers(m))
}

func TestHandlerRegistry_ReplanUnknownSession(t *testing.T) {
	m, err := newRegistry().NewPlanningMediator(nil, nil)
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &commands.ReplanRouteCommand{SessionID: "nope", Place: "Milford"})

	var notFound *shared.SessionNotFoundError
	assert.True(t, errors.As(err, &notFound))
}
