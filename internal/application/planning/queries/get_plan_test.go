package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/session"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

func TestGetPlan_ReturnsStoredPlan(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore(4, time.Minute)
	require.NoError(t, store.Save(context.Background(), &planning.Plan{ID: "KHPN-KGON-0a1b2c3d", SessionID: "s1"}))
	handler := queries.NewGetPlanHandler(store)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetPlanQuery{SessionID: "s1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "KHPN-KGON-0a1b2c3d", resp.(*queries.GetPlanResponse).Plan.ID)
}

func TestGetPlan_SessionNotFound(t *testing.T) {
	handler := queries.NewGetPlanHandler(session.NewMemoryStore(4, time.Minute))

	_, err := handler.Handle(context.Background(), &queries.GetPlanQuery{SessionID: "gone"})

	var notFound *shared.SessionNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestGetPlan_RequiresSession(t *testing.T) {
	handler := queries.NewGetPlanHandler(session.NewMemoryStore(4, time.Minute))

	_, err := handler.Handle(context.Background(), &queries.GetPlanQuery{})

	var validation *shared.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "session_id", validation.Field)
}
