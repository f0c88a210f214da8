package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/session"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

func TestMemoryStore_SaveAndFind(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore(8, time.Minute)
	ctx := context.Background()
	plan := &planning.Plan{ID: "KHPN-KGON-abcd1234", SessionID: "s1", Notes: []string{"note"}}

	// Act
	require.NoError(t, store.Save(ctx, plan))
	found, err := store.Find(ctx, "s1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "KHPN-KGON-abcd1234", found.ID)
	assert.Equal(t, []string{"note"}, found.Notes)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := session.NewMemoryStore(8, time.Minute)
	ctx := context.Background()
	plan := &planning.Plan{SessionID: "s1", Notes: []string{"a"}}
	require.NoError(t, store.Save(ctx, plan))

	plan.Notes[0] = "mutated by caller"
	found, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	found.Notes = append(found.Notes, "b")

	again, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Notes)
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	store := session.NewMemoryStore(8, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &planning.Plan{ID: "first", SessionID: "s1"}))
	require.NoError(t, store.Save(ctx, &planning.Plan{ID: "second", SessionID: "s1"}))

	found, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "second", found.ID)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := session.NewMemoryStore(8, time.Minute)

	_, err := store.Find(context.Background(), "missing")

	var notFound *shared.SessionNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestMemoryStore_Delete(t *testing.T) {
	store := session.NewMemoryStore(8, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &planning.Plan{SessionID: "s1"}))

	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, "never-saved"))

	_, err := store.Find(ctx, "s1")
	assert.Error(t, err)
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := session.NewMemoryStore(2, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &planning.Plan{SessionID: "s1"}))
	require.NoError(t, store.Save(ctx, &planning.Plan{SessionID: "s2"}))
	_, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &planning.Plan{SessionID: "s3"}))

	_, err = store.Find(ctx, "s2")
	assert.Error(t, err)
	_, err = store.Find(ctx, "s1")
	assert.NoError(t, err)
}

func TestMemoryStore_Expires(t *testing.T) {
	store := session.NewMemoryStore(8, 20*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &planning.Plan{SessionID: "s1"}))

	assert.Eventually(t, func() bool {
		_, err := store.Find(ctx, "s1")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_RejectsPlanWithoutSession(t *testing.T) {
	store := session.NewMemoryStore(8, time.Minute)

	err := store.Save(context.Background(), &planning.Plan{})

	var validation *shared.ValidationError
	assert.True(t, errors.As(err, &validation))
}
