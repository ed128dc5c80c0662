// internal/form/session/store_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-service/internal/common/config"
	"intake-service/internal/common/database"
	"intake-service/internal/common/logger"
	"intake-service/internal/models"
)

func newTestStore(t *testing.T, persistStep bool) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	cfg := config.SessionConfig{
		Namespace:        "smart-step-form",
		TTL:              3600,
		DebounceWindow:   500,
		PersistStepIndex: persistStep,
	}
	return NewStore(rdb, cfg, logger.NewTestLogger(t)), mr
}

func TestLoad_MissingSessionReturnsDefaults(t *testing.T) {
	store, _ := newTestStore(t, false)

	sess, err := store.Load(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, 0, sess.StepIndex)
	assert.Equal(t, "", sess.Draft.Name)
}

func TestSaveLoad_RoundTripsDraft(t *testing.T) {
	store, _ := newTestStore(t, false)
	ctx := context.Background()

	sess := NewSession()
	sess.Draft.Name = "Amina Khan"
	sess.Draft.City = "Chennai"
	require.NoError(t, store.Save(ctx, "s1", sess))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Amina Khan", loaded.Draft.Name)
	assert.Equal(t, "Chennai", loaded.Draft.City)
}

func TestLoad_StepIndexResetsOnReloadByDefault(t *testing.T) {
	// Deliberate behavior: field data survives a reload, the step pointer
	// does not, so a returning user re-enters at the first step with their
	// answers intact.
	store, _ := newTestStore(t, false)
	ctx := context.Background()

	sess := NewSession()
	sess.Draft.Name = "Amina Khan"
	sess.StepIndex = 2
	require.NoError(t, store.Save(ctx, "s1", sess))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.StepIndex)
	assert.Equal(t, "Amina Khan", loaded.Draft.Name)
}

func TestLoad_StepIndexSurvivesWhenConfigured(t *testing.T) {
	store, _ := newTestStore(t, true)
	ctx := context.Background()

	sess := NewSession()
	sess.StepIndex = 2
	require.NoError(t, store.Save(ctx, "s1", sess))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.StepIndex)
}

func TestSave_AppliesNamespaceAndTTL(t *testing.T) {
	store, mr := newTestStore(t, false)

	require.NoError(t, store.Save(context.Background(), "abc", NewSession()))

	require.True(t, mr.Exists("smart-step-form:abc"))
	assert.Greater(t, mr.TTL("smart-step-form:abc"), time.Duration(0))
}

func TestReset_DeletesSession(t *testing.T) {
	store, mr := newTestStore(t, false)
	ctx := context.Background()

	sess := NewSession()
	sess.Draft.Name = "Amina Khan"
	require.NoError(t, store.Save(ctx, "s1", sess))
	require.NoError(t, store.Reset(ctx, "s1"))

	assert.False(t, mr.Exists("smart-step-form:s1"))
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "", loaded.Draft.Name)
	assert.Equal(t, 0, loaded.StepIndex)
}

func TestLoad_CorruptPayloadFallsBackToDefaults(t *testing.T) {
	store, mr := newTestStore(t, false)
	require.NoError(t, mr.Set("smart-step-form:s1", "{not json"))

	sess, err := store.Load(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "", sess.Draft.Name)
}

func TestUpdate_ReadModifyWrite(t *testing.T) {
	store, _ := newTestStore(t, true)
	ctx := context.Background()

	_, err := store.Update(ctx, "s1", func(s *Session) error {
		s.Draft.SetField(models.FieldCity, "Mumbai")
		s.StepIndex = 1
		return nil
	})
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", loaded.Draft.City)
	assert.Equal(t, 1, loaded.StepIndex)
}

func TestUpdate_LockTableStaysBounded(t *testing.T) {
	store, _ := newTestStore(t, false)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		_, err := store.Update(ctx, id, func(s *Session) error {
			s.Draft.Name = "Amina Khan"
			return nil
		})
		require.NoError(t, err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.locks)
}

func TestUpdate_ErrorAbortsWithoutWriting(t *testing.T) {
	store, mr := newTestStore(t, false)

	_, err := store.Update(context.Background(), "s1", func(s *Session) error {
		s.Draft.Name = "should not land"
		return assert.AnError
	})

	require.Error(t, err)
	assert.False(t, mr.Exists("smart-step-form:s1"))
}
