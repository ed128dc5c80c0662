// internal/form/suggestion/service_test.go
package suggestion

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"intake-service/internal/common/config"
	"intake-service/internal/common/database"
	"intake-service/internal/common/i18n"
	"intake-service/internal/common/logger"
	"intake-service/internal/form/session"
	"intake-service/internal/models"
)

// fakeClient returns canned content, optionally blocking until released so
// tests can interleave cancels with an in-flight round-trip.
type fakeClient struct {
	mu       sync.Mutex
	content  string
	degraded bool
	calls    int
	release  chan struct{}
}

func (f *fakeClient) Suggest(ctx context.Context, prompt string, tr *i18n.Translator) (string, bool) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return f.content, f.degraded
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(t *testing.T, client Client) (*Service, *session.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	store := session.NewStore(rdb, config.SessionConfig{
		Namespace: "smart-step-form",
		TTL:       3600,
	}, logger.NewTestLogger(t))
	return NewService(store, client, logger.NewTestLogger(t)), store
}

const narrativeText = "I lost my job three months ago and my savings are almost gone"

func TestRequest_ContentProducesAISuggestion(t *testing.T) {
	client := &fakeClient{content: "Polished statement about the situation."}
	svc, _ := newTestService(t, client)

	sugg, stdErr := svc.Request(context.Background(), "s1", models.FieldCurrentFinancialSituation, narrativeText, i18n.For(language.English))

	require.Nil(t, stdErr)
	require.NotNil(t, sugg)
	assert.Equal(t, models.SuggestionAIGenerated, sugg.Kind)
	assert.Equal(t, "Polished statement about the situation.", sugg.Content)
	assert.Equal(t, 1, client.callCount())
}

func TestRequest_IrrelevantSkipsNetwork(t *testing.T) {
	client := &fakeClient{content: "should not be called"}
	svc, _ := newTestService(t, client)

	sugg, stdErr := svc.Request(context.Background(), "s1", models.FieldReasonForApplying, "hi", i18n.For(language.English))

	require.Nil(t, stdErr)
	require.NotNil(t, sugg)
	assert.Equal(t, models.SuggestionGuidance, sugg.Kind)
	assert.Contains(t, sugg.Content, "reason for applying")
	assert.Equal(t, 0, client.callCount())
}

func TestRequest_NonNarrativeFieldRejected(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{})

	_, stdErr := svc.Request(context.Background(), "s1", models.FieldName, narrativeText, i18n.For(language.English))

	require.NotNil(t, stdErr)
	assert.Equal(t, "INVALID_REQUEST", string(stdErr.Code))
}

func TestRequest_SecondCallWhileInFlightRejected(t *testing.T) {
	client := &fakeClient{content: "answer", release: make(chan struct{})}
	svc, _ := newTestService(t, client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Request(context.Background(), "s1", models.FieldReasonForApplying, narrativeText, i18n.For(language.English))
	}()

	require.Eventually(t, func() bool {
		return client.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	_, stdErr := svc.Request(context.Background(), "s1", models.FieldReasonForApplying, narrativeText, i18n.For(language.English))
	require.NotNil(t, stdErr)
	assert.Equal(t, "SUGGESTION_IN_FLIGHT", string(stdErr.Code))

	close(client.release)
	<-done
}

func TestRequest_ConcurrentFieldsAreIndependent(t *testing.T) {
	client := &fakeClient{content: "answer", release: make(chan struct{})}
	svc, _ := newTestService(t, client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Request(context.Background(), "s1", models.FieldReasonForApplying, narrativeText, i18n.For(language.English))
	}()

	require.Eventually(t, func() bool {
		return client.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	// a different field is not blocked; irrelevant input avoids the
	// blocked fake client entirely
	sugg, stdErr := svc.Request(context.Background(), "s1", models.FieldEmploymentCircumstances, "hi", i18n.For(language.English))
	require.Nil(t, stdErr)
	assert.Equal(t, models.SuggestionGuidance, sugg.Kind)

	close(client.release)
	<-done
}

func TestRequest_GuidanceDuringFlightReleasesSlot(t *testing.T) {
	client := &fakeClient{content: "late answer", release: make(chan struct{})}
	svc, _ := newTestService(t, client)
	ctx := context.Background()
	tr := i18n.For(language.English)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Request(ctx, "s1", models.FieldReasonForApplying, narrativeText, tr)
	}()

	require.Eventually(t, func() bool {
		return client.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	// chat-like input mid-flight short-circuits to guidance and obsoletes
	// the pending round-trip
	sugg, stdErr := svc.Request(ctx, "s1", models.FieldReasonForApplying, "hi", tr)
	require.Nil(t, stdErr)
	assert.Equal(t, models.SuggestionGuidance, sugg.Kind)

	close(client.release)
	<-done

	// the obsoleted response must have released the slot on its way out
	client.mu.Lock()
	client.release = nil
	client.content = "fresh answer"
	client.mu.Unlock()

	sugg, stdErr = svc.Request(ctx, "s1", models.FieldReasonForApplying, narrativeText, tr)
	require.Nil(t, stdErr)
	require.NotNil(t, sugg)
	assert.Equal(t, "fresh answer", sugg.Content)
}

func TestCancel_DropsInFlightResponse(t *testing.T) {
	client := &fakeClient{content: "late answer", release: make(chan struct{})}
	svc, _ := newTestService(t, client)

	type result struct {
		sugg *models.Suggestion
	}
	resultCh := make(chan result, 1)
	go func() {
		sugg, _ := svc.Request(context.Background(), "s1", models.FieldReasonForApplying, narrativeText, i18n.For(language.English))
		resultCh <- result{sugg: sugg}
	}()

	require.Eventually(t, func() bool {
		return client.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	svc.Cancel("s1", models.FieldReasonForApplying)
	close(client.release)

	res := <-resultCh
	assert.Nil(t, res.sugg)
	assert.Nil(t, svc.Current("s1", models.FieldReasonForApplying))
}

func TestAccept_WritesDraftAndCloses(t *testing.T) {
	client := &fakeClient{content: "A clear statement of my financial situation."}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	_, stdErr := svc.Request(ctx, "s1", models.FieldCurrentFinancialSituation, narrativeText, i18n.For(language.English))
	require.Nil(t, stdErr)

	sess, stdErr := svc.Accept(ctx, "s1", models.FieldCurrentFinancialSituation)
	require.Nil(t, stdErr)
	assert.Equal(t, "A clear statement of my financial situation.", sess.Draft.CurrentFinancialSituation)
	assert.Nil(t, svc.Current("s1", models.FieldCurrentFinancialSituation))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "A clear statement of my financial situation.", loaded.Draft.CurrentFinancialSituation)
}

func TestAccept_WithoutSuggestionRejected(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{})

	_, stdErr := svc.Accept(context.Background(), "s1", models.FieldReasonForApplying)

	require.NotNil(t, stdErr)
	assert.Equal(t, "INVALID_REQUEST", string(stdErr.Code))
}

func TestRewrite_UsesCurrentSuggestion(t *testing.T) {
	client := &fakeClient{content: "First version of the statement text."}
	svc, _ := newTestService(t, client)
	ctx := context.Background()
	tr := i18n.For(language.English)

	_, stdErr := svc.Request(ctx, "s1", models.FieldReasonForApplying, narrativeText, tr)
	require.Nil(t, stdErr)

	client.mu.Lock()
	client.content = "Second version with different wording."
	client.mu.Unlock()

	sugg, stdErr := svc.Rewrite(ctx, "s1", models.FieldReasonForApplying, tr)
	require.Nil(t, stdErr)
	require.NotNil(t, sugg)
	assert.Equal(t, "Second version with different wording.", sugg.Content)
	assert.Equal(t, 2, client.callCount())
}

func TestRewrite_NoSuggestionIsNoOp(t *testing.T) {
	client := &fakeClient{content: "unused"}
	svc, _ := newTestService(t, client)

	sugg, stdErr := svc.Rewrite(context.Background(), "s1", models.FieldReasonForApplying, i18n.For(language.English))

	require.Nil(t, stdErr)
	assert.Nil(t, sugg)
	assert.Equal(t, 0, client.callCount())
}

func TestRequest_FallbackStillPresented(t *testing.T) {
	client := &fakeClient{content: "The suggestion service is temporarily unavailable.", degraded: true}
	svc, _ := newTestService(t, client)

	sugg, stdErr := svc.Request(context.Background(), "s1", models.FieldReasonForApplying, narrativeText, i18n.For(language.English))

	require.Nil(t, stdErr)
	require.NotNil(t, sugg)
	assert.Equal(t, "The suggestion service is temporarily unavailable.", sugg.Content)
}
