// internal/server/server_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-service/internal/common/config"
	"intake-service/internal/common/database"
	"intake-service/internal/common/errors"
	"intake-service/internal/common/i18n"
	"intake-service/internal/common/logger"
	"intake-service/internal/common/observability"
	"intake-service/internal/form/navigation"
	"intake-service/internal/form/session"
	"intake-service/internal/form/suggestion"
	"intake-service/internal/models"
)

type fakeSubmitter struct {
	receipt *models.Receipt
	err     *errors.StandardError
}

func (f *fakeSubmitter) Submit(ctx context.Context, sessionID string, draft *models.ApplicationDraft, tr *i18n.Translator) (*models.Receipt, *errors.StandardError) {
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

type fakeAIClient struct {
	content string
}

func (f *fakeAIClient) Suggest(ctx context.Context, prompt string, tr *i18n.Translator) (string, bool) {
	return f.content, false
}

func newTestServer(t *testing.T, sub navigation.Submitter) (http.Handler, *session.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	log := logger.NewTestLogger(t)

	cfg := &config.Config{}
	cfg.Session = config.SessionConfig{
		Namespace:        "smart-step-form",
		TTL:              3600,
		DebounceWindow:   500,
		PersistStepIndex: true,
	}

	store := session.NewStore(rdb, cfg.Session, log)
	debouncer := session.NewDebouncer(time.Duration(cfg.Session.DebounceWindow) * time.Millisecond)
	// drain pending debounced writes before miniredis shuts down
	t.Cleanup(debouncer.FlushAll)
	controller := navigation.NewController(store, sub, log)
	suggestions := suggestion.NewService(store, &fakeAIClient{content: "A generated statement about the situation."}, log)

	srv := New(Deps{
		Config:      cfg,
		Log:         log,
		Store:       store,
		Debouncer:   debouncer,
		Controller:  controller,
		Suggestions: suggestions,
		Redis:       rdb,
		Obs:         observability.New("intake-service-test"),
	})
	return srv.Router(), store
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthz(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSession_FreshSession(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/s1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var view sessionView
	decode(t, rec, &view)
	assert.Equal(t, 0, view.StepIndex)
	require.Len(t, view.Steps, 3)
	assert.False(t, view.Steps[0].Valid)
}

func TestPatchDraft_AppliesGeoResolution(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft",
		map[string]interface{}{"city": "Chennai"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp draftPatchResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Chennai", resp.Draft.City)
	assert.Equal(t, "Tamil Nadu", resp.Draft.State)
	assert.Equal(t, "India", resp.Draft.Country)
	assert.Equal(t, "Tamil Nadu", resp.Resolved["state"])
	assert.Equal(t, "India", resp.Resolved["country"])
}

func TestPatchDraft_UnknownFieldRejected(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft",
		map[string]interface{}{"nickname": "Ami"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchDraft_PersistsAfterSettle(t *testing.T) {
	handler, store := newTestServer(t, &fakeSubmitter{})

	doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft",
		map[string]interface{}{"name": "Amina Khan"})
	// GET flushes the debounced write before reading
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	loaded, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Amina Khan", loaded.Draft.Name)
}

func TestPatchDraft_ValidationReflectsEdit(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft",
		map[string]interface{}{"email": "not-an-email"})

	var resp draftPatchResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Validation)
	assert.False(t, resp.Validation.Valid)
	assert.NotEmpty(t, resp.Validation.ErrorsForField(models.FieldEmail))
}

func TestPatchDraft_FlushMergesWithConcurrentMutation(t *testing.T) {
	handler, store := newTestServer(t, &fakeSubmitter{})
	ctx := context.Background()

	doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft",
		map[string]interface{}{"name": "Amina Khan"})

	// a locked mutation lands inside the debounce window
	_, err := store.Update(ctx, "s1", func(s *session.Session) error {
		s.StepIndex = 1
		return nil
	})
	require.NoError(t, err)

	// GET flushes the pending edit; the flush must merge, not overwrite
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.StepIndex)
	assert.Equal(t, "Amina Khan", loaded.Draft.Name)
}

func TestApplierMap_SweepsIdleSessions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.TTL = 3600
	srv := New(Deps{Config: cfg, Log: logger.NewTestLogger(t)})

	srv.applier("stale")
	srv.mu.Lock()
	srv.appliers["stale"].lastUsed = time.Now().Add(-2 * time.Hour)
	srv.mu.Unlock()

	srv.applier("fresh")

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.NotContains(t, srv.appliers, "stale")
	assert.Contains(t, srv.appliers, "fresh")
}

func TestAdvance_BlockedOnEmptyStep(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/advance", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp navigationResponse
	decode(t, rec, &resp)
	assert.Equal(t, 0, resp.StepIndex)
	require.NotNil(t, resp.Validation)
	assert.False(t, resp.Validation.Valid)
}

func fillPersonalEdits() map[string]interface{} {
	return map[string]interface{}{
		"name": "Amina Khan", "nationalId": "AB-123456",
		"dateOfBirth": "1990-04-12", "gender": "female",
		"address": "12 Marina Walk", "city": "Dubai",
		"email": "amina@example.com", "phCode": "+971", "phone": "501234567",
	}
}

func TestAdvance_MovesForwardWhenValid(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	// city resolution fills state and country
	doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft", fillPersonalEdits())
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/advance", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp navigationResponse
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.StepIndex)
}

func TestRetreat(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft", fillPersonalEdits())
	doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/advance", nil)
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/retreat", nil)

	var resp navigationResponse
	decode(t, rec, &resp)
	assert.Equal(t, 0, resp.StepIndex)
}

func TestReset_ClearsDraftAndStep(t *testing.T) {
	handler, store := newTestServer(t, &fakeSubmitter{})

	doJSON(t, handler, http.MethodPatch, "/api/v1/sessions/s1/draft", fillPersonalEdits())
	doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/advance", nil)
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/reset", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp navigationResponse
	decode(t, rec, &resp)
	assert.Equal(t, 0, resp.StepIndex)
	assert.Equal(t, "", resp.Draft.Name)

	loaded, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "", loaded.Draft.Name)
}

func TestSubmit_FailureMapsTo502(t *testing.T) {
	handler, store := newTestServer(t, &fakeSubmitter{err: errors.NewSubmissionFailedError(assert.AnError)})

	_, err := store.Update(context.Background(), "s1", func(s *session.Session) error {
		s.Draft.Name = "Amina Khan"
		s.Draft.NationalID = "AB-123456"
		s.Draft.DateOfBirth = "1990-04-12"
		s.Draft.Gender = "female"
		s.Draft.Address = "12 Marina Walk"
		s.Draft.City = "Dubai"
		s.Draft.State = "Dubai"
		s.Draft.Country = "UAE"
		s.Draft.Email = "amina@example.com"
		s.Draft.PhoneCode = "+971"
		s.Draft.Phone = "501234567"
		s.Draft.MaritalStatus = "married"
		s.Draft.Dependents = 2
		s.Draft.EmploymentStatus = "employed"
		s.Draft.HousingStatus = "rented"
		s.Draft.Currency = "AED"
		s.Draft.MonthlyIncome = 4500
		s.Draft.CurrentFinancialSituation = "Managing but savings are depleted."
		s.Draft.EmploymentCircumstances = "Part-time contract ending next month."
		s.Draft.ReasonForApplying = "Need support while between contracts."
		s.StepIndex = 2
		return nil
	})
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/submit", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// draft and position survive the failure
	loaded, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.StepIndex)
	assert.Equal(t, "Amina Khan", loaded.Draft.Name)
}

func TestSuggestionRequest_Guidance(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/suggestions",
		map[string]string{"field": "reasonForApplying", "text": "hi"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Suggestion *models.Suggestion `json:"suggestion"`
	}
	decode(t, rec, &resp)
	require.NotNil(t, resp.Suggestion)
	assert.Equal(t, models.SuggestionGuidance, resp.Suggestion.Kind)
}

func TestSuggestionAcceptFlow(t *testing.T) {
	handler, store := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/suggestions",
		map[string]string{
			"field": "reasonForApplying",
			"text":  "I lost my job three months ago and savings are running out",
		})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/suggestions/accept",
		map[string]string{"field": "reasonForApplying"})
	require.Equal(t, http.StatusOK, rec.Code)

	loaded, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "A generated statement about the situation.", loaded.Draft.ReasonForApplying)
}

func TestSuggestionCancel(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/suggestions/cancel",
		map[string]string{"field": "reasonForApplying"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSuggestionRequest_NonNarrativeField(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/s1/suggestions",
		map[string]string{"field": "name", "text": "whatever text here"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocale_ArabicMessages(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/advance", nil)
	req.Header.Set("Accept-Language", "ar")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp navigationResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Validation)
	require.NotEmpty(t, resp.Validation.Errors)

	enReq := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s2/advance", nil)
	enRec := httptest.NewRecorder()
	handler.ServeHTTP(enRec, enReq)
	var enResp navigationResponse
	decode(t, enRec, &enResp)

	assert.NotEqual(t, enResp.Validation.Errors[0].Message, resp.Validation.Errors[0].Message)
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestServer(t, &fakeSubmitter{})

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
