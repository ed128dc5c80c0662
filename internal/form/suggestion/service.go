// internal/form/suggestion/service.go
package suggestion

import (
	"context"
	"strings"
	"sync"
	"time"

	"intake-service/internal/common/errors"
	"intake-service/internal/common/i18n"
	"intake-service/internal/common/logger"
	"intake-service/internal/common/metrics"
	"intake-service/internal/form/session"
	"intake-service/internal/models"
)

type stateKey struct {
	sessionID string
	field     string
}

// fieldState tracks one session+field's suggestion lifecycle. The
// generation counter advances on every request, cancel, and accept; a
// round-trip whose generation no longer matches when it returns lost a
// race and its result is dropped.
type fieldState struct {
	inFlight   bool
	generation uint64
	current    *models.Suggestion
}

// Service owns the suggestion state machine. One round-trip may be in
// flight per session+field; different fields proceed independently.
type Service struct {
	store  *session.Store
	client Client
	log    logger.Logger

	mu     sync.Mutex
	states map[stateKey]*fieldState
}

func NewService(store *session.Store, client Client, log logger.Logger) *Service {
	return &Service{
		store:  store,
		client: client,
		log:    log.WithFields(map[string]interface{}{"component": "suggestion-service"}),
		states: map[stateKey]*fieldState{},
	}
}

func (s *Service) state(key stateKey) *fieldState {
	st, ok := s.states[key]
	if !ok {
		st = &fieldState{}
		s.states[key] = st
	}
	return st
}

// begin claims the in-flight slot and returns the generation this
// round-trip belongs to.
func (s *Service) begin(key stateKey) (uint64, *errors.StandardError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(key)
	if st.inFlight {
		return 0, errors.NewSuggestionInFlightError(key.field)
	}
	st.inFlight = true
	st.generation++
	return st.generation, nil
}

// finish installs the result if the generation still matches, and reports
// whether it did. A mismatch means cancel or a guidance short-circuit won
// the race. The in-flight slot is released on both paths: this flight held
// it since begin, so no newer round-trip can own it, and leaving it set
// would refuse every later request for the field.
func (s *Service) finish(key stateKey, generation uint64, sugg *models.Suggestion) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(key)
	st.inFlight = false
	if st.generation != generation {
		return false
	}
	st.current = sugg
	return true
}

// Request classifies the applicant's text and produces a suggestion.
// Irrelevant input short-circuits to locally built guidance without a
// network call. Unknown or non-narrative fields are rejected.
func (s *Service) Request(ctx context.Context, sessionID, field, text string, tr *i18n.Translator) (*models.Suggestion, *errors.StandardError) {
	if !models.NarrativeFields[field] {
		return nil, errors.NewInvalidRequestError("suggestions are only available for narrative fields")
	}

	key := stateKey{sessionID: sessionID, field: field}
	class := Categorize(text, tr)

	if class == ClassIrrelevant {
		s.mu.Lock()
		st := s.state(key)
		st.generation++
		sugg := &models.Suggestion{
			Field:      field,
			Kind:       models.SuggestionGuidance,
			Content:    GuidanceMessage(field, tr),
			Generation: st.generation,
		}
		st.current = sugg
		s.mu.Unlock()

		metrics.Suggestions.WithLabelValues("guidance").Inc()
		return sugg, nil
	}

	generation, stdErr := s.begin(key)
	if stdErr != nil {
		return nil, stdErr
	}

	prompt := BuildPrompt(class, strings.TrimSpace(text), field, tr)
	sugg, outcome := s.roundTrip(ctx, key, generation, class, prompt, tr)
	if sugg == nil {
		metrics.Suggestions.WithLabelValues("stale").Inc()
		return nil, nil
	}
	metrics.Suggestions.WithLabelValues(outcome).Inc()
	return sugg, nil
}

// Rewrite reworks the current suggestion with different wording. It is a
// no-op when there is nothing to rewrite or a round-trip is pending.
func (s *Service) Rewrite(ctx context.Context, sessionID, field string, tr *i18n.Translator) (*models.Suggestion, *errors.StandardError) {
	key := stateKey{sessionID: sessionID, field: field}

	s.mu.Lock()
	st := s.state(key)
	if st.inFlight || st.current == nil || strings.TrimSpace(st.current.Content) == "" {
		current := st.current
		s.mu.Unlock()
		return current, nil
	}
	currentText := st.current.Content
	s.mu.Unlock()

	class := Categorize(currentText, tr)
	if class == ClassIrrelevant {
		s.mu.Lock()
		st = s.state(key)
		st.generation++
		sugg := &models.Suggestion{
			Field:      field,
			Kind:       models.SuggestionGuidance,
			Content:    GuidanceMessage(field, tr),
			Generation: st.generation,
		}
		st.current = sugg
		s.mu.Unlock()

		metrics.Suggestions.WithLabelValues("guidance").Inc()
		return sugg, nil
	}

	prompt := BuildRewritePrompt(class, currentText, field, tr)
	if prompt == "" {
		prompt = BuildPrompt(ClassEmpty, "", field, tr)
	}

	generation, stdErr := s.begin(key)
	if stdErr != nil {
		return nil, stdErr
	}

	sugg, outcome := s.roundTrip(ctx, key, generation, class, prompt, tr)
	if sugg == nil {
		metrics.Suggestions.WithLabelValues("stale").Inc()
		return nil, nil
	}
	metrics.Suggestions.WithLabelValues(outcome).Inc()
	return sugg, nil
}

// roundTrip performs the AI call and installs the result unless the
// generation moved on. Returns nil when the result was dropped as stale.
func (s *Service) roundTrip(ctx context.Context, key stateKey, generation uint64, class InputClass, prompt string, tr *i18n.Translator) (*models.Suggestion, string) {
	start := time.Now()
	content, degraded := s.client.Suggest(ctx, prompt, tr)

	// A generated answer that parrots the help request back gets one fresh
	// regeneration without the request text.
	if !degraded && class == ClassHelpRequest && isHelpRequest(content) {
		fresh := BuildPrompt(ClassEmpty, "", key.field, tr)
		content, degraded = s.client.Suggest(ctx, fresh, tr)
	}

	outcome := "generated"
	if degraded {
		outcome = "fallback"
	}
	metrics.SuggestionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	sugg := &models.Suggestion{
		Field:      key.field,
		Kind:       models.SuggestionAIGenerated,
		Content:    strings.TrimSpace(content),
		Generation: generation,
	}
	if !s.finish(key, generation, sugg) {
		s.log.Debug("Dropping stale suggestion response", map[string]interface{}{
			"session_id": key.sessionID,
			"field":      key.field,
			"generation": generation,
		})
		return nil, outcome
	}
	return sugg, outcome
}

// Accept writes the current suggestion into the draft field through the
// session store and closes the suggestion.
func (s *Service) Accept(ctx context.Context, sessionID, field string) (*session.Session, *errors.StandardError) {
	key := stateKey{sessionID: sessionID, field: field}

	s.mu.Lock()
	st := s.state(key)
	if st.current == nil || strings.TrimSpace(st.current.Content) == "" {
		s.mu.Unlock()
		return nil, errors.NewInvalidRequestError("no suggestion to accept")
	}
	content := st.current.Content
	st.generation++
	st.inFlight = false
	st.current = nil
	s.mu.Unlock()

	sess, err := s.store.Update(ctx, sessionID, func(sess *session.Session) error {
		sess.Draft.SetField(field, content)
		return nil
	})
	if err != nil {
		if stdErr, ok := err.(*errors.StandardError); ok {
			return nil, stdErr
		}
		return nil, errors.NewSessionSaveFailedError(err)
	}
	metrics.Suggestions.WithLabelValues("accepted").Inc()
	return sess, nil
}

// Cancel discards any current or pending suggestion. A response still in
// flight sees the advanced generation and is dropped when it lands.
func (s *Service) Cancel(sessionID, field string) {
	key := stateKey{sessionID: sessionID, field: field}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(key)
	st.generation++
	st.inFlight = false
	st.current = nil
}

// Current returns the live suggestion for a session+field, or nil.
func (s *Service) Current(sessionID, field string) *models.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[stateKey{sessionID: sessionID, field: field}]; ok {
		return st.current
	}
	return nil
}
