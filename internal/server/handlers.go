// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake-service/internal/common/errors"
	"intake-service/internal/form/geo"
	"intake-service/internal/form/session"
	"intake-service/internal/form/validation"
	"intake-service/internal/models"
)

// stepView is one step's validation state in the session envelope.
type stepView struct {
	Index  int                     `json:"index"`
	Title  string                  `json:"title"`
	Valid  bool                    `json:"valid"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

// sessionView is the full session envelope: the draft, the position, and
// freshly computed per-step errors.
type sessionView struct {
	StepIndex int                      `json:"stepIndex"`
	Draft     *models.ApplicationDraft `json:"draft"`
	Steps     []stepView               `json:"steps"`
}

func (s *Server) sessionView(sess *session.Session, r *http.Request) sessionView {
	tr := translator(r)
	view := sessionView{StepIndex: sess.StepIndex, Draft: sess.Draft}
	for _, step := range models.Steps {
		result := validation.ValidateStep(step.Index, sess.Draft, tr)
		view.Steps = append(view.Steps, stepView{
			Index:  step.Index,
			Title:  step.Title,
			Valid:  result.Valid,
			Errors: result.Errors,
		})
	}
	return view
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// settle flushes any debounced write so reads observe the latest edits.
func (s *Server) settle(sessionID string) {
	s.debouncer.Flush(sessionID)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	s.settle(id)

	sess, err := s.store.Load(r.Context(), id)
	if err != nil {
		writeStandardError(w, asStandard(err))
		return
	}
	writeJSON(w, http.StatusOK, s.sessionView(sess, r))
}

// draftPatchResponse reports the state after a batch of field edits.
type draftPatchResponse struct {
	StepIndex  int                      `json:"stepIndex"`
	Draft      *models.ApplicationDraft `json:"draft"`
	Resolved   map[string]string        `json:"resolved,omitempty"`
	Validation *validation.Result       `json:"validation"`
}

var locationFields = map[string]bool{
	models.FieldCity:    true,
	models.FieldState:   true,
	models.FieldCountry: true,
}

func (s *Server) handlePatchDraft(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	tr := translator(r)

	var edits map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&edits); err != nil {
		writeStandardError(w, errors.NewInvalidRequestError("body must be a JSON object of field edits"))
		return
	}
	if len(edits) == 0 {
		writeStandardError(w, errors.NewInvalidRequestError("no field edits supplied"))
		return
	}
	for field := range edits {
		if !models.KnownField(field) {
			writeStandardError(w, errors.NewInvalidRequestError("unknown field: "+field))
			return
		}
	}

	s.settle(id)
	sess, err := s.store.Load(r.Context(), id)
	if err != nil {
		writeStandardError(w, asStandard(err))
		return
	}

	resolved := map[string]string{}
	applied := map[string]interface{}{}
	applier := s.applier(id)
	for field, raw := range edits {
		str, isString := raw.(string)
		if locationFields[field] && isString {
			patch, processed := applier.Apply(
				geo.Change{Field: field, Value: str},
				geo.Location{City: sess.Draft.City, State: sess.Draft.State, Country: sess.Draft.Country},
			)
			sess.Draft.SetField(field, str)
			applied[field] = str
			if processed {
				for patchedField, value := range patch {
					sess.Draft.SetField(patchedField, value)
					resolved[patchedField] = value
					applied[patchedField] = value
				}
			}
			continue
		}

		if !sess.Draft.SetField(field, raw) {
			writeStandardError(w, errors.NewInvalidRequestError("invalid value for field: "+field))
			return
		}
		applied[field] = raw
	}

	// Field edits are write-heavy; coalesce the persistence. The flush
	// replays only the settled field values through Update so a navigation
	// call landing inside the window is never clobbered by this stale copy.
	s.queueEdits(id, applied)
	s.debouncer.Schedule(id, func() {
		pending := s.takeEdits(id)
		if len(pending) == 0 {
			return
		}
		_, err := s.store.Update(context.Background(), id, func(cur *session.Session) error {
			for field, value := range pending {
				cur.Draft.SetField(field, value)
			}
			return nil
		})
		if err != nil {
			s.log.WithError(err).Error("Debounced session save failed", map[string]interface{}{
				"session_id": id,
			})
		}
	})

	writeJSON(w, http.StatusOK, draftPatchResponse{
		StepIndex:  sess.StepIndex,
		Draft:      sess.Draft,
		Resolved:   resolved,
		Validation: validation.ValidateStep(sess.StepIndex, sess.Draft, tr),
	})
}

// navigationResponse is shared by advance, retreat, submit, and reset.
type navigationResponse struct {
	StepIndex  int                      `json:"stepIndex"`
	Draft      *models.ApplicationDraft `json:"draft"`
	Validation *validation.Result       `json:"validation,omitempty"`
	Receipt    *models.Receipt          `json:"receipt,omitempty"`
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	s.settle(id)

	outcome, stdErr := s.controller.Advance(r.Context(), id, translator(r))
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}
	if outcome.Receipt != nil {
		s.dropApplier(id)
	}
	writeJSON(w, http.StatusOK, navigationResponse{
		StepIndex:  outcome.StepIndex,
		Draft:      outcome.Session.Draft,
		Validation: outcome.Validation,
		Receipt:    outcome.Receipt,
	})
}

func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	s.settle(id)

	outcome, stdErr := s.controller.Retreat(r.Context(), id, translator(r))
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}
	writeJSON(w, http.StatusOK, navigationResponse{
		StepIndex: outcome.StepIndex,
		Draft:     outcome.Session.Draft,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	s.debouncer.Cancel(id)
	s.takeEdits(id)
	s.dropApplier(id)

	outcome, stdErr := s.controller.ResetAll(r.Context(), id)
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}
	writeJSON(w, http.StatusOK, navigationResponse{
		StepIndex: outcome.StepIndex,
		Draft:     outcome.Session.Draft,
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	s.settle(id)

	outcome, stdErr := s.controller.Submit(r.Context(), id, translator(r))
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}
	if outcome.Receipt != nil {
		s.dropApplier(id)
	}
	writeJSON(w, http.StatusOK, navigationResponse{
		StepIndex:  outcome.StepIndex,
		Draft:      outcome.Session.Draft,
		Validation: outcome.Validation,
		Receipt:    outcome.Receipt,
	})
}

type suggestionRequest struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

func decodeSuggestionRequest(r *http.Request) (suggestionRequest, *errors.StandardError) {
	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.NewInvalidRequestError("invalid request body")
	}
	if req.Field == "" {
		return req, errors.NewInvalidRequestError("field is required")
	}
	return req, nil
}

func (s *Server) handleSuggestionRequest(w http.ResponseWriter, r *http.Request) {
	req, stdErr := decodeSuggestionRequest(r)
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}

	sugg, stdErr := s.suggestions.Request(r.Context(), sessionID(r), req.Field, req.Text, translator(r))
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestion": sugg})
}

func (s *Server) handleSuggestionRewrite(w http.ResponseWriter, r *http.Request) {
	req, stdErr := decodeSuggestionRequest(r)
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}

	sugg, stdErr := s.suggestions.Rewrite(r.Context(), sessionID(r), req.Field, translator(r))
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestion": sugg})
}

func (s *Server) handleSuggestionAccept(w http.ResponseWriter, r *http.Request) {
	req, stdErr := decodeSuggestionRequest(r)
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}

	id := sessionID(r)
	s.settle(id)
	sess, stdErr := s.suggestions.Accept(r.Context(), id, req.Field)
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionView(sess, r))
}

func (s *Server) handleSuggestionCancel(w http.ResponseWriter, r *http.Request) {
	req, stdErr := decodeSuggestionRequest(r)
	if stdErr != nil {
		writeStandardError(w, stdErr)
		return
	}

	s.suggestions.Cancel(sessionID(r), req.Field)
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func asStandard(err error) *errors.StandardError {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return stdErr
	}
	return errors.NewSessionLoadFailedError(err)
}
