package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/controller"
	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
)

// fieldResponse answers a single field edit.
type fieldResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// submissionResponse answers the JSON submission API.
type submissionResponse struct {
	Outcome string            `json:"outcome"`
	Status  model.Status      `json:"status"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
	Content string            `json:"content,omitempty"`
	HTML    string            `json:"html,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.session(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPage(w, r, sess, http.StatusOK)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	sess, fresh, err := s.session(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if fresh || !validToken(sess, r.PostForm.Get(render.CSRFFieldName)) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	for _, field := range model.Fields() {
		values, ok := r.PostForm[string(field)]
		if !ok || len(values) == 0 {
			continue
		}
		if err := sess.Controller.Change(field, values[0]); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	status := http.StatusOK
	if _, err := s.submit(r, sess); err != nil {
		if !errors.Is(err, controller.ErrSubmissionInFlight) {
			s.fail(w, r, err)
			return
		}
		status = http.StatusConflict
	}
	s.renderPage(w, r, sess, status)
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	field, err := model.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}
	sess, ok := s.authorized(w, r)
	if !ok {
		return
	}

	if err := sess.Controller.Change(field, r.PostForm.Get("value")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	snap := sess.Controller.Snapshot()
	writeJSON(w, http.StatusOK, fieldResponse{
		Field: field.String(),
		Value: snap.Data.Get(field),
		Error: snap.Errors.Get(field),
	})
}

func (s *Server) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authorized(w, r)
	if !ok {
		return
	}

	var body map[string]string
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err := decoder.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	for key, value := range body {
		field, err := model.ParseField(key)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := sess.Controller.Change(field, value); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	outcome, err := s.submit(r, sess)
	if errors.Is(err, controller.ErrSubmissionInFlight) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: render.Translate(s.deps.Catalog, sess.Controller.Locale(), "submit.busy", err.Error())})
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	snap := sess.Controller.Snapshot()
	resp := submissionResponse{
		Outcome: string(outcome),
		Status:  snap.Status,
		Errors:  render.MapFormErrors(snap.Errors).Fields,
	}
	status := http.StatusOK
	switch outcome {
	case controller.OutcomeInvalid:
		status = http.StatusUnprocessableEntity
	case controller.OutcomeFailed:
		status = http.StatusBadGateway
		resp.Error = snap.State.Error
	default:
		resp.Content = snap.State.Payload
		html, err := s.deps.Renderer.ResponseHTML(snap)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp.HTML = html
	}
	writeJSON(w, status, resp)
}

// submit runs the controller submission detached from the request so a
// closed tab does not cancel the outbound call; the answer is still shown
// on the next page load.
func (s *Server) submit(r *http.Request, sess *Session) (controller.Outcome, error) {
	ctx := logging.ContextWithFields(context.WithoutCancel(r.Context()), map[string]any{"session": sess.ID})
	return sess.Controller.Submit(ctx)
}

// session returns the visitor session, creating one when the cookie is
// missing or stale. fresh reports whether a session was created.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool, error) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.store.Get(cookie.Value); ok {
			return sess, false, nil
		}
	}

	locale := s.deps.Catalog.ResolveLocale(render.ParseAcceptLanguage(r.Header.Get("Accept-Language"))...)
	sess, err := s.store.Create(locale)
	if err != nil {
		return nil, false, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("session.created", "session", sess.ID, "locale", locale)
	return sess, true, nil
}

// authorized resolves the session of a script driven request and checks its
// token, from the header or the _csrf form value.
func (s *Server) authorized(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "session required"})
		return nil, false
	}
	sess, ok := s.store.Get(cookie.Value)
	if !ok {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "session expired"})
		return nil, false
	}
	token := r.Header.Get(CSRFHeader)
	if token == "" && r.PostForm != nil {
		token = r.PostForm.Get(render.CSRFFieldName)
	}
	if !validToken(sess, token) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "invalid token"})
		return nil, false
	}
	return sess, true
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, sess *Session, status int) {
	snap := sess.Controller.Snapshot()
	out, err := s.deps.Renderer.Render(r.Context(), vanilla.PageData{
		Snapshot:    snap,
		Hidden:      render.MergeHiddenFields(nil, render.CSRFToken(sess.CSRF), render.LocaleField(snap.Locale)),
		Action:      "/",
		FieldAction: "/fields/",
		Theme:       s.deps.Theme,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", s.deps.Renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("http.write_failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context(), s.logger).Error("http.request_failed", "path", r.URL.Path, "error", err)
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/fields/") {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func validToken(sess *Session, token string) bool {
	if sess == nil || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sess.CSRF), []byte(token)) == 1
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
