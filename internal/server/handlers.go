package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/orchestrator"
	"github.com/goliatone/go-houseprice/pkg/render"
	"github.com/goliatone/go-houseprice/pkg/renderers/vanilla"
	"github.com/goliatone/go-houseprice/pkg/submit"
)

// session resolves the caller's widget, issuing a cookie for new sessions.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *orchestrator.Orchestrator {
	var id string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}
	sessionID, widget, created := s.sessions.Lookup(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return widget
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, s.session(w, r))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	widget := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	for _, field := range model.Fields() {
		values, ok := r.PostForm[field.String()]
		if !ok || len(values) == 0 {
			continue
		}
		if err := widget.SetField(field.String(), values[0]); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	outcome := widget.Submit(r.Context())
	if outcome.Phase == submit.PhaseFailed {
		s.logger.Debug("submission failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(outcome.Err),
		)
	}
	s.renderPage(w, r, widget)
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	widget := s.session(w, r)
	name := r.PathValue("name")
	if err := widget.SetField(name, r.FormValue("value")); err != nil {
		if errors.Is(err, model.ErrUnknownField) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, widget *orchestrator.Orchestrator) {
	out, err := widget.Render(r.Context(), orchestrator.Request{
		Renderer: vanilla.Name,
		Options: []render.ViewOption{
			render.WithAction("/"),
			render.WithFieldEndpoint(FieldsPrefix),
		},
	})
	if err != nil {
		s.logger.Error("render widget", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page, err := s.pages.RenderTemplate("templates/page", map[string]any{
		"title": render.DefaultTitle,
		"body":  string(out.Body),
	})
	if err != nil {
		s.logger.Error("render page", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}
