package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/logging"
	"github.com/balkashynov/tinytodo/internal/metrics"
	"github.com/balkashynov/tinytodo/internal/parser"
)

// ErrForbidden is returned when the gate rejects a request.
var ErrForbidden = errors.New("access denied")

var errBadBody = errors.New("invalid request body")

// checkWriteAccess admits authorized users only.
func (s *Server) checkWriteAccess(r *http.Request) error {
	if s.gate.LoggedIn(r) {
		return nil
	}
	return ErrForbidden
}

// checkReadAccess admits authorized users, and anyone for a published list.
func (s *Server) checkReadAccess(r *http.Request, id int64) error {
	if s.gate.LoggedIn(r) {
		return nil
	}
	v, err := s.manager.Get(r.Context(), id)
	if errors.Is(err, lists.ErrNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if v.Published == 0 {
		return ErrForbidden
	}
	return nil
}

// run executes op, records it and writes the response or the error.
func (s *Server) run(w http.ResponseWriter, op string, status int, fn func() (lists.Response, error)) {
	start := time.Now()
	resp, err := fn()

	result := metrics.ResultSuccess
	switch {
	case errors.Is(err, ErrForbidden):
		result = metrics.ResultForbidden
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, errBadBody):
		result = metrics.ResultInvalid
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		result = metrics.ResultError
		s.logger.Error("list operation failed", logging.Action(op), logging.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		s.recorder.AddAffected(op, resp.Total)
		writeJSON(w, status, resp)
	}
	s.recorder.ObserveOperation(op, result, time.Since(start))
}

func parseBody(r *http.Request) (parser.Body, error) {
	body, err := parser.ParseBody(r.Body)
	if err != nil {
		return parser.Body{}, errBadBody
	}
	return body, nil
}

func listID(r *http.Request) int64 {
	return int64(parser.IntString(chi.URLParam(r, "id")))
}

// handleAll returns every list visible to the caller.
func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	s.run(w, "all", http.StatusOK, func() (lists.Response, error) {
		return s.manager.All(r.Context(), s.gate.LoggedIn(r))
	})
}

// handleCreate creates a list.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.run(w, "create", http.StatusCreated, func() (lists.Response, error) {
		if err := s.checkWriteAccess(r); err != nil {
			return lists.Response{}, err
		}
		body, err := parseBody(r)
		if err != nil {
			return lists.Response{}, err
		}
		return s.manager.Create(r.Context(), body.String("name"))
	})
}

// handleBulk runs actions that apply to all lists. Only "order" exists.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	op := "bulk"
	body, bodyErr := parseBody(r)
	if bodyErr == nil {
		op = body.String("action")
	}

	s.run(w, opName(op), http.StatusOK, func() (lists.Response, error) {
		if err := s.checkWriteAccess(r); err != nil {
			return lists.Response{}, err
		}
		if bodyErr != nil {
			return lists.Response{}, bodyErr
		}
		switch op {
		case "order":
			return s.manager.Reorder(r.Context(), body.Order("order"))
		default:
			return lists.Response{}, nil
		}
	})
}

// handleGet returns a single list.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := listID(r)
	start := time.Now()

	err := s.checkReadAccess(r, id)
	var v *lists.View
	if err == nil {
		v, err = s.manager.Get(r.Context(), id)
	}

	result := metrics.ResultSuccess
	switch {
	case errors.Is(err, ErrForbidden):
		result = metrics.ResultForbidden
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, lists.ErrNotFound):
		writeJSON(w, http.StatusNotFound, nil)
	case err != nil:
		result = metrics.ResultError
		s.logger.Error("list operation failed", logging.Action("get"), logging.ListID(id), logging.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		writeJSON(w, http.StatusOK, v)
	}
	s.recorder.ObserveOperation("get", result, time.Since(start))
}

// handleDelete deletes a list.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.run(w, "delete", http.StatusOK, func() (lists.Response, error) {
		if err := s.checkWriteAccess(r); err != nil {
			return lists.Response{}, err
		}
		return s.manager.Delete(r.Context(), listID(r))
	})
}

// handleAction edits a single list according to the "action" field.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	id := listID(r)
	op := "action"
	body, bodyErr := parseBody(r)
	if bodyErr == nil {
		op = body.String("action")
	}

	s.run(w, opName(op), http.StatusOK, func() (lists.Response, error) {
		if err := s.checkWriteAccess(r); err != nil {
			return lists.Response{}, err
		}
		if bodyErr != nil {
			return lists.Response{}, bodyErr
		}
		return s.dispatch(r.Context(), id, op, body)
	})
}

func (s *Server) dispatch(ctx context.Context, id int64, action string, body parser.Body) (lists.Response, error) {
	switch action {
	case "rename":
		return s.manager.Rename(ctx, id, body.String("name"))
	case "sort":
		return s.manager.SetSort(ctx, id, body.Int("sort"))
	case "publish":
		return s.manager.SetPublished(ctx, id, body.Int("publish") != 0)
	case "showNotes":
		return s.manager.SetShowNotes(ctx, id, body.Int("shownotes") != 0)
	case "showCompleted":
		return s.manager.SetShowCompleted(ctx, id, body.Int("showcompleted") != 0)
	case "hide":
		return s.manager.SetHidden(ctx, id, body.Int("hide") != 0)
	case "clearCompleted":
		return s.manager.ClearCompleted(ctx, id)
	default:
		return lists.Response{}, nil
	}
}

// opName keeps metric label cardinality bounded.
func opName(action string) string {
	switch action {
	case "order", "rename", "sort", "publish", "showNotes", "showCompleted", "hide", "clearCompleted":
		return action
	default:
		return "unknown"
	}
}
