package api

import (
	"errors"
	"net/http"

	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/clients"
	"github.com/go-chi/chi/v5"
)

func (s *ClientServer) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Client record server is running!"))
}

// handleCreateClient stores the request body under its uuid.
func (s *ClientServer) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.decodeBody(w, r)
	if !ok {
		return
	}
	id, err := clients.ValidateNew(rec)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Create(r.Context(), id, rec); err != nil {
		s.storeFailed(w, "create", id, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Client created"})
}

func (s *ClientServer) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeFailed(w, "get", id, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleUpdateClient merges the body's top-level fields into the record.
func (s *ClientServer) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	fields, ok := s.decodeBody(w, r)
	if !ok {
		return
	}
	if len(fields) == 0 {
		jsonError(w, "no fields to update", http.StatusBadRequest)
		return
	}
	if err := clients.ValidateFields(fields); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Update(r.Context(), id, fields); err != nil {
		s.storeFailed(w, "update", id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client updated"})
}

func (s *ClientServer) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.storeFailed(w, "delete", id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted"})
}

func (s *ClientServer) handleListClients(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.storeFailed(w, "list", "", err)
		return
	}
	if recs == nil {
		recs = []clients.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *ClientServer) handleClientSummary(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.storeFailed(w, "summary", "", err)
		return
	}
	writeJSON(w, http.StatusOK, clients.Summarize(recs))
}

func (s *ClientServer) decodeBody(w http.ResponseWriter, r *http.Request) (clients.Record, bool) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	rec, err := clients.DecodeRecord(body)
	if err != nil {
		code := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		jsonError(w, err.Error(), code)
		return nil, false
	}
	return rec, true
}

func (s *ClientServer) storeFailed(w http.ResponseWriter, op, id string, err error) {
	if errors.Is(err, clients.ErrNotFound) {
		jsonError(w, "Client not found", http.StatusNotFound)
		return
	}
	s.log.Error("client store failed", "op", op, "uuid", id, "error", err)
	jsonError(w, err.Error(), http.StatusInternalServerError)
}
