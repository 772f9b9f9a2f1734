package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cbmadmin/roster"

	"github.com/go-chi/chi/v5"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the domain error taxonomy onto HTTP: conflicts are 409
// with their kind passed through verbatim, dangling references 404,
// malformed input 422. Anything else is a 500.
func respondError(w http.ResponseWriter, err error) {
	var conflict *roster.ConflictError
	if errors.As(err, &conflict) {
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error":          "conflito",
			"kind":           conflict.Kind,
			"conflicting_id": conflict.ConflictingID,
		})
		return
	}
	var notFound *roster.NotFoundError
	if errors.As(err, &notFound) {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":  "nao encontrado",
			"entity": notFound.Entity,
			"id":     notFound.ID,
		})
		return
	}
	var validation *roster.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   "dados invalidos",
			"field":   validation.Field,
			"message": validation.Message,
		})
		return
	}
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "erro interno"})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
