package handlers

import (
	"net/http"

	"cbmadmin/database"
	"cbmadmin/models"
	"cbmadmin/roster"
)

type CodecHandler struct {
	store *roster.Store
}

func NewCodecHandler(store *roster.Store) *CodecHandler {
	return &CodecHandler{store: store}
}

// List returns both turns of the rotation for one day, ordered by seat.
func (h *CodecHandler) List(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("data"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "parametro data invalido (YYYY-MM-DD)"})
		return
	}
	var slots []models.CodecSlot
	database.GetDB().
		Preload("Militar").
		Where("data = ?", roster.DateOnly(day)).
		Order("turno asc, ordinal asc").
		Find(&slots)
	respondJSON(w, http.StatusOK, slots)
}

func (h *CodecHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data      string       `json:"data"`
		Turno     models.Turno `json:"turno"`
		Ordinal   int          `json:"ordinal"`
		MilitarID uint         `json:"militar_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	day, err := parseDate(req.Data)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "data invalida (YYYY-MM-DD)"})
		return
	}
	slot, err := h.store.AssignCodecSlot(day, req.Turno, req.Ordinal, req.MilitarID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, slot)
}

func (h *CodecHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	if err := h.store.RemoveCodecSlot(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
