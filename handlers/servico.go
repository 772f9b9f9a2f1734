package handlers

import (
	"net/http"
	"time"

	"cbmadmin/database"
	"cbmadmin/models"
	"cbmadmin/roster"
)

type ServicoHandler struct {
	store *roster.Store
}

func NewServicoHandler(store *roster.Store) *ServicoHandler {
	return &ServicoHandler{store: store}
}

// List returns the service-of-the-day assignments whose window covers the
// requested day (?data=YYYY-MM-DD). The window is half-open: inicio <= d < fim.
func (h *ServicoHandler) List(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("data"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "parametro data invalido (YYYY-MM-DD)"})
		return
	}
	var servicos []models.ServicoDia
	database.GetDB().
		Where("data_inicio <= ? AND data_fim > ?", day, day).
		Order("funcao asc").
		Find(&servicos)
	respondJSON(w, http.StatusOK, servicos)
}

func (h *ServicoHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pessoa     models.SubjectRef `json:"pessoa"`
		Funcao     string            `json:"funcao"`
		DataInicio time.Time         `json:"data_inicio"`
		DataFim    time.Time         `json:"data_fim"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	sd, err := h.store.UpsertServiceOfDay(req.Pessoa, req.Funcao, req.DataInicio, req.DataFim)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sd)
}

func (h *ServicoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	if err := h.store.DeleteServiceOfDay(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
