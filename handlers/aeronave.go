package handlers

import (
	"net/http"

	"cbmadmin/database"
	"cbmadmin/models"
	"cbmadmin/roster"
)

type EscalaAeronaveHandler struct {
	store *roster.Store
}

func NewEscalaAeronaveHandler(store *roster.Store) *EscalaAeronaveHandler {
	return &EscalaAeronaveHandler{store: store}
}

func (h *EscalaAeronaveHandler) List(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("data"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "parametro data invalido (YYYY-MM-DD)"})
		return
	}
	var escalas []models.EscalaAeronave
	database.GetDB().
		Preload("Aeronave").
		Preload("Comandante").
		Preload("Copiloto").
		Preload("Tripulante").
		Where("data = ?", roster.DateOnly(day)).
		Order("aeronave_id asc").
		Find(&escalas)
	respondJSON(w, http.StatusOK, escalas)
}

type escalaAeronaveRequest struct {
	Data         string                `json:"data"`
	AeronaveID   uint                  `json:"aeronave_id"`
	ComandanteID *uint                 `json:"comandante_id"`
	CopilotoID   *uint                 `json:"copiloto_id"`
	TripulanteID *uint                 `json:"tripulante_id"`
	Status       models.StatusAeronave `json:"status"`
	EmServico    bool                  `json:"em_servico"`
}

func (req *escalaAeronaveRequest) toModel(id uint) (*models.EscalaAeronave, error) {
	day, err := parseDate(req.Data)
	if err != nil {
		return nil, err
	}
	return &models.EscalaAeronave{
		ID:           id,
		Data:         day,
		AeronaveID:   req.AeronaveID,
		ComandanteID: req.ComandanteID,
		CopilotoID:   req.CopilotoID,
		TripulanteID: req.TripulanteID,
		Status:       req.Status,
		EmServico:    req.EmServico,
	}, nil
}

func (h *EscalaAeronaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req escalaAeronaveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	e, err := req.toModel(0)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "data invalida (YYYY-MM-DD)"})
		return
	}
	if err := h.store.CreateAircraftShift(e); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (h *EscalaAeronaveHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	var req escalaAeronaveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	e, err := req.toModel(id)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "data invalida (YYYY-MM-DD)"})
		return
	}
	if err := h.store.UpdateAircraftShift(e); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *EscalaAeronaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	if err := h.store.DeleteAircraftShift(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
