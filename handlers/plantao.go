package handlers

import (
	"net/http"

	"cbmadmin/database"
	"cbmadmin/models"
	"cbmadmin/roster"
)

type PlantaoHandler struct {
	store *roster.Store
}

func NewPlantaoHandler(store *roster.Store) *PlantaoHandler {
	return &PlantaoHandler{store: store}
}

// List returns the shifts of one day (?data=YYYY-MM-DD) with vehicle, unit
// and crew preloaded.
func (h *PlantaoHandler) List(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("data"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "parametro data invalido (YYYY-MM-DD)"})
		return
	}
	var plantoes []models.Plantao
	database.GetDB().
		Preload("Viatura").
		Preload("OBM").
		Preload("Guarnicao").
		Preload("Guarnicao.Militar").
		Where("data = ?", roster.DateOnly(day)).
		Order("viatura_id asc").
		Find(&plantoes)
	respondJSON(w, http.StatusOK, plantoes)
}

type plantaoRequest struct {
	Data        string  `json:"data"`
	ViaturaID   uint    `json:"viatura_id"`
	OBMID       uint    `json:"obm_id"`
	Observacoes string  `json:"observacoes"`
	HoraInicio  *string `json:"hora_inicio"`
	HoraFim     *string `json:"hora_fim"`
}

func (h *PlantaoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req plantaoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	day, err := parseDate(req.Data)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "data invalida (YYYY-MM-DD)"})
		return
	}
	p := models.Plantao{
		Data:        day,
		ViaturaID:   req.ViaturaID,
		OBMID:       req.OBMID,
		Observacoes: req.Observacoes,
		HoraInicio:  req.HoraInicio,
		HoraFim:     req.HoraFim,
	}
	if err := h.store.CreateShift(&p); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *PlantaoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	var req plantaoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	day, err := parseDate(req.Data)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "data invalida (YYYY-MM-DD)"})
		return
	}
	p := models.Plantao{
		ID:          id,
		Data:        day,
		ViaturaID:   req.ViaturaID,
		OBMID:       req.OBMID,
		Observacoes: req.Observacoes,
		HoraInicio:  req.HoraInicio,
		HoraFim:     req.HoraFim,
	}
	if err := h.store.UpdateShift(&p); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PlantaoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	if err := h.store.DeleteShift(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PlantaoHandler) AssignGuarnicao(w http.ResponseWriter, r *http.Request) {
	plantaoID, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	var req struct {
		MilitarID uint   `json:"militar_id"`
		Funcao    string `json:"funcao"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	g, err := h.store.AssignCrew(plantaoID, req.MilitarID, req.Funcao)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

func (h *PlantaoHandler) RemoveGuarnicao(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	if err := h.store.RemoveCrew(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
