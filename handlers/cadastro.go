package handlers

import (
	"net/http"

	"cbmadmin/database"
	"cbmadmin/models"
	"cbmadmin/roster"
)

// CadastroHandler serves the registry tables: people, vehicles, units,
// aircraft, phone directory and the incident-nature catalog. Thin CRUD; the
// only non-trivial path is person deletion, which goes through the store so
// the assignment deletion policy applies.
type CadastroHandler struct {
	store *roster.Store
}

func NewCadastroHandler(store *roster.Store) *CadastroHandler {
	return &CadastroHandler{store: store}
}

func deletePolicy(r *http.Request) roster.DeletePolicy {
	if r.URL.Query().Get("policy") == string(roster.PolicyCascade) {
		return roster.PolicyCascade
	}
	return roster.PolicyOrphan
}

func (h *CadastroHandler) ListMilitares(w http.ResponseWriter, r *http.Request) {
	var militares []models.Militar
	database.GetDB().Preload("OBM").Order("nome asc").Find(&militares)
	respondJSON(w, http.StatusOK, militares)
}

func (h *CadastroHandler) CreateMilitar(w http.ResponseWriter, r *http.Request) {
	var m models.Militar
	if err := decodeJSON(r, &m); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if m.Nome == "" || m.Matricula == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "nome e matricula sao obrigatorios"})
		return
	}
	if err := database.GetDB().Create(&m).Error; err != nil {
		respondJSON(w, http.StatusConflict, map[string]string{"error": "matricula ja cadastrada"})
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

// DeleteMilitar removes a person. ?policy=cascade deletes their
// assignments; the default orphans them with a nulled reference.
func (h *CadastroHandler) DeleteMilitar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	if err := h.store.DeleteMilitar(id, deletePolicy(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CadastroHandler) ListCivis(w http.ResponseWriter, r *http.Request) {
	var civis []models.Civil
	database.GetDB().Order("nome asc").Find(&civis)
	respondJSON(w, http.StatusOK, civis)
}

func (h *CadastroHandler) CreateCivil(w http.ResponseWriter, r *http.Request) {
	var c models.Civil
	if err := decodeJSON(r, &c); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if c.Nome == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "nome obrigatorio"})
		return
	}
	if err := database.GetDB().Create(&c).Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar"})
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *CadastroHandler) DeleteCivil(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	if err := h.store.DeleteCivil(id, deletePolicy(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CadastroHandler) ListViaturas(w http.ResponseWriter, r *http.Request) {
	var viaturas []models.Viatura
	database.GetDB().Preload("OBM").Order("prefixo asc").Find(&viaturas)
	respondJSON(w, http.StatusOK, viaturas)
}

func (h *CadastroHandler) CreateViatura(w http.ResponseWriter, r *http.Request) {
	var v models.Viatura
	if err := decodeJSON(r, &v); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if v.Prefixo == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "prefixo obrigatorio"})
		return
	}
	if err := database.GetDB().Create(&v).Error; err != nil {
		respondJSON(w, http.StatusConflict, map[string]string{"error": "prefixo ja cadastrado"})
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

func (h *CadastroHandler) DeleteViatura(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	var v models.Viatura
	if err := database.GetDB().First(&v, id).Error; err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "viatura nao encontrada"})
		return
	}
	database.GetDB().Delete(&v)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CadastroHandler) ListOBMs(w http.ResponseWriter, r *http.Request) {
	var obms []models.OBM
	database.GetDB().Order("crbm asc, cidade asc, nome asc").Find(&obms)
	respondJSON(w, http.StatusOK, obms)
}

func (h *CadastroHandler) CreateOBM(w http.ResponseWriter, r *http.Request) {
	var o models.OBM
	if err := decodeJSON(r, &o); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if o.Nome == "" || o.CRBM == "" || o.Cidade == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "nome, crbm e cidade sao obrigatorios"})
		return
	}
	if err := database.GetDB().Create(&o).Error; err != nil {
		respondJSON(w, http.StatusConflict, map[string]string{"error": "obm ja cadastrada"})
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (h *CadastroHandler) ListAeronaves(w http.ResponseWriter, r *http.Request) {
	var aeronaves []models.Aeronave
	database.GetDB().Order("prefixo asc").Find(&aeronaves)
	respondJSON(w, http.StatusOK, aeronaves)
}

func (h *CadastroHandler) CreateAeronave(w http.ResponseWriter, r *http.Request) {
	var a models.Aeronave
	if err := decodeJSON(r, &a); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if a.Prefixo == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "prefixo obrigatorio"})
		return
	}
	if err := database.GetDB().Create(&a).Error; err != nil {
		respondJSON(w, http.StatusConflict, map[string]string{"error": "prefixo ja cadastrado"})
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (h *CadastroHandler) ListTelefones(w http.ResponseWriter, r *http.Request) {
	var telefones []models.Telefone
	database.GetDB().Preload("OBM").Order("nome asc").Find(&telefones)
	respondJSON(w, http.StatusOK, telefones)
}

func (h *CadastroHandler) CreateTelefone(w http.ResponseWriter, r *http.Request) {
	var t models.Telefone
	if err := decodeJSON(r, &t); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if t.Nome == "" || t.Numero == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "nome e numero sao obrigatorios"})
		return
	}
	if err := database.GetDB().Create(&t).Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar"})
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (h *CadastroHandler) ListNaturezas(w http.ResponseWriter, r *http.Request) {
	var naturezas []models.Natureza
	database.GetDB().Order("grupo asc, nome asc").Find(&naturezas)
	respondJSON(w, http.StatusOK, naturezas)
}

func (h *CadastroHandler) CreateNatureza(w http.ResponseWriter, r *http.Request) {
	var n models.Natureza
	if err := decodeJSON(r, &n); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if n.Grupo == "" || n.Nome == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "grupo e nome sao obrigatorios"})
		return
	}
	if err := database.GetDB().Create(&n).Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar"})
		return
	}
	respondJSON(w, http.StatusCreated, n)
}

func (h *CadastroHandler) ListOcorrencias(w http.ResponseWriter, r *http.Request) {
	query := database.GetDB().Preload("Natureza").Order("data desc").Limit(200)
	if dataStr := r.URL.Query().Get("data"); dataStr != "" {
		day, err := parseDate(dataStr)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "parametro data invalido (YYYY-MM-DD)"})
			return
		}
		query = query.Where("data = ?", roster.DateOnly(day))
	}
	var ocorrencias []models.Ocorrencia
	query.Find(&ocorrencias)
	respondJSON(w, http.StatusOK, ocorrencias)
}

func (h *CadastroHandler) CreateOcorrencia(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data       string `json:"data"`
		NaturezaID *uint  `json:"natureza_id"`
		CRBM       string `json:"crbm"`
		Cidade     string `json:"cidade"`
		Vitimas    *int   `json:"vitimas"`
		Descricao  string `json:"descricao"`
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
	if req.CRBM == "" || req.Cidade == "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "crbm e cidade sao obrigatorios"})
		return
	}
	o := models.Ocorrencia{
		Data:       roster.DateOnly(day),
		NaturezaID: req.NaturezaID,
		CRBM:       req.CRBM,
		Cidade:     req.Cidade,
		Vitimas:    req.Vitimas,
		Descricao:  req.Descricao,
	}
	if err := database.GetDB().Create(&o).Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar"})
		return
	}
	respondJSON(w, http.StatusCreated, o)
}
