package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cbmadmin/database"
	"cbmadmin/espelho"
	"cbmadmin/models"
	"cbmadmin/roster"
)

// EspelhoHandler serves the daily incident-mirror report. The column
// taxonomy is injected at construction and validated at startup, so a
// malformed taxonomy fails the deploy, not a request.
type EspelhoHandler struct {
	columns []espelho.ColumnDef
}

func NewEspelhoHandler(columns []espelho.ColumnDef) (*EspelhoHandler, error) {
	// Binding against an empty dataset exercises only the synthetic keys,
	// which is exactly where a duplicate taxonomy entry would collide.
	if _, err := espelho.BindColumns(columns, nil); err != nil {
		return nil, err
	}
	return &EspelhoHandler{columns: columns}, nil
}

// load pulls the day's incidents and the base locations with one query per
// entity type.
func (h *EspelhoHandler) load(day time.Time) ([]espelho.Incident, []espelho.BaseLocation, error) {
	var ocorrencias []models.Ocorrencia
	if err := database.GetDB().
		Preload("Natureza").
		Where("data = ?", roster.DateOnly(day)).
		Find(&ocorrencias).Error; err != nil {
		return nil, nil, err
	}

	incidents := make([]espelho.Incident, 0, len(ocorrencias))
	for _, o := range ocorrencias {
		inc := espelho.Incident{CRBM: o.CRBM, Cidade: o.Cidade}
		if o.NaturezaID != nil {
			inc.NaturezaID = strconv.FormatUint(uint64(*o.NaturezaID), 10)
		}
		if o.Natureza != nil {
			inc.Grupo = o.Natureza.Grupo
			inc.Nome = o.Natureza.Nome
			inc.Abreviacao = o.Natureza.Abreviacao
		}
		if o.Vitimas != nil {
			inc.Vitimas = strconv.Itoa(*o.Vitimas)
		}
		incidents = append(incidents, inc)
	}

	var obms []models.OBM
	if err := database.GetDB().Find(&obms).Error; err != nil {
		return nil, nil, err
	}
	seen := make(map[string]bool)
	bases := make([]espelho.BaseLocation, 0, len(obms))
	for _, o := range obms {
		key := o.CRBM + "\x00" + o.Cidade
		if seen[key] {
			continue
		}
		seen[key] = true
		bases = append(bases, espelho.BaseLocation{CRBM: o.CRBM, Cidade: o.Cidade})
	}
	return incidents, bases, nil
}

func (h *EspelhoHandler) matrix(day time.Time, crbm string) (*espelho.Matrix, error) {
	incidents, bases, err := h.load(day)
	if err != nil {
		return nil, err
	}
	m, err := espelho.Aggregate(h.columns, incidents, bases)
	if err != nil {
		return nil, err
	}
	if crbm != "" {
		m = espelho.FilterCRBM(m, crbm)
	}
	return m, nil
}

// Matrix returns the pivot for ?data=YYYY-MM-DD, optionally restricted to
// ?crbm=.
func (h *EspelhoHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("data"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "parametro data invalido (YYYY-MM-DD)"})
		return
	}
	m, err := h.matrix(day, r.URL.Query().Get("crbm"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// ExportCSV writes the same matrix as a flat CSV download.
func (h *EspelhoHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("data"))
	if err != nil {
		http.Error(w, "parametro data invalido (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	m, err := h.matrix(day, r.URL.Query().Get("crbm"))
	if err != nil {
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("espelho_%s.csv", r.URL.Query().Get("data"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"CRBM", "Cidade"}
	for _, c := range m.Columns {
		header = append(header, c.Key())
	}
	header = append(header, "Vitimas", "Total")
	writer.Write(header)

	for _, g := range m.Groups {
		for _, row := range g.Rows {
			record := []string{g.CRBM, row.Cidade}
			for _, c := range m.Columns {
				record = append(record, strconv.Itoa(row.Counts[c.Key()]))
			}
			record = append(record, strconv.Itoa(row.Vitimas), strconv.Itoa(row.Total))
			writer.Write(record)
		}
		subtotal := []string{g.CRBM, "SUBTOTAL"}
		for _, c := range m.Columns {
			subtotal = append(subtotal, strconv.Itoa(g.Subtotals[c.Key()]))
		}
		subtotal = append(subtotal, "", strconv.Itoa(g.Total))
		writer.Write(subtotal)
	}

	total := []string{"", "TOTAL GERAL"}
	for range m.Columns {
		total = append(total, "")
	}
	total = append(total, "", strconv.Itoa(m.GrandTotal))
	writer.Write(total)
}
