package espelho

import "cbmadmin/normalizer"

// ColumnDef is one fixed column of the espelho taxonomy: a (group,
// subgroup) pair of the nature catalog plus the abbreviation used as the
// report header.
type ColumnDef struct {
	Grupo      string `json:"grupo"`
	Subgrupo   string `json:"subgrupo"`
	Abreviacao string `json:"abreviacao"`
}

// Key is the counts-map key for the column: the abbreviation when present,
// otherwise a synthetic group|subgroup key.
func (c ColumnDef) Key() string {
	if c.Abreviacao != "" {
		return normalizer.Display(c.Abreviacao)
	}
	return normalizer.Display(c.Grupo) + "|" + normalizer.Display(c.Subgrupo)
}

// DefaultColumns is the curated reporting taxonomy. It is passed into the
// aggregator explicitly so reports and tests can swap it.
func DefaultColumns() []ColumnDef {
	return []ColumnDef{
		{Grupo: "Incêndio", Subgrupo: "Edificação", Abreviacao: "INC. EDIF"},
		{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"},
		{Grupo: "Incêndio", Subgrupo: "Outros", Abreviacao: "INC. OUTROS"},
		{Grupo: "Salvamento", Subgrupo: "Busca de Pessoas", Abreviacao: "BUSCA"},
		{Grupo: "Salvamento", Subgrupo: "Salvamento Aquático", Abreviacao: "SALV. AQUAT"},
		{Grupo: "Salvamento", Subgrupo: "Captura de Animais", Abreviacao: "ANIMAIS"},
		{Grupo: "Atendimento Pré-Hospitalar", Subgrupo: "Acidente de Trânsito", Abreviacao: "APH TRANSITO"},
		{Grupo: "Atendimento Pré-Hospitalar", Subgrupo: "Clínico", Abreviacao: "APH CLINICO"},
		{Grupo: "Produtos Perigosos", Subgrupo: "Vazamento", Abreviacao: "PROD. PERIG"},
		{Grupo: "Ações Preventivas", Subgrupo: "Eventos", Abreviacao: "PREVENTIVA"},
		{Grupo: "Defesa Civil", Subgrupo: "Vistoria", Abreviacao: "DEF. CIVIL"},
		{Grupo: "Outros", Subgrupo: "Diversos", Abreviacao: "DIVERSOS"},
	}
}
