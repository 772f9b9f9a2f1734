package espelho

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEndToEnd(t *testing.T) {
	cols := []ColumnDef{{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"}}
	incidents := []Incident{
		{Grupo: "incendio", Nome: "vegetação", CRBM: "1º CRBM", Cidade: "Goiânia"},
	}
	bases := []BaseLocation{{CRBM: "1º CRBM", Cidade: "Goiânia"}}

	m, err := Aggregate(cols, incidents, bases)
	require.NoError(t, err)

	require.Len(t, m.Groups, 1)
	g := m.Groups[0]
	assert.Equal(t, "1º CRBM", g.CRBM)
	require.Len(t, g.Rows, 1)
	row := g.Rows[0]
	assert.Equal(t, "Goiânia", row.Cidade)
	assert.Equal(t, 1, row.Counts["INC. VEG"])
	assert.Equal(t, 1, row.Total)
	assert.Equal(t, 1, g.Subtotals["INC. VEG"])
	assert.Equal(t, 1, g.Total)
	assert.Equal(t, 1, m.GrandTotal)
	assert.Zero(t, m.Dropped)
}

func TestAggregateDropsUnmatchableRecords(t *testing.T) {
	cols := []ColumnDef{{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"}}
	incidents := []Incident{
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "1º CRBM", Cidade: "Goiânia"},
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "1º CRBM", Cidade: "Goiânia"},
		{Grupo: "Categoria Fantasma", Nome: "Inexistente", CRBM: "1º CRBM", Cidade: "Goiânia"},
	}
	bases := []BaseLocation{{CRBM: "1º CRBM", Cidade: "Goiânia"}}

	m, err := Aggregate(cols, incidents, bases)
	require.NoError(t, err)

	// The unmatchable record is excluded from every total, and counted.
	assert.Equal(t, 1, m.Dropped)
	assert.Equal(t, 2, m.GrandTotal)
	assert.Equal(t, 2, m.Groups[0].Rows[0].Counts["INC. VEG"])
}

func TestAggregateSeedsEveryBaseLocation(t *testing.T) {
	cols := []ColumnDef{{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"}}
	bases := []BaseLocation{
		{CRBM: "1º CRBM", Cidade: "Goiânia"},
		{CRBM: "1º CRBM", Cidade: "Trindade"},
		{CRBM: "2º CRBM", Cidade: "Rio Verde"},
	}

	m, err := Aggregate(cols, nil, bases)
	require.NoError(t, err)

	require.Len(t, m.Groups, 2)
	assert.Equal(t, "1º CRBM", m.Groups[0].CRBM)
	require.Len(t, m.Groups[0].Rows, 2)
	for _, g := range m.Groups {
		for _, row := range g.Rows {
			assert.Zero(t, row.Total)
			assert.Equal(t, 0, row.Counts["INC. VEG"])
		}
	}
	assert.Zero(t, m.GrandTotal)
}

func TestAggregateSortsWithPortugueseCollation(t *testing.T) {
	cols := []ColumnDef{{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"}}
	bases := []BaseLocation{
		{CRBM: "1º CRBM", Cidade: "Goiânia"},
		{CRBM: "1º CRBM", Cidade: "Águas Lindas"},
		{CRBM: "1º CRBM", Cidade: "Anápolis"},
	}

	m, err := Aggregate(cols, nil, bases)
	require.NoError(t, err)

	// A byte-wise sort would push "Águas Lindas" past "Goiânia".
	require.Len(t, m.Groups[0].Rows, 3)
	assert.Equal(t, "Águas Lindas", m.Groups[0].Rows[0].Cidade)
	assert.Equal(t, "Anápolis", m.Groups[0].Rows[1].Cidade)
	assert.Equal(t, "Goiânia", m.Groups[0].Rows[2].Cidade)
}

func TestBindColumnsFallbackChain(t *testing.T) {
	cols := []ColumnDef{
		{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"},
		{Grupo: "Salvamento", Subgrupo: "Busca de Pessoas", Abreviacao: "BUSCA"},
		{Grupo: "Produtos Perigosos", Subgrupo: "Vazamento", Abreviacao: "PROD. PERIG"},
	}
	incidents := []Incident{
		// Exact group+subgroup match for the first column.
		{NaturezaID: "10", Grupo: "INCENDIO", Nome: "vegetacao"},
		// Subgroup-only match for the second (group text differs).
		{NaturezaID: "20", Grupo: "Resgate", Nome: "Busca de Pessoas"},
		// Abbreviation-only match for the third.
		{NaturezaID: "30", Grupo: "Químicos", Nome: "Derramamento", Abreviacao: "prod. perig"},
	}

	b, err := BindColumns(cols, incidents)
	require.NoError(t, err)
	assert.Equal(t, "10", b.Key(0))
	assert.Equal(t, "20", b.Key(1))
	assert.Equal(t, "30", b.Key(2))

	// A record carrying only the bound identifier resolves directly.
	idx, ok := b.Resolve(Incident{NaturezaID: "20"})
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestBindColumnsSyntheticKeyWhenUnmatched(t *testing.T) {
	cols := []ColumnDef{{Grupo: "Defesa Civil", Subgrupo: "Vistoria", Abreviacao: "DEF. CIVIL"}}

	b, err := BindColumns(cols, nil)
	require.NoError(t, err)
	assert.Equal(t, "defesa civil|vistoria", b.Key(0))
}

func TestBindColumnsFirstColumnWins(t *testing.T) {
	// Two columns share the subgroup text under different groups; the
	// identifier goes to the first and leaves the candidate pool.
	cols := []ColumnDef{
		{Grupo: "Incêndio", Subgrupo: "Outros", Abreviacao: "INC. OUTROS"},
		{Grupo: "Salvamento", Subgrupo: "Outros", Abreviacao: "SALV. OUTROS"},
	}
	incidents := []Incident{
		{NaturezaID: "7", Grupo: "Diversos", Nome: "Outros"},
	}

	b, err := BindColumns(cols, incidents)
	require.NoError(t, err)
	assert.Equal(t, "7", b.Key(0))
	assert.Equal(t, "salvamento|outros", b.Key(1))

	// Record folding takes the first column too.
	idx, ok := b.Resolve(Incident{NaturezaID: "7"})
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestBindColumnsDeterministic(t *testing.T) {
	cols := DefaultColumns()
	incidents := []Incident{
		{NaturezaID: "1", Grupo: "Incêndio", Nome: "Edificação"},
		{NaturezaID: "2", Grupo: "Incêndio", Nome: "Vegetação"},
		{NaturezaID: "3", Grupo: "Salvamento", Nome: "Busca de Pessoas"},
		{NaturezaID: "4", Grupo: "Qualquer", Nome: "Clínico"},
		{NaturezaID: "5", Nome: "Sem Grupo", Abreviacao: "DIVERSOS"},
	}

	first, err := BindColumns(cols, incidents)
	require.NoError(t, err)
	for run := 0; run < 10; run++ {
		again, err := BindColumns(cols, incidents)
		require.NoError(t, err)
		for i := range cols {
			assert.Equal(t, first.Key(i), again.Key(i), "column %d", i)
		}
	}
}

func TestBindColumnsDuplicateTaxonomyFails(t *testing.T) {
	cols := []ColumnDef{
		{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"},
		{Grupo: "INCENDIO", Subgrupo: "vegetacao", Abreviacao: "INC. VEG 2"},
	}

	_, err := BindColumns(cols, nil)
	require.ErrorIs(t, err, ErrDuplicateBinding)

	_, err = Aggregate(cols, nil, nil)
	require.ErrorIs(t, err, ErrDuplicateBinding)
}

func TestBindColumnsDuplicateHeaderFails(t *testing.T) {
	// Distinct taxonomy entries whose shared abbreviation would merge two
	// columns into one counts cell.
	cols := []ColumnDef{
		{Grupo: "Incêndio", Subgrupo: "Edificação", Abreviacao: "INC"},
		{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC"},
	}
	incidents := []Incident{
		{NaturezaID: "1", Grupo: "Incêndio", Nome: "Edificação"},
		{NaturezaID: "2", Grupo: "Incêndio", Nome: "Vegetação"},
	}

	// Both columns bind to distinct identifiers, so only the header check
	// can catch the collision.
	_, err := BindColumns(cols, incidents)
	require.ErrorIs(t, err, ErrDuplicateBinding)

	_, err = Aggregate(cols, incidents, nil)
	require.ErrorIs(t, err, ErrDuplicateBinding)
}

func TestAggregateVitimasCoercion(t *testing.T) {
	cols := []ColumnDef{{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"}}
	incidents := []Incident{
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "1º CRBM", Cidade: "Goiânia", Vitimas: "3"},
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "1º CRBM", Cidade: "Goiânia", Vitimas: ""},
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "1º CRBM", Cidade: "Goiânia", Vitimas: "abc"},
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "1º CRBM", Cidade: "Goiânia", Vitimas: "-2"},
	}

	m, err := Aggregate(cols, incidents, nil)
	require.NoError(t, err)
	require.Len(t, m.Groups, 1)
	require.Len(t, m.Groups[0].Rows, 1)
	assert.Equal(t, 3, m.Groups[0].Rows[0].Vitimas)
	assert.Equal(t, 4, m.Groups[0].Rows[0].Total)
}

func TestFilterCRBMIsPure(t *testing.T) {
	cols := []ColumnDef{{Grupo: "Incêndio", Subgrupo: "Vegetação", Abreviacao: "INC. VEG"}}
	incidents := []Incident{
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "1º CRBM", Cidade: "Goiânia"},
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "2º CRBM", Cidade: "Rio Verde"},
		{Grupo: "Incêndio", Nome: "Vegetação", CRBM: "2º CRBM", Cidade: "Rio Verde"},
	}

	m, err := Aggregate(cols, incidents, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, m.GrandTotal)

	filtered := FilterCRBM(m, "2º crbm")
	require.Len(t, filtered.Groups, 1)
	assert.Equal(t, "2º CRBM", filtered.Groups[0].CRBM)
	assert.Equal(t, 2, filtered.GrandTotal)

	// The source matrix is untouched.
	assert.Len(t, m.Groups, 2)
	assert.Equal(t, 3, m.GrandTotal)

	empty := FilterCRBM(m, "3º CRBM")
	assert.Empty(t, empty.Groups)
	assert.Zero(t, empty.GrandTotal)
}

func TestDefaultColumnsTaxonomyIsValid(t *testing.T) {
	_, err := BindColumns(DefaultColumns(), nil)
	assert.NoError(t, err)
}
