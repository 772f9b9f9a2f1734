// Package espelho folds flat incident records into the mirrored pivot
// report: CRBM group, then city row, then the fixed category columns.
// The package is pure; callers load the rows and hand them in.
package espelho

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"cbmadmin/normalizer"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrDuplicateBinding means two taxonomy columns resolved to the same key.
// That is a configuration bug in the fixed column list, checked at startup,
// never a data condition.
var ErrDuplicateBinding = errors.New("espelho: coluna duplicada na taxonomia")

// Incident is one occurrence record as consumed by the aggregator. The
// NaturezaID is the catalog identifier when known ("" otherwise); grupo,
// nome and abreviacao are the free-text hints used by the fallback chain.
// Vitimas is the raw fatality count; anything unparseable counts as zero.
type Incident struct {
	NaturezaID string
	Grupo      string
	Nome       string
	Abreviacao string
	CRBM       string
	Cidade     string
	Vitimas    string
}

// BaseLocation is a CRBM×city pair that must appear in the matrix even with
// zero incidents.
type BaseLocation struct {
	CRBM   string
	Cidade string
}

type CityRow struct {
	Cidade  string         `json:"cidade"`
	Counts  map[string]int `json:"counts"`
	Vitimas int            `json:"vitimas"`
	Total   int            `json:"total"`
}

type Group struct {
	CRBM      string         `json:"crbm"`
	Rows      []CityRow      `json:"rows"`
	Subtotals map[string]int `json:"subtotals"`
	Total     int            `json:"total"`
}

// Matrix is the derived report. Regenerated per query, never mutated in
// place. Dropped counts the records whose category resolved to no column;
// they are excluded from every total here.
type Matrix struct {
	Columns    []ColumnDef `json:"columns"`
	Groups     []Group     `json:"groups"`
	GrandTotal int         `json:"grand_total"`
	Dropped    int         `json:"dropped"`
}

// matcher is one step of the fallback chain. Each step either resolves an
// incident to a column index or passes.
type matcher func(Incident) (int, bool)

// Binding is the per-dataset resolution of taxonomy columns to natureza
// identifiers, plus the ordered fallback chain used to fold records.
type Binding struct {
	cols  []ColumnDef
	keys  []string
	chain []matcher
}

// Key returns the bound key of column i: the captured natureza identifier,
// or the synthetic taxonomy key when nothing in the dataset matched.
func (b *Binding) Key(i int) string {
	return b.keys[i]
}

// BindColumns resolves each taxonomy column to a natureza identifier found
// in the dataset, trying exact group+subgroup first, then subgroup only,
// then abbreviation. Columns claim identifiers in definition order and a
// claimed identifier leaves the pool, so two columns never share one. A
// column with no match keeps a synthetic key and simply never receives
// data.
func BindColumns(cols []ColumnDef, incidents []Incident) (*Binding, error) {
	used := make(map[string]bool)
	keys := make([]string, len(cols))

	find := func(match func(Incident) bool) string {
		for _, inc := range incidents {
			if inc.NaturezaID == "" || used[inc.NaturezaID] {
				continue
			}
			if match(inc) {
				return inc.NaturezaID
			}
		}
		return ""
	}

	for i, col := range cols {
		grupo := normalizer.Normalize(col.Grupo)
		sub := normalizer.Normalize(col.Subgrupo)
		abrev := normalizer.Normalize(col.Abreviacao)

		id := find(func(inc Incident) bool {
			return normalizer.Normalize(inc.Grupo) == grupo && normalizer.Normalize(inc.Nome) == sub
		})
		if id == "" {
			id = find(func(inc Incident) bool {
				return normalizer.Normalize(inc.Nome) == sub
			})
		}
		if id == "" && abrev != "" {
			id = find(func(inc Incident) bool {
				return normalizer.Normalize(inc.Abreviacao) == abrev
			})
		}
		if id != "" {
			used[id] = true
			keys[i] = id
		} else {
			keys[i] = grupo + "|" + sub
		}
	}

	seen := make(map[string]int, len(keys))
	for i, k := range keys {
		if j, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: colunas %d e %d resolvem para %q", ErrDuplicateBinding, j, i, k)
		}
		seen[k] = i
	}

	// The counts maps are keyed by ColumnDef.Key, so two columns sharing an
	// abbreviation would silently merge into one cell even when their bound
	// identifiers differ.
	headers := make(map[string]int, len(cols))
	for i, c := range cols {
		if j, dup := headers[c.Key()]; dup {
			return nil, fmt.Errorf("%w: colunas %d e %d compartilham o cabecalho %q", ErrDuplicateBinding, j, i, c.Key())
		}
		headers[c.Key()] = i
	}

	b := &Binding{cols: cols, keys: keys}
	b.chain = b.buildChain(seen)
	return b, nil
}

// buildChain assembles the record-side fallback chain: direct identifier,
// then group+subgroup, then subgroup, then abbreviation. Maps are built
// from the columns in definition order with first-wins semantics, keeping
// the ambiguous-match behavior deterministic.
func (b *Binding) buildChain(byID map[string]int) []matcher {
	byGroupSub := make(map[string]int)
	bySub := make(map[string]int)
	byAbrev := make(map[string]int)
	for i, col := range b.cols {
		gs := normalizer.Normalize(col.Grupo) + "\x00" + normalizer.Normalize(col.Subgrupo)
		if _, ok := byGroupSub[gs]; !ok {
			byGroupSub[gs] = i
		}
		sub := normalizer.Normalize(col.Subgrupo)
		if _, ok := bySub[sub]; !ok {
			bySub[sub] = i
		}
		if a := normalizer.Normalize(col.Abreviacao); a != "" {
			if _, ok := byAbrev[a]; !ok {
				byAbrev[a] = i
			}
		}
	}
	return []matcher{
		func(inc Incident) (int, bool) {
			if inc.NaturezaID == "" {
				return 0, false
			}
			i, ok := byID[inc.NaturezaID]
			return i, ok
		},
		func(inc Incident) (int, bool) {
			i, ok := byGroupSub[normalizer.Normalize(inc.Grupo)+"\x00"+normalizer.Normalize(inc.Nome)]
			return i, ok
		},
		func(inc Incident) (int, bool) {
			i, ok := bySub[normalizer.Normalize(inc.Nome)]
			return i, ok
		},
		func(inc Incident) (int, bool) {
			a := normalizer.Normalize(inc.Abreviacao)
			if a == "" {
				return 0, false
			}
			i, ok := byAbrev[a]
			return i, ok
		},
	}
}

// Resolve runs the fallback chain for one record.
func (b *Binding) Resolve(inc Incident) (int, bool) {
	for _, m := range b.chain {
		if i, ok := m(inc); ok {
			return i, ok
		}
	}
	return 0, false
}

// Aggregate builds the full matrix: every base location seeded as a
// zero-filled row, every resolvable incident counted exactly once,
// unresolvable incidents counted only in Dropped. Never errors on data
// content; the only failure is a malformed taxonomy.
func Aggregate(cols []ColumnDef, incidents []Incident, bases []BaseLocation) (*Matrix, error) {
	binding, err := BindColumns(cols, incidents)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*Group)
	rows := make(map[string]map[string]*CityRow)

	row := func(crbm, cidade string) (*Group, *CityRow) {
		g, ok := groups[crbm]
		if !ok {
			g = &Group{CRBM: crbm, Subtotals: make(map[string]int)}
			groups[crbm] = g
			rows[crbm] = make(map[string]*CityRow)
		}
		r, ok := rows[crbm][cidade]
		if !ok {
			r = &CityRow{Cidade: cidade, Counts: make(map[string]int)}
			for _, c := range cols {
				r.Counts[c.Key()] = 0
			}
			rows[crbm][cidade] = r
		}
		return g, r
	}

	for _, b := range bases {
		row(b.CRBM, b.Cidade)
	}

	m := &Matrix{Columns: cols}
	for _, inc := range incidents {
		idx, ok := binding.Resolve(inc)
		if !ok {
			m.Dropped++
			continue
		}
		key := cols[idx].Key()
		g, r := row(inc.CRBM, inc.Cidade)
		r.Counts[key]++
		r.Total++
		r.Vitimas += parseCount(inc.Vitimas)
		g.Subtotals[key]++
		g.Total++
		m.GrandTotal++
	}

	coll := collate.New(language.BrazilianPortuguese)
	for crbm, g := range groups {
		for _, r := range rows[crbm] {
			g.Rows = append(g.Rows, *r)
		}
		sort.Slice(g.Rows, func(i, j int) bool {
			return coll.CompareString(g.Rows[i].Cidade, g.Rows[j].Cidade) < 0
		})
		m.Groups = append(m.Groups, *g)
	}
	sort.Slice(m.Groups, func(i, j int) bool {
		return coll.CompareString(m.Groups[i].CRBM, m.Groups[j].CRBM) < 0
	})
	return m, nil
}

// FilterCRBM restricts an already-built matrix to a single CRBM. Pure
// filter: no re-aggregation, the grand total becomes that group's total.
func FilterCRBM(m *Matrix, crbm string) *Matrix {
	out := &Matrix{Columns: m.Columns, Dropped: m.Dropped}
	want := normalizer.Normalize(crbm)
	for _, g := range m.Groups {
		if normalizer.Normalize(g.CRBM) == want {
			out.Groups = append(out.Groups, g)
			out.GrandTotal += g.Total
		}
	}
	return out
}

// parseCount coerces the raw fatality field: absent or malformed input
// contributes zero, negative values are clamped.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
