package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsAccentsAndCase(t *testing.T) {
	assert.Equal(t, "acoes preventivas", Normalize("AÇÕES PREVENTIVAS"))
	assert.Equal(t, Normalize("acoes"), Normalize("AÇÕES"))
	assert.Equal(t, "incendio em vegetacao", Normalize("Incêndio em  Vegetação"))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "busca e salvamento", Normalize("  Busca   e\tSalvamento \n"))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \t\n"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"AÇÕES PREVENTIVAS",
		"  Incêndio   em Edificação ",
		"já normalizado",
		"",
		"ção ção ção",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestDisplayKeepsCase(t *testing.T) {
	assert.Equal(t, "INC. VEG", Display("INC. VEG"))
	assert.Equal(t, "Incendio em Vegetacao", Display("Incêndio em  Vegetação"))
}
