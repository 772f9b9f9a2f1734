package roster

import (
	"testing"
	"time"

	"cbmadmin/models"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr(id uint) *uint { return &id }

func TestHasShiftConflict(t *testing.T) {
	existing := []models.Plantao{
		{ID: 1, Data: day("2025-01-10"), ViaturaID: 7},
		{ID: 2, Data: day("2025-01-10"), ViaturaID: 8},
	}
	assert.True(t, HasShiftConflict(day("2025-01-10"), 7, existing))
	assert.False(t, HasShiftConflict(day("2025-01-11"), 7, existing))
	assert.False(t, HasShiftConflict(day("2025-01-10"), 9, existing))
	assert.False(t, HasShiftConflict(day("2025-01-10"), 7, nil))
}

func TestHasCrewConflict(t *testing.T) {
	existing := []models.Guarnicao{
		{ID: 1, PlantaoID: 3, MilitarID: ptr(10), Funcao: "Motorista"},
		{ID: 2, PlantaoID: 3, MilitarID: nil, Funcao: "Chefe"},
	}
	assert.True(t, HasCrewConflict(3, 10, existing))
	assert.False(t, HasCrewConflict(3, 11, existing))
	assert.False(t, HasCrewConflict(4, 10, existing))
}

func TestResolveServiceSlot(t *testing.T) {
	inicio := day("2025-02-01")
	multi := map[string]bool{"Plantonista de Socorro": true}
	militarA := models.SubjectRef{Kind: models.SubjectMilitar, ID: 1}
	militarB := models.SubjectRef{Kind: models.SubjectMilitar, ID: 2}
	civilA := models.SubjectRef{Kind: models.SubjectCivil, ID: 1}

	existing := []models.ServicoDia{
		{Funcao: "Coordenador de Operações", DataInicio: inicio, PessoaID: ptr(1), PessoaType: models.SubjectMilitar},
	}

	// No current holder: always append.
	assert.Equal(t, WriteAppend, ResolveServiceSlot("Oficial de Dia", militarA, inicio, multi, existing))

	// Single-holder with a different holder: replace.
	assert.Equal(t, WriteReplace, ResolveServiceSlot("Coordenador de Operações", militarB, inicio, multi, existing))

	// Same militar id under a different kind is a different subject.
	assert.Equal(t, WriteReplace, ResolveServiceSlot("Coordenador de Operações", civilA, inicio, multi, existing))

	// Exact tuple: idempotent no-op.
	assert.Equal(t, WriteNoop, ResolveServiceSlot("Coordenador de Operações", militarA, inicio, multi, existing))

	// Multi-holder function accumulates.
	multiExisting := []models.ServicoDia{
		{Funcao: "Plantonista de Socorro", DataInicio: inicio, PessoaID: ptr(1), PessoaType: models.SubjectMilitar},
	}
	assert.Equal(t, WriteAppend, ResolveServiceSlot("Plantonista de Socorro", militarB, inicio, multi, multiExisting))
	assert.Equal(t, WriteNoop, ResolveServiceSlot("Plantonista de Socorro", militarA, inicio, multi, multiExisting))

	// A different window start is a fresh slot.
	assert.Equal(t, WriteAppend, ResolveServiceSlot("Coordenador de Operações", militarB, day("2025-02-02"), multi, existing))
}

func TestCodecConflictsBothFlagsIndependent(t *testing.T) {
	d := day("2025-01-10")
	existing := []models.CodecSlot{
		{ID: 1, Data: d, Turno: models.TurnoDiurno, Ordinal: 1, MilitarID: ptr(100)},
	}

	// Ordinal taken by someone else.
	c := CodecConflicts(d, models.TurnoDiurno, 1, 200, existing)
	assert.True(t, c.OrdinalTaken)
	assert.Equal(t, uint(1), c.OrdinalHolderID)
	assert.False(t, c.PersonInTurn)

	// Person already in turn, even though the ordinal is free.
	c = CodecConflicts(d, models.TurnoDiurno, 2, 100, existing)
	assert.False(t, c.OrdinalTaken)
	assert.True(t, c.PersonInTurn)
	assert.Equal(t, uint(1), c.PersonSlotID)

	// Both at once.
	c = CodecConflicts(d, models.TurnoDiurno, 1, 100, existing)
	assert.True(t, c.OrdinalTaken)
	assert.True(t, c.PersonInTurn)

	// Other turn or other day: clean.
	assert.False(t, CodecConflicts(d, models.TurnoNoturno, 1, 100, existing).Any())
	assert.False(t, CodecConflicts(day("2025-01-11"), models.TurnoDiurno, 1, 100, existing).Any())

	// Orphaned slot (nulled person) still blocks its ordinal.
	orphaned := []models.CodecSlot{
		{ID: 2, Data: d, Turno: models.TurnoDiurno, Ordinal: 1, MilitarID: nil},
	}
	c = CodecConflicts(d, models.TurnoDiurno, 1, 100, orphaned)
	assert.True(t, c.OrdinalTaken)
	assert.False(t, c.PersonInTurn)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 3, 15, 18, 30, 45, 0, time.FixedZone("X", -3*3600))
	got := DateOnly(ts)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got)
}
