package roster

import (
	"time"

	"cbmadmin/models"
)

// Pure conflict predicates, evaluated by the store before every write.
// They run against in-memory rows so the invariant matrix can be tested
// without a database; the unique indexes remain the authoritative guard.

// DateOnly truncates t to its calendar day in UTC. All shift dates are
// compared at day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// HasShiftConflict reports whether a shift already holds (data, viatura).
func HasShiftConflict(data time.Time, viaturaID uint, existing []models.Plantao) bool {
	for _, p := range existing {
		if p.ViaturaID == viaturaID && sameDay(p.Data, data) {
			return true
		}
	}
	return false
}

// HasCrewConflict reports whether the militar is already on the shift.
func HasCrewConflict(plantaoID, militarID uint, existing []models.Guarnicao) bool {
	for _, g := range existing {
		if g.PlantaoID == plantaoID && g.MilitarID != nil && *g.MilitarID == militarID {
			return true
		}
	}
	return false
}

// WriteMode is the decision of ResolveServiceSlot.
type WriteMode int

const (
	// WriteNoop: the exact tuple already exists, nothing to do.
	WriteNoop WriteMode = iota
	// WriteAppend: add another holder (multi-holder function, or first holder).
	WriteAppend
	// WriteReplace: single-holder function with a different current holder.
	WriteReplace
)

// ResolveServiceSlot decides how an upsert of (subject, funcao, inicio)
// writes against the existing assignments of that function and window start.
func ResolveServiceSlot(funcao string, subject models.SubjectRef, inicio time.Time, multiHolder map[string]bool, existing []models.ServicoDia) WriteMode {
	occupied := false
	for _, s := range existing {
		if s.Funcao != funcao || !s.DataInicio.Equal(inicio) {
			continue
		}
		occupied = true
		if cur, ok := s.Subject(); ok && cur == subject {
			return WriteNoop
		}
	}
	if !occupied || multiHolder[funcao] {
		return WriteAppend
	}
	return WriteReplace
}

// CodecConflict carries both CODEC uniqueness flags so callers can report
// exactly which rule (or both) was violated.
type CodecConflict struct {
	OrdinalTaken    bool
	OrdinalHolderID uint
	PersonInTurn    bool
	PersonSlotID    uint
}

func (c CodecConflict) Any() bool {
	return c.OrdinalTaken || c.PersonInTurn
}

// CodecConflicts evaluates both rules independently: ordinal occupancy and
// person-already-in-turn. Both are checked even when the first one fails.
func CodecConflicts(data time.Time, turno models.Turno, ordinal int, militarID uint, existing []models.CodecSlot) CodecConflict {
	var c CodecConflict
	for _, s := range existing {
		if s.Turno != turno || !sameDay(s.Data, data) {
			continue
		}
		if s.Ordinal == ordinal {
			c.OrdinalTaken = true
			c.OrdinalHolderID = s.ID
		}
		if s.MilitarID != nil && *s.MilitarID == militarID {
			c.PersonInTurn = true
			c.PersonSlotID = s.ID
		}
	}
	return c
}
