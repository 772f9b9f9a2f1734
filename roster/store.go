package roster

import (
	"errors"
	"time"

	"cbmadmin/models"

	"gorm.io/gorm"
)

// DeletePolicy controls what happens to assignments that reference a person
// being deleted. The reference is a lookup key, not ownership, so the rows
// are never dropped silently: either the caller asks for a cascade or the
// references are nulled and the rows display as orphaned.
type DeletePolicy string

const (
	PolicyCascade DeletePolicy = "cascade"
	PolicyOrphan  DeletePolicy = "orphan"
)

// DefaultMultiHolderFunctions are the duty functions that admit more than
// one simultaneous holder per window. Everything else is single-holder and
// gets replaced on upsert.
var DefaultMultiHolderFunctions = []string{
	"Plantonista de Socorro",
	"Fiscal de Dia",
	"Supervisor de Area",
}

// Store persists the roster entities. Every write re-checks its invariant
// in-transaction before inserting; the composite unique indexes back the
// check against concurrent writers, and a lost race is translated into the
// same ConflictError the check would have produced.
type Store struct {
	db          *gorm.DB
	multiHolder map[string]bool
}

func NewStore(db *gorm.DB, multiHolderFuncs []string) *Store {
	m := make(map[string]bool, len(multiHolderFuncs))
	for _, f := range multiHolderFuncs {
		m[f] = true
	}
	return &Store{db: db, multiHolder: m}
}

// translateDuplicate maps the constraint-backstop error onto the conflict
// shape callers already handle, so "app check caught it" and "database
// caught it" are indistinguishable.
func translateDuplicate(err error, kind string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Kind: kind}
	}
	return err
}

// Referenced-entity lookups shared by the create and update paths, so both
// report a dangling reference the same way.
func requireViatura(tx *gorm.DB, id uint) error {
	var v models.Viatura
	if err := tx.First(&v, id).Error; err != nil {
		return notFound(err, "viatura", id)
	}
	return nil
}

func requireAeronave(tx *gorm.DB, id uint) error {
	var a models.Aeronave
	if err := tx.First(&a, id).Error; err != nil {
		return notFound(err, "aeronave", id)
	}
	return nil
}

// normalizeAircraftStatus checks the status domain, defaulting an empty
// value to ativa.
func normalizeAircraftStatus(e *models.EscalaAeronave) error {
	switch e.Status {
	case models.AeronaveAtiva, models.AeronaveBaixada, models.AeronaveManutencao:
		return nil
	case "":
		e.Status = models.AeronaveAtiva
		return nil
	default:
		return &ValidationError{Field: "status", Message: "invalido"}
	}
}

// codecConflictError names which CODEC rule (or both) a conflict violated.
// Nil when there is no conflict.
func codecConflictError(c CodecConflict) *ConflictError {
	switch {
	case c.OrdinalTaken && c.PersonInTurn:
		return &ConflictError{Kind: KindCodecOrdinalPessoa, ConflictingID: c.OrdinalHolderID}
	case c.OrdinalTaken:
		return &ConflictError{Kind: KindCodecOrdinal, ConflictingID: c.OrdinalHolderID}
	case c.PersonInTurn:
		return &ConflictError{Kind: KindCodecPessoa, ConflictingID: c.PersonSlotID}
	}
	return nil
}

// CreateShift stores a new Plantao, rejecting a second shift for the same
// (data, viatura) day.
func (s *Store) CreateShift(p *models.Plantao) error {
	if p.ViaturaID == 0 {
		return &ValidationError{Field: "viatura_id", Message: "obrigatorio"}
	}
	if p.OBMID == 0 {
		return &ValidationError{Field: "obm_id", Message: "obrigatorio"}
	}
	p.Data = DateOnly(p.Data)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireViatura(tx, p.ViaturaID); err != nil {
			return err
		}
		var existing []models.Plantao
		if err := tx.Where("data = ?", p.Data).Find(&existing).Error; err != nil {
			return err
		}
		if HasShiftConflict(p.Data, p.ViaturaID, existing) {
			for _, e := range existing {
				if e.ViaturaID == p.ViaturaID {
					return &ConflictError{Kind: KindPlantaoViatura, ConflictingID: e.ID}
				}
			}
		}
		return translateDuplicate(tx.Create(p).Error, KindPlantaoViatura)
	})
}

// UpdateShift saves edits to an existing shift. Moving it onto an occupied
// (data, viatura) pair conflicts like a create would.
func (s *Store) UpdateShift(p *models.Plantao) error {
	if p.ID == 0 {
		return &ValidationError{Field: "id", Message: "obrigatorio"}
	}
	if p.ViaturaID == 0 {
		return &ValidationError{Field: "viatura_id", Message: "obrigatorio"}
	}
	if p.OBMID == 0 {
		return &ValidationError{Field: "obm_id", Message: "obrigatorio"}
	}
	p.Data = DateOnly(p.Data)
	return s.db.Transaction(func(tx *gorm.DB) error {
		var current models.Plantao
		if err := tx.First(&current, p.ID).Error; err != nil {
			return notFound(err, "plantao", p.ID)
		}
		if err := requireViatura(tx, p.ViaturaID); err != nil {
			return err
		}
		var other models.Plantao
		err := tx.Where("data = ? AND viatura_id = ? AND id <> ?", p.Data, p.ViaturaID, p.ID).
			First(&other).Error
		if err == nil {
			return &ConflictError{Kind: KindPlantaoViatura, ConflictingID: other.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// Save writes every column; the handler rebuilds the model from the
		// request, so carry the stored creation time over.
		p.CreatedAt = current.CreatedAt
		return translateDuplicate(tx.Save(p).Error, KindPlantaoViatura)
	})
}

// DeleteShift removes a shift and, by ownership, its whole crew.
func (s *Store) DeleteShift(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Plantao
		if err := tx.First(&p, id).Error; err != nil {
			return notFound(err, "plantao", id)
		}
		if err := tx.Where("plantao_id = ?", id).Delete(&models.Guarnicao{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

// AssignCrew adds a militar to a shift's crew with a role label. A person
// appears at most once per shift.
func (s *Store) AssignCrew(plantaoID, militarID uint, funcao string) (*models.Guarnicao, error) {
	if funcao == "" {
		return nil, &ValidationError{Field: "funcao", Message: "obrigatorio"}
	}
	var g *models.Guarnicao
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Plantao
		if err := tx.First(&p, plantaoID).Error; err != nil {
			return notFound(err, "plantao", plantaoID)
		}
		var m models.Militar
		if err := tx.First(&m, militarID).Error; err != nil {
			return notFound(err, "militar", militarID)
		}
		var existing []models.Guarnicao
		if err := tx.Where("plantao_id = ?", plantaoID).Find(&existing).Error; err != nil {
			return err
		}
		if HasCrewConflict(plantaoID, militarID, existing) {
			for _, e := range existing {
				if e.MilitarID != nil && *e.MilitarID == militarID {
					return &ConflictError{Kind: KindGuarnicaoMilitar, ConflictingID: e.ID}
				}
			}
		}
		g = &models.Guarnicao{PlantaoID: plantaoID, MilitarID: &militarID, Funcao: funcao}
		return translateDuplicate(tx.Create(g).Error, KindGuarnicaoMilitar)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// RemoveCrew deletes one crew assignment.
func (s *Store) RemoveCrew(id uint) error {
	var g models.Guarnicao
	if err := s.db.First(&g, id).Error; err != nil {
		return notFound(err, "guarnicao", id)
	}
	return s.db.Delete(&g).Error
}

// UpsertServiceOfDay writes a service-of-the-day assignment. Single-holder
// functions replace the current holder of the window; multi-holder functions
// accumulate; an identical tuple is an idempotent no-op.
func (s *Store) UpsertServiceOfDay(subject models.SubjectRef, funcao string, inicio, fim time.Time) (*models.ServicoDia, error) {
	if !subject.Valid() {
		return nil, &ValidationError{Field: "pessoa", Message: "referencia invalida"}
	}
	if funcao == "" {
		return nil, &ValidationError{Field: "funcao", Message: "obrigatorio"}
	}
	if !fim.After(inicio) {
		return nil, &ValidationError{Field: "data_fim", Message: "deve ser posterior a data_inicio"}
	}
	var out *models.ServicoDia
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.subjectExists(tx, subject); err != nil {
			return err
		}
		var existing []models.ServicoDia
		if err := tx.Where("funcao = ? AND data_inicio = ?", funcao, inicio).Find(&existing).Error; err != nil {
			return err
		}
		switch ResolveServiceSlot(funcao, subject, inicio, s.multiHolder, existing) {
		case WriteNoop:
			for i := range existing {
				if cur, ok := existing[i].Subject(); ok && cur == subject {
					out = &existing[i]
					return nil
				}
			}
			return nil
		case WriteReplace:
			if err := tx.Where("funcao = ? AND data_inicio = ?", funcao, inicio).
				Delete(&models.ServicoDia{}).Error; err != nil {
				return err
			}
		}
		id := subject.ID
		out = &models.ServicoDia{
			DataInicio: inicio,
			DataFim:    fim,
			PessoaID:   &id,
			PessoaType: subject.Kind,
			Funcao:     funcao,
		}
		return translateDuplicate(tx.Create(out).Error, KindServicoDuplicado)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteServiceOfDay removes one assignment.
func (s *Store) DeleteServiceOfDay(id uint) error {
	var sd models.ServicoDia
	if err := s.db.First(&sd, id).Error; err != nil {
		return notFound(err, "servico_dia", id)
	}
	return s.db.Delete(&sd).Error
}

// AssignCodecSlot seats a militar in a CODEC rotation slot. Both uniqueness
// rules are evaluated so the error names exactly what collided.
func (s *Store) AssignCodecSlot(data time.Time, turno models.Turno, ordinal int, militarID uint) (*models.CodecSlot, error) {
	if turno != models.TurnoDiurno && turno != models.TurnoNoturno {
		return nil, &ValidationError{Field: "turno", Message: "deve ser diurno ou noturno"}
	}
	if ordinal < 1 {
		return nil, &ValidationError{Field: "ordinal", Message: "deve ser >= 1"}
	}
	day := DateOnly(data)
	var slot *models.CodecSlot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var m models.Militar
		if err := tx.First(&m, militarID).Error; err != nil {
			return notFound(err, "militar", militarID)
		}
		var existing []models.CodecSlot
		if err := tx.Where("data = ? AND turno = ?", day, turno).Find(&existing).Error; err != nil {
			return err
		}
		if ce := codecConflictError(CodecConflicts(day, turno, ordinal, militarID, existing)); ce != nil {
			return ce
		}
		slot = &models.CodecSlot{Data: day, Turno: turno, Ordinal: ordinal, MilitarID: &militarID}
		if err := tx.Create(slot).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race after the pre-check; re-read to name which
				// rule the winner took.
				var rows []models.CodecSlot
				if tx.Where("data = ? AND turno = ?", day, turno).Find(&rows).Error == nil {
					if ce := codecConflictError(CodecConflicts(day, turno, ordinal, militarID, rows)); ce != nil {
						return ce
					}
				}
				return &ConflictError{Kind: KindCodecOrdinalPessoa}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// RemoveCodecSlot frees one rotation seat.
func (s *Store) RemoveCodecSlot(id uint) error {
	var slot models.CodecSlot
	if err := s.db.First(&slot, id).Error; err != nil {
		return notFound(err, "codec_slot", id)
	}
	return s.db.Delete(&slot).Error
}

// CreateAircraftShift stores a daily aircraft roster row, at most one per
// (data, aeronave).
func (s *Store) CreateAircraftShift(e *models.EscalaAeronave) error {
	if e.AeronaveID == 0 {
		return &ValidationError{Field: "aeronave_id", Message: "obrigatorio"}
	}
	if err := normalizeAircraftStatus(e); err != nil {
		return err
	}
	e.Data = DateOnly(e.Data)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireAeronave(tx, e.AeronaveID); err != nil {
			return err
		}
		var other models.EscalaAeronave
		err := tx.Where("data = ? AND aeronave_id = ?", e.Data, e.AeronaveID).First(&other).Error
		if err == nil {
			return &ConflictError{Kind: KindEscalaAeronave, ConflictingID: other.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return translateDuplicate(tx.Create(e).Error, KindEscalaAeronave)
	})
}

// UpdateAircraftShift saves edits to an existing aircraft roster row.
func (s *Store) UpdateAircraftShift(e *models.EscalaAeronave) error {
	if e.ID == 0 {
		return &ValidationError{Field: "id", Message: "obrigatorio"}
	}
	if e.AeronaveID == 0 {
		return &ValidationError{Field: "aeronave_id", Message: "obrigatorio"}
	}
	if err := normalizeAircraftStatus(e); err != nil {
		return err
	}
	e.Data = DateOnly(e.Data)
	return s.db.Transaction(func(tx *gorm.DB) error {
		var current models.EscalaAeronave
		if err := tx.First(&current, e.ID).Error; err != nil {
			return notFound(err, "escala_aeronave", e.ID)
		}
		if err := requireAeronave(tx, e.AeronaveID); err != nil {
			return err
		}
		var other models.EscalaAeronave
		err := tx.Where("data = ? AND aeronave_id = ? AND id <> ?", e.Data, e.AeronaveID, e.ID).
			First(&other).Error
		if err == nil {
			return &ConflictError{Kind: KindEscalaAeronave, ConflictingID: other.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		e.CreatedAt = current.CreatedAt
		return translateDuplicate(tx.Save(e).Error, KindEscalaAeronave)
	})
}

// DeleteAircraftShift removes one aircraft roster row.
func (s *Store) DeleteAircraftShift(id uint) error {
	var e models.EscalaAeronave
	if err := s.db.First(&e, id).Error; err != nil {
		return notFound(err, "escala_aeronave", id)
	}
	return s.db.Delete(&e).Error
}

// DeleteMilitar removes a militar. Assignments referencing them follow the
// policy: cascade deletes the assignment rows, orphan nulls the reference so
// the rows survive and display as "Desconhecido". Aircraft roster crew
// fields are nulled under both policies, the escala row belongs to the
// aircraft and date, not to the crew.
func (s *Store) DeleteMilitar(id uint, policy DeletePolicy) error {
	if policy != PolicyCascade && policy != PolicyOrphan {
		return &ValidationError{Field: "policy", Message: "deve ser cascade ou orphan"}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var m models.Militar
		if err := tx.First(&m, id).Error; err != nil {
			return notFound(err, "militar", id)
		}
		if policy == PolicyCascade {
			if err := tx.Where("militar_id = ?", id).Delete(&models.Guarnicao{}).Error; err != nil {
				return err
			}
			if err := tx.Where("militar_id = ?", id).Delete(&models.CodecSlot{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pessoa_type = ? AND pessoa_id = ?", models.SubjectMilitar, id).
				Delete(&models.ServicoDia{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.Guarnicao{}).Where("militar_id = ?", id).
				Update("militar_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.CodecSlot{}).Where("militar_id = ?", id).
				Update("militar_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.ServicoDia{}).
				Where("pessoa_type = ? AND pessoa_id = ?", models.SubjectMilitar, id).
				Update("pessoa_id", nil).Error; err != nil {
				return err
			}
		}
		for _, col := range []string{"comandante_id", "copiloto_id", "tripulante_id"} {
			if err := tx.Model(&models.EscalaAeronave{}).Where(col+" = ?", id).
				Update(col, nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&m).Error
	})
}

// DeleteCivil removes a civilian, applying the policy to their
// service-of-the-day assignments.
func (s *Store) DeleteCivil(id uint, policy DeletePolicy) error {
	if policy != PolicyCascade && policy != PolicyOrphan {
		return &ValidationError{Field: "policy", Message: "deve ser cascade ou orphan"}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var c models.Civil
		if err := tx.First(&c, id).Error; err != nil {
			return notFound(err, "civil", id)
		}
		if policy == PolicyCascade {
			if err := tx.Where("pessoa_type = ? AND pessoa_id = ?", models.SubjectCivil, id).
				Delete(&models.ServicoDia{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.ServicoDia{}).
				Where("pessoa_type = ? AND pessoa_id = ?", models.SubjectCivil, id).
				Update("pessoa_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&c).Error
	})
}

func (s *Store) subjectExists(tx *gorm.DB, subject models.SubjectRef) error {
	switch subject.Kind {
	case models.SubjectMilitar:
		var m models.Militar
		return notFound(tx.First(&m, subject.ID).Error, "militar", subject.ID)
	case models.SubjectCivil:
		var c models.Civil
		return notFound(tx.First(&c, subject.ID).Error, "civil", subject.ID)
	}
	return &ValidationError{Field: "pessoa_type", Message: "invalido"}
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
