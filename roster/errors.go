package roster

import "fmt"

// Conflict kinds surfaced to operators. Handlers pass these through
// verbatim; the frontend maps them to messages.
const (
	KindPlantaoViatura     = "plantao_data_viatura"
	KindGuarnicaoMilitar   = "guarnicao_militar_repetido"
	KindServicoDuplicado   = "servico_dia_duplicado"
	KindEscalaAeronave     = "escala_data_aeronave"
	KindCodecOrdinal       = "codec_ordinal_ocupado"
	KindCodecPessoa        = "codec_pessoa_no_turno"
	KindCodecOrdinalPessoa = "codec_ordinal_ocupado_e_pessoa_no_turno"
)

// ConflictError reports a uniqueness/overlap violation. User-correctable;
// the same shape is produced whether the pre-write check or the database
// constraint caught it.
type ConflictError struct {
	Kind          string `json:"kind"`
	ConflictingID uint   `json:"conflicting_id,omitempty"`
}

func (e *ConflictError) Error() string {
	if e.ConflictingID != 0 {
		return fmt.Sprintf("conflito %s (registro existente %d)", e.Kind, e.ConflictingID)
	}
	return fmt.Sprintf("conflito %s", e.Kind)
}

// NotFoundError reports a dangling reference.
type NotFoundError struct {
	Entity string `json:"entity"`
	ID     uint   `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d nao encontrado", e.Entity, e.ID)
}

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
