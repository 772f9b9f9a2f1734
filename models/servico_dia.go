package models

import (
	"time"
)

// ServicoDia assigns a person (militar or civil) to a named duty function
// over the half-open window [DataInicio, DataFim). The subject is a lookup
// reference, not ownership: deleting the person nulls or cascades per the
// store's deletion policy, never silently here.
type ServicoDia struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	DataInicio time.Time   `gorm:"not null;uniqueIndex:idx_servico_tupla" json:"data_inicio"`
	DataFim    time.Time   `gorm:"not null" json:"data_fim"`
	PessoaID   *uint       `gorm:"uniqueIndex:idx_servico_tupla" json:"pessoa_id"`
	PessoaType SubjectKind `gorm:"not null;size:10;uniqueIndex:idx_servico_tupla" json:"pessoa_type"`
	Funcao     string      `gorm:"not null;size:150;uniqueIndex:idx_servico_tupla" json:"funcao"`
}

// Subject returns the tagged reference, or ok=false when the row was
// orphaned by a person deletion.
func (s *ServicoDia) Subject() (SubjectRef, bool) {
	if s.PessoaID == nil {
		return SubjectRef{}, false
	}
	return SubjectRef{Kind: s.PessoaType, ID: *s.PessoaID}, true
}
