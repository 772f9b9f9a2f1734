package models

import (
	"time"
)

type Turno string

const (
	TurnoDiurno  Turno = "diurno"
	TurnoNoturno Turno = "noturno"
)

// CodecSlot is one seat of the CODEC rotation: "Plantonista <Ordinal>" for a
// given date and turn. Two independent uniqueness rules hold: an ordinal is
// occupied by at most one person, and a person occupies at most one ordinal
// within the same turn.
type CodecSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Data      time.Time `gorm:"not null;type:date;uniqueIndex:idx_codec_ordinal;uniqueIndex:idx_codec_pessoa" json:"data"`
	Turno     Turno     `gorm:"not null;size:10;uniqueIndex:idx_codec_ordinal;uniqueIndex:idx_codec_pessoa" json:"turno"`
	Ordinal   int       `gorm:"not null;uniqueIndex:idx_codec_ordinal" json:"ordinal"`
	MilitarID *uint     `gorm:"uniqueIndex:idx_codec_pessoa" json:"militar_id"`
	Militar   *Militar  `gorm:"foreignKey:MilitarID" json:"militar,omitempty"`
}
