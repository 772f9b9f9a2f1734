package models

import (
	"time"

	"gorm.io/gorm"
)

type Aeronave struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Prefixo   string         `gorm:"uniqueIndex;not null;size:30" json:"prefixo"`
	Modelo    string         `gorm:"size:100" json:"modelo"`
}

type StatusAeronave string

const (
	AeronaveAtiva      StatusAeronave = "ativa"
	AeronaveBaixada    StatusAeronave = "baixada"
	AeronaveManutencao StatusAeronave = "manutencao"
)

// EscalaAeronave is the daily aircraft roster: one row per (data, aeronave)
// with up to three named crew positions.
type EscalaAeronave struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Data         time.Time      `gorm:"not null;type:date;uniqueIndex:idx_escala_data_aeronave" json:"data"`
	AeronaveID   uint           `gorm:"not null;uniqueIndex:idx_escala_data_aeronave" json:"aeronave_id"`
	Aeronave     *Aeronave      `gorm:"foreignKey:AeronaveID" json:"aeronave,omitempty"`
	ComandanteID *uint          `json:"comandante_id"`
	Comandante   *Militar       `gorm:"foreignKey:ComandanteID" json:"comandante,omitempty"`
	CopilotoID   *uint          `json:"copiloto_id"`
	Copiloto     *Militar       `gorm:"foreignKey:CopilotoID" json:"copiloto,omitempty"`
	TripulanteID *uint          `json:"tripulante_id"`
	Tripulante   *Militar       `gorm:"foreignKey:TripulanteID" json:"tripulante,omitempty"`
	Status       StatusAeronave `gorm:"not null;size:20;default:ativa" json:"status"`
	EmServico    bool           `gorm:"default:false" json:"em_servico"`
}
