package models

import (
	"time"

	"gorm.io/gorm"
)

// Natureza is one entry of the incident-nature catalog: a free-text group,
// name and optional abbreviation. The espelho taxonomy binds its fixed
// columns to these rows by fuzzy text match.
type Natureza struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Grupo      string         `gorm:"not null;size:150" json:"grupo"`
	Nome       string         `gorm:"not null;size:150" json:"nome"`
	Abreviacao string         `gorm:"size:50" json:"abreviacao"`
}

// Ocorrencia is an incident record. Immutable input to the espelho
// aggregation; this service only creates and lists them.
type Ocorrencia struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Data       time.Time      `gorm:"not null;type:date;index" json:"data"`
	NaturezaID *uint          `gorm:"index" json:"natureza_id"`
	Natureza   *Natureza      `gorm:"foreignKey:NaturezaID" json:"natureza,omitempty"`
	CRBM       string         `gorm:"not null;size:50" json:"crbm"`
	Cidade     string         `gorm:"not null;size:100" json:"cidade"`
	Vitimas    *int           `json:"vitimas"`
	Descricao  string         `gorm:"size:500" json:"descricao"`
}
