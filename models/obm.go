package models

import (
	"time"
)

// OBM is an operational unit. Its CRBM and city also enumerate the base
// locations of the espelho report, so every unit's city shows up even on
// days without incidents.
type OBM struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Nome      string    `gorm:"uniqueIndex;not null;size:200" json:"nome"`
	CRBM      string    `gorm:"not null;size:50" json:"crbm"`
	Cidade    string    `gorm:"not null;size:100" json:"cidade"`
	Telefone  string    `gorm:"size:30" json:"telefone"`
}

// Telefone is a phone-directory entry.
type Telefone struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Nome      string    `gorm:"not null;size:200" json:"nome"`
	Numero    string    `gorm:"not null;size:30" json:"numero"`
	OBMID     *uint     `gorm:"index" json:"obm_id"`
	OBM       *OBM      `gorm:"foreignKey:OBMID" json:"obm,omitempty"`
}
