package models

import (
	"time"

	"gorm.io/gorm"
)

type Viatura struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Prefixo   string         `gorm:"uniqueIndex;not null;size:30" json:"prefixo"`
	Tipo      string         `gorm:"size:50" json:"tipo"`
	OBMID     *uint          `gorm:"index" json:"obm_id"`
	OBM       *OBM           `gorm:"foreignKey:OBMID" json:"obm,omitempty"`
}
