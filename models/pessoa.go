package models

import (
	"time"

	"gorm.io/gorm"
)

// Militar is a military member of the corporation.
type Militar struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Nome      string         `gorm:"not null;size:200" json:"nome"`
	Posto     string         `gorm:"size:100" json:"posto"`
	Matricula string         `gorm:"uniqueIndex;not null;size:20" json:"matricula"`
	OBMID     *uint          `gorm:"index" json:"obm_id"`
	OBM       *OBM           `gorm:"foreignKey:OBMID" json:"obm,omitempty"`
}

// Civil is a civilian (medical staff, support) who can hold duty functions
// but never crews a vehicle.
type Civil struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Nome      string         `gorm:"not null;size:200" json:"nome"`
	Cargo     string         `gorm:"size:100" json:"cargo"`
}

type SubjectKind string

const (
	SubjectMilitar SubjectKind = "militar"
	SubjectCivil   SubjectKind = "civil"
)

// SubjectRef is a tagged reference to either a Militar or a Civil. The kind
// discriminates the id space; an assignment never carries both.
type SubjectRef struct {
	Kind SubjectKind `json:"kind"`
	ID   uint        `json:"id"`
}

func (s SubjectRef) Valid() bool {
	return (s.Kind == SubjectMilitar || s.Kind == SubjectCivil) && s.ID != 0
}
