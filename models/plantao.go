package models

import (
	"time"
)

// Plantao is a dated vehicle duty shift. At most one shift may exist per
// (data, viatura); the composite unique index is the authoritative guard,
// application checks only produce friendlier errors. Rows are deleted for
// real so a freed (data, viatura) pair can be claimed again.
type Plantao struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Data        time.Time   `gorm:"not null;type:date;uniqueIndex:idx_plantao_data_viatura" json:"data"`
	ViaturaID   uint        `gorm:"not null;uniqueIndex:idx_plantao_data_viatura" json:"viatura_id"`
	Viatura     *Viatura    `gorm:"foreignKey:ViaturaID" json:"viatura,omitempty"`
	OBMID       uint        `gorm:"not null;index" json:"obm_id"`
	OBM         *OBM        `gorm:"foreignKey:OBMID" json:"obm,omitempty"`
	Observacoes string      `gorm:"size:500" json:"observacoes"`
	HoraInicio  *string     `gorm:"size:5" json:"hora_inicio"`
	HoraFim     *string     `gorm:"size:5" json:"hora_fim"`
	Guarnicao   []Guarnicao `gorm:"foreignKey:PlantaoID" json:"guarnicao,omitempty"`
}

// Guarnicao links one militar to a shift with a role label. Owned by the
// shift: deleting the Plantao deletes its Guarnicao rows. MilitarID is
// nullable so the orphan deletion policy can clear it.
type Guarnicao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	PlantaoID uint      `gorm:"not null;uniqueIndex:idx_guarnicao_plantao_militar" json:"plantao_id"`
	MilitarID *uint     `gorm:"uniqueIndex:idx_guarnicao_plantao_militar" json:"militar_id"`
	Militar   *Militar  `gorm:"foreignKey:MilitarID" json:"militar,omitempty"`
	Funcao    string    `gorm:"not null;size:100" json:"funcao"`
}

// DisplayMilitar resolves the crew member name, falling back to the orphan
// marker when the reference was nulled by a person deletion.
func (g *Guarnicao) DisplayMilitar() string {
	if g.MilitarID == nil || g.Militar == nil {
		return OrphanDisplayName
	}
	return g.Militar.Nome
}

// OrphanDisplayName is shown wherever a person reference was nulled instead
// of cascading the assignment away.
const OrphanDisplayName = "Desconhecido"
