package models

import "time"

type Diskon struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	NamaDiskon       string    `gorm:"type:varchar(100);not null" json:"nama_diskon"`
	PersentaseDiskon float64   `gorm:"type:decimal(5,2);not null" json:"persentase_diskon"`
	TanggalAwal      time.Time `gorm:"not null" json:"tanggal_awal"`
	TanggalAkhir     time.Time `gorm:"not null" json:"tanggal_akhir"`
	StanID           uint      `gorm:"column:id_stan;not null;index" json:"id_stan"`
	Stan             Stan      `gorm:"foreignKey:StanID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Menu             []Menu    `gorm:"many2many:menu_diskon;joinForeignKey:IDDiskon;joinReferences:IDMenu" json:"menu,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Diskon) TableName() string {
	return "diskon"
}

// IsActiveAt melaporkan apakah diskon berlaku pada waktu tertentu.
// Batas awal dan akhir keduanya inklusif.
func (d *Diskon) IsActiveAt(at time.Time) bool {
	return !at.Before(d.TanggalAwal) && !at.After(d.TanggalAkhir)
}
