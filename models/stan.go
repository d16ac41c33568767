package models

import "time"

type Stan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	NamaStan    string    `gorm:"type:varchar(100);not null" json:"nama_stan"`
	NamaPemilik string    `gorm:"type:varchar(100);not null" json:"nama_pemilik"`
	Telp        string    `gorm:"type:varchar(20)" json:"telp"`
	UserID      uint      `gorm:"column:id_user;not null;index" json:"id_user"`
	User        User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Stan) TableName() string {
	return "stan"
}
