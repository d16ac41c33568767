package models

import "time"

type Siswa struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NamaSiswa string    `gorm:"type:varchar(100);not null" json:"nama_siswa"`
	Alamat    string    `gorm:"type:text" json:"alamat"`
	Telp      string    `gorm:"type:varchar(20)" json:"telp"`
	Foto      string    `gorm:"type:varchar(255)" json:"foto"`
	UserID    uint      `gorm:"column:id_user;not null;index" json:"id_user"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Siswa) TableName() string {
	return "siswa"
}
