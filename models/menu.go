package models

import "time"

const (
	JenisMakanan = "makanan"
	JenisMinuman = "minuman"
)

type Menu struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	NamaMakanan string    `gorm:"type:varchar(100);not null" json:"nama_makanan"`
	Harga       float64   `gorm:"type:decimal(10,2);not null" json:"harga"`
	Jenis       string    `gorm:"type:varchar(20);not null" json:"jenis"`
	Foto        string    `gorm:"type:varchar(255)" json:"foto"`
	Deskripsi   string    `gorm:"type:text" json:"deskripsi"`
	StanID      uint      `gorm:"column:id_stan;not null;index" json:"id_stan"`
	Stan        Stan      `gorm:"foreignKey:StanID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Diskon      []Diskon  `gorm:"many2many:menu_diskon;joinForeignKey:IDMenu;joinReferences:IDDiskon" json:"diskon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Dihitung saat listing, bukan kolom database.
	HargaSetelahDiskon float64 `gorm:"-" json:"harga_setelah_diskon"`
}

func (Menu) TableName() string {
	return "menu"
}
