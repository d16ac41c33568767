package models

// DetailTransaksi menyimpan satu baris pesanan. HargaBeli dikunci saat
// transaksi dibuat dan tidak pernah dihitung ulang, sehingga perubahan harga
// atau diskon setelahnya tidak mengubah transaksi lama.
type DetailTransaksi struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TransaksiID uint      `gorm:"column:id_transaksi;not null;index" json:"id_transaksi"`
	Transaksi   Transaksi `gorm:"foreignKey:TransaksiID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID      uint      `gorm:"column:id_menu;not null" json:"id_menu"`
	Menu        Menu      `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu,omitempty"`
	Qty         int       `gorm:"not null" json:"qty"`
	HargaBeli   float64   `gorm:"type:decimal(10,2);not null" json:"harga_beli"`

	// Dihitung saat transaksi dimuat, bukan kolom database.
	Subtotal float64 `gorm:"-" json:"subtotal"`
}

func (DetailTransaksi) TableName() string {
	return "detail_transaksi"
}
