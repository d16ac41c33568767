package models

// MenuDiskon adalah tabel penghubung many-to-many antara Menu dan Diskon.
// Primary key komposit mengikuti bentuk join table bawaan gorm.
type MenuDiskon struct {
	IDMenu   uint `gorm:"column:id_menu;primaryKey" json:"id_menu"`
	IDDiskon uint `gorm:"column:id_diskon;primaryKey" json:"id_diskon"`
}

func (MenuDiskon) TableName() string {
	return "menu_diskon"
}
