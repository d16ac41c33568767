package models

import "time"

// Status transaksi mengikuti alur pesanan kantin:
// belum dikonfirm -> dimasak -> diantar -> sampai.
const (
	StatusBelumDikonfirm = "belum dikonfirm"
	StatusDimasak        = "dimasak"
	StatusDiantar        = "diantar"
	StatusSampai         = "sampai"
)

var statusOrder = map[string]int{
	StatusBelumDikonfirm: 0,
	StatusDimasak:        1,
	StatusDiantar:        2,
	StatusSampai:         3,
}

// ValidStatus melaporkan apakah s salah satu dari empat status yang dikenal.
func ValidStatus(s string) bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransition melaporkan apakah perpindahan from -> to maju satu langkah.
// Hanya dipakai saat mode strict aktif; default pengubahan status permisif.
func CanTransition(from, to string) bool {
	fi, ok := statusOrder[from]
	if !ok {
		return false
	}
	ti, ok := statusOrder[to]
	if !ok {
		return false
	}
	return ti == fi+1
}

type Transaksi struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Tanggal   time.Time         `gorm:"not null;index" json:"tanggal"`
	StanID    uint              `gorm:"column:id_stan;not null;index" json:"id_stan"`
	Stan      Stan              `gorm:"foreignKey:StanID;references:ID" json:"stan,omitempty"`
	SiswaID   uint              `gorm:"column:id_siswa;not null;index" json:"id_siswa"`
	Siswa     Siswa             `gorm:"foreignKey:SiswaID;references:ID" json:"siswa,omitempty"`
	Status    string            `gorm:"type:varchar(20);not null;default:'belum dikonfirm'" json:"status"`
	Detail    []DetailTransaksi `gorm:"foreignKey:TransaksiID" json:"detail_transaksi"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Transaksi) TableName() string {
	return "transaksi"
}

// Total menjumlahkan qty * harga_beli seluruh detail.
func (t *Transaksi) Total() float64 {
	var total float64
	for i := range t.Detail {
		total += float64(t.Detail[i].Qty) * t.Detail[i].HargaBeli
	}
	return total
}

// ComputeSubtotals mengisi field Subtotal setiap detail untuk respons JSON.
func (t *Transaksi) ComputeSubtotals() {
	for i := range t.Detail {
		t.Detail[i].Subtotal = float64(t.Detail[i].Qty) * t.Detail[i].HargaBeli
	}
}
