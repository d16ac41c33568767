package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
)

// BestDiscountPercent memilih persentase tertinggi di antara diskon yang
// aktif pada waktu at. Mengembalikan 0 jika tidak ada yang aktif.
func BestDiscountPercent(diskon []models.Diskon, at time.Time) float64 {
	var best float64
	for i := range diskon {
		if !diskon[i].IsActiveAt(at) {
			continue
		}
		if diskon[i].PersentaseDiskon > best {
			best = diskon[i].PersentaseDiskon
		}
	}
	return best
}

// DiscountedPrice menghitung harga * (1 - persen/100), dibulatkan half-up
// ke dua desimal mengikuti kolom decimal(10,2).
func DiscountedPrice(harga, persen float64) float64 {
	price := harga * (1 - persen/100)
	return math.Round(price*100) / 100
}

// EffectivePriceForMenu menghitung harga efektif sebuah menu pada waktu at.
// Menu harus sudah dimuat beserta relasi Diskon-nya.
func EffectivePriceForMenu(menu *models.Menu, at time.Time) float64 {
	return DiscountedPrice(menu.Harga, BestDiscountPercent(menu.Diskon, at))
}

type PricingService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db, Now: time.Now}
}

// EffectivePrice memuat menu beserta diskonnya lalu menghitung harga efektif.
func (ps *PricingService) EffectivePrice(menuID uint, at time.Time) (float64, error) {
	var menu models.Menu
	if err := ps.DB.Preload("Diskon").First(&menu, menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return EffectivePriceForMenu(&menu, at), nil
}

// AnnotatePrices mengisi HargaSetelahDiskon untuk hasil listing menu.
func (ps *PricingService) AnnotatePrices(menus []models.Menu, at time.Time) {
	for i := range menus {
		menus[i].HargaSetelahDiskon = EffectivePriceForMenu(&menus[i], at)
	}
}
