package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
)

func setupPricingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:pricing_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Stan{}, &models.Menu{},
		&models.Diskon{}, &models.MenuDiskon{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func diskonAktif(persen float64, awal, akhir time.Time) models.Diskon {
	return models.Diskon{
		NamaDiskon:       "promo",
		PersentaseDiskon: persen,
		TanggalAwal:      awal,
		TanggalAkhir:     akhir,
		StanID:           1,
	}
}

func TestBestDiscountPercent(t *testing.T) {
	at := time.Date(2025, 5, 10, 12, 0, 0, 0, time.Local)
	sebelum := at.AddDate(0, 0, -5)
	sesudah := at.AddDate(0, 0, 5)

	t.Run("tanpa diskon", func(t *testing.T) {
		assert.Equal(t, 0.0, BestDiscountPercent(nil, at))
	})

	t.Run("satu diskon aktif", func(t *testing.T) {
		diskon := []models.Diskon{diskonAktif(10, sebelum, sesudah)}
		assert.Equal(t, 10.0, BestDiscountPercent(diskon, at))
	})

	t.Run("dua diskon tumpang tindih pilih persentase tertinggi", func(t *testing.T) {
		diskon := []models.Diskon{
			diskonAktif(10, sebelum, sesudah),
			diskonAktif(25, sebelum, sesudah),
		}
		assert.Equal(t, 25.0, BestDiscountPercent(diskon, at))
	})

	t.Run("diskon kadaluwarsa diabaikan", func(t *testing.T) {
		diskon := []models.Diskon{
			diskonAktif(50, at.AddDate(0, -2, 0), at.AddDate(0, -1, 0)),
			diskonAktif(10, sebelum, sesudah),
		}
		assert.Equal(t, 10.0, BestDiscountPercent(diskon, at))
	})

	t.Run("batas awal dan akhir inklusif", func(t *testing.T) {
		diskon := []models.Diskon{diskonAktif(15, at, at)}
		assert.Equal(t, 15.0, BestDiscountPercent(diskon, at))
	})
}

func TestDiscountedPrice(t *testing.T) {
	assert.Equal(t, 9000.0, DiscountedPrice(10000, 10))
	assert.Equal(t, 10000.0, DiscountedPrice(10000, 0))
	assert.Equal(t, 0.0, DiscountedPrice(10000, 100))
	// Pembulatan half-up ke dua desimal
	assert.Equal(t, 5025.0, DiscountedPrice(7500, 33))
	assert.Equal(t, 3333.32, DiscountedPrice(4999.99, 33.3334))
}

func TestEffectivePrice(t *testing.T) {
	db := setupPricingTestDB(t)
	at := time.Date(2025, 5, 10, 12, 0, 0, 0, time.Local)

	stan := models.Stan{NamaStan: "Stan A", NamaPemilik: "Bu Rina", UserID: 1}
	db.Create(&stan)
	menu := models.Menu{NamaMakanan: "Nasi Goreng", Harga: 10000, Jenis: models.JenisMakanan, StanID: stan.ID}
	db.Create(&menu)

	d1 := diskonAktif(10, at.AddDate(0, 0, -1), at.AddDate(0, 0, 1))
	d1.StanID = stan.ID
	db.Create(&d1)
	d2 := diskonAktif(25, at.AddDate(0, 0, -1), at.AddDate(0, 0, 1))
	d2.StanID = stan.ID
	db.Create(&d2)
	db.Create(&models.MenuDiskon{IDMenu: menu.ID, IDDiskon: d1.ID})
	db.Create(&models.MenuDiskon{IDMenu: menu.ID, IDDiskon: d2.ID})

	ps := NewPricingService(db)

	price, err := ps.EffectivePrice(menu.ID, at)
	assert.NoError(t, err)
	assert.Equal(t, 7500.0, price)

	// Di luar jendela diskon kembali ke harga dasar
	price, err = ps.EffectivePrice(menu.ID, at.AddDate(0, 1, 0))
	assert.NoError(t, err)
	assert.Equal(t, 10000.0, price)

	_, err = ps.EffectivePrice(9999, at)
	assert.ErrorIs(t, err, ErrNotFound)
}
