package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
	"github.com/kantinku/kantin-app/utils"
)

type OrderItemInput struct {
	MenuID uint `json:"id_menu" binding:"required"`
	Qty    int  `json:"qty" binding:"required"`
}

type OrderService struct {
	DB *gorm.DB
	// StrictStatus mengaktifkan penegakan transisi maju-saja.
	// Default false: status boleh diganti bebas di antara empat nilai,
	// mengikuti perilaku dashboard yang bisa mengoreksi kesalahan.
	StrictStatus bool
	Now          func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Now: time.Now}
}

// PlaceOrder membuat satu transaksi beserta seluruh detailnya secara atomik.
// Validasi dijalankan sebelum ada tulisan apa pun; kegagalan di tengah
// transaksi membatalkan semuanya.
func (s *OrderService) PlaceOrder(siswaID, stanID uint, items []OrderItemInput) (*models.Transaksi, error) {
	if len(items) == 0 {
		return nil, newValidationError("items", "minimal satu item")
	}

	var stan models.Stan
	if err := s.DB.First(&stan, stanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("id_stan", "stan tidak ditemukan")
		}
		return nil, err
	}

	for i, item := range items {
		if item.Qty < 1 {
			return nil, newValidationError(
				"items."+strconv.Itoa(i)+".qty", "qty minimal 1")
		}
		var menu models.Menu
		if err := s.DB.First(&menu, item.MenuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newValidationError(
					"items."+strconv.Itoa(i)+".id_menu", "menu tidak ditemukan")
			}
			return nil, err
		}
		if menu.StanID != stanID {
			return nil, newValidationError(
				"items."+strconv.Itoa(i)+".id_menu", "menu bukan milik stan ini")
		}
	}

	now := s.Now()

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	transaksi := models.Transaksi{
		Tanggal: now,
		StanID:  stanID,
		SiswaID: siswaID,
		Status:  models.StatusBelumDikonfirm,
	}
	if err := tx.Create(&transaksi).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range items {
		// Muat ulang di dalam transaksi; menu yang hilang di tengah
		// operasi membatalkan seluruh pesanan.
		var menu models.Menu
		if err := tx.Preload("Diskon").First(&menu, item.MenuID).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("menu %d hilang saat membuat pesanan: %w", item.MenuID, err)
		}
		if menu.StanID != stanID {
			tx.Rollback()
			return nil, fmt.Errorf("menu %d berpindah stan saat membuat pesanan", item.MenuID)
		}

		detail := models.DetailTransaksi{
			TransaksiID: transaksi.ID,
			MenuID:      menu.ID,
			Qty:         item.Qty,
			HargaBeli:   EffectivePriceForMenu(&menu, now),
		}
		if err := tx.Create(&detail).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Detail.Menu").Preload("Stan").First(&transaksi, transaksi.ID).Error; err != nil {
		return nil, err
	}
	transaksi.ComputeSubtotals()

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("Transaksi #%d dibuat oleh siswa %d, total %s",
			transaksi.ID, siswaID, utils.FormatCurrencyIDR(transaksi.Total()))
	}

	return &transaksi, nil
}

// GetOrder mengambil satu transaksi lengkap dengan detail dan relasinya.
func (s *OrderService) GetOrder(id uint) (*models.Transaksi, error) {
	var transaksi models.Transaksi
	err := s.DB.Preload("Detail.Menu").Preload("Stan").Preload("Siswa").First(&transaksi, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	transaksi.ComputeSubtotals()
	return &transaksi, nil
}

// ListSiswaByMonth mengambil transaksi milik siswa pada bulan kalender tertentu.
func (s *OrderService) ListSiswaByMonth(siswaID uint, month, year int) ([]models.Transaksi, error) {
	return s.listByMonth("id_siswa", siswaID, month, year)
}

// ListStanByMonth mengambil transaksi milik stan pada bulan kalender tertentu.
func (s *OrderService) ListStanByMonth(stanID uint, month, year int) ([]models.Transaksi, error) {
	return s.listByMonth("id_stan", stanID, month, year)
}

func (s *OrderService) listByMonth(column string, id uint, month, year int) ([]models.Transaksi, error) {
	start, end := monthRange(month, year)

	var transaksi []models.Transaksi
	err := s.DB.Where(column+" = ? AND tanggal >= ? AND tanggal < ?", id, start, end).
		Preload("Detail.Menu").
		Order("tanggal desc").
		Find(&transaksi).Error
	for i := range transaksi {
		transaksi[i].ComputeSubtotals()
	}
	return transaksi, err
}

// UpdateStatus mengganti status transaksi. Hanya stan pemilik yang boleh.
// Tanpa mode strict, keempat nilai status diterima tanpa memandang urutan.
func (s *OrderService) UpdateStatus(orderID, stanID uint, status string) (*models.Transaksi, error) {
	if !models.ValidStatus(status) {
		return nil, newValidationError("status", "status tidak dikenal")
	}

	var transaksi models.Transaksi
	if err := s.DB.First(&transaksi, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if transaksi.StanID != stanID {
		return nil, ErrForbidden
	}

	if s.StrictStatus && !models.CanTransition(transaksi.Status, status) {
		return nil, newValidationError("status",
			fmt.Sprintf("transisi %q -> %q tidak diizinkan", transaksi.Status, status))
	}

	transaksi.Status = status
	if err := s.DB.Save(&transaksi).Error; err != nil {
		return nil, err
	}
	return &transaksi, nil
}

func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}
