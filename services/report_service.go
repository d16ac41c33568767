package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
)

type IncomeReport struct {
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	TotalIncome      float64         `json:"total_income"`
	TransactionCount int             `json:"transaction_count"`
	DailyBreakdown   map[int]float64 `json:"daily_breakdown"`
}

type ReportService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Now: time.Now}
}

// MonthlyIncome menjumlahkan pemasukan stan pada satu bulan kalender.
// Breakdown harian bersifat jarang: tanggal tanpa transaksi tidak muncul.
func (s *ReportService) MonthlyIncome(stanID uint, month, year int) (*IncomeReport, error) {
	start, end := monthRange(month, year)

	var transaksi []models.Transaksi
	err := s.DB.Where("id_stan = ? AND tanggal >= ? AND tanggal < ?", stanID, start, end).
		Preload("Detail").
		Find(&transaksi).Error
	if err != nil {
		return nil, err
	}

	report := &IncomeReport{
		Month:          month,
		Year:           year,
		DailyBreakdown: map[int]float64{},
	}
	for i := range transaksi {
		amount := transaksi[i].Total()
		report.TotalIncome += amount
		report.DailyBreakdown[transaksi[i].Tanggal.Day()] += amount
	}
	report.TransactionCount = len(transaksi)
	return report, nil
}
