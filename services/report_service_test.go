package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func placeAt(t *testing.T, f *orderFixture, svc *OrderService, at time.Time, qty int) {
	svc.Now = func() time.Time { return at }
	_, err := svc.PlaceOrder(f.siswa.ID, f.stanA.ID, []OrderItemInput{
		{MenuID: f.menuA.ID, Qty: qty},
	})
	assert.NoError(t, err)
}

func TestMonthlyIncomeEmptyMonth(t *testing.T) {
	f := setupOrderFixture(t)
	reports := NewReportService(f.db)

	report, err := reports.MonthlyIncome(f.stanA.ID, 5, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 5, report.Month)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, 0.0, report.TotalIncome)
	assert.Equal(t, 0, report.TransactionCount)
	assert.Empty(t, report.DailyBreakdown)
}

func TestMonthlyIncomeSparseBreakdown(t *testing.T) {
	f := setupOrderFixture(t)
	svc := f.service()
	reports := NewReportService(f.db)

	day := func(d int) time.Time {
		return time.Date(2025, 5, d, 11, 0, 0, 0, time.Local)
	}

	// Dua pesanan tanggal 3, satu tanggal 15, satu di bulan lain
	placeAt(t, f, svc, day(3), 1)  // 10000
	placeAt(t, f, svc, day(3), 2)  // 20000
	placeAt(t, f, svc, day(15), 3) // 30000
	placeAt(t, f, svc, time.Date(2025, 6, 1, 11, 0, 0, 0, time.Local), 5)

	report, err := reports.MonthlyIncome(f.stanA.ID, 5, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 60000.0, report.TotalIncome)
	assert.Equal(t, 3, report.TransactionCount)
	assert.Equal(t, map[int]float64{3: 30000, 15: 30000}, report.DailyBreakdown)
}

func TestMonthlyIncomeOnlyOwnStan(t *testing.T) {
	f := setupOrderFixture(t)
	svc := f.service()
	reports := NewReportService(f.db)

	placeAt(t, f, svc, f.at, 1)

	// Pesanan ke stan B tidak ikut dihitung
	svc.Now = func() time.Time { return f.at }
	_, err := svc.PlaceOrder(f.siswa.ID, f.stanB.ID, []OrderItemInput{
		{MenuID: f.menuB.ID, Qty: 4},
	})
	assert.NoError(t, err)

	report, err := reports.MonthlyIncome(f.stanA.ID, 5, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 10000.0, report.TotalIncome)
	assert.Equal(t, 1, report.TransactionCount)

	reportB, err := reports.MonthlyIncome(f.stanB.ID, 5, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 20000.0, reportB.TotalIncome)
}
