package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/services"
	"github.com/kantinku/kantin-app/utils"
)

type StanController struct {
	DB      *gorm.DB
	Reports *services.ReportService
}

func NewStanController(db *gorm.DB) *StanController {
	return &StanController{DB: db, Reports: services.NewReportService(db)}
}

// IncomeByMonth -> rekap pemasukan stan per bulan kalender, dengan breakdown
// harian. Hari tanpa transaksi tidak muncul di breakdown.
func (sc *StanController) IncomeByMonth(c *gin.Context) {
	stan, err := currentStan(c, sc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	month, year, err := monthYearParams(c, sc.Reports.Now())
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	report, err := sc.Reports.MonthlyIncome(stan.ID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
