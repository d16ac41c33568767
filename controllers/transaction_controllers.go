package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/config"
	"github.com/kantinku/kantin-app/models"
	"github.com/kantinku/kantin-app/services"
	"github.com/kantinku/kantin-app/utils"
)

type TransactionController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	orders := services.NewOrderService(db)
	orders.StrictStatus = config.StrictStatusEnabled()
	return &TransactionController{DB: db, Orders: orders}
}

// CreateTransaksi -> siswa membuat pesanan berisi satu atau lebih item.
// Seluruh baris ditulis dalam satu transaksi database.
func (tc *TransactionController) CreateTransaksi(c *gin.Context) {
	siswa, err := currentSiswa(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	type request struct {
		StanID uint                      `json:"id_stan" binding:"required"`
		Items  []services.OrderItemInput `json:"items" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	transaksi, err := tc.Orders.PlaceOrder(siswa.ID, req.StanID, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", gin.H{
		"transaksi": transaksi,
		"total":     transaksi.Total(),
	})
}

// GetSiswaTransaksi -> riwayat pesanan siswa pada bulan tertentu
// (default bulan berjalan).
func (tc *TransactionController) GetSiswaTransaksi(c *gin.Context) {
	siswa, err := currentSiswa(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	month, year, err := monthYearParams(c, tc.Orders.Now())
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	transaksi, err := tc.Orders.ListSiswaByMonth(siswa.ID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of transactions", transaksi)
}

// GetStanTransaksi -> pesanan masuk stan pada bulan tertentu.
func (tc *TransactionController) GetStanTransaksi(c *gin.Context) {
	stan, err := currentStan(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	month, year, err := monthYearParams(c, tc.Orders.Now())
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	transaksi, err := tc.Orders.ListStanByMonth(stan.ID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of transactions", transaksi)
}

// GetTransaksiByID -> detail pesanan; siswa hanya pesanannya sendiri,
// admin stan hanya pesanan stannya.
func (tc *TransactionController) GetTransaksiByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	transaksi, err := tc.Orders.GetOrder(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !tc.authorized(c, transaksi) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Transaction detail", gin.H{
		"transaksi": transaksi,
		"total":     transaksi.Total(),
	})
}

// UpdateStatus -> admin stan mengganti status pesanan stannya. Keempat nilai
// status diterima tanpa memandang urutan, kecuali mode strict diaktifkan.
func (tc *TransactionController) UpdateStatus(c *gin.Context) {
	stan, err := currentStan(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	transaksi, err := tc.Orders.UpdateStatus(uint(id), stan.ID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Transaction status updated", transaksi)
}

// CheckStatus -> status pesanan saja, untuk polling dari sisi siswa/stan.
func (tc *TransactionController) CheckStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	transaksi, err := tc.Orders.GetOrder(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !tc.authorized(c, transaksi) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": transaksi.Status})
}

// authorized memeriksa kepemilikan transaksi terhadap principal saat ini.
func (tc *TransactionController) authorized(c *gin.Context, t *models.Transaksi) bool {
	switch c.GetString("role") {
	case models.RoleSiswa:
		siswa, err := currentSiswa(c, tc.DB)
		return err == nil && t.SiswaID == siswa.ID
	case models.RoleAdminStan:
		stan, err := currentStan(c, tc.DB)
		return err == nil && t.StanID == stan.ID
	}
	return false
}
