package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
	"github.com/kantinku/kantin-app/utils"
)

type DiskonController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewDiskonController(db *gorm.DB) *DiskonController {
	return &DiskonController{DB: db, Now: time.Now}
}

// GetAllDiskon -> admin stan melihat diskon stannya sendiri; siswa bisa
// memfilter dengan query stan_id.
func (dc *DiskonController) GetAllDiskon(c *gin.Context) {
	query := dc.DB.Preload("Menu")

	if c.GetString("role") == models.RoleAdminStan {
		stan, err := currentStan(c, dc.DB)
		if err != nil {
			utils.RespondError(c, http.StatusForbidden, err)
			return
		}
		query = query.Where("id_stan = ?", stan.ID)
	} else if stanID := c.Query("stan_id"); stanID != "" {
		query = query.Where("id_stan = ?", stanID)
	}

	var diskon []models.Diskon
	if err := query.Find(&diskon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of discounts", diskon)
}

// GetActiveDiskon -> diskon yang sedang berlaku saat ini.
func (dc *DiskonController) GetActiveDiskon(c *gin.Context) {
	now := dc.Now()
	query := dc.DB.Preload("Menu").
		Where("tanggal_awal <= ? AND tanggal_akhir >= ?", now, now)
	if stanID := c.Query("stan_id"); stanID != "" {
		query = query.Where("id_stan = ?", stanID)
	}

	var diskon []models.Diskon
	if err := query.Find(&diskon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active discounts", diskon)
}

// GetDiskonByID -> detail 1 diskon beserta menu yang terhubung.
func (dc *DiskonController) GetDiskonByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var diskon models.Diskon
	if err := dc.DB.Preload("Menu").First(&diskon, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discount detail", diskon)
}

// CreateDiskon -> admin stan membuat diskon, opsional langsung menempelkan
// menu miliknya.
func (dc *DiskonController) CreateDiskon(c *gin.Context) {
	stan, err := currentStan(c, dc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	type request struct {
		NamaDiskon       string    `json:"nama_diskon" binding:"required"`
		PersentaseDiskon *float64  `json:"persentase_diskon" binding:"required,gte=0,lte=100"`
		TanggalAwal      time.Time `json:"tanggal_awal" binding:"required"`
		TanggalAkhir     time.Time `json:"tanggal_akhir" binding:"required"`
		MenuIDs          []uint    `json:"menu_ids"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}
	if req.TanggalAkhir.Before(req.TanggalAwal) {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			errors.New("tanggal_akhir harus setelah atau sama dengan tanggal_awal"))
		return
	}

	tx := dc.DB.Begin()
	diskon := models.Diskon{
		NamaDiskon:       req.NamaDiskon,
		PersentaseDiskon: *req.PersentaseDiskon,
		TanggalAwal:      req.TanggalAwal,
		TanggalAkhir:     req.TanggalAkhir,
		StanID:           stan.ID,
	}
	if err := tx.Create(&diskon).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Tempelkan hanya menu milik stan yang sama.
	for _, menuID := range req.MenuIDs {
		var menu models.Menu
		if err := tx.First(&menu, menuID).Error; err != nil {
			continue
		}
		if menu.StanID != stan.ID {
			continue
		}
		link := models.MenuDiskon{IDMenu: menuID, IDDiskon: diskon.ID}
		if err := tx.Create(&link).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	tx.Commit()

	dc.DB.Preload("Menu").First(&diskon, diskon.ID)
	utils.RespondJSON(c, http.StatusCreated, "Discount created", diskon)
}

// UpdateDiskon -> admin stan mengubah diskon miliknya.
func (dc *DiskonController) UpdateDiskon(c *gin.Context) {
	stan, err := currentStan(c, dc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	var diskon models.Diskon
	if err := dc.DB.First(&diskon, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if diskon.StanID != stan.ID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		NamaDiskon       *string    `json:"nama_diskon"`
		PersentaseDiskon *float64   `json:"persentase_diskon"`
		TanggalAwal      *time.Time `json:"tanggal_awal"`
		TanggalAkhir     *time.Time `json:"tanggal_akhir"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	if req.NamaDiskon != nil {
		diskon.NamaDiskon = *req.NamaDiskon
	}
	if req.PersentaseDiskon != nil {
		if *req.PersentaseDiskon < 0 || *req.PersentaseDiskon > 100 {
			utils.RespondError(c, http.StatusUnprocessableEntity,
				errors.New("persentase_diskon harus 0-100"))
			return
		}
		diskon.PersentaseDiskon = *req.PersentaseDiskon
	}
	if req.TanggalAwal != nil {
		diskon.TanggalAwal = *req.TanggalAwal
	}
	if req.TanggalAkhir != nil {
		diskon.TanggalAkhir = *req.TanggalAkhir
	}
	if diskon.TanggalAkhir.Before(diskon.TanggalAwal) {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			errors.New("tanggal_akhir harus setelah atau sama dengan tanggal_awal"))
		return
	}

	if err := dc.DB.Save(&diskon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discount updated", diskon)
}

// DeleteDiskon -> admin stan menghapus diskon miliknya; link menu_diskon
// ikut terhapus.
func (dc *DiskonController) DeleteDiskon(c *gin.Context) {
	stan, err := currentStan(c, dc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	var diskon models.Diskon
	if err := dc.DB.First(&diskon, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if diskon.StanID != stan.ID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tx := dc.DB.Begin()
	if err := tx.Where("id_diskon = ?", diskon.ID).Delete(&models.MenuDiskon{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&diskon).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Discount deleted", gin.H{"id": diskon.ID})
}

// AttachMenu -> menempelkan satu menu ke diskon, keduanya harus milik stan
// yang sama.
func (dc *DiskonController) AttachMenu(c *gin.Context) {
	stan, err := currentStan(c, dc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	diskonID, _ := strconv.Atoi(c.Param("id"))
	menuID, _ := strconv.Atoi(c.Param("menu_id"))

	var diskon models.Diskon
	if err := dc.DB.First(&diskon, diskonID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	var menu models.Menu
	if err := dc.DB.First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if diskon.StanID != stan.ID || menu.StanID != stan.ID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var existing models.MenuDiskon
	err = dc.DB.Where("id_menu = ? AND id_diskon = ?", menu.ID, diskon.ID).First(&existing).Error
	if err == nil {
		utils.RespondJSON(c, http.StatusOK, "Menu already attached", existing)
		return
	}

	link := models.MenuDiskon{IDMenu: menu.ID, IDDiskon: diskon.ID}
	if err := dc.DB.Create(&link).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu attached to discount", link)
}

// DetachMenu -> melepas menu dari diskon.
func (dc *DiskonController) DetachMenu(c *gin.Context) {
	stan, err := currentStan(c, dc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	diskonID, _ := strconv.Atoi(c.Param("id"))
	menuID, _ := strconv.Atoi(c.Param("menu_id"))

	var diskon models.Diskon
	if err := dc.DB.First(&diskon, diskonID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if diskon.StanID != stan.ID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	result := dc.DB.Where("id_menu = ? AND id_diskon = ?", menuID, diskon.ID).
		Delete(&models.MenuDiskon{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu tidak terhubung ke diskon ini"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detached from discount", nil)
}
