package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
	"github.com/kantinku/kantin-app/services"
	"github.com/kantinku/kantin-app/utils"
)

type MenuController struct {
	DB      *gorm.DB
	Pricing *services.PricingService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db, Pricing: services.NewPricingService(db)}
}

// GetAllMenus -> daftar menu, harga_setelah_diskon ikut dihitung.
// Query stan_id opsional untuk memfilter satu stan.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	query := mc.DB.Preload("Diskon")
	if stanID := c.Query("stan_id"); stanID != "" {
		query = query.Where("id_stan = ?", stanID)
	}

	var menus []models.Menu
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Pricing.AnnotatePrices(menus, mc.Pricing.Now())
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID -> detail 1 menu beserta harga efektifnya.
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var menu models.Menu
	if err := mc.DB.Preload("Diskon").First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	menu.HargaSetelahDiskon = services.EffectivePriceForMenu(&menu, mc.Pricing.Now())
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// CreateMenu -> admin stan menambah menu untuk stan miliknya.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	stan, err := currentStan(c, mc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	type request struct {
		NamaMakanan string  `json:"nama_makanan" binding:"required"`
		Harga       float64 `json:"harga" binding:"required,gt=0"`
		Jenis       string  `json:"jenis" binding:"required,oneof=makanan minuman"`
		Foto        string  `json:"foto"`
		Deskripsi   string  `json:"deskripsi"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	menu := models.Menu{
		NamaMakanan: req.NamaMakanan,
		Harga:       req.Harga,
		Jenis:       req.Jenis,
		Foto:        req.Foto,
		Deskripsi:   req.Deskripsi,
		StanID:      stan.ID,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", menu)
}

// UpdateMenu -> admin stan mengubah menu miliknya.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	stan, err := currentStan(c, mc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if menu.StanID != stan.ID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		NamaMakanan *string  `json:"nama_makanan"`
		Harga       *float64 `json:"harga"`
		Jenis       *string  `json:"jenis"`
		Foto        *string  `json:"foto"`
		Deskripsi   *string  `json:"deskripsi"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	if req.NamaMakanan != nil {
		menu.NamaMakanan = *req.NamaMakanan
	}
	if req.Harga != nil {
		if *req.Harga <= 0 {
			utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("harga harus lebih dari 0"))
			return
		}
		menu.Harga = *req.Harga
	}
	if req.Jenis != nil {
		if *req.Jenis != models.JenisMakanan && *req.Jenis != models.JenisMinuman {
			utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("jenis harus makanan atau minuman"))
			return
		}
		menu.Jenis = *req.Jenis
	}
	if req.Foto != nil {
		menu.Foto = *req.Foto
	}
	if req.Deskripsi != nil {
		menu.Deskripsi = *req.Deskripsi
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", menu)
}

// DeleteMenu -> admin stan menghapus menu miliknya; link menu_diskon ikut
// terhapus.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	stan, err := currentStan(c, mc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if menu.StanID != stan.ID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tx := mc.DB.Begin()
	if err := tx.Where("id_menu = ?", menu.ID).Delete(&models.MenuDiskon{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&menu).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": menu.ID})
}
