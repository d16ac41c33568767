package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
	"github.com/kantinku/kantin-app/services"
	"github.com/kantinku/kantin-app/utils"
)

var ErrNoPermission = errors.New("anda tidak memiliki izin untuk aksi ini")

// currentSiswa mengambil profil siswa milik user yang sedang login.
func currentSiswa(c *gin.Context, db *gorm.DB) (*models.Siswa, error) {
	userID := c.GetUint("user_id")
	var siswa models.Siswa
	if err := db.Where("id_user = ?", userID).First(&siswa).Error; err != nil {
		return nil, ErrNoPermission
	}
	return &siswa, nil
}

// currentStan mengambil profil stan milik user yang sedang login.
func currentStan(c *gin.Context, db *gorm.DB) (*models.Stan, error) {
	userID := c.GetUint("user_id")
	var stan models.Stan
	if err := db.Where("id_user = ?", userID).First(&stan).Error; err != nil {
		return nil, ErrNoPermission
	}
	return &stan, nil
}

// monthYearParams membaca parameter :month/:year, default ke bulan berjalan.
func monthYearParams(c *gin.Context, now time.Time) (int, int, error) {
	month := int(now.Month())
	year := now.Year()

	if m := c.Param("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, errors.New("bulan tidak valid")
		}
		month = parsed
	}
	if y := c.Param("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 1 {
			return 0, 0, errors.New("tahun tidak valid")
		}
		year = parsed
	}
	return month, year, nil
}

// respondServiceError memetakan taksonomi error service ke kode HTTP.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondFieldErrors(c, http.StatusUnprocessableEntity, vErr.Fields)
	case errors.Is(err, services.ErrValidation):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
	default:
		utils.ErrorLogger.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  false,
			"message": "internal server error",
			"error":   err.Error(),
		})
	}
}
