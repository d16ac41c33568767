package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
	"github.com/kantinku/kantin-app/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// RegisterSiswa membuat akun siswa baru beserta profilnya.
func (ac *AuthController) RegisterSiswa(c *gin.Context) {
	type request struct {
		Username  string `json:"username" binding:"required"`
		Password  string `json:"password" binding:"required,min=6"`
		NamaSiswa string `json:"nama_siswa" binding:"required"`
		Alamat    string `json:"alamat" binding:"required"`
		Telp      string `json:"telp" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx := ac.DB.Begin()
	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Role:     models.RoleSiswa,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("username sudah dipakai"))
		return
	}

	siswa := models.Siswa{
		NamaSiswa: req.NamaSiswa,
		Alamat:    req.Alamat,
		Telp:      req.Telp,
		UserID:    user.ID,
	}
	if err := tx.Create(&siswa).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.InfoLogger.Printf("Siswa baru terdaftar: %s", user.Username)
	utils.RespondJSON(c, http.StatusCreated, "Siswa registered", gin.H{
		"user_id":  user.ID,
		"id_siswa": siswa.ID,
	})
}

// RegisterStan membuat akun admin stan baru beserta stan-nya.
func (ac *AuthController) RegisterStan(c *gin.Context) {
	type request struct {
		Username    string `json:"username" binding:"required"`
		Password    string `json:"password" binding:"required,min=6"`
		NamaStan    string `json:"nama_stan" binding:"required"`
		NamaPemilik string `json:"nama_pemilik" binding:"required"`
		Telp        string `json:"telp" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx := ac.DB.Begin()
	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Role:     models.RoleAdminStan,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("username sudah dipakai"))
		return
	}

	stan := models.Stan{
		NamaStan:    req.NamaStan,
		NamaPemilik: req.NamaPemilik,
		Telp:        req.Telp,
		UserID:      user.ID,
	}
	if err := tx.Create(&stan).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.InfoLogger.Printf("Stan baru terdaftar: %s (%s)", stan.NamaStan, user.Username)
	utils.RespondJSON(c, http.StatusCreated, "Stan registered", gin.H{
		"user_id": user.ID,
		"id_stan": stan.ID,
	})
}

// Login memverifikasi kredensial dan mengembalikan JWT berisi role.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  user.Role,
	})
}
