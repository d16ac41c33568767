package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/models"
	"github.com/kantinku/kantin-app/router"
	"github.com/kantinku/kantin-app/utils"
)

type testEnv struct {
	db         *gorm.DB
	router     *gin.Engine
	siswa      models.Siswa
	siswaToken string
	stanA      models.Stan
	stanAToken string
	stanB      models.Stan
	stanBToken string
	menuA      models.Menu
}

func setupTestEnv(t *testing.T) *testEnv {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:ctrl_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Siswa{}, &models.Stan{}, &models.Menu{},
		&models.Diskon{}, &models.MenuDiskon{},
		&models.Transaksi{}, &models.DetailTransaksi{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	env := &testEnv{db: db, router: router.SetupRouter(db)}

	userSiswa := models.User{Username: "budi", Password: "x", Role: models.RoleSiswa}
	db.Create(&userSiswa)
	env.siswa = models.Siswa{NamaSiswa: "Budi", Alamat: "Jl. Melati 1", Telp: "0811", UserID: userSiswa.ID}
	db.Create(&env.siswa)
	env.siswaToken, _ = utils.GenerateToken(userSiswa.ID, userSiswa.Role)

	userStanA := models.User{Username: "stan-a", Password: "x", Role: models.RoleAdminStan}
	db.Create(&userStanA)
	env.stanA = models.Stan{NamaStan: "Stan A", NamaPemilik: "Bu Rina", UserID: userStanA.ID}
	db.Create(&env.stanA)
	env.stanAToken, _ = utils.GenerateToken(userStanA.ID, userStanA.Role)

	userStanB := models.User{Username: "stan-b", Password: "x", Role: models.RoleAdminStan}
	db.Create(&userStanB)
	env.stanB = models.Stan{NamaStan: "Stan B", NamaPemilik: "Pak Joko", UserID: userStanB.ID}
	db.Create(&env.stanB)
	env.stanBToken, _ = utils.GenerateToken(userStanB.ID, userStanB.Role)

	env.menuA = models.Menu{NamaMakanan: "Nasi Goreng", Harga: 10000, Jenis: models.JenisMakanan, StanID: env.stanA.ID}
	db.Create(&env.menuA)

	return env
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) placeOrder(t *testing.T, qty int) uint {
	w := e.request(t, "POST", "/siswa/transaksi", e.siswaToken, gin.H{
		"id_stan": e.stanA.ID,
		"items":   []gin.H{{"id_menu": e.menuA.ID, "qty": qty}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Transaksi models.Transaksi `json:"transaksi"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.Transaksi.ID
}

func TestCreateTransaksiEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	// Diskon 10% aktif sekarang
	diskon := models.Diskon{
		NamaDiskon:       "promo",
		PersentaseDiskon: 10,
		TanggalAwal:      time.Now().Add(-time.Hour),
		TanggalAkhir:     time.Now().Add(time.Hour),
		StanID:           env.stanA.ID,
	}
	env.db.Create(&diskon)
	env.db.Create(&models.MenuDiskon{IDMenu: env.menuA.ID, IDDiskon: diskon.ID})

	w := env.request(t, "POST", "/siswa/transaksi", env.siswaToken, gin.H{
		"id_stan": env.stanA.ID,
		"items":   []gin.H{{"id_menu": env.menuA.ID, "qty": 3}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Transaksi models.Transaksi `json:"transaksi"`
			Total     float64          `json:"total"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "Order placed successfully", resp.Message)
	assert.Equal(t, 27000.0, resp.Data.Total)
	assert.Equal(t, models.StatusBelumDikonfirm, resp.Data.Transaksi.Status)
	assert.Len(t, resp.Data.Transaksi.Detail, 1)
	assert.Equal(t, 9000.0, resp.Data.Transaksi.Detail[0].HargaBeli)
}

func TestCreateTransaksiCrossStanRejected(t *testing.T) {
	env := setupTestEnv(t)
	menuB := models.Menu{NamaMakanan: "Es Teh", Harga: 5000, Jenis: models.JenisMinuman, StanID: env.stanB.ID}
	env.db.Create(&menuB)

	w := env.request(t, "POST", "/siswa/transaksi", env.siswaToken, gin.H{
		"id_stan": env.stanA.ID,
		"items":   []gin.H{{"id_menu": menuB.ID, "qty": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	env.db.Model(&models.Transaksi{}).Count(&count)
	assert.Equal(t, int64(0), count)
	env.db.Model(&models.DetailTransaksi{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateTransaksiRequiresSiswaRole(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, "POST", "/siswa/transaksi", env.stanAToken, gin.H{
		"id_stan": env.stanA.ID,
		"items":   []gin.H{{"id_menu": env.menuA.ID, "qty": 1}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "POST", "/siswa/transaksi", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	orderID := env.placeOrder(t, 1)
	path := fmt.Sprintf("/stan/transaksi/%d/status", orderID)

	// Stan lain ditolak
	w := env.request(t, "PUT", path, env.stanBToken, gin.H{"status": models.StatusDimasak})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Pemilik boleh maju
	w = env.request(t, "PUT", path, env.stanAToken, gin.H{"status": models.StatusDimasak})
	assert.Equal(t, http.StatusOK, w.Code)

	// Dan mundur lagi: perilaku permisif didokumentasikan di sini
	w = env.request(t, "PUT", path, env.stanAToken, gin.H{"status": models.StatusBelumDikonfirm})
	assert.Equal(t, http.StatusOK, w.Code)

	// Nilai di luar empat status ditolak
	w = env.request(t, "PUT", path, env.stanAToken, gin.H{"status": "dibatalkan"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Siswa bisa cek status
	w = env.request(t, "GET", fmt.Sprintf("/siswa/transaksi/%d/status", orderID), env.siswaToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var statusResp struct {
		Status string `json:"status"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &statusResp))
	assert.Equal(t, models.StatusBelumDikonfirm, statusResp.Status)
}

func TestIncomeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.placeOrder(t, 2) // 20000 bulan berjalan

	w := env.request(t, "GET", "/stan/income", env.stanAToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Month            int             `json:"month"`
		Year             int             `json:"year"`
		TotalIncome      float64         `json:"total_income"`
		TransactionCount int             `json:"transaction_count"`
		DailyBreakdown   map[int]float64 `json:"daily_breakdown"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int(time.Now().Month()), resp.Month)
	assert.Equal(t, time.Now().Year(), resp.Year)
	assert.Equal(t, 20000.0, resp.TotalIncome)
	assert.Equal(t, 1, resp.TransactionCount)
	assert.Equal(t, map[int]float64{time.Now().Day(): 20000}, resp.DailyBreakdown)

	// Bulan tanpa transaksi
	w = env.request(t, "GET", "/stan/income/1/2020", env.stanAToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp.DailyBreakdown = nil // json.Unmarshal merges into a non-nil map instead of replacing it
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.TotalIncome)
	assert.Equal(t, 0, resp.TransactionCount)
	assert.Empty(t, resp.DailyBreakdown)
}

func TestGetTransaksiOwnership(t *testing.T) {
	env := setupTestEnv(t)
	orderID := env.placeOrder(t, 1)

	w := env.request(t, "GET", fmt.Sprintf("/siswa/transaksi/%d", orderID), env.siswaToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Stan lain tidak boleh melihat transaksi stan A
	w = env.request(t, "GET", fmt.Sprintf("/stan/transaksi/%d", orderID), env.stanBToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "GET", "/siswa/transaksi/9999", env.siswaToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
