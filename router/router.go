package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/kantinku/kantin-app/controllers"
	"github.com/kantinku/kantin-app/middlewares"
	"github.com/kantinku/kantin-app/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db)
	menuCtrl := controllers.NewMenuController(db)
	diskonCtrl := controllers.NewDiskonController(db)
	transCtrl := controllers.NewTransactionController(db)
	stanCtrl := controllers.NewStanController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	// 5 request per detik per IP untuk login/register
	authLimiter := middlewares.NewAuthRateLimiter(rate.Limit(5), 10)
	public := r.Group("/")
	public.Use(authLimiter.Limit())
	{
		public.POST("/register/siswa", authCtrl.RegisterSiswa)
		public.POST("/register/stan", authCtrl.RegisterStan)
		public.POST("/login", authCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	// MENU (lihat: semua role, mutasi: admin stan)
	auth.GET("/menu", menuCtrl.GetAllMenus)
	auth.GET("/menu/:id", menuCtrl.GetMenuByID)

	menuAdmin := auth.Group("/menu")
	menuAdmin.Use(middlewares.RequireRole(models.RoleAdminStan))
	{
		menuAdmin.POST("", menuCtrl.CreateMenu)
		menuAdmin.PUT("/:id", menuCtrl.UpdateMenu)
		menuAdmin.DELETE("/:id", menuCtrl.DeleteMenu)
	}

	// DISKON (lihat: semua role, mutasi: admin stan)
	auth.GET("/diskon", diskonCtrl.GetAllDiskon)
	auth.GET("/diskon/active", diskonCtrl.GetActiveDiskon)
	auth.GET("/diskon/:id", diskonCtrl.GetDiskonByID)

	diskonAdmin := auth.Group("/diskon")
	diskonAdmin.Use(middlewares.RequireRole(models.RoleAdminStan))
	{
		diskonAdmin.POST("", diskonCtrl.CreateDiskon)
		diskonAdmin.PUT("/:id", diskonCtrl.UpdateDiskon)
		diskonAdmin.DELETE("/:id", diskonCtrl.DeleteDiskon)
		diskonAdmin.POST("/:id/menu/:menu_id", diskonCtrl.AttachMenu)
		diskonAdmin.DELETE("/:id/menu/:menu_id", diskonCtrl.DetachMenu)
	}

	// TRANSAKSI sisi siswa
	siswa := auth.Group("/siswa")
	siswa.Use(middlewares.RequireRole(models.RoleSiswa))
	{
		siswa.POST("/transaksi", transCtrl.CreateTransaksi)
		siswa.GET("/transaksi", transCtrl.GetSiswaTransaksi)
		siswa.GET("/transaksi/bulan/:month/:year", transCtrl.GetSiswaTransaksi)
		siswa.GET("/transaksi/:id", transCtrl.GetTransaksiByID)
		siswa.GET("/transaksi/:id/status", transCtrl.CheckStatus)
	}

	// TRANSAKSI dan income sisi stan
	stan := auth.Group("/stan")
	stan.Use(middlewares.RequireRole(models.RoleAdminStan))
	{
		stan.GET("/transaksi", transCtrl.GetStanTransaksi)
		stan.GET("/transaksi/bulan/:month/:year", transCtrl.GetStanTransaksi)
		stan.GET("/transaksi/:id", transCtrl.GetTransaksiByID)
		stan.PUT("/transaksi/:id/status", transCtrl.UpdateStatus)
		stan.GET("/transaksi/:id/status", transCtrl.CheckStatus)

		stan.GET("/income", stanCtrl.IncomeByMonth)
		stan.GET("/income/:month/:year", stanCtrl.IncomeByMonth)
	}

	return r
}
