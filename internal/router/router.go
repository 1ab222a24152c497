package router

import (
	"time"

	"restomate/internal/config"
	"restomate/internal/handler"
	"restomate/internal/middleware"
	"restomate/internal/model"
	"restomate/internal/repository"
	"restomate/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, receipts service.ReceiptEnqueuer) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	restaurantRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	billRepo := repository.NewBillRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(restaurantRepo, userRepo, employeeRepo, cfg)
	menuSvc := service.NewMenuService(menuRepo, rdb)
	employeeSvc := service.NewEmployeeService(employeeRepo)
	billSvc := service.NewBillService(billRepo, receipts)
	reportSvc := service.NewReportService(reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	restaurantsH := handler.NewRestaurantsHandler(authSvc)
	menuH := handler.NewMenuHandler(menuSvc)
	employeesH := handler.NewEmployeesHandler(employeeSvc)
	billsH := handler.NewBillsHandler(billSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	users := r.Group("/users")
	{
		users.POST("/register", authH.Register)
		users.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		users.POST("/refresh", authH.Refresh)
	}

	// Protected routes — every tenant-scoped group also passes TenantGuard,
	// which pins :restaurantId to the token's restaurant.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	tenantMW := middleware.TenantGuard()
	managers := middleware.RequireRole(model.RoleOwner, model.RoleManager)
	anyRole := middleware.RequireRole(model.RoleOwner, model.RoleManager, model.RoleStaff)

	r.GET("/restaurants/me", jwtMW, restaurantsH.Me)

	menu := r.Group("/menu/:restaurantId", jwtMW, tenantMW)
	{
		menu.GET("", anyRole, menuH.List)
		menu.POST("", managers, menuH.Create)
		menu.PUT("/:itemId", managers, menuH.Update)
		menu.DELETE("/:itemId", managers, menuH.Delete)
	}

	employees := r.Group("/employees", jwtMW)
	{
		employees.GET("/:restaurantId", tenantMW, anyRole, employeesH.List)
		employees.POST("/:restaurantId", tenantMW, managers, employeesH.Create)
		employees.PUT("/:restaurantId/:employeeId", tenantMW, managers, employeesH.Update)
		employees.DELETE("/:restaurantId/:employeeId", tenantMW, managers, employeesH.Delete)
		employees.POST("/attendance/:restaurantId", tenantMW, managers, employeesH.MarkAttendance)
		employees.GET("/attendance/:restaurantId", tenantMW, anyRole, employeesH.Attendance)
	}

	bills := r.Group("/bills", jwtMW)
	{
		bills.POST("", anyRole, billsH.Place)
		bills.GET("/count/:restaurantId", tenantMW, anyRole, billsH.Count)
		bills.GET("/:restaurantId", tenantMW, anyRole, billsH.List)
		bills.GET("/:restaurantId/:billId", tenantMW, anyRole, billsH.Get)
	}

	reports := r.Group("/reports", jwtMW)
	{
		reports.GET("/summary/:restaurantId", tenantMW, managers, reportsH.Summary)
		reports.GET("/item-revenues/:restaurantId", tenantMW, managers, reportsH.ItemRevenues)
		reports.GET("/category-revenues/:restaurantId", tenantMW, managers, reportsH.CategoryRevenues)
		reports.GET("/popular-items/:restaurantId", tenantMW, managers, reportsH.PopularItems)
		reports.GET("/sales-trend/:restaurantId", tenantMW, managers, reportsH.SalesTrend)
		reports.GET("/compare/:restaurantId", tenantMW, managers, reportsH.Compare)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
