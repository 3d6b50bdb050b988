package app

import (
	"database/sql"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-payroll/internal/employee"
	"go-payroll/internal/loan"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/period"
	"go-payroll/internal/ratetable"
	"go-payroll/internal/remittance"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutory"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	componentRepo := salarycomponent.NewRepository(gormDB)
	rateTableRepo := ratetable.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	periodRepo := period.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	remittanceRepo := remittance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Calculation core ---
	resolver := ratetable.NewResolver(rateTableRepo, rateTableCacheTTL())
	statutoryCalculator := statutory.NewCalculator(resolver)
	payrollCalculator := payroll.NewCalculator(
		payrollCountry(),
		componentRepo,
		statutoryCalculator,
		loanRepo,
	)

	// --- Services ---
	componentService := salarycomponent.NewService(db, componentRepo)
	rateTableService := ratetable.NewService(rateTableRepo, resolver)
	loanService := loan.NewService(db, loanRepo)
	periodService := period.NewService(db, periodRepo, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo, periodRepo, employeeRepo, loanRepo, payrollCalculator, outboxRepo)
	remittanceService := remittance.NewService(db, remittanceRepo, periodRepo, payrollRepo, remittanceDays())

	// --- Handlers ---
	componentHandler := salarycomponent.NewHandler(componentService)
	rateTableHandler := ratetable.NewHandler(rateTableService)
	loanHandler := loan.NewHandler(loanService)
	periodHandler := period.NewHandler(periodService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	remittanceHandler := remittance.NewHandler(remittanceService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		salarycomponent.RegisterRoutes(api, componentHandler)
		ratetable.RegisterRoutes(api, rateTableHandler)
		loan.RegisterRoutes(api, loanHandler)
		period.RegisterRoutes(api, periodHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		remittance.RegisterRoutes(api, remittanceHandler)
	}

	return nil
}

func payrollCountry() string {
	if country := os.Getenv("PAYROLL_COUNTRY"); country != "" {
		return country
	}
	return "KE"
}

func remittanceDays() int {
	if raw := os.Getenv("REMITTANCE_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			return days
		}
	}
	return remittance.DefaultRemittanceDays
}

func rateTableCacheTTL() time.Duration {
	if raw := os.Getenv("RATE_TABLE_CACHE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			return ttl
		}
	}
	return 5 * time.Minute
}
