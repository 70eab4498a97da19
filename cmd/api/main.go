package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rainadr/kasirkopi-backend/api/routes"
	authsvc "github.com/rainadr/kasirkopi-backend/internal/auth"
	"github.com/rainadr/kasirkopi-backend/internal/checkout"
	"github.com/rainadr/kasirkopi-backend/internal/employees"
	"github.com/rainadr/kasirkopi-backend/internal/inventory"
	"github.com/rainadr/kasirkopi-backend/internal/orders"
	"github.com/rainadr/kasirkopi-backend/internal/printing"
	"github.com/rainadr/kasirkopi-backend/internal/products"
	"github.com/rainadr/kasirkopi-backend/internal/receipt"
	"github.com/rainadr/kasirkopi-backend/internal/reports"
	"github.com/rainadr/kasirkopi-backend/internal/shifts"
	"github.com/rainadr/kasirkopi-backend/pkg/config"
	"github.com/rainadr/kasirkopi-backend/pkg/db"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
	"github.com/rainadr/kasirkopi-backend/pkg/metrics"
	"github.com/rainadr/kasirkopi-backend/pkg/migrate"
	"github.com/rainadr/kasirkopi-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)

	productsRepo := products.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	shiftsRepo := shifts.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	reportsRepo := reports.NewRepository(dbClient.DB())
	employeesRepo := employees.NewRepository(dbClient.DB())

	formatter := receipt.NewFormatter(receipt.Profile{
		Width:       cfg.Receipt.Width,
		HeaderLines: outletHeaderLines(cfg.Outlet),
		FooterLines: receiptFooterLines(cfg.Receipt),
		FeedLines:   cfg.Receipt.FeedLines,
	})

	printer, err := printing.NewLogSpooler(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create receipt spooler", err)
		os.Exit(1)
	}

	productsService, err := products.NewService(productsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventoryRepo, productsRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	shiftsService, err := shifts.NewService(shiftsRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shifts service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, dbClient, formatter, printer, checkoutMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		ordersRepo,
		productsRepo,
		inventoryService,
		shiftsService,
		dbClient,
		formatter,
		printer,
		redisClient,
		checkoutMetrics,
		cfg.Checkout,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	location, err := time.LoadLocation(cfg.Outlet.Timezone)
	if err != nil {
		logg.Warn(context.Background(), "unknown outlet timezone, falling back to UTC")
		location = time.UTC
	}

	reportsService, err := reports.NewService(reportsRepo, location)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	employeesService, err := employees.NewService(employeesRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create employees service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		EmployeeRepo: employeesRepo,
		SessionStore: redisClient,
		JWTConfig:    cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"outlet": cfg.Outlet.Name,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Auth:      authService,
			Checkout:  checkoutService,
			Orders:    ordersService,
			Products:  productsService,
			Inventory: inventoryService,
			Shifts:    shiftsService,
			Reports:   reportsService,
			Employees: employeesService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// outletHeaderLines builds the receipt header from the outlet profile,
// skipping blank lines so a missing phone number does not leave a gap.
func outletHeaderLines(outlet config.OutletConfig) []string {
	var lines []string
	for _, line := range []string{outlet.Name, outlet.Address, outlet.Phone} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func receiptFooterLines(rc config.ReceiptConfig) []string {
	var lines []string
	for _, line := range []string{rc.FooterLine1, rc.FooterLine2} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
