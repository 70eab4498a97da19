package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rainadr/kasirkopi-backend/api/controllers"
	"github.com/rainadr/kasirkopi-backend/api/middleware"
	authsvc "github.com/rainadr/kasirkopi-backend/internal/auth"
	checkoutsvc "github.com/rainadr/kasirkopi-backend/internal/checkout"
	employeesvc "github.com/rainadr/kasirkopi-backend/internal/employees"
	inventorysvc "github.com/rainadr/kasirkopi-backend/internal/inventory"
	ordersvc "github.com/rainadr/kasirkopi-backend/internal/orders"
	productsvc "github.com/rainadr/kasirkopi-backend/internal/products"
	reportsvc "github.com/rainadr/kasirkopi-backend/internal/reports"
	shiftsvc "github.com/rainadr/kasirkopi-backend/internal/shifts"
	"github.com/rainadr/kasirkopi-backend/pkg/config"
	dbpkg "github.com/rainadr/kasirkopi-backend/pkg/db"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
	redispkg "github.com/rainadr/kasirkopi-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth      authsvc.Service
	Checkout  checkoutsvc.Service
	Orders    ordersvc.Service
	Products  productsvc.Service
	Inventory inventorysvc.Service
	Shifts    shiftsvc.Service
	Reports   reportsvc.Service
	Employees employeesvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP dbpkg.Pinger,
	redisClient *redispkg.Client,
	services Services,
) http.Handler {
	var redisP redispkg.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(services.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(services.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, logg)).Post("/logout", controllers.AuthLogout(services.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/checkout", controllers.Checkout(services.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(services.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(services.Orders, logg))
			r.Post("/{orderId}/settle", controllers.OrderSettle(services.Orders, logg))
			r.Post("/{orderId}/void", controllers.OrderVoid(services.Orders, logg))
			r.Post("/{orderId}/reprint", controllers.OrderReprint(services.Orders, logg))
		})

		r.Get("/products", controllers.ProductList(services.Products, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(services.Products, logg))
		r.Get("/categories", controllers.CategoryList(services.Products, logg))

		r.Get("/ingredients", controllers.IngredientList(services.Inventory, logg))
		r.Get("/ingredients/{ingredientId}", controllers.IngredientDetail(services.Inventory, logg))
		r.Post("/ingredients/{ingredientId}/adjust", controllers.StockAdjust(services.Inventory, logg))
		r.Get("/ingredients/{ingredientId}/movements", controllers.StockMovementList(services.Inventory, logg))

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", controllers.ShiftOpen(services.Shifts, logg))
			r.Get("/", controllers.ShiftList(services.Shifts, logg))
			r.Get("/active", controllers.ShiftActive(services.Shifts, logg))
			r.Get("/{shiftId}", controllers.ShiftDetail(services.Shifts, logg))
			r.Post("/{shiftId}/close", controllers.ShiftClose(services.Shifts, logg))
		})

		// Menu changes, staff accounts, and the money reports stay
		// owner-only. Cashiers get the register surface above.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.EmployeeRoleOwner.String(), logg))

			r.Post("/products", controllers.ProductCreate(services.Products, logg))
			r.Patch("/products/{productId}", controllers.ProductUpdate(services.Products, logg))
			r.Delete("/products/{productId}", controllers.ProductDelete(services.Products, logg))
			r.Put("/products/{productId}/channel-price", controllers.ProductSetChannelPrice(services.Products, logg))
			r.Put("/products/{productId}/recipe", controllers.ProductSetRecipe(services.Products, logg))

			r.Post("/categories", controllers.CategoryCreate(services.Products, logg))
			r.Patch("/categories/{categoryId}", controllers.CategoryUpdate(services.Products, logg))
			r.Delete("/categories/{categoryId}", controllers.CategoryDelete(services.Products, logg))

			r.Post("/ingredients", controllers.IngredientCreate(services.Inventory, logg))
			r.Patch("/ingredients/{ingredientId}", controllers.IngredientUpdate(services.Inventory, logg))

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", controllers.EmployeeCreate(services.Employees, logg))
				r.Get("/", controllers.EmployeeList(services.Employees, logg))
				r.Get("/{employeeId}", controllers.EmployeeDetail(services.Employees, logg))
				r.Patch("/{employeeId}", controllers.EmployeeUpdate(services.Employees, logg))
				r.Post("/{employeeId}/reset-password", controllers.EmployeeResetPassword(services.Employees, logg))
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", controllers.ReportDaily(services.Reports, logg))
				r.Get("/range", controllers.ReportRange(services.Reports, logg))
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", controllers.ExpenseCreate(services.Reports, logg))
				r.Get("/", controllers.ExpenseList(services.Reports, logg))
				r.Delete("/{expenseId}", controllers.ExpenseDelete(services.Reports, logg))
			})
		})
	})

	return r
}
