package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Farmadist-api/internal/application/analytics"
	"github.com/jhoicas/Farmadist-api/internal/application/auth"
	"github.com/jhoicas/Farmadist-api/internal/application/inventory"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/application/psr"
	"github.com/jhoicas/Farmadist-api/internal/application/usecase"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// MiddlewareConfig parámetros de la cadena de middleware global.
type MiddlewareConfig struct {
	AllowOrigins    string
	RateLimitMax    int
	RateLimitWindow time.Duration
	LimiterStorage  fiber.Storage // nil = memoria del proceso
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Sessions     SessionResolver
	UserUC       *usecase.UserUseCase
	RoleUC       *usecase.RoleUseCase
	StoreUC      *usecase.StoreUseCase
	ProductUC    *usecase.ProductUseCase
	CollectionUC *usecase.CollectionUseCase
	ActivityUC   *usecase.ActivityUseCase
	Movements    *inventory.RegisterMovementUseCase
	Ledger       *inventory.LedgerUseCase
	ExpirySweep  *inventory.ExpirySweepUseCase
	LedgerPDF    ports.LedgerPDFRenderer
	PSRSync      *psr.SyncUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Cookies      CookieConfig
}

// UseMiddleware registra recover → request id → logger → CORS → rate limiter.
// El limitador no cuenta las peticiones que traen una cookie de sesión válida.
func UseMiddleware(app *fiber.App, sessions SessionResolver, log zerolog.Logger, cfg MiddlewareConfig) {
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, " + HeaderCSRF,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	maxReq := cfg.RateLimitMax
	if maxReq <= 0 {
		maxReq = 100
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = 15 * time.Minute
	}
	app.Use(limiter.New(limiter.Config{
		Max:               maxReq,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           cfg.LimiterStorage,
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next: func(c *fiber.Ctx) bool {
			token := c.Cookies(CookieSession)
			if token == "" {
				return false
			}
			_, _, err := sessions.Resolve(c.UserContext(), token)
			return err == nil
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "demasiadas peticiones, intente más tarde")
		},
	}))
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusOK, "ok", fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	session := SessionMiddleware(deps.Sessions)
	csrf := CSRFMiddleware(deps.Sessions)
	admin := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookies)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	// La rotación CSRF solo exige sesión: sirve justamente cuando el token anterior venció.
	authGroup.Post("/csrf", session, authHandler.RefreshCSRF)
	authGroup.Post("/logout", session, csrf, authHandler.Logout)
	authGroup.Get("/me", session, authHandler.Me)

	// Rutas protegidas (cookie de sesión + CSRF en métodos que mutan)
	protected := api.Group("/", session, csrf)

	userHandler := NewUserHandler(deps.UserUC, deps.RoleUC)
	users := protected.Group("/users", admin)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	roles := protected.Group("/roles")
	roles.Get("/", userHandler.ListRoles)
	roles.Post("/", admin, userHandler.CreateRole)

	storeHandler := NewStoreHandler(deps.StoreUC)
	stores := protected.Group("/stores")
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Post("/", admin, storeHandler.Create)
	stores.Put("/:id", admin, storeHandler.Update)
	stores.Delete("/:id", admin, storeHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	invHandler := NewInventoryHandler(deps.Movements, deps.Ledger, deps.ExpirySweep, deps.LedgerPDF)
	inv := protected.Group("/inventory")
	inv.Post("/batches", invHandler.ReceiveBatch)
	inv.Get("/batches", invHandler.ListBatches)
	inv.Get("/items", invHandler.ListItems)
	inv.Get("/items/:id", invHandler.GetItem)
	inv.Post("/items/:id/movements", invHandler.PostMovement)
	inv.Post("/transfers", invHandler.Transfer)
	inv.Get("/movements", invHandler.MovementHistory)
	inv.Get("/movements/report", invHandler.MovementReport)
	inv.Post("/expiry-sweep", admin, invHandler.RunExpirySweep)

	psrHandler := NewPSRHandler(deps.PSRSync)
	psrs := protected.Group("/psrs")
	psrs.Get("/", psrHandler.List)
	psrs.Post("/sync", admin, psrHandler.Sync)

	dashHandler := NewDashboardHandler(deps.DashboardUC, deps.ActivityUC)
	protected.Get("/dashboard", dashHandler.GetSummary)
	protected.Get("/activity-logs", admin, dashHandler.ListActivity)

	colHandler := NewCollectionHandler(deps.CollectionUC)
	cols := protected.Group("/collections")
	cols.Get("/", colHandler.List)
	cols.Post("/", colHandler.Create)
	cols.Get("/:id", colHandler.GetByID)
	cols.Put("/:id", colHandler.Update)
	cols.Delete("/:id", colHandler.Delete)
}
