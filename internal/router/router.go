package router

import (
	"time"

	"simplifique/internal/config"
	"simplifique/internal/handler"
	"simplifique/internal/middleware"
	"simplifique/internal/repository"
	"simplifique/internal/service"
	"simplifique/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// redemption service instance. The service is returned because the expiry
// cron must share it — redemption state changes are serialized through a
// single instance.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) (*gin.Engine, service.ResgateService) {
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
	usuarioRepo := repository.NewUsuarioRepository(db)
	brindeRepo := repository.NewBrindeRepository(db)
	movRepo := repository.NewMovimentacaoRepository(db)
	pontoRepo := repository.NewPontoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	estoqueSvc := service.NewEstoqueService(movRepo)
	catalogoSvc := service.NewCatalogoService(brindeRepo, estoqueSvc)
	resgateSvc := service.NewResgateService(movRepo, brindeRepo, estoqueSvc, dispatcher, rdb)
	pontosSvc := service.NewPontosService(pontoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc, rdb, time.Duration(cfg.CatalogoCacheTTLSeg)*time.Second)
	resgatesH := handler.NewResgatesHandler(resgateSvc)
	pontosH := handler.NewPontosHandler(pontosSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Catalog browsing — no auth required, no side effects
	r.GET("/v1/brindes", catalogoH.ListarVariacoes)
	r.GET("/v1/brindes/produtos", catalogoH.ListarProdutos)
	r.GET("/v1/brindes/:id/estoque", catalogoH.Estoque)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Redemptions: any authenticated user reserves; admins confirm/cancel
		v1.POST("/movimentacoes/resgate", middleware.RequireRole("user", "admin"), resgatesH.Criar)
		v1.POST("/movimentacoes/confirmar", middleware.RequireRole("admin"), resgatesH.Confirmar)
		v1.POST("/movimentacoes/cancelar", middleware.RequireRole("admin"), resgatesH.Cancelar)
		// Listing is self-scoped for users, unrestricted for admins (enforced in the handler)
		v1.GET("/movimentacoes", middleware.RequireRole("user", "admin"), resgatesH.Listar)

		v1.GET("/pontos/saldo", middleware.RequireRole("user", "admin"), pontosH.Saldo)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, resgateSvc
}
