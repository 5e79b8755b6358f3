package main

import (
	"context"
	"log"

	"ticketera/config"
	"ticketera/internal/cache"
	"ticketera/internal/chain"
	"ticketera/internal/chain/contract"
	"ticketera/internal/database"
	"ticketera/internal/handler"
	"ticketera/internal/repository"
	"ticketera/internal/service"
	"ticketera/internal/worker"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	node, err := chain.Dial(ctx, &cfg.Chain)
	if err != nil {
		log.Fatalf("Failed to connect to chain node: %v", err)
	}
	defer node.Close()

	ticketManager, err := contract.NewTicketManager(
		common.HexToAddress(cfg.Chain.ContractAddress),
		node.Backend(),
	)
	if err != nil {
		log.Fatalf("Failed to bind TicketManager contract: %v", err)
	}

	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	inventory := cache.NewEventInventory(rdb)

	authService := service.NewAuthService(userRepo, &cfg.Auth)
	eventService := service.NewEventService(eventRepo, inventory)
	purchaseService := service.NewPurchaseService(
		pool, eventRepo, ticketRepo, inventory, node, ticketManager, cfg.Chain.MetadataBaseURL)
	ticketService := service.NewTicketService(
		ticketRepo, node, ticketManager, cfg.Chain.MetadataBaseURL)

	reconciler := worker.NewReconcileWorker(
		pool, eventRepo, ticketRepo, inventory, node, ticketManager, cfg.Chain.ReconcileInterval)
	reconciler.Start(ctx)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	authRequired := handler.AuthMiddleware(authService)
	handler.NewAuthHandler(authService).RegisterRoutes(router, authRequired)
	handler.NewEventHandler(eventService, purchaseService).RegisterRoutes(router, authRequired)
	handler.NewTicketHandler(ticketService).RegisterRoutes(router, authRequired)
	handler.NewMetadataHandler(ticketService).RegisterRoutes(router)
	handler.NewAdminHandler(authService, ticketService).RegisterRoutes(router, authRequired)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
