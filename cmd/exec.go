package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"github.com/djdiegocosta/ticketbuy/config"
	"github.com/djdiegocosta/ticketbuy/handlers"
	_ "github.com/djdiegocosta/ticketbuy/migrations"
	"github.com/djdiegocosta/ticketbuy/security"
	"github.com/djdiegocosta/ticketbuy/services"
	"github.com/djdiegocosta/ticketbuy/store"
	"github.com/djdiegocosta/ticketbuy/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	st := store.NewPocketBaseStore(app)
	eventService := services.NewEventService(st)
	notifyService := services.NewNotifyService(cfg, pn)
	pixProvider := services.NewPixProvider(cfg)
	checkoutService := services.NewCheckoutService(st, eventService, pixProvider, notifyService, cfg)
	webhookService := services.NewWebhookService(st, checkoutService)

	// Initialize handlers
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	eventHandler := handlers.NewEventHandler(eventService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	rateLimiter := security.NewRateLimiter(redisClient, cfg.CheckoutRateLimit, cfg.CheckoutRateWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Start background tasks
	go checkoutService.SweepOrphanSales(ctx)
	go checkoutService.ReapSessions(ctx)

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Event endpoint
		e.Router.GET("/api/v1/event", eventHandler.GetActiveEvent)

		// Checkout endpoints
		checkout := e.Router.Group("/api/v1/checkout")
		checkout.BindFunc(rateLimiter.AntiBot)
		checkout.POST("/sessions", checkoutHandler.StartSession).BindFunc(rateLimiter.CheckoutLimit)
		checkout.POST("/sessions/{sessionId}/buyer", checkoutHandler.SubmitBuyer)
		checkout.POST("/sessions/{sessionId}/quantity", checkoutHandler.SetQuantity)
		checkout.POST("/sessions/{sessionId}/participants", checkoutHandler.SubmitParticipants)
		checkout.GET("/sessions/{sessionId}/summary", checkoutHandler.GetSummary)
		checkout.POST("/sessions/{sessionId}/pay", checkoutHandler.Pay).BindFunc(rateLimiter.CheckoutLimit)
		checkout.GET("/sessions/{sessionId}", checkoutHandler.GetStatus)

		// Payment webhook
		e.Router.POST("/api/v1/webhooks/payment", webhookHandler.PaymentWebhook)

		// Test endpoint for payment simulation
		if cfg.Environment == "development" && cfg.PaymentProvider == "mock" {
			e.Router.POST("/api/v1/test/simulate-payment", webhookHandler.SimulatePayment)
		}

		// Metrics
		if cfg.EnableMetrics {
			e.Router.GET("/metrics", func(e *core.RequestEvent) error {
				promhttp.Handler().ServeHTTP(e.Response, e.Request)
				return nil
			})
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	return app.Start()
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
