// File: solvo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solvo/config"
	"solvo/cron"
	"solvo/handlers"
	"solvo/middleware"
	"solvo/routes"
	"solvo/services/booking"
	"solvo/services/catalog"
	"solvo/services/chat"
	"solvo/services/dashboard"
	"solvo/services/enquiry"
	"solvo/session"
	"solvo/upstream"
	"solvo/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	session.InitSessionClient()
	sessionStore := session.NewRedisStore(session.GetSessionClient(), config.SessionTTL())

	api := upstream.New(config.AppConfig.UpstreamBaseURL, config.UpstreamTimeout(), logger)

	var chatSvc *chat.Service
	if config.AppConfig.ChatRelayEnabled {
		queueClient := cron.NewChatQueueClient()
		defer queueClient.Close()
		chatSvc = chat.NewService(queueClient, logger)
		cron.InitChatRelayWorker(api)
	} else {
		chatSvc = chat.NewService(nil, logger)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.SessionMiddleware(sessionStore))

	handlerBundle := &handlers.HandlerBundle{
		API:       api,
		Booking:   booking.NewService(api, logger),
		Enquiry:   enquiry.NewService(api, logger),
		Dashboard: dashboard.NewService(api, logger),
		Chat:      chatSvc,
		Catalog:   catalog.NewService(api, logger),
		Converter: catalog.NewConverter(config.AppConfig.CurrencyAPIURL, 10*time.Second, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
