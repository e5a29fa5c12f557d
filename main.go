package main

import (
	"context"

	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/pkg/logging"
	"backend/pkg/mailer"
	"backend/pkg/metrics"
	"backend/queue"
	"backend/repository"
	"backend/routes"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	log := logging.New("main")
	cfg := configs.LoadConfig()

	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	if err := configs.SeedAdmin(); err != nil {
		log.Warn().Err(err).Msg("seed admin")
	}
	if err := configs.SeedWelcomeCoupon(); err != nil {
		log.Warn().Err(err).Msg("seed welcome coupon")
	}

	db := configs.DB()
	rdb := configs.NewRedisClient(cfg)
	m := metrics.NewServerMetrics()

	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	addressRepo := repository.NewAddressRepository(db)

	gateway := services.NewHMACGateway(cfg.GatewayKeyID, cfg.GatewaySecret)
	locker := services.NewCheckoutLocker(rdb)
	publisher := queue.NewPublisher(cfg.AMQPURL, logging.New("queue"))
	mail := mailer.New(cfg.SMTPAddr, cfg.SMTPFrom, logging.New("mailer"))

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	catalogSvc := services.NewCatalogService(productRepo, reviewRepo)
	vendorSvc := services.NewVendorService(db, vendorRepo, productRepo, userRepo)
	cartSvc := services.NewCartService(db, cartRepo, productRepo)
	couponSvc := services.NewCouponService(couponRepo, userRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, orderRepo, productRepo, invoiceRepo,
		couponSvc, gateway, locker, rdb, m, logging.New("checkout"))
	paymentSvc := services.NewPaymentService(db, orderRepo, invoiceRepo, cartRepo, userRepo,
		gateway, locker, publisher, logging.New("payment"))
	orderSvc := services.NewOrderService(db, orderRepo, invoiceRepo, productRepo, vendorRepo)
	reviewSvc := services.NewReviewService(reviewRepo, productRepo)
	wishlistSvc := services.NewWishlistService(wishlistRepo, productRepo)
	addressSvc := services.NewAddressService(addressRepo)
	adminSvc := services.NewAdminService(db, userRepo, vendorRepo)
	reminderSvc := services.NewReminderService(orderRepo, mail, publisher, cfg.ReminderHour, logging.New("reminder"))

	if cfg.AMQPURL != "" {
		consumer := queue.NewConsumer(cfg.AMQPURL, mail, logging.New("consumer"))
		go consumer.Start()
	}
	go reminderSvc.Run(context.Background())

	ctrl := &routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Catalog:  controllers.NewCatalogController(catalogSvc, reviewSvc),
		Vendor:   controllers.NewVendorController(vendorSvc),
		Cart:     controllers.NewCartController(cartSvc),
		Checkout: controllers.NewCheckoutController(checkoutSvc, paymentSvc),
		Payment:  controllers.NewPaymentController(paymentSvc),
		Order:    controllers.NewOrderController(orderSvc),
		Coupon:   controllers.NewCouponController(couponSvc),
		Review:   controllers.NewReviewController(reviewSvc),
		Wishlist: controllers.NewWishlistController(wishlistSvc),
		Address:  controllers.NewAddressController(addressSvc),
		Admin:    controllers.NewAdminController(adminSvc, couponSvc),
	}

	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.MetricsMiddleware(m))
	routes.RegisterRoutes(r, cfg.JWTSecret, ctrl)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
