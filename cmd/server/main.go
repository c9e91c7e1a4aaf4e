package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"torqrides/internal/api"
	"torqrides/internal/auth"
	"torqrides/internal/cache"
	"torqrides/internal/queue"
	"torqrides/internal/repository"
	"torqrides/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	stripeWebhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	bookingRepo := repository.NewBookingRepository(db)
	motoRepo := repository.NewMotorcycleRepository(db)
	cartRepo := repository.NewCartRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	catalog := cache.NewCatalogCache(cache.NewRedisClient())
	events := queue.NewPublisher()
	defer events.Close()

	stripeSvc := service.NewStripeService()
	senderSvc := service.NewSenderService()
	bookingSvc := service.NewBookingService(bookingRepo, motoRepo, couponRepo, stripeSvc, senderSvc, events)
	motoSvc := service.NewMotorcycleService(motoRepo, catalog)
	cartSvc := service.NewCartService(cartRepo, motoRepo, couponRepo, bookingSvc)
	couponSvc := service.NewCouponService(couponRepo)
	adminSvc := service.NewAdminService(bookingRepo, jobRepo, motoRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(jobRepo, cartRepo, couponRepo)

	bookingHandler := api.NewUserBookingHandler(bookingSvc)
	motoHandler := api.NewMotorcycleHandler(motoSvc)
	cartHandler := api.NewCartHandler(cartSvc)
	adminHandler := api.NewAdminHandler(adminSvc, motoSvc, couponSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)
	stripeHandler := api.NewStripeWebhookHandler(stripeWebhookSecret, bookingSvc, stripeSvc, senderSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/motorcycles", motoHandler.ListMotorcycles).Methods("GET")
	r.HandleFunc("/api/motorcycles/{id}", motoHandler.GetMotorcycle).Methods("GET")
	r.HandleFunc("/api/quote", bookingHandler.Quote).Methods("POST")
	r.HandleFunc("/api/availability", bookingHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/by-session", stripeHandler.GetBookingBySessionIDHandler).Methods("GET")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.UpdateBooking).Methods("PUT")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.CancelBooking).Methods("DELETE")

	// Cart endpoints
	r.HandleFunc("/api/carts/{key}", cartHandler.GetCart).Methods("GET")
	r.HandleFunc("/api/carts/{key}/items", cartHandler.AddItem).Methods("POST")
	r.HandleFunc("/api/carts/{key}/items/{id}", cartHandler.RemoveItem).Methods("DELETE")
	r.HandleFunc("/api/carts/{key}/coupon", cartHandler.ApplyCoupon).Methods("POST")
	r.HandleFunc("/api/carts/{key}/coupon", cartHandler.RemoveCoupon).Methods("DELETE")

	// Stripe webhook
	r.HandleFunc("/api/stripe/webhook", stripeHandler.HandleWebhook).Methods("POST")

	// Admin auth
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/users", adminAuthHandler.CreateUserAdmin).Methods("POST")
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}", adminHandler.UpdateBookingStatus).Methods("PUT")
	admin.HandleFunc("/bookings/{id}", adminHandler.DeleteBooking).Methods("DELETE")
	admin.HandleFunc("/motorcycles", adminHandler.CreateMotorcycle).Methods("POST")
	admin.HandleFunc("/motorcycles/{id}", adminHandler.UpdateMotorcycle).Methods("PUT")
	admin.HandleFunc("/motorcycles/{id}/stock", adminHandler.UpdateStock).Methods("PUT")
	admin.HandleFunc("/motorcycles/{id}", adminHandler.DeleteMotorcycle).Methods("DELETE")
	admin.HandleFunc("/coupons", adminHandler.ListCoupons).Methods("GET")
	admin.HandleFunc("/coupons", adminHandler.CreateCoupon).Methods("POST")
	admin.HandleFunc("/coupons/{code}", adminHandler.DeleteCoupon).Methods("DELETE")

	startJobs(jobSvc)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("FRONTEND_URL")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

func startJobs(jobSvc *service.JobService) {
	c := cron.New(cron.WithLocation(time.UTC))

	c.AddFunc("*/15 * * * *", func() {
		if err := jobSvc.CompleteFinishedBookings(); err != nil {
			log.Printf("Cron CompleteFinishedBookings: %v", err)
		}
	})
	c.AddFunc("0 * * * *", func() {
		if n, err := jobSvc.DeleteAbandonedCheckouts(time.Now().UTC().Add(-24 * time.Hour)); err != nil {
			log.Printf("Cron DeleteAbandonedCheckouts: %v", err)
		} else if n > 0 {
			log.Printf("Cron DeleteAbandonedCheckouts: removed %d pending bookings", n)
		}
	})
	c.AddFunc("30 3 * * *", func() {
		if n, err := jobSvc.DeleteStaleCarts(time.Now().UTC().Add(-7 * 24 * time.Hour)); err != nil {
			log.Printf("Cron DeleteStaleCarts: %v", err)
		} else if n > 0 {
			log.Printf("Cron DeleteStaleCarts: removed %d carts", n)
		}
	})
	c.AddFunc("0 4 * * *", func() {
		if err := jobSvc.ExpireCoupons(); err != nil {
			log.Printf("Cron ExpireCoupons: %v", err)
		}
	})

	c.Start()
}
