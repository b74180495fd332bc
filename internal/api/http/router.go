package http

import (
	"net/http"

	"rentcar-backend/internal/config"
	"rentcar-backend/internal/security"
	"rentcar-backend/internal/service"
	"rentcar-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Services are the application services behind the API.
type Services struct {
	Auth      service.AuthService
	Dashboard service.DashboardService
	Customers service.CustomerService
	Cars      service.CarService
	Rentals   service.RentalService
}

type Options struct {
	MaxUploadBytes    int64
	AllowedImageTypes []string
	AllowedOrigins    []string
}

// Handler serves the admin panel API.
type Handler struct {
	svc    Services
	images storage.StorageInterface
	opts   Options
}

func NewHandler(svc Services, images storage.StorageInterface, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	if len(opts.AllowedImageTypes) == 0 {
		opts.AllowedImageTypes = []string{"image/jpeg", "image/png"}
	}
	return &Handler{svc: svc, images: images, opts: opts}
}

// NewRouter wires every route under its configured name so the auth
// middleware can look up the required security level.
func NewRouter(svc Services, tokens security.TokenManager, images storage.StorageInterface, opts Options) http.Handler {
	h := NewHandler(svc, images, opts)
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(NewAuthMiddleware(tokens).Middleware)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet).Name(config.RouteHealth)
	r.HandleFunc("/images/{key:.+}", h.ServeImage).Methods(http.MethodGet).Name(config.RouteImages)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost).Name(config.RouteLogin)
	api.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet).Name(config.RouteMe)

	api.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet).Name(config.RouteDashboard)

	api.HandleFunc("/customers", h.ListCustomers).Methods(http.MethodGet).Name(config.RouteListCustomers)
	api.HandleFunc("/customers", h.CreateCustomer).Methods(http.MethodPost).Name(config.RouteCreateCustomer)
	api.HandleFunc("/customers/next-code", h.NextCustomerCode).Methods(http.MethodGet).Name(config.RouteNextCustomerCode)
	api.HandleFunc("/customers/{id:[0-9]+}", h.GetCustomer).Methods(http.MethodGet).Name(config.RouteGetCustomer)
	api.HandleFunc("/customers/{id:[0-9]+}", h.UpdateCustomer).Methods(http.MethodPut).Name(config.RouteUpdateCustomer)
	api.HandleFunc("/customers/{id:[0-9]+}/status", h.SetCustomerStatus).Methods(http.MethodPut).Name(config.RouteSetCustomerStatus)

	api.HandleFunc("/cars", h.ListCars).Methods(http.MethodGet).Name(config.RouteListCars)
	api.HandleFunc("/cars", h.CreateCar).Methods(http.MethodPost).Name(config.RouteCreateCar)
	api.HandleFunc("/cars/{id:[0-9]+}", h.GetCar).Methods(http.MethodGet).Name(config.RouteGetCar)
	api.HandleFunc("/cars/{id:[0-9]+}", h.UpdateCar).Methods(http.MethodPut).Name(config.RouteUpdateCar)
	api.HandleFunc("/cars/{id:[0-9]+}/image", h.UploadCarImage).Methods(http.MethodPost).Name(config.RouteUploadCarImage)

	api.HandleFunc("/rentals", h.ListRentals).Methods(http.MethodGet).Name(config.RouteListRentals)
	api.HandleFunc("/rentals", h.CreateRental).Methods(http.MethodPost).Name(config.RouteCreateRental)
	api.HandleFunc("/rentals/next-invoice", h.NextInvoiceNumber).Methods(http.MethodGet).Name(config.RouteNextInvoice)
	api.HandleFunc("/rentals/overdue", h.ListOverdue).Methods(http.MethodGet).Name(config.RouteListOverdue)
	api.HandleFunc("/rentals/{id:[0-9]+}", h.GetRental).Methods(http.MethodGet).Name(config.RouteGetRental)
	api.HandleFunc("/rentals/{id:[0-9]+}/return-preview", h.PreviewReturn).Methods(http.MethodGet).Name(config.RoutePreviewReturn)
	api.HandleFunc("/rentals/{id:[0-9]+}/complete", h.CompleteRental).Methods(http.MethodPost).Name(config.RouteCompleteRental)

	api.HandleFunc("/pricing/quote", h.Quote).Methods(http.MethodPost).Name(config.RouteQuote)
	api.HandleFunc("/pricing/penalty", h.Penalty).Methods(http.MethodGet).Name(config.RoutePenalty)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return CORSMiddleware(opts.AllowedOrigins, r)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
