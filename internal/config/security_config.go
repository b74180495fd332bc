// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Admin access token required
)

// Route names registered by the HTTP router.
const (
	RouteHealth = "health"
	RouteImages = "images"

	RouteLogin = "auth.login"
	RouteMe    = "auth.me"

	RouteDashboard = "dashboard.stats"

	RouteListCustomers     = "customers.list"
	RouteCreateCustomer    = "customers.create"
	RouteNextCustomerCode  = "customers.next_code"
	RouteGetCustomer       = "customers.get"
	RouteUpdateCustomer    = "customers.update"
	RouteSetCustomerStatus = "customers.set_status"

	RouteListCars       = "cars.list"
	RouteCreateCar      = "cars.create"
	RouteGetCar         = "cars.get"
	RouteUpdateCar      = "cars.update"
	RouteUploadCarImage = "cars.upload_image"

	RouteListRentals    = "rentals.list"
	RouteCreateRental   = "rentals.create"
	RouteNextInvoice    = "rentals.next_invoice"
	RouteListOverdue    = "rentals.overdue"
	RouteGetRental      = "rentals.get"
	RoutePreviewReturn  = "rentals.preview_return"
	RouteCompleteRental = "rentals.complete"

	RouteQuote   = "pricing.quote"
	RoutePenalty = "pricing.penalty"
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public
	RouteHealth: SecurityPublic,
	RouteImages: SecurityPublic,
	RouteLogin:  SecurityPublic,

	// Auth - Access Protected
	RouteMe: SecurityAccess,

	// Dashboard
	RouteDashboard: SecurityAccess,

	// Customers - All Access Protected
	RouteListCustomers:     SecurityAccess,
	RouteCreateCustomer:    SecurityAccess,
	RouteNextCustomerCode:  SecurityAccess,
	RouteGetCustomer:       SecurityAccess,
	RouteUpdateCustomer:    SecurityAccess,
	RouteSetCustomerStatus: SecurityAccess,

	// Cars - All Access Protected
	RouteListCars:       SecurityAccess,
	RouteCreateCar:      SecurityAccess,
	RouteGetCar:         SecurityAccess,
	RouteUpdateCar:      SecurityAccess,
	RouteUploadCarImage: SecurityAccess,

	// Rentals - All Access Protected
	RouteListRentals:    SecurityAccess,
	RouteCreateRental:   SecurityAccess,
	RouteNextInvoice:    SecurityAccess,
	RouteListOverdue:    SecurityAccess,
	RouteGetRental:      SecurityAccess,
	RoutePreviewReturn:  SecurityAccess,
	RouteCompleteRental: SecurityAccess,

	// Pricing helpers
	RouteQuote:   SecurityAccess,
	RoutePenalty: SecurityAccess,
}

// GetSecurityLevel returns the security level for a route.
// Unknown routes default to the strictest level.
func GetSecurityLevel(route string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[route]; ok {
		return level
	}
	return SecurityAccess
}
