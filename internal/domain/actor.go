package domain

import "strconv"

// Role of the caller as asserted by the gateway
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBarber   Role = "barber"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleBarber || r == RoleAdmin
}

// Actor is whoever triggers an operation.
// For barbers ID is the barber id, for customers it is their customerRef.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsBarber reports whether the actor is the given barber
func (a Actor) IsBarber(barberID int64) bool {
	return a.Role == RoleBarber && a.ID == strconv.FormatInt(barberID, 10)
}

// IsCustomer reports whether the actor is the given customer
func (a Actor) IsCustomer(customerRef string) bool {
	return a.Role == RoleCustomer && customerRef != "" && a.ID == customerRef
}

// CanManageBarber: admins and the barber themself
func (a Actor) CanManageBarber(barberID int64) bool {
	return a.IsAdmin() || a.IsBarber(barberID)
}

// CanView reports whether the actor may read the booking
func (a Actor) CanView(b *Booking) bool {
	return a.CanManageBarber(b.BarberID) || a.IsCustomer(b.CustomerRef)
}
