package booking

import (
	"github.com/stayhaven/booking-backend/internal/auth"
	"github.com/stayhaven/booking-backend/internal/user"
)

// CanTransition is the single capability predicate consulted before any
// lifecycle transition. Role checks live here, not in the handlers.
//
//   - CONFIRMED: admins (approval) or the owning customer (payment).
//   - REJECTED: admins only, with a mandatory reason checked by the service.
//   - CANCELLED: the owning customer only.
func CanTransition(p auth.Principal, b *Booking, target Status) bool {
	role := user.Role(p.Role)

	switch target {
	case StatusConfirmed:
		return role.IsAdmin() || b.CustomerID == p.ID
	case StatusRejected:
		return role.IsAdmin()
	case StatusCancelled:
		return b.CustomerID == p.ID
	default:
		return false
	}
}

func isAdminRole(role string) bool {
	return user.Role(role).IsAdmin()
}
