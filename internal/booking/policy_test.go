package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stayhaven/booking-backend/internal/auth"
	"github.com/stayhaven/booking-backend/internal/user"
)

func TestCanTransition(t *testing.T) {
	owner := auth.Principal{ID: "customer-1", Role: string(user.RoleCustomer)}
	stranger := auth.Principal{ID: "customer-2", Role: string(user.RoleCustomer)}
	manager := auth.Principal{ID: "manager-1", Role: string(user.RolePropertyManager)}
	admin := auth.Principal{ID: "admin-1", Role: string(user.RoleAdmin)}
	superAdmin := auth.Principal{ID: "admin-2", Role: string(user.RoleSuperAdmin)}

	b := &Booking{ID: "booking-1", CustomerID: owner.ID, PropertyManagerID: manager.ID}

	tests := []struct {
		name   string
		p      auth.Principal
		target Status
		want   bool
	}{
		{"owner may confirm via payment", owner, StatusConfirmed, true},
		{"admin may confirm", admin, StatusConfirmed, true},
		{"super admin may confirm", superAdmin, StatusConfirmed, true},
		{"stranger may not confirm", stranger, StatusConfirmed, false},
		{"manager may not confirm", manager, StatusConfirmed, false},

		{"admin may reject", admin, StatusRejected, true},
		{"super admin may reject", superAdmin, StatusRejected, true},
		{"owner may not reject", owner, StatusRejected, false},
		{"manager may not reject", manager, StatusRejected, false},

		{"owner may cancel", owner, StatusCancelled, true},
		{"stranger may not cancel", stranger, StatusCancelled, false},
		{"admin may not cancel for the customer", admin, StatusCancelled, false},
		{"manager may not cancel", manager, StatusCancelled, false},

		{"nobody transitions into pending", admin, StatusPending, false},
		{"nobody transitions into completed", admin, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.p, b, tt.target))
		})
	}
}
