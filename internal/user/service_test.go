package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*User{}}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLoginAt = &t
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byEmail {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

// fakeHasher avoids bcrypt cost in unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults to customer", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), fakeHasher{})

		u, err := svc.Register(ctx, RegisterRequest{
			Email:     "  Jamie@Example.COM ",
			Password:  "supersecret",
			FirstName: " Jamie ",
			LastName:  "Doe",
		})
		require.NoError(t, err)

		assert.Equal(t, "jamie@example.com", u.Email)
		assert.Equal(t, "Jamie", u.FirstName)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.True(t, u.IsActive)
		assert.Equal(t, "hashed:supersecret", u.PasswordHash)
	})

	t.Run("property manager may self-register", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), fakeHasher{})

		u, err := svc.Register(ctx, RegisterRequest{
			Email:    "host@example.com",
			Password: "supersecret",
			Role:     RolePropertyManager,
		})
		require.NoError(t, err)
		assert.Equal(t, RolePropertyManager, u.Role)
	})

	t.Run("admin self-registration is refused", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), fakeHasher{})

		_, err := svc.Register(ctx, RegisterRequest{
			Email:    "admin@example.com",
			Password: "supersecret",
			Role:     RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), fakeHasher{})

		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "supersecret"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterRequest{Email: "A@B.com", Password: "supersecret"})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), fakeHasher{})

		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "short"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("missing email", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), fakeHasher{})

		_, err := svc.Register(ctx, RegisterRequest{Email: "   ", Password: "supersecret"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeUserRepo) {
		t.Helper()
		repo := newFakeUserRepo()
		svc := NewService(repo, fakeHasher{})
		_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "supersecret"})
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("success updates last login", func(t *testing.T) {
		svc, repo := setup(t)

		u, err := svc.Login(ctx, "a@b.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", u.Email)

		stored := repo.byEmail["a@b.com"]
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "a@b.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "nobody@b.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repo := setup(t)
		repo.byEmail["a@b.com"].IsActive = false

		_, err := svc.Login(ctx, "a@b.com", "supersecret")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestAdminUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *User) {
		t.Helper()
		svc := NewService(newFakeUserRepo(), fakeHasher{})
		u, err := svc.Register(ctx, RegisterRequest{
			Email:     "a@b.com",
			Password:  "supersecret",
			FirstName: "Jamie",
			LastName:  "Doe",
		})
		require.NoError(t, err)
		return svc, u
	}

	t.Run("promote to admin", func(t *testing.T) {
		svc, u := setup(t)

		role := RoleAdmin
		updated, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, updated.Role)
		assert.Equal(t, "Jamie", updated.FirstName)
	})

	t.Run("rename trims whitespace", func(t *testing.T) {
		svc, u := setup(t)

		first := "  Alex "
		updated, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Alex", updated.FirstName)
		assert.Equal(t, "Doe", updated.LastName)
	})

	t.Run("nil fields leave the account untouched", func(t *testing.T) {
		svc, u := setup(t)

		updated, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{})
		require.NoError(t, err)
		assert.Equal(t, u.FirstName, updated.FirstName)
		assert.Equal(t, u.Role, updated.Role)
		assert.True(t, updated.IsActive)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, u := setup(t)

		role := Role("OVERLORD")
		_, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := setup(t)

		active := false
		_, err := svc.AdminUpdate(ctx, "user-missing", AdminUpdateRequest{IsActive: &active})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivated account keeps its row but cannot log in", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, fakeHasher{})
		u, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "supersecret"})
		require.NoError(t, err)

		require.NoError(t, svc.Deactivate(ctx, u.ID))

		stored, err := svc.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)

		_, err = svc.Login(ctx, "a@b.com", "supersecret")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), fakeHasher{})
		assert.ErrorIs(t, svc.Deactivate(ctx, "user-missing"), ErrNotFound)
	})
}
