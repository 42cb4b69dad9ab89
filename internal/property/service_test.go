package property

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePropertyRepo struct {
	props  map[string]*Property
	nextID int
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[string]*Property{}}
}

func (r *fakePropertyRepo) Create(_ context.Context, p *Property) error {
	r.nextID++
	p.ID = fmt.Sprintf("property-%d", r.nextID)
	r.props[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id string) (*Property, error) {
	p, ok := r.props[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *fakePropertyRepo) List(_ context.Context, filter Filter) ([]*Property, int, error) {
	var out []*Property
	for _, p := range r.props {
		if filter.ManagerID != "" && p.ManagerID != filter.ManagerID {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *Property) error {
	if _, ok := r.props[p.ID]; !ok {
		return ErrNotFound
	}
	r.props[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id string) error {
	p, ok := r.props[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = StatusInactive
	return nil
}

func validCreate() CreateRequest {
	return CreateRequest{
		ManagerID:     "manager-1",
		Name:          "Seaside Villa",
		Location:      "Lisbon",
		PropertyType:  "villa",
		PricePerNight: decimal.NewFromInt(120),
		MaxGuests:     4,
	}
}

func TestCreateProperty(t *testing.T) {
	ctx := context.Background()

	t.Run("new listings start pending", func(t *testing.T) {
		svc := NewService(newFakePropertyRepo())

		p, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, p.Status)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(newFakePropertyRepo())

		req := validCreate()
		req.Name = "  "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrEmptyName)

		req = validCreate()
		req.PricePerNight = decimal.Zero
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		req = validCreate()
		req.MaxGuests = 0
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidGuests)
	})
}

func TestUpdateProperty(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *Property) {
		t.Helper()
		svc := NewService(newFakePropertyRepo())
		p, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		return svc, p
	}

	t.Run("owner may update", func(t *testing.T) {
		svc, p := setup(t)

		name := "Cliffside Villa"
		updated, err := svc.Update(ctx, p.ID, UpdateRequest{Name: &name}, "manager-1", false)
		require.NoError(t, err)
		assert.Equal(t, "Cliffside Villa", updated.Name)
	})

	t.Run("another manager is denied", func(t *testing.T) {
		svc, p := setup(t)

		name := "Hijacked"
		_, err := svc.Update(ctx, p.ID, UpdateRequest{Name: &name}, "manager-2", false)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("admin may update any listing", func(t *testing.T) {
		svc, p := setup(t)

		name := "Renamed by admin"
		_, err := svc.Update(ctx, p.ID, UpdateRequest{Name: &name}, "admin-1", true)
		assert.NoError(t, err)
	})

	t.Run("invalid price update is rejected", func(t *testing.T) {
		svc, p := setup(t)

		price := decimal.NewFromInt(-5)
		_, err := svc.Update(ctx, p.ID, UpdateRequest{PricePerNight: &price}, "manager-1", false)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestDeleteProperty(t *testing.T) {
	ctx := context.Background()
	repo := newFakePropertyRepo()
	svc := NewService(repo)

	p, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	err = svc.Delete(ctx, p.ID, "manager-2", false)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(ctx, p.ID, "manager-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, repo.props[p.ID].Status)
}
