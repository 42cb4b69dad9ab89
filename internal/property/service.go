package property

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	ManagerID     string
	Name          string
	Location      string
	PropertyType  string
	PricePerNight decimal.Decimal
	MaxGuests     int
	Photos        []string
	Amenities     []string
}

type UpdateRequest struct {
	Name          *string
	Location      *string
	PropertyType  *string
	PricePerNight *decimal.Decimal
	MaxGuests     *int
	Photos        []string
	Amenities     []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, filter Filter) ([]*Property, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isAdmin bool) (*Property, error)
	Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Property, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !req.PricePerNight.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if req.MaxGuests < 1 {
		return nil, ErrInvalidGuests
	}

	p := &Property{
		ManagerID:     req.ManagerID,
		Name:          strings.TrimSpace(req.Name),
		Location:      strings.TrimSpace(req.Location),
		PropertyType:  req.PropertyType,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Photos:        req.Photos,
		Amenities:     req.Amenities,
		// New listings await admin verification before appearing publicly.
		Status: StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Property, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isAdmin bool) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && p.ManagerID != updaterID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		p.Location = strings.TrimSpace(*req.Location)
	}
	if req.PropertyType != nil {
		p.PropertyType = *req.PropertyType
	}
	if req.PricePerNight != nil {
		if !req.PricePerNight.IsPositive() {
			return nil, ErrInvalidPrice
		}
		p.PricePerNight = *req.PricePerNight
	}
	if req.MaxGuests != nil {
		if *req.MaxGuests < 1 {
			return nil, ErrInvalidGuests
		}
		p.MaxGuests = *req.MaxGuests
	}
	if req.Photos != nil {
		p.Photos = req.Photos
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && p.ManagerID != deleterID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
