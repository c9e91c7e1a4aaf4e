package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"torqrides/internal/db"
	"torqrides/internal/entities"
	"torqrides/internal/repository"
)

type CouponService struct {
	Repo *repository.CouponRepository
}

func NewCouponService(repo *repository.CouponRepository) *CouponService {
	return &CouponService{Repo: repo}
}

func (s *CouponService) ListCoupons() ([]entities.CouponResponse, error) {
	coupons, err := s.Repo.ListCoupons()
	if err != nil {
		return nil, err
	}
	responses := make([]entities.CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		responses = append(responses, entities.CouponResponse{
			Code:       c.Code,
			PercentOff: c.PercentOff,
			ExpiresAt:  c.ExpiresAt,
			Active:     c.Active,
		})
	}
	return responses, nil
}

func (s *CouponService) CreateCoupon(code string, percentOff int, expiresAt time.Time) (*entities.CouponResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.New("coupon code cannot be empty")
	}
	if percentOff < 1 || percentOff > 100 {
		return nil, fmt.Errorf("percent_off must be between 1 and 100, got %d", percentOff)
	}
	if !expiresAt.After(time.Now().UTC()) {
		return nil, errors.New("expires_at must be in the future")
	}

	c := &db.Coupon{Code: code, PercentOff: percentOff, ExpiresAt: expiresAt}
	if err := s.Repo.CreateCoupon(c); err != nil {
		return nil, err
	}
	return &entities.CouponResponse{
		Code:       c.Code,
		PercentOff: c.PercentOff,
		ExpiresAt:  c.ExpiresAt,
		Active:     c.Active,
	}, nil
}

func (s *CouponService) DeactivateCoupon(code string) error {
	return s.Repo.DeactivateCoupon(strings.ToUpper(strings.TrimSpace(code)))
}
