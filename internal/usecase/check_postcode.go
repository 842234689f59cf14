package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/freshbins/freshbins-api/internal/entity"
)

// CheckPostcodeUseCase answers the postcode gate at the top of the booking
// funnel. Lookups go through the redis cache first; the service_areas
// table is only hit on a cache miss and the answer (covered or not) is
// cached either way.
type CheckPostcodeUseCase struct {
	Areas ServiceAreaRepositoryInterface
	Cache AreaCache
}

func NewCheckPostcodeUseCase(areas ServiceAreaRepositoryInterface, cache AreaCache) *CheckPostcodeUseCase {
	return &CheckPostcodeUseCase{Areas: areas, Cache: cache}
}

func (uc *CheckPostcodeUseCase) Execute(ctx context.Context, input CheckPostcodeInput) (*CheckPostcodeOutput, error) {
	if input.Postcode == "" {
		return nil, &DomainError{Code: "MISSING_POSTCODE", Message: "postcode is required"}
	}

	outward, err := entity.OutwardCode(input.Postcode)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_POSTCODE", Message: "that doesn't look like a UK postcode"}
	}

	area, err := uc.lookup(ctx, outward)
	if err != nil {
		log.Printf("postcode: area lookup failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to check coverage"}
	}

	if area == nil || !area.Active {
		return &CheckPostcodeOutput{
			Available: false,
			Postcode:  outward,
			Message:   "We don't cover your area yet. Join the waitlist and we'll let you know when we do.",
		}, nil
	}

	return &CheckPostcodeOutput{
		Available: true,
		Postcode:  outward,
		Area:      area.AreaName,
		Message:   fmt.Sprintf("Great news! We clean bins in %s.", area.AreaName),
	}, nil
}

func (uc *CheckPostcodeUseCase) lookup(ctx context.Context, outward string) (*entity.ServiceArea, error) {
	if uc.Cache != nil {
		if area, found, err := uc.Cache.Get(ctx, outward); err == nil && found {
			return area, nil
		} else if err != nil {
			log.Printf("postcode: cache read failed, falling through: %v", err)
		}
	}

	area, err := uc.Areas.FindByOutwardCode(ctx, outward)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			area = nil
		} else {
			return nil, err
		}
	}

	if uc.Cache != nil {
		if err := uc.Cache.Set(ctx, outward, area); err != nil {
			log.Printf("postcode: cache write failed: %v", err)
		}
	}
	return area, nil
}
