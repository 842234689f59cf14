package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/freshbins/freshbins-api/internal/entity"
)

func TestCheckPostcodeInvalidFormat(t *testing.T) {
	areas := new(MockServiceAreaRepository)
	cache := new(MockAreaCache)
	uc := NewCheckPostcodeUseCase(areas, cache)

	_, err := uc.Execute(context.Background(), CheckPostcodeInput{Postcode: "12345"})

	assert.True(t, IsDomainError(err))
	areas.AssertNotCalled(t, "FindByOutwardCode")
}

func TestCheckPostcodeCacheHitSkipsDatabase(t *testing.T) {
	areas := new(MockServiceAreaRepository)
	cache := new(MockAreaCache)
	cache.On("Get", mock.Anything, "M1").Return(&entity.ServiceArea{OutwardCode: "M1", AreaName: "Manchester City Centre", Active: true}, true, nil)

	uc := NewCheckPostcodeUseCase(areas, cache)

	output, err := uc.Execute(context.Background(), CheckPostcodeInput{Postcode: "m1 1aa"})

	assert.NoError(t, err)
	assert.True(t, output.Available)
	assert.Equal(t, "M1", output.Postcode)
	assert.Equal(t, "Manchester City Centre", output.Area)
	areas.AssertNotCalled(t, "FindByOutwardCode")
}

func TestCheckPostcodeCacheMissPopulatesCache(t *testing.T) {
	area := &entity.ServiceArea{OutwardCode: "BL1", AreaName: "Bolton", Active: true}

	areas := new(MockServiceAreaRepository)
	areas.On("FindByOutwardCode", mock.Anything, "BL1").Return(area, nil)

	cache := new(MockAreaCache)
	cache.On("Get", mock.Anything, "BL1").Return(nil, false, nil)
	cache.On("Set", mock.Anything, "BL1", area).Return(nil)

	uc := NewCheckPostcodeUseCase(areas, cache)

	output, err := uc.Execute(context.Background(), CheckPostcodeInput{Postcode: "BL1 4QR"})

	assert.NoError(t, err)
	assert.True(t, output.Available)
	cache.AssertExpectations(t)
}

func TestCheckPostcodeOutsideCoverage(t *testing.T) {
	areas := new(MockServiceAreaRepository)
	areas.On("FindByOutwardCode", mock.Anything, "ZE1").Return(nil, entity.ErrNotFound)

	cache := new(MockAreaCache)
	cache.On("Get", mock.Anything, "ZE1").Return(nil, false, nil)
	cache.On("Set", mock.Anything, "ZE1", (*entity.ServiceArea)(nil)).Return(nil)

	uc := NewCheckPostcodeUseCase(areas, cache)

	output, err := uc.Execute(context.Background(), CheckPostcodeInput{Postcode: "ZE1 0AA"})

	assert.NoError(t, err)
	assert.False(t, output.Available)
	assert.Contains(t, output.Message, "waitlist")
}

func TestCheckPostcodeInactiveAreaIsUnavailable(t *testing.T) {
	areas := new(MockServiceAreaRepository)
	cache := new(MockAreaCache)
	cache.On("Get", mock.Anything, "M2").Return(&entity.ServiceArea{OutwardCode: "M2", AreaName: "Deansgate", Active: false}, true, nil)

	uc := NewCheckPostcodeUseCase(areas, cache)

	output, err := uc.Execute(context.Background(), CheckPostcodeInput{Postcode: "M2 3AA"})

	assert.NoError(t, err)
	assert.False(t, output.Available)
}
