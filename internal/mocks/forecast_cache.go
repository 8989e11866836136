package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"zipforecast.app/internal/ports"
)

// ForecastCache is a testify mock of ports.ForecastCache
type ForecastCache struct {
	mock.Mock
}

func NewForecastCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *ForecastCache {
	m := &ForecastCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ForecastCache) Get(ctx context.Context, zip string) (*ports.Forecast, error) {
	args := m.Called(ctx, zip)
	forecast, _ := args.Get(0).(*ports.Forecast)
	return forecast, args.Error(1)
}

func (m *ForecastCache) Set(ctx context.Context, zip string, forecast *ports.Forecast, ttl time.Duration) error {
	args := m.Called(ctx, zip, forecast, ttl)
	return args.Error(0)
}
