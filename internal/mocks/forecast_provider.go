package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"zipforecast.app/internal/ports"
)

// ForecastProvider is a testify mock of ports.ForecastProvider
type ForecastProvider struct {
	mock.Mock
	name string
}

// NewForecastProvider creates a mock provider reporting name and asserts its expectations on cleanup
func NewForecastProvider(t interface {
	mock.TestingT
	Cleanup(func())
}, name string) *ForecastProvider {
	m := &ForecastProvider{name: name}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ForecastProvider) Call(ctx context.Context, zip string) ports.ProviderOutcome {
	args := m.Called(ctx, zip)
	return args.Get(0).(ports.ProviderOutcome)
}

func (m *ForecastProvider) GetProviderName() string {
	return m.name
}
