package mocks

import (
	"github.com/stretchr/testify/mock"
	"zipforecast.app/internal/ports"
)

// ConfigProvider is a testify mock of ports.ConfigProvider
type ConfigProvider struct {
	mock.Mock
}

func NewConfigProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *ConfigProvider {
	m := &ConfigProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ConfigProvider) GetForecastConfig() ports.ForecastConfig {
	return m.Called().Get(0).(ports.ForecastConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

func (m *ConfigProvider) GetCacheConfig() ports.CacheConfig {
	return m.Called().Get(0).(ports.CacheConfig)
}
