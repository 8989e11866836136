// Package ports defines the interfaces and shared forecast model of the hexagonal architecture.
// Adapters implement these interfaces; internal/mocks holds testify mocks of them.
package ports
