package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/GriffinCanCode/TermBridge/internal/types"
)

// Registry manages service discovery and execution
type Registry struct {
	services sync.Map
}

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.services.Store(def.ID, provider)
	return nil
}

// Unregister removes a service provider
func (r *Registry) Unregister(serviceID string) {
	r.services.Delete(serviceID)
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered services
func (r *Registry) List() []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		services = append(services, value.(Provider).Definition())
		return true
	})
	return services
}

// Execute runs a service tool. Tool IDs are "service.tool".
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	parts := strings.SplitN(toolID, ".", 2)
	if len(parts) < 2 {
		return &types.Result{
			Success: false,
			Error:   stringPtr("invalid tool ID format"),
		}, fmt.Errorf("invalid tool ID format: %s", toolID)
	}

	provider, ok := r.Get(parts[0])
	if !ok {
		return &types.Result{
			Success: false,
			Error:   stringPtr(fmt.Sprintf("service not found: %s", parts[0])),
		}, fmt.Errorf("service not found: %s", parts[0])
	}

	return provider.Execute(ctx, toolID, params, appCtx)
}

func stringPtr(s string) *string {
	return &s
}
