package module

import "eipwatch/internal/services/api/board/domain"

// Ports exposes the service port for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
