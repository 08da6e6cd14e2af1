// Package components defines ECS components for the particle mesh.
package components

// Position represents a particle's surface-space position.
type Position struct {
	X, Y float64
}

// Velocity represents a particle's drift in surface units per frame.
type Velocity struct {
	X, Y float64
}

// Appearance holds how a particle is drawn.
type Appearance struct {
	Size  float64 // Circle radius
	Alpha float64 // Fill opacity in [0, 1]
}
