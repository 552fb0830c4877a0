// Package pathtest is the interactive navigation probe: a three-state
// driver that drops start/goal markers at the player's feet, runs the
// planner between them, and publishes the result into a visualization store
// the host renders as debug geometry.
package pathtest

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/effect"
)

// MarkerKind distinguishes the probe markers.
type MarkerKind int

const (
	MarkerStart MarkerKind = iota
	MarkerGoal
	MarkerWaypoint
)

// Marker is one probe point in the visualization.
type Marker struct {
	Position mgl32.Vec3
	Kind     MarkerKind
	Color    effect.Color
}

// ComputedPath is a named, renderable path. Paths are transient: the
// harness rebuilds them on every step.
type ComputedPath struct {
	Name      string
	Waypoints []mgl32.Vec3
	Color     effect.Color
	Markers   []Marker
}

// VisualizationStore holds the named paths the host should draw this frame.
// Only the harness mutates it, on the host thread.
type VisualizationStore struct {
	paths map[string]ComputedPath
}

// NewVisualizationStore returns an empty store.
func NewVisualizationStore() *VisualizationStore {
	return &VisualizationStore{paths: make(map[string]ComputedPath)}
}

// Set publishes or replaces a named path.
func (s *VisualizationStore) Set(p ComputedPath) {
	s.paths[p.Name] = p
}

// Get looks up a named path.
func (s *VisualizationStore) Get(name string) (ComputedPath, bool) {
	p, ok := s.paths[name]
	return p, ok
}

// Remove drops a named path.
func (s *VisualizationStore) Remove(name string) {
	delete(s.paths, name)
}

// Clear drops every path.
func (s *VisualizationStore) Clear() {
	for name := range s.paths {
		delete(s.paths, name)
	}
}

// Len reports how many paths are published.
func (s *VisualizationStore) Len() int {
	return len(s.paths)
}

// Names lists the published keys in no particular order.
func (s *VisualizationStore) Names() []string {
	names := make([]string, 0, len(s.paths))
	for name := range s.paths {
		names = append(names, name)
	}
	return names
}
