package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
)

type entityRecord struct {
	pos     mgl32.Vec3
	rot     mgl32.Quat
	cap     alert.Cap
	timings alert.Timings
	class   string

	hasCap     bool
	hasTimings bool
	hasClass   bool
}

// Store is a minimal in-memory world implementing View. Hosts with a real
// entity store adapt their own types instead; Store exists for tests,
// tooling, and small embeddings.
type Store struct {
	next    effect.Entity
	records map[effect.Entity]*entityRecord
	player  effect.Entity
	debugAI bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		next:    1,
		records: make(map[effect.Entity]*entityRecord),
	}
}

// Spawn creates an entity at the given position with identity rotation.
func (s *Store) Spawn(pos mgl32.Vec3) effect.Entity {
	e := s.next
	s.next++
	s.records[e] = &entityRecord{pos: pos, rot: mgl32.QuatIdent()}
	return e
}

// Despawn removes an entity. Removing the player clears the player id.
func (s *Store) Despawn(e effect.Entity) {
	delete(s.records, e)
	if s.player == e {
		s.player = effect.NoEntity
	}
}

// SetPosition moves an entity.
func (s *Store) SetPosition(e effect.Entity, pos mgl32.Vec3) {
	if r, ok := s.records[e]; ok {
		r.pos = pos
	}
}

// SetRotation orients an entity.
func (s *Store) SetRotation(e effect.Entity, rot mgl32.Quat) {
	if r, ok := s.records[e]; ok {
		r.rot = rot
	}
}

// SetAlertCap attaches an alert cap property.
func (s *Store) SetAlertCap(e effect.Entity, c alert.Cap) {
	if r, ok := s.records[e]; ok {
		r.cap = c
		r.hasCap = true
	}
}

// SetAlertTimings attaches an alertness timing property.
func (s *Store) SetAlertTimings(e effect.Entity, t alert.Timings) {
	if r, ok := s.records[e]; ok {
		r.timings = t
		r.hasTimings = true
	}
}

// SetClassTag attaches an archetype class tag.
func (s *Store) SetClassTag(e effect.Entity, class string) {
	if r, ok := s.records[e]; ok {
		r.class = class
		r.hasClass = true
	}
}

// SetPlayer designates the player entity.
func (s *Store) SetPlayer(e effect.Entity) {
	s.player = e
}

// SetDebugAI toggles debug draw output for all controllers.
func (s *Store) SetDebugAI(enabled bool) {
	s.debugAI = enabled
}

func (s *Store) PositionOf(e effect.Entity) (mgl32.Vec3, mgl32.Quat, bool) {
	r, ok := s.records[e]
	if !ok {
		return mgl32.Vec3{}, mgl32.QuatIdent(), false
	}
	return r.pos, r.rot, true
}

func (s *Store) PlayerEntity() effect.Entity {
	return s.player
}

func (s *Store) DebugAIEnabled() bool {
	return s.debugAI
}

func (s *Store) AlertCap(e effect.Entity) (alert.Cap, bool) {
	if r, ok := s.records[e]; ok && r.hasCap {
		return r.cap, true
	}
	return alert.Cap{}, false
}

func (s *Store) AlertTimings(e effect.Entity) (alert.Timings, bool) {
	if r, ok := s.records[e]; ok && r.hasTimings {
		return r.timings, true
	}
	return alert.Timings{}, false
}

func (s *Store) ClassTag(e effect.Entity) (string, bool) {
	if r, ok := s.records[e]; ok && r.hasClass {
		return r.class, true
	}
	return "", false
}

var _ View = (*Store)(nil)
