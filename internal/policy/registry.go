package policy

import (
	"fmt"
	"sort"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// DefaultGameID is the profile used when none is selected.
const DefaultGameID = "balloon-master-3d"

// Registry holds all game profiles.
type Registry struct {
	profiles map[string]GameProfile
}

// NewRegistry creates a registry with all built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{
		profiles: make(map[string]GameProfile),
	}

	r.Register(NewBalloonMasterProfile())

	return r
}

// NewRegistryWithProfiles creates a registry with custom profiles (for testing).
func NewRegistryWithProfiles(profiles ...GameProfile) *Registry {
	r := &Registry{
		profiles: make(map[string]GameProfile),
	}
	for _, p := range profiles {
		r.Register(p)
	}
	return r
}

// Register adds a profile to the registry.
func (r *Registry) Register(p GameProfile) {
	r.profiles[p.ID()] = p
}

// Get returns a profile by ID.
func (r *Registry) Get(id string) (GameProfile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// GetAll returns all registered profiles sorted by ID.
func (r *Registry) GetAll() []GameProfile {
	result := make([]GameProfile, 0, len(r.profiles))
	for _, id := range r.List() {
		result = append(result, r.profiles[id])
	}
	return result
}

// List returns all profile IDs, sorted.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Game resolves a profile ID to a domain.Game.
func (r *Registry) Game(id string) (domain.Game, error) {
	p, ok := r.Get(id)
	if !ok {
		return domain.Game{}, fmt.Errorf("game profile not found: %s (known: %v)", id, r.List())
	}
	return ToGame(p), nil
}
