package roles

import (
	"fmt"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/features"
)

// MigrationFlagKey gates the live rename of the venue-door role.
const MigrationFlagKey = "role-migration"

const (
	RoleDoorman  = "doorman"  // legacy vocabulary
	RoleVerifier = "verifier" // replacement vocabulary
)

// EquivalencePair declares two role labels interchangeable while its
// flag is enabled. A future synonym is a new table entry, not a new
// special case.
type EquivalencePair struct {
	FlagKey string
	Legacy  string
	Current string
}

// Resolver answers role-membership questions, honoring any enabled
// rename migrations in both directions.
type Resolver struct {
	registry *features.Registry
	pairs    []EquivalencePair
}

func NewResolver(registry *features.Registry) *Resolver {
	return &Resolver{
		registry: registry,
		pairs: []EquivalencePair{
			{FlagKey: MigrationFlagKey, Legacy: RoleDoorman, Current: RoleVerifier},
		},
	}
}

// HasRole reports whether the actor satisfies the requested role: a
// direct match on the primary role or role set, or an enabled migration
// flag declaring the held role equivalent to the requested one.
func (r *Resolver) HasRole(actor *domain.Actor, role string) bool {
	return r.HasAnyRole(actor, []string{role})
}

// HasAnyRole applies ANY-OF semantics after equivalence expansion.
func (r *Resolver) HasAnyRole(actor *domain.Actor, wanted []string) bool {
	held := r.expandHeld(actor)
	for _, w := range wanted {
		if _, ok := held[w]; ok {
			return true
		}
	}
	return false
}

// expandHeld builds the effective role set. The baseline customer label
// stays in the set for direct matches but is excluded as an input to
// equivalence expansion, so it can never vouch for an elevated role.
func (r *Resolver) expandHeld(actor *domain.Actor) map[string]struct{} {
	held := make(map[string]struct{})
	for _, role := range actor.HeldRoles() {
		held[role] = struct{}{}
	}

	for _, pair := range r.pairs {
		if !r.registry.IsEnabled(pair.FlagKey, features.BucketContext{"actorId": actor.ID}) {
			continue
		}
		if r.holdsElevated(held, pair.Legacy) {
			held[pair.Current] = struct{}{}
		}
		if r.holdsElevated(held, pair.Current) {
			held[pair.Legacy] = struct{}{}
		}
	}
	return held
}

func (r *Resolver) holdsElevated(held map[string]struct{}, role string) bool {
	if role == domain.RoleCustomer {
		return false
	}
	_, ok := held[role]
	return ok
}

// ValidateAssignableRole is the write-time vocabulary gate for actor
// creation and update. Exactly one vocabulary is assignable at a time:
// the replacement name while the migration flag is enabled, the legacy
// name while it is disabled. Already-persisted actors are unaffected;
// HasRole keeps honoring both directions for them.
//
// The gate keys off the flag's enabled bit, not the rollout bucket: a
// partially rolled out rename must not make writability depend on which
// bucket the writer lands in.
func (r *Resolver) ValidateAssignableRole(role string) error {
	for _, pair := range r.pairs {
		enabled := r.registry.GetFeatureState(pair.FlagKey).Enabled
		if role == pair.Current && !enabled {
			return fmt.Errorf("%w: %q is not assignable while %q is disabled", domain.ErrInvalidRole, role, pair.FlagKey)
		}
		if role == pair.Legacy && enabled {
			return fmt.Errorf("%w: %q is retired while %q is enabled", domain.ErrInvalidRole, role, pair.FlagKey)
		}
	}
	return nil
}

// ValidateActorRoles applies the write-time gate to every label an
// actor would be persisted with.
func (r *Resolver) ValidateActorRoles(actor *domain.Actor) error {
	for _, role := range actor.HeldRoles() {
		if err := r.ValidateAssignableRole(role); err != nil {
			return err
		}
	}
	return nil
}
