package profile

import (
	"context"
	"fmt"
)

// MemoryStore is a Source over an in-memory snapshot of profiles.
type MemoryStore struct {
	profiles []EmployeeProfile
	index    map[string]int
}

// NewMemoryStore builds a store from profiles. Later duplicates of an
// employee ID replace earlier ones.
func NewMemoryStore(profiles ...EmployeeProfile) *MemoryStore {
	s := &MemoryStore{index: make(map[string]int, len(profiles))}
	for _, p := range profiles {
		if i, ok := s.index[p.EmployeeID]; ok {
			s.profiles[i] = p
			continue
		}
		s.index[p.EmployeeID] = len(s.profiles)
		s.profiles = append(s.profiles, p)
	}
	return s
}

// Len returns the number of stored profiles.
func (s *MemoryStore) Len() int { return len(s.profiles) }

// ResolveEmployees returns the known profiles among ids, in ids order.
func (s *MemoryStore) ResolveEmployees(ctx context.Context, ids []string) ([]EmployeeProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}
	var out []EmployeeProfile
	for _, id := range ids {
		if i, ok := s.index[id]; ok {
			out = append(out, s.profiles[i])
		}
	}
	return out, nil
}

// AllEmployeesForRole returns profiles whose position matches roleName.
func (s *MemoryStore) AllEmployeesForRole(ctx context.Context, roleName string) ([]EmployeeProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("employees for role: %w", err)
	}
	var out []EmployeeProfile
	for i := range s.profiles {
		if s.profiles[i].HoldsRole(roleName) {
			out = append(out, s.profiles[i])
		}
	}
	return out, nil
}

// Profiles returns a copy of the stored profiles in insertion order.
func (s *MemoryStore) Profiles() []EmployeeProfile {
	return append([]EmployeeProfile(nil), s.profiles...)
}
