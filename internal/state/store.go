// Package state holds the in-memory profile collection. There is no
// persistence: everything resets with the process.
package state

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"cuadrai/internal/core"
)

// Store owns every Profile and the id of the active one. All reads return
// deep copies, so consumers observe either the old or the new state, never a
// half-applied update. The mutex is there because the HTTP server calls in
// from multiple goroutines; individual operations stay synchronous.
type Store struct {
	mu       sync.Mutex
	profiles []core.Profile
	activeID string
}

func NewStore() *Store {
	return &Store{}
}

// Add creates a profile with a fresh id, kind-appropriate billing defaults
// and a greeting already in the transcript, and makes it active.
func (s *Store) Add(name, taxID string, kind core.ProfileKind) core.Profile {
	p := newProfile(name, taxID, kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = append(s.profiles, p)
	s.activeID = p.ID
	return p.Clone()
}

// newProfile seeds the empty collections and the defaults for the chosen
// kind: individuals invoice with 15% IRPF by default, companies with none.
func newProfile(name, taxID string, kind core.ProfileKind) core.Profile {
	irpf := 15.0
	if kind == core.KindCompany {
		irpf = 0
	}
	kindLabel := "autónomo"
	if kind == core.KindCompany {
		kindLabel = "empresa"
	}
	return core.Profile{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        name,
		TaxID:       taxID,
		Invoices:    []core.Invoice{},
		Expenses:    []core.Expense{},
		Obligations: []core.Obligation{},
		Chat: []core.ChatMessage{{
			ID:     uuid.NewString(),
			Sender: core.SenderAssistant,
			Text:   fmt.Sprintf("¡Hola! Soy tu copiloto fiscal. He creado tu nuevo perfil de %s. ¿En qué puedo ayudarte?", kindLabel),
		}},
		Address: core.Address{Country: "España"},
		Billing: core.BillingConfig{
			InvoiceSeries:  "F-",
			DefaultVATRate: 21,
			DefaultIRPF:    irpf,
		},
		Tax: core.TaxConfig{VATRegime: "General"},
	}
}

// Switch makes the profile with the given id active. An unknown id is a
// no-op: the previously active profile stays active.
func (s *Store) Switch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			s.activeID = id
			return
		}
	}
}

// ActiveID returns the id of the active profile, or empty when the store is
// empty.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Active returns a snapshot of the active profile.
func (s *Store) Active() (core.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].ID == s.activeID {
			return s.profiles[i].Clone(), true
		}
	}
	return core.Profile{}, false
}

// All returns snapshots of every profile in insertion order.
func (s *Store) All() []core.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Profile, len(s.profiles))
	for i := range s.profiles {
		out[i] = s.profiles[i].Clone()
	}
	return out
}

// Update applies fn to a copy of the active profile and swaps the result in.
// Only the active profile is ever touched; fn runs on a clone, so a panic or
// partial edit inside fn can never leak into the stored state.
func (s *Store) Update(fn func(p *core.Profile)) (core.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].ID == s.activeID {
			next := s.profiles[i].Clone()
			fn(&next)
			next.ID = s.profiles[i].ID // the id is not editable
			s.profiles[i] = next
			return next.Clone(), true
		}
	}
	return core.Profile{}, false
}

// Replace swaps in a whole profile record by its id, used by settings
// editing. Unlike Update it does not require the target to be active.
func (s *Store) Replace(p core.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].ID == p.ID {
			s.profiles[i] = p.Clone()
			return true
		}
	}
	return false
}
