// Package effects defines effect types as data structures representing I/O operations.
// Guards that provision records describe the rows they need as effects; the
// transition executor interprets them inside the transition's transaction.
package effects

import "github.com/example/landxfer/internal/core/workflow"

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// ProvisionClearanceEffect asks for a clearance row for a section to exist.
// The interpreter creates it only when the case has none for that section.
type ProvisionClearanceEffect struct {
	CaseID  string
	Section workflow.Section
	Status  workflow.ClearanceStatus
}

func (e ProvisionClearanceEffect) EffectType() string { return "provision_clearance" }

// ProvisionAccountsEffect asks for an empty accounts breakdown to exist.
type ProvisionAccountsEffect struct {
	CaseID string
	Status workflow.AccountsStatus
}

func (e ProvisionAccountsEffect) EffectType() string { return "provision_accounts" }

// LogEffect asks for a log line. Level is a zap level name; empty means info.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// CompositeEffect holds effects that run in sequence as one planned unit.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }
