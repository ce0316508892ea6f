// Package alias maps legacy and natural-language status, type, and tag
// strings to canonical domain enum values. Kept in sync with the capture
// surfaces that emit them.
package alias

import (
	"strings"

	"github.com/jdelgad/nudge/internal/domain"
)

// statusAliases maps user-facing and legacy names to canonical statuses.
var statusAliases = map[string]domain.TaskStatus{
	"Action":     domain.StatusTasks,
	"action":     domain.StatusTasks,
	"Project":    domain.StatusProjects,
	"project":    domain.StatusProjects,
	"Idea":       domain.StatusIdeas,
	"idea":       domain.StatusIdeas,
	"blocked":    domain.StatusBlocked,
	"done":       domain.StatusDone,
	"Waiting On": domain.StatusWaitingOn,
	"Not Now":    domain.StatusNotNow,
	"Won't Do":   domain.StatusWontDo,
}

var typeAliases = map[string]domain.TaskType{
	"Compounds": domain.TypeCompound,
}

// tagAliases maps AI-classifier tag tokens to canonical task types.
// Lookup is case-insensitive.
var tagAliases = map[string]domain.TaskType{
	"[DO IT]":                domain.TypeDoItNow,
	"[KEYSTONE]":             domain.TypeUnblocks,
	"[COMPOUNDS]":            domain.TypeCompound,
	"[IDENTITY]":             domain.TypeIdentity,
	"[IMPORTANT NOT URGENT]": domain.TypeImportantNotUrgent,
	"[NEVER MISS 2X]":        domain.TypeNeverMiss2x,
	"[UNBLOCKS]":             domain.TypeUnblocks,
}

// ResolveStatus resolves a raw status string to a canonical TaskStatus.
// Accepts canonical names (e.g. "Tasks") and aliases (e.g. "Action",
// "action"). Returns a ValidationError for unknown statuses.
func ResolveStatus(raw string) (domain.TaskStatus, error) {
	if s := domain.TaskStatus(raw); s.Valid() {
		return s, nil
	}
	if s, ok := statusAliases[raw]; ok {
		return s, nil
	}
	return "", domain.Validationf("unknown status %q", raw)
}

// ResolveType resolves a raw type string to a canonical TaskType.
func ResolveType(raw string) (domain.TaskType, error) {
	if t := domain.TaskType(raw); t.Valid() {
		return t, nil
	}
	if t, ok := typeAliases[raw]; ok {
		return t, nil
	}
	return "", domain.Validationf("unknown task type %q", raw)
}

// ResolveTag resolves an AI-generated tag token to a TaskType. Tag
// resolution is advisory: unrecognized tags return nil, not an error.
func ResolveTag(raw string) *domain.TaskType {
	if t, ok := tagAliases[strings.ToUpper(raw)]; ok {
		return &t
	}
	return nil
}
