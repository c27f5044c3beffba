package model

import (
	"strings"

	"github.com/Faultbox/diorama/internal/engine/scene"
)

// roleKeywords maps material-name substrings to roles, checked in order.
var roleKeywords = []struct {
	keyword string
	role    scene.MaterialRole
}{
	{"tire", scene.RoleTire},
	{"rim", scene.RoleRim},
	{"window", scene.RoleGlass},
	{"car", scene.RoleBody},
}

// ResolveRole classifies a material by a case-insensitive substring match on
// its name.
func ResolveRole(name string) scene.MaterialRole {
	lower := strings.ToLower(name)
	for _, k := range roleKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.role
		}
	}
	return scene.RoleOther
}
