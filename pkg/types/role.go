package types

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Role enumerates the semantic roles a node can carry.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleWindow
	RoleGroup
	RoleGenericContainer
	RoleButton
	RoleCheckBox
	RoleRadioButton
	RoleLink
	RoleStaticText
	RoleTextField
	RoleImage
	RoleList
	RoleListItem
	RoleMenu
	RoleMenuItem
	RoleHeading
	RoleDocument
	// RolePresentation marks a node that exists for layout only. Such nodes
	// are always treated as ignored.
	RolePresentation

	roleCount
)

var roleNames = [roleCount]string{
	RoleUnknown:          "unknown",
	RoleWindow:           "window",
	RoleGroup:            "group",
	RoleGenericContainer: "generic-container",
	RoleButton:           "button",
	RoleCheckBox:         "check-box",
	RoleRadioButton:      "radio-button",
	RoleLink:             "link",
	RoleStaticText:       "static-text",
	RoleTextField:        "text-field",
	RoleImage:            "image",
	RoleList:             "list",
	RoleListItem:         "list-item",
	RoleMenu:             "menu",
	RoleMenuItem:         "menu-item",
	RoleHeading:          "heading",
	RoleDocument:         "document",
	RolePresentation:     "presentation",
}

// String implements the Stringer interface for Role.
func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Roles returns every defined role in declaration order.
func Roles() []Role {
	out := make([]Role, 0, roleCount)
	for r := RoleUnknown; r < roleCount; r++ {
		out = append(out, r)
	}
	return out
}

// ParseRole maps a role name back to its Role. Matching ignores case and
// treats '_' and ' ' like '-', so "CheckBox", "check_box" and "check-box"
// all parse.
func ParseRole(s string) (Role, error) {
	key := roleKey(s)
	for r := RoleUnknown; r < roleCount; r++ {
		if roleKey(roleNames[r]) == key {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%q: %w", s, ErrUnknownRole)
}

// FoldName returns the case-folded form of s for caseless comparison of
// node names.
func FoldName(s string) string {
	return cases.Fold().String(s)
}

func roleKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	return FoldName(s)
}
