package nations

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateMember = errors.New("member is configured in more than one group")
	ErrEmptyGroupLabel = errors.New("group label must not be empty")
	ErrLabelIsMember   = errors.New("group label is a member of another group")
)

// A named set of nations that should be ranked as one.
type Group struct {
	Label   string   `json:"label"`
	Members []string `json:"members"`
}

// The merge table. Order matters: when a name appears in more than one group
// the earliest group claims it, though [Groups.Validate] rejects such tables outright.
type Groups []Group

// The fixed merge table used by the rankings.
func DefaultGroups() Groups {
	return Groups{
		{
			Label:   "Eternal Empire of Bardonia",
			Members: []string{"Bardonia", "Varaxis-Imperium"},
		},
	}
}

// Checks that every group has a label, that no member is claimed by two different groups
// and that no label is listed as a member of some other group.
func (g Groups) Validate() error {
	owners := make(map[string]string)

	var errs []error
	for _, group := range g {
		if strings.TrimSpace(group.Label) == "" {
			errs = append(errs, ErrEmptyGroupLabel)
			continue
		}

		for _, member := range group.Members {
			owner, claimed := owners[member]
			if !claimed {
				owners[member] = group.Label
				continue
			}

			if owner != group.Label {
				errs = append(errs, fmt.Errorf("%w: %q is in both %q and %q", ErrDuplicateMember, member, owner, group.Label))
			}
		}
	}

	for _, group := range g {
		if owner, claimed := owners[group.Label]; claimed && owner != group.Label {
			errs = append(errs, fmt.Errorf("%w: %q is a member of %q", ErrLabelIsMember, group.Label, owner))
		}
	}

	return errors.Join(errs...)
}

// Maps every member name to the label of the first group that lists it.
// Each label also maps to itself, so a raw nation already carrying a group's name
// is folded into that group instead of showing up twice.
func (g Groups) Lookup() map[string]string {
	lookup := make(map[string]string)
	for _, group := range g {
		for _, member := range group.Members {
			if _, ok := lookup[member]; !ok {
				lookup[member] = group.Label
			}
		}
	}

	for _, group := range g {
		if _, ok := lookup[group.Label]; !ok {
			lookup[group.Label] = group.Label
		}
	}

	return lookup
}
