package permissions

import (
	"fmt"
	"strings"
)

// Flag is a bitmask of grantable actions. Flags compose with bitwise OR
// and are tested with bitwise AND; composition is associative and
// commutative, and adding a flag never clears one already present.
type Flag uint64

// None carries no permissions and never satisfies a check.
const None Flag = 0

const (
	Read Flag = 1 << iota
	Create
	Edit
	Delete
	Publish
	Draft
	Approve
	Comment
	Review
	Share
	Monetize
	Pricing
	Subscription
	Analytics
	Report
	Administer
)

// All combines every named flag.
const All = Read | Create | Edit | Delete | Publish | Draft | Approve |
	Comment | Review | Share | Monetize | Pricing | Subscription |
	Analytics | Report | Administer

// flagNames maps each single-bit flag to its canonical name.
// Order matters: String renders flags in this order.
var flagNames = []struct {
	flag Flag
	name string
}{
	{Read, "read"},
	{Create, "create"},
	{Edit, "edit"},
	{Delete, "delete"},
	{Publish, "publish"},
	{Draft, "draft"},
	{Approve, "approve"},
	{Comment, "comment"},
	{Review, "review"},
	{Share, "share"},
	{Monetize, "monetize"},
	{Pricing, "pricing"},
	{Subscription, "subscription"},
	{Analytics, "analytics"},
	{Report, "report"},
	{Administer, "administer"},
}

// Has reports whether f contains every bit of action.
func (f Flag) Has(action Flag) bool {
	return f&action == action
}

// HasAny reports whether f contains at least one bit of action.
func (f Flag) HasAny(action Flag) bool {
	return f&action != 0
}

// Add returns f with the given flags set. The receiver is unchanged;
// existing bits are never cleared.
func (f Flag) Add(flags ...Flag) Flag {
	for _, p := range flags {
		f |= p
	}
	return f
}

// Remove returns f with the given flags cleared.
func (f Flag) Remove(flags ...Flag) Flag {
	for _, p := range flags {
		f &^= p
	}
	return f
}

// IsZero reports whether no flags are set.
func (f Flag) IsZero() bool {
	return f == None
}

// Union combines any number of flags into one.
func Union(flags ...Flag) Flag {
	var out Flag
	for _, f := range flags {
		out |= f
	}
	return out
}

// String renders the set flags as a pipe-separated list of canonical
// names, e.g. "read|edit". Unknown bits are ignored. None renders as "none".
func (f Flag) String() string {
	if f == None {
		return "none"
	}

	parts := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Parse converts a canonical flag name (case-insensitive) to its Flag.
// Returns an error for unknown names so misspelled configuration fails
// loudly instead of silently granting nothing.
func Parse(name string) (Flag, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return None, nil
	}
	for _, fn := range flagNames {
		if fn.name == n {
			return fn.flag, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
}

// ParseList parses a list of flag names and ORs them together.
func ParseList(names []string) (Flag, error) {
	var out Flag
	for _, name := range names {
		f, err := Parse(name)
		if err != nil {
			return None, err
		}
		out |= f
	}
	return out, nil
}

// MarshalText implements encoding.TextMarshaler using the String format.
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the
// pipe-separated format produced by String.
func (f *Flag) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" || s == "none" {
		*f = None
		return nil
	}

	var out Flag
	for part := range strings.SplitSeq(s, "|") {
		p, err := Parse(part)
		if err != nil {
			return err
		}
		out |= p
	}
	*f = out
	return nil
}
