// Package permissions defines the bitmask of grantable actions used by the
// discretionary access control layer.
//
// A Flag is a fixed set of named bits (read, edit, publish, administer, ...).
// Flags compose with bitwise OR and are checked with bitwise AND, so a grant
// is always additive: combining two grants never removes an action either of
// them carried.
//
// Basic usage:
//
//	f := permissions.Read | permissions.Comment
//	f = f.Add(permissions.Edit)
//
//	if f.Has(permissions.Edit) {
//	    // allowed
//	}
//
// Flags round-trip through text ("read|edit") for storage and configuration.
// Named preset bundles can be loaded from YAML to grant common tiers
// (viewer, editor, moderator) without enumerating bits at every call site.
package permissions
