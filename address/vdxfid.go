package address

import "strings"

// NamespaceSeparator splits a qualified key name into its namespace and
// local name.
const NamespaceSeparator = "::"

// RootNamespace is the namespace every well known data key lives under.
const RootNamespace = "vrsc"

// VRSCID is the identity of the root namespace.
var VRSCID = GetID(RootNamespace, nil)

// GetID derives the id of name, optionally under a parent id. Names are case
// insensitive.
func GetID(name string, parent *Hash160) Hash160 {
	h := sha256d([]byte(strings.ToLower(name)))
	if parent != nil && !parent.IsNull() {
		h = sha256d(parent[:], h[:])
	}
	return Hash160Of(h[:])
}

// DataKey derives a VDXF key from a qualified name of the form ns::name. A
// name with no namespace, or in the root namespace, is derived under VRSCID.
func DataKey(qualified string) Hash160 {
	ns, name, found := strings.Cut(qualified, NamespaceSeparator)
	if !found {
		return GetID(qualified, &VRSCID)
	}
	if strings.EqualFold(ns, RootNamespace) {
		return GetID(name, &VRSCID)
	}
	parent := GetID(ns, nil)
	return GetID(name, &parent)
}
