package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a compilation unit by its file extension
type Kind int

const (
	KindOther Kind = iota
	KindSource
	KindClass
	KindHTML
)

var kindExtensions = map[Kind]string{
	KindSource: ".java",
	KindClass:  ".class",
	KindHTML:   ".html",
}

var kindNames = map[Kind]string{
	KindOther:  "other",
	KindSource: "source",
	KindClass:  "class",
	KindHTML:   "html",
}

// String returns the lower-case name of the kind
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Extension returns the file extension for the kind, empty for KindOther
func (k Kind) Extension() string {
	return kindExtensions[k]
}

// KindOf derives the kind of a file from its name
func KindOf(name string) Kind {
	for k, ext := range kindExtensions {
		if strings.HasSuffix(name, ext) {
			return k
		}
	}
	return KindOther
}

// ParseKind maps a kind name back to its Kind
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindOther, fmt.Errorf("unknown file kind %q", name)
}

// KindSet is a set of kinds used to filter listings
type KindSet uint8

// Kinds builds a set from the given kinds
func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// AllKinds matches every file
var AllKinds = Kinds(KindOther, KindSource, KindClass, KindHTML)

// Has reports whether k is in the set
func (s KindSet) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// Empty reports whether no kind is selected
func (s KindSet) Empty() bool {
	return s == 0
}

// Slice returns the kinds in the set in declaration order
func (s KindSet) Slice() []Kind {
	var out []Kind
	for _, k := range []Kind{KindOther, KindSource, KindClass, KindHTML} {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// ParseKinds parses a comma separated list of kind names
func ParseKinds(list string) (KindSet, error) {
	var s KindSet
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return 0, err
		}
		s |= Kinds(k)
	}
	return s, nil
}

// Order is the policy used to sort the entries of one directory
type Order string

const (
	OrderName    Order = "name"
	OrderReverse Order = "reverse"
	OrderNone    Order = "none"
)

// Valid reports whether o is a known ordering policy
func (o Order) Valid() bool {
	switch o {
	case OrderName, OrderReverse, OrderNone:
		return true
	}
	return false
}

// SortNames sorts names in place according to the policy
func (o Order) SortNames(names []string) {
	switch o {
	case OrderName:
		sort.Strings(names)
	case OrderReverse:
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}
}
