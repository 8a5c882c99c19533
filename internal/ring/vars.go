// Package ring implements sparse multivariate polynomials over the rationals
// in the unknown product coefficients.
//
// The multiplicative structure on a resolution is built with undetermined
// coefficients: A-variables weight the x-side terms of a product, B-variables
// the y-side terms. C-variables are reserved for correction terms and are
// accepted everywhere variables are parsed or stored, but no operation emits
// them today.
package ring

import (
	"fmt"
	"sort"
	"strconv"
)

// Class identifies the family an unknown coefficient belongs to.
type Class uint8

const (
	ClassA Class = iota
	ClassB
	ClassC
)

// String returns the single-letter class name.
func (c Class) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Var identifies one unknown coefficient variable, e.g. A3 or B0.
type Var struct {
	Class Class
	Index int
}

// A returns the i-th A-class variable.
func A(i int) Var { return Var{Class: ClassA, Index: i} }

// B returns the i-th B-class variable.
func B(i int) Var { return Var{Class: ClassB, Index: i} }

// C returns the i-th C-class variable.
func C(i int) Var { return Var{Class: ClassC, Index: i} }

// Name renders the variable as its conventional name, e.g. "A3".
func (v Var) Name() string {
	return v.Class.String() + strconv.Itoa(v.Index)
}

// Less reports whether v sorts before o. Variables order by class (A < B < C)
// and then by index; this is the pivot order used when reducing systems.
func (v Var) Less(o Var) bool {
	if v.Class != o.Class {
		return v.Class < o.Class
	}
	return v.Index < o.Index
}

// Compare returns -1, 0 or 1 ordering v against o.
func (v Var) Compare(o Var) int {
	if v.Less(o) {
		return -1
	}
	if o.Less(v) {
		return 1
	}
	return 0
}

// ParseVar parses a conventional variable name such as "A3" or "B12".
func ParseVar(s string) (Var, error) {
	if len(s) < 2 {
		return Var{}, fmt.Errorf("invalid variable %q", s)
	}
	var class Class
	switch s[0] {
	case 'A':
		class = ClassA
	case 'B':
		class = ClassB
	case 'C':
		class = ClassC
	default:
		return Var{}, fmt.Errorf("invalid variable class in %q", s)
	}
	idx, err := strconv.Atoi(s[1:])
	if err != nil || idx < 0 {
		return Var{}, fmt.Errorf("invalid variable index in %q", s)
	}
	return Var{Class: class, Index: idx}, nil
}

// SortVars sorts vars in place in the canonical order.
func SortVars(vars []Var) {
	sort.Slice(vars, func(i, j int) bool { return vars[i].Less(vars[j]) })
}
