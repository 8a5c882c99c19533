package ring

import (
	"fmt"
	"strconv"
	"strings"
)

// VarExp is one variable raised to a positive power inside a monomial.
type VarExp struct {
	Var Var
	Exp int
}

// Mono is a monomial in the unknown coefficient variables: a product of
// variables with positive exponents, kept sorted in variable order. The zero
// value is the constant monomial 1.
type Mono struct {
	factors []VarExp
}

// MonoOf builds a monomial from the given variables, counting multiplicity.
func MonoOf(vars ...Var) Mono {
	m := Mono{}
	for _, v := range vars {
		m = m.MulVar(v)
	}
	return m
}

// IsConstant reports whether the monomial is 1.
func (m Mono) IsConstant() bool { return len(m.factors) == 0 }

// Degree is the total degree of the monomial.
func (m Mono) Degree() int {
	d := 0
	for _, f := range m.factors {
		d += f.Exp
	}
	return d
}

// Factors returns a copy of the variable-exponent pairs in variable order.
func (m Mono) Factors() []VarExp {
	out := make([]VarExp, len(m.factors))
	copy(out, m.factors)
	return out
}

// MulVar returns m multiplied by a single variable.
func (m Mono) MulVar(v Var) Mono {
	out := make([]VarExp, 0, len(m.factors)+1)
	inserted := false
	for _, f := range m.factors {
		if !inserted {
			switch f.Var.Compare(v) {
			case 0:
				f.Exp++
				inserted = true
			case 1:
				out = append(out, VarExp{Var: v, Exp: 1})
				inserted = true
			}
		}
		out = append(out, f)
	}
	if !inserted {
		out = append(out, VarExp{Var: v, Exp: 1})
	}
	return Mono{factors: out}
}

// Mul returns the product of two monomials.
func (m Mono) Mul(o Mono) Mono {
	out := make([]VarExp, 0, len(m.factors)+len(o.factors))
	i, j := 0, 0
	for i < len(m.factors) && j < len(o.factors) {
		switch m.factors[i].Var.Compare(o.factors[j].Var) {
		case -1:
			out = append(out, m.factors[i])
			i++
		case 1:
			out = append(out, o.factors[j])
			j++
		default:
			out = append(out, VarExp{Var: m.factors[i].Var, Exp: m.factors[i].Exp + o.factors[j].Exp})
			i, j = i+1, j+1
		}
	}
	out = append(out, m.factors[i:]...)
	out = append(out, o.factors[j:]...)
	return Mono{factors: out}
}

// Key renders the canonical encoding, e.g. "A1*B2^2". The constant monomial
// encodes as the empty string.
func (m Mono) Key() string {
	if len(m.factors) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, f := range m.factors {
		if i > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(f.Var.Name())
		if f.Exp > 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(f.Exp))
		}
	}
	return sb.String()
}

// String renders the monomial; the constant monomial prints as "1".
func (m Mono) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	return m.Key()
}

// ParseMono parses the Key encoding. The empty string and "1" both parse to
// the constant monomial.
func ParseMono(s string) (Mono, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "1" {
		return Mono{}, nil
	}
	m := Mono{}
	for _, part := range strings.Split(s, "*") {
		name := part
		exp := 1
		if at := strings.IndexByte(part, '^'); at >= 0 {
			name = part[:at]
			var err error
			exp, err = strconv.Atoi(part[at+1:])
			if err != nil || exp < 1 {
				return Mono{}, fmt.Errorf("invalid exponent in monomial %q", s)
			}
		}
		v, err := ParseVar(name)
		if err != nil {
			return Mono{}, fmt.Errorf("invalid monomial %q: %w", s, err)
		}
		for k := 0; k < exp; k++ {
			m = m.MulVar(v)
		}
	}
	return m, nil
}
