package equations

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/commalg/dgares/internal/ring"
)

// SchemaVersion identifies the persisted JSON layout for systems and
// reductions.
const SchemaVersion = 1

type termJSON struct {
	Coef string `json:"coef"`
	Mono string `json:"mono,omitempty"`
}

type sourceJSON struct {
	Kind    string   `json:"kind,omitempty"`
	Factors []string `json:"factors,omitempty"`
	Basis   string   `json:"basis,omitempty"`
}

type equationJSON struct {
	Terms  []termJSON  `json:"terms"`
	Source *sourceJSON `json:"source,omitempty"`
}

type systemJSON struct {
	Version   int            `json:"version"`
	Vertices  int            `json:"vertices"`
	Kind      string         `json:"kind"`
	Equations []equationJSON `json:"equations"`
}

type pivotJSON struct {
	Var  string     `json:"var"`
	Expr []termJSON `json:"expr"`
}

type reductionJSON struct {
	Version             int            `json:"version"`
	Rank                int            `json:"rank"`
	Contradiction       bool           `json:"contradiction"`
	ContradictionSource *sourceJSON    `json:"contradiction_source,omitempty"`
	Redundant           int            `json:"redundant"`
	Free                []string       `json:"free"`
	Pivots              []pivotJSON    `json:"pivots"`
	Residual            []equationJSON `json:"residual,omitempty"`
}

func polyToJSON(p ring.Poly) []termJSON {
	terms := p.Terms()
	out := make([]termJSON, 0, len(terms))
	for _, t := range terms {
		out = append(out, termJSON{Coef: t.Coef.RatString(), Mono: t.Mono.Key()})
	}
	return out
}

func polyFromJSON(terms []termJSON) (ring.Poly, error) {
	p := ring.Zero()
	for _, t := range terms {
		coef, ok := new(big.Rat).SetString(t.Coef)
		if !ok {
			return ring.Poly{}, fmt.Errorf("bad coefficient %q", t.Coef)
		}
		m, err := ring.ParseMono(t.Mono)
		if err != nil {
			return ring.Poly{}, err
		}
		p = p.Add(ring.FromTerm(m, coef))
	}
	return p, nil
}

func sourceToJSON(s Source) *sourceJSON {
	if s.Kind == "" && len(s.Factors) == 0 && s.BasisKey == "" {
		return nil
	}
	return &sourceJSON{Kind: s.Kind, Factors: s.Factors, Basis: s.BasisKey}
}

func sourceFromJSON(s *sourceJSON) Source {
	if s == nil {
		return Source{}
	}
	return Source{Kind: s.Kind, Factors: s.Factors, BasisKey: s.Basis}
}

func equationToJSON(eq Equation) equationJSON {
	return equationJSON{Terms: polyToJSON(eq.Poly), Source: sourceToJSON(eq.Source)}
}

func equationFromJSON(ej equationJSON) (Equation, error) {
	p, err := polyFromJSON(ej.Terms)
	if err != nil {
		return Equation{}, err
	}
	return Equation{Poly: p, Source: sourceFromJSON(ej.Source)}, nil
}

// MarshalJSON encodes the system with a schema version and every rational as
// a string, so round trips are exact.
func (s *System) MarshalJSON() ([]byte, error) {
	sj := systemJSON{
		Version:   SchemaVersion,
		Vertices:  s.N,
		Kind:      s.Kind,
		Equations: make([]equationJSON, 0, len(s.Equations)),
	}
	for _, eq := range s.Equations {
		sj.Equations = append(sj.Equations, equationToJSON(eq))
	}
	return json.Marshal(sj)
}

// UnmarshalJSON decodes a system, rejecting unknown schema versions.
func (s *System) UnmarshalJSON(data []byte) error {
	var sj systemJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	if sj.Version != SchemaVersion {
		return fmt.Errorf("unsupported system schema version %d", sj.Version)
	}
	out := NewSystem(sj.Vertices, sj.Kind)
	for _, ej := range sj.Equations {
		eq, err := equationFromJSON(ej)
		if err != nil {
			return err
		}
		out.Add(eq)
	}
	*s = *out
	return nil
}

// MarshalJSON encodes the reduction with pivots in variable order.
func (r *Reduction) MarshalJSON() ([]byte, error) {
	rj := reductionJSON{
		Version:       SchemaVersion,
		Rank:          r.Rank,
		Contradiction: r.Contradiction,
		Redundant:     r.Redundant,
		Free:          make([]string, 0, len(r.Free)),
		Pivots:        make([]pivotJSON, 0, len(r.Pivots)),
	}
	if r.ContradictionSource != nil {
		src := *r.ContradictionSource
		rj.ContradictionSource = &sourceJSON{Kind: src.Kind, Factors: src.Factors, Basis: src.BasisKey}
	}
	for _, v := range r.Free {
		rj.Free = append(rj.Free, v.Name())
	}
	for _, v := range r.SolvedVars() {
		rj.Pivots = append(rj.Pivots, pivotJSON{Var: v.Name(), Expr: polyToJSON(r.Pivots[v])})
	}
	for _, eq := range r.Residual {
		rj.Residual = append(rj.Residual, equationToJSON(eq))
	}
	return json.Marshal(rj)
}

// UnmarshalJSON decodes a reduction, rejecting unknown schema versions.
func (r *Reduction) UnmarshalJSON(data []byte) error {
	var rj reductionJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	if rj.Version != SchemaVersion {
		return fmt.Errorf("unsupported reduction schema version %d", rj.Version)
	}
	out := Reduction{
		Rank:          rj.Rank,
		Contradiction: rj.Contradiction,
		Redundant:     rj.Redundant,
		Pivots:        make(map[ring.Var]ring.Poly, len(rj.Pivots)),
	}
	if rj.ContradictionSource != nil {
		src := sourceFromJSON(rj.ContradictionSource)
		out.ContradictionSource = &src
	}
	for _, name := range rj.Free {
		v, err := ring.ParseVar(name)
		if err != nil {
			return err
		}
		out.Free = append(out.Free, v)
	}
	for _, pj := range rj.Pivots {
		v, err := ring.ParseVar(pj.Var)
		if err != nil {
			return err
		}
		expr, err := polyFromJSON(pj.Expr)
		if err != nil {
			return err
		}
		out.Pivots[v] = expr
	}
	for _, ej := range rj.Residual {
		eq, err := equationFromJSON(ej)
		if err != nil {
			return err
		}
		out.Residual = append(out.Residual, eq)
	}
	*r = out
	return nil
}
