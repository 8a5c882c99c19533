package resolution

// leibnizExpr combines the two product halves with the Koszul sign of the
// left factor, d(f)*g + (-1)^h * f*d(g) for h its homological degree. In
// positive S-degree deg that is deg-1; unit terms sit in degree zero.
func (c *Complex) leibnizExpr(deg int, f, g Element) Element {
	left := c.Product(c.Differential(f), g)
	right := c.Product(f, c.Differential(g))
	if deg > 0 && deg%2 == 0 {
		return left.Sub(right)
	}
	return left.Add(right)
}

// LeibnizExpr computes d(f)*g -/+ f*d(g), the right-hand side of the graded
// Leibniz rule. The sign depends on the degree of f, so f must be
// S-homogeneous.
func (c *Complex) LeibnizExpr(f, g Element) (Element, error) {
	deg, err := f.SDeg()
	if err != nil {
		return Element{}, err
	}
	return c.leibnizExpr(deg, f, g), nil
}

// LeibnizDefect computes d(f*g) - LeibnizExpr(f, g). A product structure
// satisfies the Leibniz rule on the pair exactly when the defect vanishes;
// for basis pairs the defect is affine-linear in the unknown coefficients.
func (c *Complex) LeibnizDefect(f, g Element) (Element, error) {
	deg, err := f.SDeg()
	if err != nil {
		return Element{}, err
	}
	return c.leibnizDefect(deg, f, g), nil
}

func (c *Complex) leibnizDefect(deg int, f, g Element) Element {
	expr := c.leibnizExpr(deg, f, g)
	return c.Differential(c.Product(f, g)).Sub(expr)
}

// LeibnizDefectBasis is LeibnizDefect on a pair of basis elements, which are
// S-homogeneous by construction.
func (c *Complex) LeibnizDefectBasis(f, g Basis) Element {
	return c.leibnizDefect(f.S.SDeg(), Monomial(f), Monomial(g))
}

// CheckLeibniz reports whether the Leibniz rule holds on the pair, that is,
// whether the defect is identically zero as an element with polynomial
// coefficients.
func (c *Complex) CheckLeibniz(f, g Element) (bool, error) {
	d, err := c.LeibnizDefect(f, g)
	if err != nil {
		return false, err
	}
	return d.IsZero(), nil
}

// Associator computes (f*g)*h - f*(g*h). Its coefficients are quadratic in
// the unknowns, so associativity constraints are checked after substituting
// a Leibniz solution rather than fed to the linear reducer directly.
func (c *Complex) Associator(f, g, h Element) Element {
	return c.Product(c.Product(f, g), h).Sub(c.Product(f, c.Product(g, h)))
}
