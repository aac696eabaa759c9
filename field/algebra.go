package field

import "github.com/consensys/gnark-crypto/field/goldilocks"

// ExtAlgebra is an element of the extension algebra: the quadratic extension
// re-read with coefficients that are themselves extension elements. Gates whose
// wires hold extension values are evaluated over this algebra when the
// evaluation point lives in the extension field.
type ExtAlgebra [2]QuadraticExt

// NewExtAlgebraFromBase lifts limbs of base elements into the algebra.
func NewExtAlgebraFromBase(c0, c1 goldilocks.Element) ExtAlgebra {
	var z ExtAlgebra
	z[0].SetFromBase(&c0)
	z[1].SetFromBase(&c1)
	return z
}

func (z *ExtAlgebra) Set(x *ExtAlgebra) *ExtAlgebra {
	z[0].Set(&x[0])
	z[1].Set(&x[1])
	return z
}

func (z *ExtAlgebra) SetZero() *ExtAlgebra {
	z[0].SetZero()
	z[1].SetZero()
	return z
}

func (z *ExtAlgebra) Add(x, y *ExtAlgebra) *ExtAlgebra {
	z[0].Add(&x[0], &y[0])
	z[1].Add(&x[1], &y[1])
	return z
}

func (z *ExtAlgebra) Sub(x, y *ExtAlgebra) *ExtAlgebra {
	z[0].Sub(&x[0], &y[0])
	z[1].Sub(&x[1], &y[1])
	return z
}

// Mul multiplies in the algebra, with the same defining relation x^2 = 7.
func (z *ExtAlgebra) Mul(x, y *ExtAlgebra) *ExtAlgebra {
	var a0b0, a1b1, a0b1, a1b0, c0, c1 QuadraticExt
	w := goldilocks.NewElement(extW)
	a0b0.Mul(&x[0], &y[0])
	a1b1.Mul(&x[1], &y[1])
	a0b1.Mul(&x[0], &y[1])
	a1b0.Mul(&x[1], &y[0])
	a1b1.MulByBase(&a1b1, &w)
	c0.Add(&a0b0, &a1b1)
	c1.Add(&a0b1, &a1b0)
	z[0].Set(&c0)
	z[1].Set(&c1)
	return z
}

// ScalarMul scales every coefficient by an extension scalar.
func (z *ExtAlgebra) ScalarMul(x *ExtAlgebra, c *QuadraticExt) *ExtAlgebra {
	z[0].Mul(&x[0], c)
	z[1].Mul(&x[1], c)
	return z
}

func (z *ExtAlgebra) Equal(x *ExtAlgebra) bool {
	return z[0].Equal(&x[0]) && z[1].Equal(&x[1])
}
