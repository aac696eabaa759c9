package field

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// ExtensionDegree is the degree of the algebraic extension used for
// out-of-domain soundness checks.
const ExtensionDegree = 2

// extW is the non-residue W defining the extension: x^2 = W.
const extW uint64 = 7

// QuadraticExt is an element a0 + a1*x of the quadratic extension of the
// Goldilocks field, with x^2 = 7. The API follows the mutable pointer-receiver
// convention of gnark-crypto field elements.
type QuadraticExt [2]goldilocks.Element

// NewQuadraticExt returns a0 + a1*x from uint64 limbs.
func NewQuadraticExt(a0, a1 uint64) QuadraticExt {
	return QuadraticExt{goldilocks.NewElement(a0), goldilocks.NewElement(a1)}
}

func (z *QuadraticExt) SetZero() *QuadraticExt {
	z[0].SetZero()
	z[1].SetZero()
	return z
}

func (z *QuadraticExt) SetOne() *QuadraticExt {
	z[0].SetOne()
	z[1].SetZero()
	return z
}

func (z *QuadraticExt) Set(x *QuadraticExt) *QuadraticExt {
	z[0].Set(&x[0])
	z[1].Set(&x[1])
	return z
}

// SetFromBase embeds a base field element into the extension.
func (z *QuadraticExt) SetFromBase(c *goldilocks.Element) *QuadraticExt {
	z[0].Set(c)
	z[1].SetZero()
	return z
}

// SetRandom sets z to a uniformly random element.
func (z *QuadraticExt) SetRandom() (*QuadraticExt, error) {
	if _, err := z[0].SetRandom(); err != nil {
		return nil, err
	}
	if _, err := z[1].SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *QuadraticExt) Add(x, y *QuadraticExt) *QuadraticExt {
	z[0].Add(&x[0], &y[0])
	z[1].Add(&x[1], &y[1])
	return z
}

func (z *QuadraticExt) Sub(x, y *QuadraticExt) *QuadraticExt {
	z[0].Sub(&x[0], &y[0])
	z[1].Sub(&x[1], &y[1])
	return z
}

func (z *QuadraticExt) Neg(x *QuadraticExt) *QuadraticExt {
	z[0].Neg(&x[0])
	z[1].Neg(&x[1])
	return z
}

func (z *QuadraticExt) Double(x *QuadraticExt) *QuadraticExt {
	z[0].Double(&x[0])
	z[1].Double(&x[1])
	return z
}

// Mul sets z = x*y, using (a0+a1*x)(b0+b1*x) = a0*b0 + W*a1*b1 + (a0*b1+a1*b0)*x.
func (z *QuadraticExt) Mul(x, y *QuadraticExt) *QuadraticExt {
	var a0b0, a1b1, a0b1, a1b0, c0, c1 goldilocks.Element
	w := goldilocks.NewElement(extW)
	a0b0.Mul(&x[0], &y[0])
	a1b1.Mul(&x[1], &y[1])
	a0b1.Mul(&x[0], &y[1])
	a1b0.Mul(&x[1], &y[0])
	a1b1.Mul(&a1b1, &w)
	c0.Add(&a0b0, &a1b1)
	c1.Add(&a0b1, &a1b0)
	z[0].Set(&c0)
	z[1].Set(&c1)
	return z
}

func (z *QuadraticExt) Square(x *QuadraticExt) *QuadraticExt {
	return z.Mul(x, x)
}

// MulByBase sets z = x scaled by the base field element c.
func (z *QuadraticExt) MulByBase(x *QuadraticExt, c *goldilocks.Element) *QuadraticExt {
	z[0].Mul(&x[0], c)
	z[1].Mul(&x[1], c)
	return z
}

// Inverse sets z = 1/x. The inverse of a0 + a1*x is its conjugate a0 - a1*x
// divided by the norm a0^2 - W*a1^2, which lies in the base field.
func (z *QuadraticExt) Inverse(x *QuadraticExt) *QuadraticExt {
	var norm, t goldilocks.Element
	w := goldilocks.NewElement(extW)
	norm.Square(&x[0])
	t.Square(&x[1])
	t.Mul(&t, &w)
	norm.Sub(&norm, &t)
	norm.Inverse(&norm)
	z[0].Mul(&x[0], &norm)
	t.Neg(&x[1])
	z[1].Mul(&t, &norm)
	return z
}

func (z *QuadraticExt) Equal(x *QuadraticExt) bool {
	return z[0].Equal(&x[0]) && z[1].Equal(&x[1])
}

func (z *QuadraticExt) IsZero() bool {
	return z[0].IsZero() && z[1].IsZero()
}

// IsInBaseField reports whether z is the embedding of a base field element.
func (z *QuadraticExt) IsInBaseField() bool {
	return z[1].IsZero()
}

// BaseComponent returns the degree-zero coefficient of z.
func (z *QuadraticExt) BaseComponent() goldilocks.Element {
	return z[0]
}

func (z *QuadraticExt) String() string {
	return fmt.Sprintf("%s + %s*x", z[0].String(), z[1].String())
}
