package fastgraph

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Cost is the weight of a directed edge.
type Cost struct {
	Label    toolpath.Label
	Distance float64
	// Unit is the travel direction. It is the zero vector when HasUnit is
	// false, which happens for zero-length edges.
	Unit    r2.Point
	HasUnit bool
}

// NewCost returns the cost of travelling from one point to another with the
// given label.
func NewCost(label toolpath.Label, from, to r2.Point) Cost {
	d := to.Sub(from)
	u, ok := geom.Unit(d)
	return Cost{Label: label, Distance: d.Norm(), Unit: u, HasUnit: ok}
}

// Reversed returns the cost of the same segment travelled backwards.
func (c Cost) Reversed() Cost {
	c.Unit = c.Unit.Mul(-1)
	return c
}

// Alignment returns the cosine between c's direction and dir. It is zero
// when either direction is undefined.
func (c Cost) Alignment(dir r2.Point) float64 {
	if !c.HasUnit {
		return 0
	}
	return c.Unit.Dot(dir)
}

func (c Cost) String() string {
	return fmt.Sprintf("%s %.3f", c.Label, c.Distance)
}
