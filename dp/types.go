// SPDX-License-Identifier: MIT

package dp

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/dypro/random"
)

// Spaces is the part of a problem shared by the deterministic and the
// stochastic contracts: what can be enumerated and what happens at the ends
// of the horizon.
//
// States(k) and Decisions(k) are consumed once per stage, in order; the order
// they yield is the tie-break order.
type Spaces[S, D comparable] interface {
	States(stage int) iter.Seq[S]
	Decisions(stage int) iter.Seq[D]
	TerminalCost(state S) float64
	InitialState() S
}

// Problem is a deterministic finite-horizon problem.
//
// ElementaryCost and Transition must be pure functions of their arguments;
// with WithWorkers(n > 1) they are called from several goroutines.
type Problem[S, D comparable] interface {
	Spaces[S, D]
	ElementaryCost(stage int, state S, decision D) float64
	Transition(stage int, state S, decision D) S
}

// StochasticProblem is a finite-horizon problem whose cost and transition
// depend on a random outcome drawn from Outcomes(stage).
type StochasticProblem[S, D comparable, W any] interface {
	Spaces[S, D]
	Outcomes(stage int) *random.Variable[W]
	ElementaryCost(stage int, state S, decision D, outcome W) float64
	Transition(stage int, state S, decision D, outcome W) S
}

// Resolver maps a raw next state of the given stage, which is absent from
// the cost table, to a feasible state and its cost-to-go. costs is the
// table being filled; only stage entries that are already final may be read.
//
// A problem that implements Resolver for its own state type is used as its
// resolver unless WithResolver overrides it.
type Resolver[S comparable] interface {
	Resolve(stage int, raw S, costs *Table[S]) (S, float64, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc[S comparable] func(stage int, raw S, costs *Table[S]) (S, float64, error)

// Resolve calls f.
func (f ResolverFunc[S]) Resolve(stage int, raw S, costs *Table[S]) (S, float64, error) {
	return f(stage, raw, costs)
}

// Key addresses one table cell.
type Key[S comparable] struct {
	Stage int
	State S
}

// Pair is the product of two comparable values, used for composite states
// such as (stock, last production) or (volume A, volume B).
type Pair[A, B comparable] struct {
	First  A
	Second B
}

// MakePair builds a Pair.
func MakePair[A, B comparable](a A, b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} }

// String renders the pair as (a, b).
func (p Pair[A, B]) String() string { return fmt.Sprintf("(%v, %v)", p.First, p.Second) }

// Product yields every pair of xs × ys, xs-major.
func Product[A, B comparable](xs iter.Seq[A], ys []B) iter.Seq[Pair[A, B]] {
	return func(yield func(Pair[A, B]) bool) {
		for a := range xs {
			for _, b := range ys {
				if !yield(Pair[A, B]{First: a, Second: b}) {
					return
				}
			}
		}
	}
}
