// Package genetic implements the variation operators of the route optimizer:
// order crossover over the flattened stop sequence and adjacent-swap mutation
// per route. Operators never mutate their inputs; they return fresh values.
package genetic

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/evoroute/core/model"
)

// Crossover combines two parent solutions with order crossover (OX). A random
// segment of parent1's flattened stop sequence is kept in place and the
// remaining positions are filled with the missing stops in parent2's relative
// order. The child inherits parent1's route lengths, vehicles and depot.
//
// Both parents must partition the same stop set. A child that breaks the
// partition indicates a corrupted parent or an operator bug and aborts the
// process rather than silently degrading the search.
func Crossover(rng *rand.Rand, parent1, parent2 model.Solution) model.Solution {
	seq1 := parent1.Stops()
	seq2 := parent2.Stops()
	if len(seq1) != len(seq2) {
		panic(fmt.Sprintf("genetic: crossover parents visit %d and %d stops", len(seq1), len(seq2)))
	}
	if len(seq1) == 0 {
		return parent1.Clone()
	}
	a := rng.Intn(len(seq1))
	b := rng.Intn(len(seq1))
	if a > b {
		a, b = b, a
	}
	childSeq := crossoverSequence(seq1, seq2, a, b+1)
	child := rebuild(parent1, childSeq)
	verifyChild(child, len(seq1))
	return child
}

// crossoverSequence applies order crossover to flattened stop sequences,
// copying seq1[start:end] verbatim and filling the rest from seq2.
func crossoverSequence(seq1, seq2 []model.Point, start, end int) []model.Point {
	n := len(seq1)
	child := make([]model.Point, n)
	kept := make(map[string]struct{}, end-start)
	for i := start; i < end; i++ {
		child[i] = seq1[i]
		kept[seq1[i].ID] = struct{}{}
	}
	pos := 0
	for _, p := range seq2 {
		if _, ok := kept[p.ID]; ok {
			continue
		}
		for pos >= start && pos < end {
			pos++
		}
		child[pos] = p
		pos++
	}
	return child
}

// rebuild slices the flattened child sequence back into routes, reusing the
// template's route lengths, identities and depot.
func rebuild(template model.Solution, seq []model.Point) model.Solution {
	routes := make([]model.Route, len(template.Routes))
	idx := 0
	for i, r := range template.Routes {
		n := len(r.Stops)
		stops := make([]model.Point, n)
		copy(stops, seq[idx:idx+n])
		idx += n
		routes[i] = model.Route{
			ID:      r.ID,
			Vehicle: r.Vehicle,
			DepotX:  r.DepotX,
			DepotY:  r.DepotY,
			Stops:   stops,
		}
	}
	return model.Solution{Routes: routes}
}

// verifyChild halts on a broken partition. This is a programming error
// class, never a recoverable condition.
func verifyChild(child model.Solution, want int) {
	seen := make(map[string]struct{}, want)
	for _, r := range child.Routes {
		for _, p := range r.Stops {
			if _, dup := seen[p.ID]; dup {
				panic(fmt.Sprintf("genetic: crossover duplicated stop %s", p.ID))
			}
			seen[p.ID] = struct{}{}
		}
	}
	if len(seen) != want {
		panic(fmt.Sprintf("genetic: crossover produced %d stops, want %d", len(seen), want))
	}
}
