// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package sampling provides example-selection strategies for stochastic
// solvers. Both strategies are deterministic for a given seed.
package sampling

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrEmpty reports a sampler over zero examples.
var ErrEmpty = errors.New("sampling: no examples")

// Kind names a sampling strategy.
type Kind int

const (
	// KindUniform draws indices independently and uniformly.
	KindUniform Kind = iota
	// KindPermutation visits every index once per pass, in a fresh random
	// order each pass.
	KindPermutation
)

func (k Kind) String() string {
	switch k {
	case KindUniform:
		return "uniform"
	case KindPermutation:
		return "perm"
	default:
		return "unknown"
	}
}

// ParseKind parses "uniform" or "perm" (also "permutation").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "uniform", "unif":
		return KindUniform, nil
	case "perm", "permutation":
		return KindPermutation, nil
	}
	return 0, fmt.Errorf("sampling: unknown kind %q", s)
}

// Sampler yields example indices.
type Sampler interface {
	Next() int
}

var (
	_ Sampler = (*Uniform)(nil)
	_ Sampler = (*Permutation)(nil)
)

// New returns a sampler of the given kind over [0, n).
func New(kind Kind, n int, seed uint64) (Sampler, error) {
	switch kind {
	case KindUniform:
		u, err := NewUniform(n, seed)
		if err != nil {
			return nil, err
		}
		return u, nil
	case KindPermutation:
		p, err := NewPermutation(n, seed)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("sampling: unknown kind %d", kind)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform draws indices in [0, n) with replacement.
type Uniform struct {
	n int
	r *rand.Rand
}

// NewUniform returns a Uniform sampler over [0, n).
func NewUniform(n int, seed uint64) (*Uniform, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrEmpty, n)
	}
	return &Uniform{n: n, r: newRand(seed)}, nil
}

// Next returns the next index.
func (u *Uniform) Next() int { return u.r.IntN(u.n) }

// Permutation visits each index of [0, n) exactly once per pass. A new
// permutation is drawn at the start of every pass.
type Permutation struct {
	perm []int
	pos  int
	r    *rand.Rand
}

// NewPermutation returns a Permutation sampler over [0, n).
func NewPermutation(n int, seed uint64) (*Permutation, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrEmpty, n)
	}
	p := &Permutation{perm: make([]int, n), r: newRand(seed)}
	for i := range p.perm {
		p.perm[i] = i
	}
	p.shuffle()
	return p, nil
}

func (p *Permutation) shuffle() {
	p.r.Shuffle(len(p.perm), func(i, j int) {
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	})
	p.pos = 0
}

// Next returns the next index.
func (p *Permutation) Next() int {
	if p.pos == len(p.perm) {
		p.shuffle()
	}
	i := p.perm[p.pos]
	p.pos++
	return i
}
