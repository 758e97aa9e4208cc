// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ajroetker/tickgo/model"
	"github.com/ajroetker/tickgo/prox"
	"github.com/ajroetker/tickgo/sampling"
	"github.com/ajroetker/tickgo/sgd"
	"github.com/ajroetker/tickgo/vecops"
	"github.com/spf13/cobra"
)

type fitOptions struct {
	samples   int
	features  int
	sparse    bool
	density   float64
	intercept bool
	noise     float64
	step      float64
	epochs    int
	tol       float64
	every     int
	sampler   string
	prox      string
	strength  float64
	seed      uint64
	single    bool
	verbose   bool
}

func newFitCmd() *cobra.Command {
	o := &fitOptions{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a synthetic least-squares problem with SGD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.single {
				return runFit[float32](cmd, o)
			}
			return runFit[float64](cmd, o)
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.samples, "samples", 1000, "number of examples")
	f.IntVar(&o.features, "features", 20, "number of features")
	f.BoolVar(&o.sparse, "sparse", false, "store features sparsely and use the batched epoch")
	f.Float64Var(&o.density, "density", 0.1, "fraction of non-zero features when --sparse")
	f.BoolVar(&o.intercept, "intercept", false, "fit an intercept")
	f.Float64Var(&o.noise, "noise", 0.1, "label noise standard deviation")
	f.Float64Var(&o.step, "step", 0.01, "base step size; step_t = step/(t+1)")
	f.IntVar(&o.epochs, "epochs", 10, "maximum number of epochs")
	f.Float64Var(&o.tol, "tol", 1e-6, "stop when the relative iterate change is below tol (0 disables)")
	f.IntVar(&o.every, "record-every", 1, "print one history line every N epochs")
	f.StringVar(&o.sampler, "sampler", "uniform", "example sampler: uniform or perm")
	f.StringVar(&o.prox, "prox", "none", "proximal operator: none, l2sq or l1")
	f.Float64Var(&o.strength, "strength", 1e-3, "penalty strength for --prox")
	f.Uint64Var(&o.seed, "seed", 1, "random seed for data and sampling")
	f.BoolVar(&o.single, "float32", false, "use single precision")
	f.BoolVar(&o.verbose, "verbose", false, "log one line per epoch from the solver")
	return cmd
}

func newProx[T vecops.Float](name string, strength T, nFeatures int) (sgd.Prox[T], error) {
	// The intercept, if any, sits after the features and is not penalized.
	r := prox.Range{Start: 0, End: nFeatures}
	switch name {
	case "none", "zero":
		return prox.Zero[T]{}, nil
	case "l2sq":
		return prox.L2Sq[T]{Strength: strength, Range: r}, nil
	case "l1":
		return prox.L1[T]{Strength: strength, Range: r}, nil
	}
	return nil, fmt.Errorf("unknown prox %q (want none, l2sq or l1)", name)
}

func runFit[T vecops.Float](cmd *cobra.Command, o *fitOptions) error {
	ops := vecops.New[T]()
	sim, err := model.Simulate[T](model.SimConfig{
		Samples:   o.samples,
		Features:  o.features,
		Intercept: o.intercept,
		Sparse:    o.sparse,
		Density:   o.density,
		Noise:     o.noise,
		Seed:      o.seed,
	}, ops)
	if err != nil {
		return err
	}
	m := sim.Model

	kind, err := sampling.ParseKind(o.sampler)
	if err != nil {
		return err
	}
	samp, err := sampling.New(kind, m.NSamples(), o.seed+1)
	if err != nil {
		return err
	}
	p, err := newProx(o.prox, T(o.strength), m.NFeatures())
	if err != nil {
		return err
	}

	opts := []sgd.Option[T]{sgd.WithStep(T(o.step)), sgd.WithOps(ops)}
	if o.verbose {
		opts = append(opts, sgd.WithLogger[T](log.Default()))
	}
	solver, err := sgd.New[T](m, p, samp, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "backend=%s samples=%d features=%d sparse=%v intercept=%v sampler=%s prox=%s\n",
		ops.Name(), o.samples, o.features, o.sparse, o.intercept, kind, o.prox)
	fmt.Fprintf(out, "initial loss %.6g\n", m.Loss(solver.Iterate()))

	start := time.Now()
	h, err := sgd.Fit(cmd.Context(), solver, sgd.FitConfig[T]{
		MaxEpochs:   o.epochs,
		Tol:         o.tol,
		RecordEvery: o.every,
		Objective:   m.Loss,
	})
	if err != nil {
		return err
	}
	printHistory(out, h)
	fmt.Fprintf(out, "epochs=%d converged=%v elapsed=%v\n", h.Epochs, h.Converged, time.Since(start).Round(time.Microsecond))
	fmt.Fprintf(out, "distance to true weights %.4g\n", sgd.RelativeDistance(solver.Iterate(), sim.Weights))
	return nil
}

func printHistory(w io.Writer, h sgd.History) {
	fmt.Fprintf(w, "%6s %10s %12s %12s\n", "epoch", "t", "rel_dist", "loss")
	for _, r := range h.Records {
		fmt.Fprintf(w, "%6d %10d %12.4e %12.6g\n", r.Epoch, r.T, r.RelDist, r.Objective)
	}
}
