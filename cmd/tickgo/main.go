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

// Command tickgo reports the compiled-in vector backend and fits synthetic
// least-squares problems with SGD.
//
// Usage:
//
//	tickgo info
//	tickgo fit --samples 10000 --features 100 --sparse --density 0.05 --epochs 20
//	go build -tags mkl ./cmd/tickgo     # select the MKL backend
//
// The batched operations use TICKGO_BATCH_WORKERS workers (default 4).
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tickgo",
		Short:         "SGD over pluggable vector backends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInfoCmd(), newFitCmd())
	return root
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("tickgo: ")
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
