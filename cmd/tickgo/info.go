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
	"os"
	"runtime"

	"github.com/ajroetker/tickgo/vecops"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the active backend and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printInfo(cmd.OutOrStdout())
			return nil
		},
	}
}

// feature is one CPU capability as reported by golang.org/x/sys/cpu.
type feature struct {
	name string
	has  bool
}

func cpuFeatures() []feature {
	switch runtime.GOARCH {
	case "amd64", "386":
		return []feature{
			{"SSE4.1", cpu.X86.HasSSE41},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"FMA", cpu.X86.HasFMA},
			{"AVX512F", cpu.X86.HasAVX512F},
		}
	case "arm64":
		return []feature{
			{"ASIMD", cpu.ARM64.HasASIMD},
			{"FP", cpu.ARM64.HasFP},
			{"ASIMDHP", cpu.ARM64.HasASIMDHP},
			{"SVE", cpu.ARM64.HasSVE},
		}
	}
	return nil
}

func backendTitle(b vecops.Backend) string {
	switch b {
	case vecops.BackendMKL, vecops.BackendBLAS, vecops.BackendCUDA:
		// Library names are acronyms.
		return fmt.Sprintf("%s (%s)", cases.Upper(language.English).String(b.String()), b)
	}
	return cases.Title(language.English).String(b.String())
}

func printInfo(w io.Writer) {
	fmt.Fprintf(w, "Backend:        %s\n", backendTitle(vecops.CurrentBackend()))
	fmt.Fprintf(w, "Batch workers:  %d", vecops.DefaultWorkers())
	if v := os.Getenv(vecops.WorkersEnv); v != "" {
		fmt.Fprintf(w, " (%s=%s)", vecops.WorkersEnv, v)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Parallel batch: >= %d items, >= %d elements per worker\n",
		vecops.MinParallelBatch, vecops.MinParallelChunk)
	fmt.Fprintf(w, "Platform:       %s/%s, GOMAXPROCS=%d\n", runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))

	feats := cpuFeatures()
	if len(feats) == 0 {
		return
	}
	fmt.Fprintln(w, "CPU features:")
	for _, f := range feats {
		fmt.Fprintf(w, "  %-8s %v\n", f.name+":", f.has)
	}
}
