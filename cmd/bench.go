/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/seakeeping/gobem/InputParameters"
	"github.com/seakeeping/gobem/toeplitz"
	"github.com/seakeeping/gobem/utils"
)

type BenchModel struct {
	ParamsFile string
	Profile    bool
}

// StructuredMatrix is the surface the solver consumes from any of the
// compressed block matrix types.
type StructuredMatrix interface {
	Dims() (nr, nc int)
	MulVec(b []float64) ([]float64, error)
	Full() utils.Matrix
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the Fourier-domain structured multiply against the dense product",
	Long:  `Time the Fourier-domain structured multiply against the dense product`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("bench called")
		bm := &BenchModel{}
		if bm.ParamsFile, err = cmd.Flags().GetString("parametersFile"); err != nil {
			panic(err)
		}
		bm.Profile, _ = cmd.Flags().GetBool("profile")
		bp := processBenchInput(bm)
		RunBench(bm, bp)
	},
}

func processBenchInput(bm *BenchModel) (bp *InputParameters.BenchParameters) {
	var (
		err error
	)
	if len(bm.ParamsFile) == 0 {
		err := fmt.Errorf("must supply a parameters file (-I, --parametersFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Odd circulant check"
NBlocks: 8
BlockRows: 16
BlockCols: 16
Structure: OddCirculant # Can be "Toeplitz" or "EvenCirculant"
Seed: 42
Repetitions: 10
Verify: true
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(bm.ParamsFile); err != nil {
		panic(err)
	}
	bp = &InputParameters.BenchParameters{}
	if err = bp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().StringP("parametersFile", "I", "", "YAML file with the benchmark problem:\n\t- NBlocks\n\t- BlockRows/BlockCols\n\t- Structure")
	BenchCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the run to the working directory")
}

func RunBench(bm *BenchModel, bp *InputParameters.BenchParameters) {
	if bm.Profile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}
	bp.Print()
	var (
		rnd = rand.New(rand.NewSource(bp.Seed))
		row = make([]utils.Matrix, bp.NBlocks)
	)
	for k := range row {
		data := make([]float64, bp.BlockRows*bp.BlockCols)
		for i := range data {
			data[i] = rnd.NormFloat64()
		}
		row[k] = utils.NewMatrix(bp.BlockRows, bp.BlockCols, data)
	}
	var (
		A   StructuredMatrix
		err error
	)
	switch bp.Structure {
	case "EvenCirculant":
		A, err = toeplitz.NewEvenCirculant(row)
	case "OddCirculant":
		A, err = toeplitz.NewOddCirculant(row)
	case "Toeplitz":
		fallthrough
	default:
		A, err = toeplitz.NewSymmetricToeplitz(row)
	}
	if err != nil {
		panic(err)
	}
	nr, nc := A.Dims()
	fmt.Printf("matrix is %dx%d (%d blocks of %dx%d stored)\n", nr, nc, bp.NBlocks, bp.BlockRows, bp.BlockCols)
	b := make([]float64, nc)
	for i := range b {
		b[i] = rnd.NormFloat64()
	}
	var x []float64
	start := time.Now()
	for i := 0; i < bp.Repetitions; i++ {
		if x, err = A.MulVec(b); err != nil {
			panic(err)
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("structured multiply: %d repetitions in %v (%v each)\n",
		bp.Repetitions, elapsed, elapsed/time.Duration(bp.Repetitions))
	if bp.Verify {
		start = time.Now()
		xd := A.Full().MulVec(b)
		fmt.Printf("dense multiply: %v\n", time.Since(start))
		var maxErr float64
		for i := range x {
			if d := math.Abs(x[i] - xd[i]); d > maxErr {
				maxErr = d
			}
		}
		fmt.Printf("max abs difference = %8.3e\n", maxErr)
	}
}
