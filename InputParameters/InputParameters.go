package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type BenchParameters struct {
	Title       string `yaml:"Title"`
	NBlocks     int    `yaml:"NBlocks"`     // number of stored blocks
	BlockRows   int    `yaml:"BlockRows"`   // rows of each block
	BlockCols   int    `yaml:"BlockCols"`   // columns of each block
	Structure   string `yaml:"Structure"`   // Toeplitz, EvenCirculant or OddCirculant
	Seed        int64  `yaml:"Seed"`        // seed for the random block entries
	Repetitions int    `yaml:"Repetitions"` // number of timed fast multiplies
	Verify      bool   `yaml:"Verify"`      // compare against the dense product
}

func (bp *BenchParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, bp); err != nil {
		return err
	}
	return bp.validate()
}

func (bp *BenchParameters) validate() error {
	if bp.NBlocks < 1 {
		return fmt.Errorf("NBlocks must be at least 1, got %d", bp.NBlocks)
	}
	if bp.BlockRows < 1 || bp.BlockCols < 1 {
		return fmt.Errorf("block shape must be positive, got %dx%d", bp.BlockRows, bp.BlockCols)
	}
	switch bp.Structure {
	case "Toeplitz", "EvenCirculant", "OddCirculant":
	default:
		return fmt.Errorf("unknown Structure %q, expected Toeplitz, EvenCirculant or OddCirculant", bp.Structure)
	}
	if bp.Repetitions < 1 {
		bp.Repetitions = 1
	}
	return nil
}

func (bp *BenchParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", bp.Title)
	fmt.Printf("[%s]\t= Structure\n", bp.Structure)
	fmt.Printf("[%d]\t\t\t= NBlocks\n", bp.NBlocks)
	fmt.Printf("[%dx%d]\t\t\t= Block Shape\n", bp.BlockRows, bp.BlockCols)
	fmt.Printf("[%d]\t\t\t= Repetitions\n", bp.Repetitions)
	fmt.Printf("[%d]\t\t\t= Seed\n", bp.Seed)
	fmt.Printf("[%v]\t\t\t= Verify\n", bp.Verify)
}
