package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/mmynk/tzgroups/internal/synthetic"
)

func randomCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print tokens for a synthetic roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}
			if seed == 0 {
				seed = rand.Uint64() | 1
			}
			for _, p := range synthetic.Seeded(count, seed) {
				fmt.Fprintln(cmd.OutOrStdout(), p.Encode())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 20, "number of people")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "generator seed; 0 draws a fresh one")

	return cmd
}
