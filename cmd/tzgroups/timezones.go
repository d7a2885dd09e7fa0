package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/tzgroups/internal/availability"
)

func timezonesCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "timezones",
		Short: "List supported timezones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			needle := strings.ToLower(filter)
			for _, tz := range availability.Timezones() {
				if needle == "" || strings.Contains(strings.ToLower(tz), needle) {
					fmt.Fprintln(cmd.OutOrStdout(), tz)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only zones containing this text")

	return cmd
}
