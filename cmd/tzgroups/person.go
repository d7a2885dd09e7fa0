package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/models"
)

func encodeCmd() *cobra.Command {
	var name, timezone, bits string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a person into a token",
		Long: `Encode a person into a token. --availability is 168 characters of 0 and 1,
one per hour of the week in the person's own timezone, starting Monday 00:00.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := models.NewPerson(name, timezone, bits)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Encode())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVarP(&timezone, "tz", "t", "", "IANA timezone, e.g. America/Los_Angeles")
	cmd.Flags().StringVarP(&bits, "availability", "a", "", "168 characters of 0 and 1")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("tz")
	_ = cmd.MarkFlagRequired("availability")

	return cmd
}

func decodeCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "decode [token]",
		Short: "Show the person behind a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := models.DecodePerson(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:     %s\n", p.Name())
			fmt.Fprintf(out, "Timezone: %s\n", p.Timezone())
			fmt.Fprintf(out, "Free:     %d hours/week\n", p.Week().Count())

			week, zone := p.Week(), p.Timezone()
			if in != "" {
				view, err := p.AvailabilityIn(in)
				if err != nil {
					return err
				}
				if week, err = availability.ParseWeek(view); err != nil {
					return err
				}
				zone = in
			}
			fmt.Fprintf(out, "\nAvailability (%s):\n", zone)
			printWeek(out, week)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "show availability as seen from this timezone")

	return cmd
}
