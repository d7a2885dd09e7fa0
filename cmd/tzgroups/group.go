package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tzgroups/internal/grouping"
	"github.com/mmynk/tzgroups/internal/models"
	"github.com/mmynk/tzgroups/internal/service"
	"github.com/mmynk/tzgroups/internal/strategy"
)

type groupOptions struct {
	size     int
	strategy string
	seed     uint64
	workers  int
	server   string
	json     bool
}

func groupCmd() *cobra.Command {
	var opts groupOptions

	cmd := &cobra.Command{
		Use:   "group [file]",
		Short: "Split tokens into groups",
		Long: `Read one token per line from file, or stdin when no file is given, and
split the people into groups of --size. Blank lines and lines starting with #
are skipped. Tokens that fail to decode are dropped and counted.

Examples:
  tzgroups random --count 20 | tzgroups group --size 4
  tzgroups group roster.txt --size 5 --strategy minmax --seed 42
  tzgroups group roster.txt --size 5 --server http://localhost:8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			tokens, err := readTokens(in)
			if err != nil {
				return err
			}
			return runGroup(cmd, tokens, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.size, "size", "n", 0, "people per group")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "hillclimb, random or minmax (default from TZGROUPS_STRATEGY)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "replay a run; 0 draws a fresh seed")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", -1, "parallel workers for local runs (default from TZGROUPS_WORKERS); not allowed with --server")
	cmd.Flags().StringVar(&opts.server, "server", "", "call a tzgroups server at this URL instead of running locally")
	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "output as JSON")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func readTokens(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	return tokens, nil
}

func runGroup(cmd *cobra.Command, tokens []string, opts groupOptions) error {
	var (
		resp *service.CreateGroupsResponse
		err  error
	)
	if opts.server != "" {
		if cmd.Flags().Changed("workers") {
			return fmt.Errorf("--workers only applies to local runs; the server uses its own TZGROUPS_WORKERS")
		}
		resp, err = groupRemote(cmd.Context(), tokens, opts)
	} else {
		resp, err = groupLocal(tokens, opts)
	}
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	printGroups(cmd.OutOrStdout(), resp)
	return nil
}

func groupLocal(tokens []string, opts groupOptions) (*service.CreateGroupsResponse, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	kind := cfg.Strategy
	if opts.strategy != "" {
		if kind, err = strategy.ParseKind(opts.strategy); err != nil {
			return nil, err
		}
	}
	params := cfg.Params()
	if opts.workers >= 0 {
		params.Workers = opts.workers
	}

	res, err := grouping.NewEngine(grouping.WithParams(params)).Run(grouping.Request{
		Tokens:    tokens,
		GroupSize: opts.size,
		Strategy:  kind,
		Seed:      opts.seed,
	})
	if err != nil {
		return nil, err
	}

	return service.NewCreateGroupsResponse(res), nil
}

func groupRemote(ctx context.Context, tokens []string, opts groupOptions) (*service.CreateGroupsResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	client := service.NewGroupingServiceClient(http.DefaultClient, strings.TrimRight(opts.server, "/"))
	resp, err := client.CreateGroups(ctx, connect.NewRequest(&service.CreateGroupsRequest{
		Tokens:    tokens,
		GroupSize: opts.size,
		Strategy:  opts.strategy,
		Seed:      opts.seed,
	}))
	if err != nil {
		return nil, fmt.Errorf("create groups: %w", err)
	}
	return resp.Msg, nil
}

func printGroups(w io.Writer, resp *service.CreateGroupsResponse) {
	for i, g := range resp.Groups {
		when := "no shared hour"
		if len(g.SuggestedHours) > 0 {
			when = fmt.Sprintf("%s UTC (%.0f%% free)", formatHour(g.SuggestedHours[0]), g.Coverage*100)
		}
		fmt.Fprintf(w, "Group %d: %s\n", i+1, when)
		for _, token := range g.Members {
			fmt.Fprintf(w, "  %s\n", memberLabel(token))
		}
	}
	fmt.Fprintf(w, "\nstrategy=%s seed=%d dropped=%d\n", resp.Strategy, resp.Seed, resp.Dropped)
}

func memberLabel(token string) string {
	p, err := models.DecodePerson(token)
	if err != nil {
		return token
	}
	return fmt.Sprintf("%s (%s)", p.Name(), p.Timezone())
}
