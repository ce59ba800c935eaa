package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/rahul/kaam/internal/agent"
	"github.com/rahul/kaam/internal/gateway"
	"github.com/rahul/kaam/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newChatCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask questions in an interactive loop (type 'exit' to quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, *configPath)
		},
	}
}

func runChat(cmd *cobra.Command, configPath string) error {
	a, err := loadApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.openAgent(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && observability.IsTerminal(f) {
		observability.PrintBanner(out)
	}
	return gateway.NewConsoleGateway(a.agent, cmd.InOrStdin(), out).Start(cmd.Context())
}

func newAskCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <prompt...>",
		Short: "Run a single prompt through the agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openAgent(); err != nil {
				return err
			}

			ctx := agent.WithSession(cmd.Context(), "cli")
			res, err := a.agent.Work(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			observability.PrintResult(cmd.OutOrStdout(), res.Output)
			return nil
		},
	}
}

func newToolsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog shown to the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openTools(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.registry.Describe())
			return nil
		},
	}
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var (
		limit   int
		session string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent decisions from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openJournal(); err != nil {
				return err
			}
			if a.journal == nil {
				return errors.New("the journal is disabled; set memory.type to \"sqlite\"")
			}

			entries, err := a.journal.Recent(cmd.Context(), session, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSESSION\tPROMPT\tTOOL\tRESULT")
			for _, e := range entries {
				result := e.Output
				if e.Error != "" {
					result = "error: " + e.Error
				}
				tool := e.Tool
				if tool == "" {
					tool = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.Session, truncate(e.Prompt, 40), tool, truncate(result, 60))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	cmd.Flags().StringVar(&session, "session", "", "only show entries of this session")
	return cmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the enabled chat bot gateways until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.openAgent(); err != nil {
				return err
			}

			var gateways []gateway.Messenger
			if gw, ok := a.cfg.GetGatewayConfig("telegram"); ok {
				tg, err := gateway.NewTelegramGateway(gw.Token, a.agent)
				if err != nil {
					return err
				}
				gateways = append(gateways, tg)
			}
			if gw, ok := a.cfg.GetGatewayConfig("discord"); ok {
				dc, err := gateway.NewDiscordGateway(gw.Token, a.agent)
				if err != nil {
					return err
				}
				gateways = append(gateways, dc)
			}
			if len(gateways) == 0 {
				return errors.New("no gateway is enabled; configure gateways.telegram or gateways.discord")
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			for _, gw := range gateways {
				gw := gw
				g.Go(func() error { return gw.Start(ctx) })
			}
			log.Info().Int("gateways", len(gateways)).Msg("serving")
			return g.Wait()
		},
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
