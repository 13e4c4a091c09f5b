package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/autocare/autocare/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect second-opinion LLM calls and their token usage",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")
		opts.FeedbackID, _ = cmd.Flags().GetString("diagnosis")

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(cmd, nonNil(events))
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.LLMEvents(events))
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		if wantJSON(cmd) {
			return printJSON(cmd, e)
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.LLMEvent(e))
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(cmd, map[string]any{
				"by_purpose": nonNil(byPurpose),
				"by_model":   nonNil(byModel),
			})
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.LLMUsage(byPurpose, byModel))
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls with this purpose (e.g. second-opinion)")
	llmListCmd.Flags().StringP("diagnosis", "d", "", "Only calls made for this diagnosis id")

	for _, c := range []*cobra.Command{llmListCmd, llmViewCmd, llmStatsCmd} {
		addOutputFlags(c)
		llmCmd.AddCommand(c)
	}
}
