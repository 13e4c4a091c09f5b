package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autocare/autocare/internal/app"
	"github.com/autocare/autocare/internal/store"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <description>",
	Short: "Diagnose a vehicle problem from a description",
	Example: `  autocare diagnose "engine is knocking when I accelerate" --region Kenya --age 8 --mileage 95000
  autocare diagnose "gari lina moto sana" --language sw --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.TrimSpace(strings.Join(args, " "))
		if description == "" {
			return fmt.Errorf("description must not be empty")
		}

		a, cleanup, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		req := app.Request{Description: description}
		req.Region, _ = cmd.Flags().GetString("region")
		req.Language, _ = cmd.Flags().GetString("language")
		req.Season, _ = cmd.Flags().GetString("season")
		req.MediaCount, _ = cmd.Flags().GetInt("media")
		req.NoSave, _ = cmd.Flags().GetBool("no-save")
		if cmd.Flags().Changed("age") {
			age, _ := cmd.Flags().GetInt("age")
			req.VehicleAge = &age
		}
		if cmd.Flags().Changed("mileage") {
			mileage, _ := cmd.Flags().GetInt("mileage")
			req.Mileage = &mileage
		}
		if req.Season != "" && !slices.Contains(a.Catalog().Seasons(), req.Season) {
			return fmt.Errorf("unknown season %q (want one of %s)", req.Season, strings.Join(a.Catalog().Seasons(), ", "))
		}

		res, err := a.Diagnose(cmd.Context(), req)
		if err != nil {
			return err
		}

		if wantJSON(cmd) {
			return printJSON(cmd, res)
		}
		r := renderer(cmd)
		if err := printReport(cmd, r, r.Diagnosis(res.Diagnosis, res.Parts, res.Mechanics)); err != nil {
			return err
		}
		if res.Saved {
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved as %s. Rate it with: autocare feedback %s --accurate\n",
				res.Diagnosis.FeedbackID, res.Diagnosis.FeedbackID)
		}
		if res.PendingOpinion {
			fmt.Fprintln(cmd.OutOrStdout(), "Asking for a second opinion; see it later with: autocare show", res.Diagnosis.FeedbackID)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved diagnoses, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			return fmt.Errorf("--page must be at least 1")
		}

		a, cleanup, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.History(cmd.Context(), page)
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(cmd, historyJSON(p))
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.History(p))
	},
}

var showCmd = &cobra.Command{
	Use:   "show <feedback-id>",
	Short: "Show a saved diagnosis with its feedback and second opinion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		rec, err := a.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printRecord(cmd, rec)
	},
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <feedback-id>",
	Short: "Record whether a diagnosis was accurate",
	Example: `  autocare feedback DIAG-1760000000123-1a2b3c4d5 --accurate --actual-cost 180
  autocare feedback DIAG-1760000000123-1a2b3c4d5 --accurate=false --comment "it was the alternator"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fb := store.Feedback{}
		fb.WasAccurate, _ = cmd.Flags().GetBool("accurate")
		fb.Comment, _ = cmd.Flags().GetString("comment")
		if cmd.Flags().Changed("actual-cost") {
			cost, _ := cmd.Flags().GetFloat64("actual-cost")
			fb.ActualCost = &cost
		}

		a, cleanup, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		rec, err := a.Feedback(cmd.Context(), args[0], fb)
		if err != nil {
			return err
		}
		return printRecord(cmd, rec)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over saved diagnoses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := a.Statistics(cmd.Context())
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(cmd, stats)
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.Statistics(stats))
	},
}

func printRecord(cmd *cobra.Command, rec *store.DiagnosticRecord) error {
	d, err := app.DecodeDiagnosis(rec)
	if err != nil {
		return err
	}
	op, err := app.DecodeOpinion(rec)
	if err != nil {
		return err
	}
	if wantJSON(cmd) {
		return printJSON(cmd, newRecordJSON(rec, d, op))
	}
	r := renderer(cmd)
	return printReport(cmd, r, r.Record(rec, d, op))
}

func init() {
	f := diagnoseCmd.Flags()
	f.String("region", "", "Region for pricing and insights (default engine.default_region)")
	f.StringP("language", "l", "", "Language of the description: en, sw, yo, fr, ha or ig")
	f.Int("age", 0, "Vehicle age in years (default engine.default_vehicle_age)")
	f.Int("mileage", 0, "Vehicle mileage in miles (default engine.default_mileage)")
	f.String("season", "", "Season: rainy, dry or harmattan (default derived from the date)")
	f.Int("media", 0, "Number of photos or videos attached")
	f.Bool("no-save", false, "Do not save the diagnosis")
	addOutputFlags(diagnoseCmd)

	historyCmd.Flags().Int("page", 1, "Page number")
	addOutputFlags(historyCmd)

	addOutputFlags(showCmd)

	feedbackCmd.Flags().Bool("accurate", false, "Whether the diagnosis was accurate")
	feedbackCmd.Flags().String("comment", "", "Free-text feedback")
	feedbackCmd.Flags().Float64("actual-cost", 0, "What the repair actually cost (USD)")
	_ = feedbackCmd.MarkFlagRequired("accurate")
	addOutputFlags(feedbackCmd)

	addOutputFlags(statsCmd)
}
