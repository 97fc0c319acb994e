package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"landing-sequencer-service/internal/adapters/dataset"
	"landing-sequencer-service/internal/api/dto"
	"landing-sequencer-service/internal/config"
	"landing-sequencer-service/internal/ports"
	"landing-sequencer-service/internal/report"
	"landing-sequencer-service/internal/services"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagURL     string
	flagFile    string
	flagLayout  string
	flagName    string
	flagTimeout time.Duration
	flagQuiet   bool
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "alpctl",
		Short: "Sequence aircraft landings on a single runway",
		Long: `alpctl loads an aircraft landing dataset (OR-Library airland format by
default), orders arrivals by latest landing time and assigns each a landing
slot that honours separation times, diverting aircraft that cannot land
within their window.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagQuiet {
				log.SetOutput(io.Discard)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", config.Get("DATASET_URL", config.DefaultDatasetURL), "Dataset URL, fetched when --file does not exist")
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", config.Get("DATASET_FILE", config.DefaultDatasetFile), "Local dataset file")
	rootCmd.PersistentFlags().StringVar(&flagLayout, "layout", config.Get("DATASET_LAYOUT", string(dataset.LayoutORLib)), "Dataset layout: orlib or reference")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", config.Get("DATASET_NAME", "alp_10_1"), "Dataset name")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 2*time.Minute, "Overall timeout")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress logging")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(fetchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scheduleCmd() *cobra.Command {
	var (
		flagJSON    bool
		flagOffline bool
		flagNoColor bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute the landing schedule and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagNoColor {
				color.NoColor = true
			}

			layout, err := dataset.ParseLayout(flagLayout)
			if err != nil {
				return err
			}

			var provider ports.DatasetProvider
			if flagOffline {
				provider = dataset.NewFileDatasetProvider(flagFile, layout, flagName)
			} else {
				remote, err := dataset.NewRemoteDatasetProvider(flagURL, flagFile, layout, flagName)
				if err != nil {
					return err
				}
				provider = remote
			}

			ctx, cancel := commandContext()
			defer cancel()

			out, err := services.RunSequence(ctx, provider, services.RunDeps{})
			if err != nil {
				return err
			}

			if flagJSON {
				return writeScheduleJSON(cmd.OutOrStdout(), out)
			}

			return report.WriteSchedule(cmd.OutOrStdout(), out.Dataset, out.Result)
		},
	}

	cmd.Flags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	cmd.Flags().BoolVar(&flagOffline, "offline", false, "Never download; read --file only")
	cmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	return cmd
}

// writeScheduleJSON prints the same document GET /run-schedule returns.
func writeScheduleJSON(w io.Writer, out *services.RunOutput) error {
	resp := dto.NewScheduleResponse(out.Result)
	resp.Dataset = out.Dataset
	resp.Fingerprint = out.Fingerprint
	resp.Cached = out.Cached
	resp.RunID = out.RunID

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the dataset into --file unless it already exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := dataset.ParseLayout(flagLayout)
			if err != nil {
				return err
			}

			remote, err := dataset.NewRemoteDatasetProvider(flagURL, flagFile, layout, flagName)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			if err := remote.Ensure(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("ready"), flagFile)
			return nil
		},
	}
}

func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, flagTimeout)
	return ctx, func() {
		cancel()
		stop()
	}
}
