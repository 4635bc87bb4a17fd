package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/subproc/internal/config"
	"github.com/runger/subproc/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "Show recent runs",
	RunE:         runHistory,
	SilenceUsage: true,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := cfg.History.Path
	if path == "" {
		path = config.DefaultPaths().HistoryDB()
	}
	store, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tEXIT\tSIGNALED\tDURATION\tCOMMAND")
	for _, r := range runs {
		signaled := "-"
		if r.Signaled {
			signaled = r.Signal
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.ExitCode,
			signaled,
			r.Duration.Round(time.Millisecond),
			r.Command,
		)
	}
	return w.Flush()
}
