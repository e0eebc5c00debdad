package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/homer/internal/config"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to list"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return errors.New("run history is disabled; set history.path in the configuration")
	}

	store, cleanup, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tOUTCOME\tGROUPS\tLINKS\tERRORS\tDURATION\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.StartedAt.Format(time.RFC3339), run.Outcome,
			run.Groups, run.Links, run.LineErrors, run.Duration, run.Output)
	}
	return w.Flush()
}
