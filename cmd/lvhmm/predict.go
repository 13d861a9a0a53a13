package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvhmm/classifier"
	"github.com/katalvlaran/lvhmm/quantizer"
	"github.com/katalvlaran/lvhmm/store"
)

// loadRecord fetches id, or the newest record when id is empty.
func loadRecord(ctx context.Context, s store.Store, id string) (store.ModelRecord, error) {
	if id == "" {
		list, err := s.ListModels(ctx)
		if err != nil {
			return store.ModelRecord{}, err
		}
		if len(list) == 0 {
			return store.ModelRecord{}, fmt.Errorf("no stored models")
		}
		id = list[len(list)-1].ID
	}
	rec, ok, err := s.GetModel(ctx, id)
	if err != nil {
		return store.ModelRecord{}, err
	}
	if !ok {
		return store.ModelRecord{}, fmt.Errorf("model %s not found", id)
	}

	return rec, nil
}

func predict(cmd *cobra.Command) error {
	lc, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(dataFlag)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openStore(ctx, lc)
	if err != nil {
		return err
	}
	defer func() { _ = store.CloseIfSupported(s) }()
	rec, err := loadRecord(ctx, s, modelFlag)
	if err != nil {
		return err
	}
	log.Infow("model loaded", "id", rec.ID, "dataset", rec.Dataset)

	q, err := quantizer.New(rec.Quantizer.NumClusters)
	if err != nil {
		return err
	}
	if err = q.Restore(rec.Quantizer); err != nil {
		return err
	}
	ens, err := classifier.New()
	if err != nil {
		return err
	}
	if err = ens.Restore(rec.Classifier); err != nil {
		return err
	}

	symbols, err := q.QuantizeDataset(ds)
	if err != nil {
		return err
	}
	ev, err := ens.Evaluate(symbols)
	if err != nil {
		return err
	}

	return writeEvaluation(cmd.OutOrStdout(), ens.Labels(), ev, verboseFlag)
}

func writeEvaluation(w io.Writer, labels []int, ev classifier.Evaluation, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if verbose {
		fmt.Fprint(tw, "sample\tlabel\tpredicted")
		for _, l := range labels {
			fmt.Fprintf(tw, "\tP(%d)\tLL(%d)", l, l)
		}
		fmt.Fprintln(tw)
		for _, r := range ev.Results {
			fmt.Fprintf(tw, "%d\t%d\t%d", r.Index, r.Label, r.Prediction.Label)
			for k := range labels {
				fmt.Fprintf(tw, "\t%.4f\t%.4f", r.Prediction.Likelihoods[k], r.Prediction.Distances[k])
			}
			fmt.Fprintln(tw)
		}
	}
	fmt.Fprintf(tw, "accuracy:\t%.4f\t(%d/%d)\n", ev.Accuracy, ev.Correct, len(ev.Results))
	if ev.Rejected > 0 {
		fmt.Fprintf(tw, "rejected:\t%d\n", ev.Rejected)
	}

	return tw.Flush()
}

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "classify a dataset with a stored model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return predict(cmd)
		},
	}
	attachFlags(cmd, []string{"config", "data", "model", "verbose"})

	return cmd
}
