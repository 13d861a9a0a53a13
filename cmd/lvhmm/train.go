package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvhmm/classifier"
	"github.com/katalvlaran/lvhmm/internal/logger"
	"github.com/katalvlaran/lvhmm/quantizer"
	"github.com/katalvlaran/lvhmm/store"
)

// train runs the pipeline: load, quantize, train the ensemble, store.
func train(cmd *cobra.Command) error {
	lc, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(dataFlag)
	if err != nil {
		return err
	}
	log.Infow("dataset loaded", "name", ds.Name(), "samples", ds.NumSamples(), "classes", ds.NumClasses())

	q, err := quantizer.New(lc.Quantizer.NumClusters, lc.KMeansOptions()...)
	if err != nil {
		return err
	}
	if err = q.TrainDataset(ds); err != nil {
		return fmt.Errorf("quantizer: %w", err)
	}
	logger.GetLogger(logger.MODULE_QUANTIZER).Infow("quantizer trained",
		"clusters", q.NumClusters(), "dims", q.NumDimensions(), "theta", q.Theta())
	symbols, err := q.QuantizeDataset(ds)
	if err != nil {
		return err
	}

	ens, err := classifier.New(lc.ClassifierOptions()...)
	if err != nil {
		return err
	}
	if err = ens.Train(symbols); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	ev, err := ens.Evaluate(symbols)
	if err != nil {
		return err
	}

	qs, err := q.Snapshot()
	if err != nil {
		return err
	}
	cs, err := ens.Snapshot()
	if err != nil {
		return err
	}
	rec := store.NewRecord(ds.Name(), qs, cs)
	for _, label := range ens.Labels() {
		lg, _ := ens.TrainingLog(label)
		rec.TrainingLogs = append(rec.TrainingLogs, store.ClassLog{Label: label, Log: lg})
	}

	ctx := cmd.Context()
	s, err := openStore(ctx, lc)
	if err != nil {
		return err
	}
	defer func() { _ = store.CloseIfSupported(s) }()
	if err = s.SaveModel(ctx, rec); err != nil {
		return err
	}
	logger.GetLogger(logger.MODULE_STORE).Infow("model saved", "id", rec.ID, "backend", lc.Store.Backend)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", rec.ID)
	fmt.Fprintf(out, "training accuracy: %.4f (%d/%d)\n", ev.Accuracy, ev.Correct, len(ev.Results))

	return nil
}

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "train a quantizer and a per-class HMM ensemble",
		Long:  "train quantizes the dataset with K-Means, trains one HMM per class and stores both",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return train(cmd)
		},
	}
	attachFlags(cmd, []string{"config", "data"})

	return cmd
}
