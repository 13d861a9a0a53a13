package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvhmm/dataset"
	"github.com/katalvlaran/lvhmm/internal/config"
	"github.com/katalvlaran/lvhmm/internal/logger"
	"github.com/katalvlaran/lvhmm/store"
)

// setup loads the config and installs the log settings.
func setup(cmd *cobra.Command) (*config.LocalConfig, *zap.SugaredLogger, error) {
	lc, err := config.InitLocalConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLogConfig(&lc.Log)

	return lc, logger.GetLogger(logger.MODULE_CLI), nil
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return nil, fmt.Errorf("missing --data")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := dataset.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// openStore returns an initialised store; close it with store.CloseIfSupported.
func openStore(ctx context.Context, lc *config.LocalConfig) (store.Store, error) {
	s, err := store.NewStore(lc.Store.Backend, lc.Store.Path)
	if err != nil {
		return nil, err
	}
	if err = s.Init(ctx); err != nil {
		_ = store.CloseIfSupported(s)
		return nil, err
	}

	return s, nil
}
