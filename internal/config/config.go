// Package config loads the CLI configuration from lvhmm.yaml, LVHMM_*
// environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvhmm/classifier"
	"github.com/katalvlaran/lvhmm/hmm"
	"github.com/katalvlaran/lvhmm/internal/logger"
	"github.com/katalvlaran/lvhmm/kmeans"
	"github.com/katalvlaran/lvhmm/quantizer"
	"github.com/katalvlaran/lvhmm/store"
)

const (
	EnvPrefix  = "lvhmm"
	EnvCfgPath = "LVHMM_CFG_PATH"
	ConfigName = "lvhmm"
)

type QuantizerConfig struct {
	NumClusters int     `mapstructure:"num_clusters"`
	MinEpochs   int     `mapstructure:"min_epochs"`
	MaxEpochs   int     `mapstructure:"max_epochs"`
	MinChange   float64 `mapstructure:"min_change"`
	Scaling     bool    `mapstructure:"scaling"`
}

type HMMConfig struct {
	NumStates      int     `mapstructure:"num_states"`
	Topology       string  `mapstructure:"topology"`
	Delta          int     `mapstructure:"delta"`
	MaxIterations  int     `mapstructure:"max_iterations"`
	MinImprovement float64 `mapstructure:"min_improvement"`
	RandomRestarts int     `mapstructure:"random_restarts"`
}

type ClassifierConfig struct {
	NullRejection bool `mapstructure:"null_rejection"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// LocalConfig is the whole CLI configuration.
type LocalConfig struct {
	Seed       int64            `mapstructure:"seed"`
	Quantizer  QuantizerConfig  `mapstructure:"quantizer"`
	HMM        HMMConfig        `mapstructure:"hmm"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Store      StoreConfig      `mapstructure:"store"`
	Log        logger.LogConfig `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 1)

	v.SetDefault("quantizer.num_clusters", kmeans.DefaultNumClusters)
	v.SetDefault("quantizer.min_epochs", quantizer.DefaultMinEpochs)
	v.SetDefault("quantizer.max_epochs", quantizer.DefaultMaxEpochs)
	v.SetDefault("quantizer.min_change", quantizer.DefaultMinChange)
	v.SetDefault("quantizer.scaling", kmeans.DefaultScaling)

	v.SetDefault("hmm.num_states", classifier.DefaultNumStates)
	v.SetDefault("hmm.topology", classifier.DefaultTopology.String())
	v.SetDefault("hmm.delta", classifier.DefaultDelta)
	v.SetDefault("hmm.max_iterations", classifier.DefaultMaxIterations)
	v.SetDefault("hmm.min_improvement", classifier.DefaultMinImprovement)
	v.SetDefault("hmm.random_restarts", classifier.DefaultRandomRestarts)

	v.SetDefault("classifier.null_rejection", classifier.DefaultNullRejection)

	v.SetDefault("store.backend", store.BackendSQLite)
	v.SetDefault("store.path", "./lvhmm.db")

	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.console", true)
}

// InitLocalConfig reads the config for cmd.
// If the --config flag is set, that file is used and must exist. Otherwise
// lvhmm.yaml is searched for in LVHMM_CFG_PATH (default "."); a missing file
// leaves the defaults. LVHMM_<SECTION>_<KEY> variables override the file.
func InitLocalConfig(cmd *cobra.Command) (*LocalConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	altPath := os.Getenv(EnvCfgPath)
	if altPath == "" {
		altPath = "."
	}
	v.AddConfigPath(altPath)
	v.SetConfigName(ConfigName)

	cmdSetConfigFile := ""
	if flag := cmd.Flags().Lookup("config"); flag != nil {
		cmdSetConfigFile = flag.Value.String()
	}
	if cmdSetConfigFile != "" {
		v.SetConfigFile(cmdSetConfigFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cmdSetConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	lc := &LocalConfig{}
	if err := v.Unmarshal(lc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := hmm.ParseTopology(lc.HMM.Topology); err != nil {
		return nil, fmt.Errorf("config: hmm.topology: %w", err)
	}

	return lc, nil
}

// KMeansOptions maps the quantizer section to kmeans options.
func (lc *LocalConfig) KMeansOptions() []kmeans.Option {
	return []kmeans.Option{
		kmeans.WithMinEpochs(lc.Quantizer.MinEpochs),
		kmeans.WithMaxEpochs(lc.Quantizer.MaxEpochs),
		kmeans.WithMinChange(lc.Quantizer.MinChange),
		kmeans.WithScaling(lc.Quantizer.Scaling),
		kmeans.WithSeed(lc.Seed),
		kmeans.WithLogger(logger.GetLogger(logger.MODULE_KMEANS)),
	}
}

// ClassifierOptions maps the hmm and classifier sections to ensemble
// options. The alphabet size is the quantizer's cluster count.
func (lc *LocalConfig) ClassifierOptions() []classifier.Option {
	topo, _ := hmm.ParseTopology(lc.HMM.Topology)
	return []classifier.Option{
		classifier.WithNumStates(lc.HMM.NumStates),
		classifier.WithNumSymbols(lc.Quantizer.NumClusters),
		classifier.WithTopology(topo),
		classifier.WithDelta(lc.HMM.Delta),
		classifier.WithMaxIterations(lc.HMM.MaxIterations),
		classifier.WithMinImprovement(lc.HMM.MinImprovement),
		classifier.WithRandomRestarts(lc.HMM.RandomRestarts),
		classifier.WithNullRejection(lc.Classifier.NullRejection),
		classifier.WithSeed(lc.Seed),
		classifier.WithLogger(logger.GetLogger(logger.MODULE_CLASSIFIER)),
		classifier.WithModelLogger(logger.GetLogger(logger.MODULE_HMM)),
	}
}
