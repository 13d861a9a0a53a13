// Command lvhmm trains and applies discrete-HMM time-series classifiers.
//
//	lvhmm stats   -d train.grt
//	lvhmm train   -d train.grt            # prints the run id
//	lvhmm predict -d test.grt -m <run id>
//	lvhmm models
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var flags *pflag.FlagSet

var (
	cfgPathFlag string
	dataFlag    string
	modelFlag   string
	verboseFlag bool
)

func init() {
	resetFlags()
}

// resetFlags rebuilds the shared flag set; tests call it between runs.
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&cfgPathFlag, "config", "c", "",
		"config file (default: lvhmm.yaml in $LVHMM_CFG_PATH or .)")
	flags.StringVarP(&dataFlag, "data", "d", "", "labelled time-series dataset file")
	flags.StringVarP(&modelFlag, "model", "m", "", "stored run id; empty picks the latest")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "print per-sample predictions")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

func newMainCmd() *cobra.Command {
	mainCmd := &cobra.Command{
		Use:          "lvhmm",
		Short:        "discrete HMM time-series classifier",
		SilenceUsage: true,
	}
	mainCmd.AddCommand(statsCmd(), trainCmd(), predictCmd(), modelsCmd())

	return mainCmd
}

func main() {
	if newMainCmd().Execute() != nil {
		os.Exit(1)
	}
}
