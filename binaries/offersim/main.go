package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twitter/offerqueue/common/errors"
	"github.com/twitter/offerqueue/common/log/hooks"
	"github.com/twitter/offerqueue/common/stats"
)

// Offer simulator: drives the job queue with a simulated cluster.
//	Flags: (see "-h" for all options)
//		--config [name of a scheduler configuration, ex: local.memory]
//		--jobs [number of random jobs to submit]
//		--offers [number of offer rounds, one offer per node per round]
//		--seed [seed for job generation]
//		--log_level [<error|info|debug> level and above should be logged]
//		--pretty [pretty print the final stats]

func main() {
	log.AddHook(hooks.NewContextHook("offerqueue/"))

	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(int(errors.ExitCodeOf(err)))
	}
}

func newRootCmd() *cobra.Command {
	opts := simOptions{}
	var logLevel string
	var pretty bool

	cmd := &cobra.Command{
		Use:           "offersim",
		Short:         "offersim feeds random jobs and simulated offers through the job queue",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return errors.NewError(err, errors.BadFlagsExitCode)
			}
			log.SetLevel(level)

			stat := stats.NewCustomStatsReceiver(stats.NewFinagleStatsRegistry)
			s, err := runSimulation(context.Background(), opts, stat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", stat.Render(pretty))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configSelector, "config", "local.memory", "Scheduler configuration to simulate")
	flags.IntVar(&opts.numJobs, "jobs", 1000, "Number of random jobs to submit")
	flags.IntVar(&opts.rounds, "offers", 20, "Number of offer rounds")
	flags.Int64Var(&opts.seed, "seed", 0, "Seed for job generation")
	flags.StringVar(&logLevel, "log_level", "info", "Log everything at this level and above (error|info|debug)")
	flags.BoolVar(&pretty, "pretty", false, "Pretty print stats")
	return cmd
}
