package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/config"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/server"
)

func serveCmd() *cobra.Command {
	var grpcPort string
	var httpPort string
	var noJobs bool

	command := &cobra.Command{
		Use:   "serve",
		Short: "start the catalog server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if grpcPort != "" {
				cnf.GrpcPort = grpcPort
			}
			if httpPort != "" {
				cnf.HTTPPort = httpPort
			}
			if noJobs {
				cnf.Jobs.Enabled = false
			}
			if err := cnf.Validate(); err != nil {
				return err
			}

			if err := config.SetupLogging(cnf.Log); err != nil {
				return err
			}

			logrus.Infof("starting catalog server (%s)", cnf.Env)
			return server.NewServer(cnf).Start()
		},
	}

	command.Flags().StringVar(&grpcPort, "grpc-port", "", "grpc port (default from GRPC_PORT)")
	command.Flags().StringVar(&httpPort, "http-port", "", "http port (default from HTTP_PORT)")
	command.Flags().BoolVar(&noJobs, "no-jobs", false, "do not run the scheduled publishing and lock reaper jobs")

	return command
}
