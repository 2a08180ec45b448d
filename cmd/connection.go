package cmd

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
)

func init() {
	rootCmd.AddCommand(connectCmd())
	rootCmd.AddCommand(disconnectCmd())
	rootCmd.AddCommand(listConnectionsCmd())
}

func connectCmd() *cobra.Command {
	var serviceID string
	var channelID string
	var order int

	var required = []string{"service", "channel"}

	command := &cobra.Command{
		Use:     "connect",
		Short:   "connect a service to a service channel",
		Example: "ptv connect --service <service-id> --channel <channel-id> --order 1",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := catalogClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.Connect(ctx, &v1.ConnectRequest{ServiceID: serviceID, ChannelID: channelID, OrderNumber: order})
			if err != nil {
				logrus.Error(err)
				return
			}

			printConnections([]*v1.Connection{res.Connection})
		},
	}

	command.Flags().StringVar(&serviceID, "service", "", "service id (required)")
	command.Flags().StringVar(&channelID, "channel", "", "service channel id (required)")
	command.Flags().IntVar(&order, "order", 0, "position of the channel among the service channels")

	return command
}

func disconnectCmd() *cobra.Command {
	var serviceID string
	var channelID string

	var required = []string{"service", "channel"}

	command := &cobra.Command{
		Use:     "disconnect",
		Short:   "remove the connection between a service and a service channel",
		Example: "ptv disconnect --service <service-id> --channel <channel-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := catalogClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			if _, err := client.Disconnect(ctx, &v1.DisconnectRequest{ServiceID: serviceID, ChannelID: channelID}); err != nil {
				logrus.Error(err)
				return
			}

			color.Green("connection removed")
		},
	}

	command.Flags().StringVar(&serviceID, "service", "", "service id (required)")
	command.Flags().StringVar(&channelID, "channel", "", "service channel id (required)")

	return command
}

func listConnectionsCmd() *cobra.Command {
	var serviceID string
	var channelID string

	command := &cobra.Command{
		Use:     "connections",
		Short:   "list the connections of a service or a service channel",
		Example: "ptv connections --service <service-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if serviceID == "" && channelID == "" {
				color.Red("missing: --service or --channel")
				_ = cmd.Usage()
				return
			}

			client, ctx, err := catalogClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.ListConnections(ctx, &v1.ListConnectionsRequest{ServiceID: serviceID, ChannelID: channelID})
			if err != nil {
				logrus.Error(err)
				return
			}

			printConnections(res.Connections)
		},
	}

	command.Flags().StringVar(&serviceID, "service", "", "service id")
	command.Flags().StringVar(&channelID, "channel", "", "service channel id")

	return command
}
