package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ptv",
	Short: "service catalog tool",
	Example: `ptv serve
ptv db migrate
ptv context set --server localhost:4020 --actor alice
ptv create -k service --name fi=Rakennuslupa --name sv=Bygglov
ptv get -k service -i <id> --selector published --language sv
ptv list -k service --status published
ptv update -k service -i <id> --file content.json
ptv publish -k service -i <id> -l fi -l sv
ptv versions -k service -i <id>
ptv connect --service <id> --channel <id>
ptv taxonomy import -t service_class -f classes.json`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(contextCommand)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	bindContextFlags(rootCmd)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
