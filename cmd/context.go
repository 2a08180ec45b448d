package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	ptv "github.com/vrk-kpa/ptv-releases-sub014"
)

const (
	configFileName = "context.yml"
	defaultServer  = "localhost:4020"
)

// Server and Actor override the saved context for one command.
var (
	Server string
	Actor  string
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

type Context struct {
	Server string `mapstructure:"server"`
	Actor  string `mapstructure:"actor"`
}

// saves the context info to the config file in the user config dir
func setContextCommand() *cobra.Command {
	var server string
	var actor string
	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" && actor == "" {
				color.Red(`missing: --server or --actor`)
				return cmd.Usage()
			}

			current, err := readContext()
			if err != nil {
				return err
			}
			if server != "" {
				current.Server = server
			}
			if actor != "" {
				current.Actor = actor
			}

			if err := writeContext(current); err != nil {
				return fmt.Errorf("error writing config file: %w", err)
			}
			color.Green("context saved")
			return nil
		},
	}

	command.Flags().StringVarP(&server, "server", "s", "", "catalog grpc address")
	command.Flags().StringVarP(&actor, "actor", "a", "", "user recorded as the author of changes")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := readContext()
			if err != nil {
				return err
			}
			printField("Server", current.Server)
			printField("Actor", current.Actor)
			return nil
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeContext(Context{Server: defaultServer}); err != nil {
				return err
			}
			color.Green("context reset")
			return nil
		},
	}

	return command
}

func bindContextFlags(command *cobra.Command) {
	command.PersistentFlags().StringVar(&Server, "server", "", "catalog grpc address (overrides the context)")
	command.PersistentFlags().StringVar(&Actor, "actor", "", "acting user (overrides the context)")
}

// contextPath is $PTV_CONFIG_DIR/context.yml or the ptv dir in the user
// config dir.
func contextPath() (string, error) {
	dir := os.Getenv("PTV_CONFIG_DIR")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "ptv")
	}
	return filepath.Join(dir, configFileName), nil
}

func writeContext(c Context) error {
	path, err := contextPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yml")
	v.Set("context", map[string]string{
		"server": c.Server,
		"actor":  c.Actor,
	})
	return v.WriteConfigAs(path)
}

func readContext() (Context, error) {
	ctx := Context{Server: defaultServer}

	path, err := contextPath()
	if err != nil {
		return ctx, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ctx, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return ctx, nil
		}
		return ctx, fmt.Errorf("error reading config file: %w", err)
	}

	if err := v.UnmarshalKey("context", &ctx); err != nil {
		return ctx, fmt.Errorf("error unmarshalling config file: %w", err)
	}
	if ctx.Server == "" {
		ctx.Server = defaultServer
	}

	return ctx, nil
}

// effectiveContext applies the command line overrides to the saved context.
func effectiveContext() (Context, error) {
	current, err := readContext()
	if err != nil {
		return current, err
	}
	if Server != "" {
		current.Server = Server
	}
	if Actor != "" {
		current.Actor = Actor
	}
	return current, nil
}

// catalogClient connects to the catalog of the current context.
func catalogClient() (ptv.Client, context.Context, error) {
	current, err := effectiveContext()
	if err != nil {
		return nil, nil, err
	}

	client, err := ptv.NewClient(current.Server, current.Actor)
	if err != nil {
		return nil, nil, err
	}

	return client, context.Background(), nil
}
