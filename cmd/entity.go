package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
)

func init() {
	rootCmd.AddCommand(createEntityCmd())
	rootCmd.AddCommand(getEntityCmd())
	rootCmd.AddCommand(listEntitiesCmd())
	rootCmd.AddCommand(updateEntityCmd())
	rootCmd.AddCommand(publishEntityCmd())
	rootCmd.AddCommand(withdrawEntityCmd())
	rootCmd.AddCommand(deleteEntityCmd())
	rootCmd.AddCommand(restoreEntityCmd())
	rootCmd.AddCommand(eraseEntityCmd())
	rootCmd.AddCommand(listVersionsCmd())
}

const kindUsage = "organization, service, service_channel or general_description"

func createEntityCmd() *cobra.Command {
	var kind string
	var entityID string
	var content contentFlags

	var required = []string{"kind"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create an entity",
		Long:    `create an entity with a draft version holding the given content`,
		Example: "ptv create -k service --name fi=Rakennuslupa --description \"fi=Lupa rakentamiseen\"",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			req := &v1.CreateEntityRequest{Kind: kind, ID: entityID}
			var err error
			if req.Content, err = content.content(); err != nil {
				logrus.Error(err)
				return
			}

			client, ctx, err := catalogClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.CreateEntity(ctx, req)
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("%s created with id: %s", kind, res.Entity.ID)
			printEntity(res.Entity)
		},
	}

	command.Flags().StringVarP(&kind, "kind", "k", "", kindUsage+" (required)")
	command.Flags().StringVarP(&entityID, "id", "i", "", "entity id, generated when empty")
	content.bind(command)

	command.Flags().SortFlags = false

	return command
}

func getEntityCmd() *cobra.Command {
	var kind string
	var entityID string
	var selector string
	var language string
	var asJSON bool

	var required = []string{"kind", "id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get an entity",
		Example: "ptv get -k service -i <id> --selector published --language sv",
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

			res, err := client.GetEntity(ctx, &v1.GetEntityRequest{
				Kind:     kind,
				ID:       entityID,
				Selector: selector,
				Language: language,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			if asJSON {
				data, err := json.MarshalIndent(res.Entity, "", "  ")
				if err != nil {
					logrus.Error(err)
					return
				}
				fmt.Fprintln(out, string(data))
				return
			}

			printEntity(res.Entity)
		},
	}

	command.Flags().StringVarP(&kind, "kind", "k", "", kindUsage+" (required)")
	command.Flags().StringVarP(&entityID, "id", "i", "", "entity id (required)")
	command.Flags().StringVarP(&selector, "selector", "s", "latest", "latest, published or a version id")
	command.Flags().StringVarP(&language, "language", "l", "", "preferred language of the name")
	command.Flags().BoolVar(&asJSON, "json", false, "print the entity as json")

	command.Flags().SortFlags = false

	return command
}

func listEntitiesCmd() *cobra.Command {
	var kind string
	var status string
	var organization string
	var language string
	var page int
	var pageSize int

	var required = []string{"kind"}

	command := &cobra.Command{
		Use:     "list",
		Short:   "list entities",
		Example: "ptv list -k service --status published --page 1",
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

			res, err := client.ListEntities(ctx, &v1.ListEntitiesRequest{
				Kind:           kind,
				Status:         status,
				OrganizationID: organization,
				Language:       language,
				Page:           page,
				PageSize:       pageSize,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printEntities(res.Entities, res.Total)
		},
	}

	command.Flags().StringVarP(&kind, "kind", "k", "", kindUsage+" (required)")
	command.Flags().StringVar(&status, "status", "", "draft, modified, published, archived or deleted")
	command.Flags().StringVar(&organization, "organization", "", "responsible organization id")
	command.Flags().StringVarP(&language, "language", "l", "", "preferred language of the names")
	command.Flags().IntVarP(&page, "page", "p", 0, "page number, starting from 0")
	command.Flags().IntVar(&pageSize, "page-size", 20, "entities per page")

	command.Flags().SortFlags = false

	return command
}

func updateEntityCmd() *cobra.Command {
	var kind string
	var entityID string
	var expected string
	var content contentFlags

	var required = []string{"kind", "id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update an entity",
		Long:    `replace the content of an entity, creating a new version when the current one is published`,
		Example: "ptv update -k service -i <id> -f content.json --expected-version <version-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			req := &v1.UpdateEntityRequest{Kind: kind, ID: entityID, ExpectedVersionID: expected}
			var err error
			if req.Content, err = content.content(); err != nil {
				logrus.Error(err)
				return
			}

			client, ctx, err := catalogClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			if expected == "" {
				color.Magenta("overwriting %s: %s\n", kind, entityID)
			}

			res, err := client.UpdateEntity(ctx, req)
			if err != nil {
				logrus.Error(err)
				return
			}

			printEntity(res.Entity)
		},
	}

	command.Flags().StringVarP(&kind, "kind", "k", "", kindUsage+" (required)")
	command.Flags().StringVarP(&entityID, "id", "i", "", "entity id (required)")
	command.Flags().StringVar(&expected, "expected-version", "", "fail unless this version is still the latest")
	content.bind(command)

	command.Flags().SortFlags = false

	return command
}

// languagesCmd builds the publish and withdraw commands.
func languagesCmd(use, short string, call func(ctx context.Context, client v1.CatalogClient, req *v1.LanguagesRequest) (*v1.EntityResponse, error)) *cobra.Command {
	var kind string
	var entityID string
	var languages []string

	var required = []string{"kind", "id"}

	command := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: fmt.Sprintf("ptv %s -k service -i <id> -l fi -l sv", use),
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

			res, err := call(ctx, client, &v1.LanguagesRequest{Kind: kind, ID: entityID, Languages: languages})
			if err != nil {
				logrus.Error(err)
				return
			}

			printField("ID", res.Entity.ID)
			printField("Version", res.Entity.Version.Version+" "+res.Entity.Version.Status)
			printField("Languages", formatLanguages(res.Entity.Version.Languages))
		},
	}

	command.Flags().StringVarP(&kind, "kind", "k", "", kindUsage+" (required)")
	command.Flags().StringVarP(&entityID, "id", "i", "", "entity id (required)")
	command.Flags().StringSliceVarP(&languages, "language", "l", nil, "languages, all named languages when empty")

	command.Flags().SortFlags = false

	return command
}

func publishEntityCmd() *cobra.Command {
	return languagesCmd("publish", "publish the latest version of an entity", func(ctx context.Context, client v1.CatalogClient, req *v1.LanguagesRequest) (*v1.EntityResponse, error) {
		return client.PublishEntity(ctx, req)
	})
}

func withdrawEntityCmd() *cobra.Command {
	return languagesCmd("withdraw", "withdraw published languages of an entity", func(ctx context.Context, client v1.CatalogClient, req *v1.LanguagesRequest) (*v1.EntityResponse, error) {
		return client.WithdrawEntity(ctx, req)
	})
}

// refCmd builds the commands addressing one entity by kind and id.
func refCmd(use, short string, run func(ctx context.Context, client v1.CatalogClient, ref *v1.EntityRef) error) *cobra.Command {
	var kind string
	var entityID string

	var required = []string{"kind", "id"}

	command := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: fmt.Sprintf("ptv %s -k service -i <id>", use),
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

			if err := run(ctx, client, &v1.EntityRef{Kind: kind, ID: entityID}); err != nil {
				logrus.Error(err)
			}
		},
	}

	command.Flags().StringVarP(&kind, "kind", "k", "", kindUsage+" (required)")
	command.Flags().StringVarP(&entityID, "id", "i", "", "entity id (required)")

	command.Flags().SortFlags = false

	return command
}

func deleteEntityCmd() *cobra.Command {
	return refCmd("delete", "mark an entity deleted", func(ctx context.Context, client v1.CatalogClient, ref *v1.EntityRef) error {
		res, err := client.DeleteEntity(ctx, ref)
		if err != nil {
			return err
		}
		color.Green("%s %s deleted (version %s)", ref.Kind, ref.ID, res.Entity.Version.Version)
		return nil
	})
}

func restoreEntityCmd() *cobra.Command {
	return refCmd("restore", "restore a deleted entity as a draft", func(ctx context.Context, client v1.CatalogClient, ref *v1.EntityRef) error {
		res, err := client.RestoreEntity(ctx, ref)
		if err != nil {
			return err
		}
		color.Green("%s %s restored (version %s)", ref.Kind, ref.ID, res.Entity.Version.Version)
		return nil
	})
}

func eraseEntityCmd() *cobra.Command {
	return refCmd("erase", "remove an entity and its whole history", func(ctx context.Context, client v1.CatalogClient, ref *v1.EntityRef) error {
		if _, err := client.EraseEntity(ctx, ref); err != nil {
			return err
		}
		color.Green("%s %s erased", ref.Kind, ref.ID)
		return nil
	})
}

func listVersionsCmd() *cobra.Command {
	return refCmd("versions", "list the versions of an entity", func(ctx context.Context, client v1.CatalogClient, ref *v1.EntityRef) error {
		res, err := client.ListVersions(ctx, ref)
		if err != nil {
			return err
		}
		printVersions(res.Versions)
		return nil
	})
}
