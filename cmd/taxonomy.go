package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "taxonomy commands",
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
	taxonomyCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	taxonomyCmd.AddCommand(importTaxonomyCmd())
	taxonomyCmd.AddCommand(taxonomyTreeCmd())
	taxonomyCmd.AddCommand(taxonomyAncestorsCmd())

	rootCmd.AddCommand(applySchedulesCmd())
}

const taxonomyUsage = "ontology_term, service_class, life_event, target_group, organization_type, digital_authorization or industrial_class"

// readNodes reads a json array of taxonomy nodes.
func readNodes(path string) ([]*v1.TaxonomyNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var nodes []*v1.TaxonomyNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}

func importTaxonomyCmd() *cobra.Command {
	var taxonomy string
	var file string

	var required = []string{"taxonomy", "file"}

	command := &cobra.Command{
		Use:     "import",
		Short:   "import taxonomy nodes",
		Long:    `add or update taxonomy nodes from a json array of {id, parentId, code, uri, names}`,
		Example: "ptv taxonomy import -t service_class -f classes.json",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			nodes, err := readNodes(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			client, ctx, err := catalogClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.ImportTaxonomy(ctx, &v1.ImportTaxonomyRequest{Taxonomy: taxonomy, Nodes: nodes})
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("imported %d %s nodes", res.Imported, taxonomy)
		},
	}

	command.Flags().StringVarP(&taxonomy, "taxonomy", "t", "", taxonomyUsage+" (required)")
	command.Flags().StringVarP(&file, "file", "f", "", "json file with the nodes (required)")

	return command
}

func taxonomyTreeCmd() *cobra.Command {
	var taxonomy string
	var language string

	var required = []string{"taxonomy"}

	command := &cobra.Command{
		Use:     "tree",
		Short:   "print a taxonomy tree",
		Example: "ptv taxonomy tree -t life_event -l sv",
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

			res, err := client.GetTaxonomyTree(ctx, &v1.GetTaxonomyTreeRequest{Taxonomy: taxonomy, Language: language})
			if err != nil {
				logrus.Error(err)
				return
			}

			printTree(out, res.Roots, 0)
		},
	}

	command.Flags().StringVarP(&taxonomy, "taxonomy", "t", "", taxonomyUsage+" (required)")
	command.Flags().StringVarP(&language, "language", "l", "", "language of the node names")

	return command
}

func taxonomyAncestorsCmd() *cobra.Command {
	var taxonomy string
	var nodeID string
	var language string

	var required = []string{"taxonomy", "id"}

	command := &cobra.Command{
		Use:     "ancestors",
		Short:   "print the path from the root to a node",
		Example: "ptv taxonomy ancestors -t service_class -i <node-id>",
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

			res, err := client.GetTaxonomyAncestors(ctx, &v1.GetTaxonomyAncestorsRequest{Taxonomy: taxonomy, ID: nodeID, Language: language})
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Depth", "ID", "Code", "Name"})
			for i, n := range res.Nodes {
				table.Append([]string{fmt.Sprint(i), n.ID, n.Code, n.Name})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&taxonomy, "taxonomy", "t", "", taxonomyUsage+" (required)")
	command.Flags().StringVarP(&nodeID, "id", "i", "", "node id (required)")
	command.Flags().StringVarP(&language, "language", "l", "", "language of the node names")

	return command
}

func applySchedulesCmd() *cobra.Command {
	var at string

	command := &cobra.Command{
		Use:     "schedules",
		Short:   "publish and archive versions whose validity window has changed",
		Example: "ptv schedules --at 2025-01-01T00:00:00Z",
		Run: func(cmd *cobra.Command, args []string) {
			req := &v1.ApplySchedulesRequest{}
			if at != "" {
				now, err := time.Parse(time.RFC3339, at)
				if err != nil {
					logrus.Errorf("invalid --at, expected RFC3339: %v", err)
					return
				}
				req.Now = &now
			}

			client, ctx, err := catalogClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.ApplySchedules(ctx, req)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Kind", "ID", "Version", "Operation"})
			for _, c := range res.Changes {
				table.Append([]string{c.Kind, c.ID, c.VersionID, c.Operation})
			}
			table.Render()
		},
	}

	command.Flags().StringVar(&at, "at", "", "apply the schedules as of this time (RFC3339)")

	return command
}
