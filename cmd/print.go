package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
)

const timeFormat = "2006-01-02 15:04:05"

var out io.Writer = os.Stdout

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Fprintf(out, "%-12s", label+":")
	color.Unset()
	fmt.Fprintln(out, value)
}

func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")

		_ = cmd.Usage()

		return true
	}

	return false
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format(timeFormat)
}

func formatLanguages(languages map[string]string) string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, code+":"+languages[code])
	}
	return strings.Join(parts, " ")
}

func printEntity(e *v1.Entity) {
	printField("ID", e.ID)
	printField("Kind", e.Kind)
	if e.Name != "" {
		printField("Name", fmt.Sprintf("%s (%s)", e.Name, e.Language))
	}
	if v := e.Version; v != nil {
		printField("Version", fmt.Sprintf("%s %s", v.Version, v.Status))
		printField("Versioned", v.ID)
		printField("Languages", formatLanguages(v.Languages))
		if v.ValidFrom != nil || v.ValidTo != nil {
			printField("Valid", formatTime(v.ValidFrom)+" - "+formatTime(v.ValidTo))
		}
		printField("Modified", fmt.Sprintf("%s by %s", v.Modified.Local().Format(timeFormat), v.ModifiedBy))
	}

	if e.Content == nil {
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Language", "Type", "Value"})
	for _, n := range e.Content.Names {
		table.Append([]string{"name", n.Language, n.Type, n.Value})
	}
	for _, d := range e.Content.Descriptions {
		table.Append([]string{"description", d.Language, d.Type, d.Value})
	}
	for _, k := range e.Content.Keywords {
		table.Append([]string{"keyword", k.Language, "", k.Value})
	}
	for _, w := range e.Content.WebPages {
		table.Append([]string{"web page", w.Language, "", w.URL})
	}
	for _, a := range e.Content.Addresses {
		for _, s := range a.Streets {
			table.Append([]string{"address", s.Language, a.Character, strings.TrimSpace(s.Street + " " + s.Number + ", " + a.PostalCode)})
		}
	}
	for _, taxonomy := range sortedKeys(e.Content.Classifications) {
		for _, id := range e.Content.Classifications[taxonomy] {
			table.Append([]string{"class", "", taxonomy, id})
		}
	}
	table.Render()
}

func printEntities(entities []*v1.Entity, total int64) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Name", "Language", "Status"})
	for _, e := range entities {
		var state string
		if e.Version != nil {
			state = e.Version.Status
		}
		table.Append([]string{e.ID, e.Name, e.Language, state})
	}
	table.SetFooter([]string{"", "", "Total", fmt.Sprint(total)})
	table.Render()
}

func printVersions(versions []*v1.Version) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Version", "Status", "Languages", "Operation", "Modified", "By"})
	for i, v := range versions {
		version := v.Version
		if i == 0 {
			version += " (current)"
		}
		table.Append([]string{
			version,
			v.Status,
			formatLanguages(v.Languages),
			v.LastOperation,
			v.Modified.Local().Format(timeFormat),
			v.ModifiedBy,
		})
	}
	table.Render()
}

func printConnections(connections []*v1.Connection) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Service", "Channel", "Order", "Created"})
	for _, c := range connections {
		table.Append([]string{c.ServiceID, c.ChannelID, fmt.Sprint(c.OrderNumber), c.Created.Local().Format(timeFormat)})
	}
	table.Render()
}

// printTree writes the nodes indented by depth.
func printTree(w io.Writer, nodes []*v1.TaxonomyNode, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), n.Code, n.Name)
		printTree(w, n.Children, depth+1)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
