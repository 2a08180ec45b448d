package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
)

// contentFlags builds entity content from a json file and single value
// flags. Flags are applied on top of the file.
type contentFlags struct {
	file         string
	names        []string
	descriptions []string
	summaries    []string
	entityType   string
	organization string
	fundingType  string
	validFrom    string
	validTo      string
}

func (f *contentFlags) bind(command *cobra.Command) {
	command.Flags().StringVarP(&f.file, "file", "f", "", "json file with the entity content")
	command.Flags().StringArrayVarP(&f.names, "name", "n", nil, "name as language=value, repeatable")
	command.Flags().StringArrayVar(&f.descriptions, "description", nil, "description as language=value, repeatable")
	command.Flags().StringArrayVar(&f.summaries, "summary", nil, "summary as language=value, repeatable")
	command.Flags().StringVar(&f.entityType, "type", "", "organization, service or channel type")
	command.Flags().StringVar(&f.organization, "organization", "", "responsible organization id")
	command.Flags().StringVar(&f.fundingType, "funding", "", "service funding type")
	command.Flags().StringVar(&f.validFrom, "valid-from", "", "publish automatically at (RFC3339)")
	command.Flags().StringVar(&f.validTo, "valid-to", "", "archive automatically at (RFC3339)")
}

func (f *contentFlags) content() (*v1.Content, error) {
	content := &v1.Content{}
	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, content); err != nil {
			return nil, fmt.Errorf("%s: %w", f.file, err)
		}
	}

	names, err := parseLocalized(f.names, "name")
	if err != nil {
		return nil, err
	}
	descriptions, err := parseLocalized(f.descriptions, "description")
	if err != nil {
		return nil, err
	}
	summaries, err := parseLocalized(f.summaries, "summary")
	if err != nil {
		return nil, err
	}
	content.Names = append(content.Names, names...)
	content.Descriptions = append(content.Descriptions, descriptions...)
	content.Descriptions = append(content.Descriptions, summaries...)

	if f.entityType != "" {
		content.Type = f.entityType
	}
	if f.organization != "" {
		content.OrganizationID = f.organization
	}
	if f.fundingType != "" {
		content.FundingType = f.fundingType
	}
	if content.ValidFrom, err = parseTime(f.validFrom, content.ValidFrom); err != nil {
		return nil, err
	}
	if content.ValidTo, err = parseTime(f.validTo, content.ValidTo); err != nil {
		return nil, err
	}

	return content, nil
}

// parseLocalized parses language=value pairs.
func parseLocalized(values []string, valueType string) ([]v1.LocalizedValue, error) {
	out := make([]v1.LocalizedValue, 0, len(values))
	for _, v := range values {
		language, value, ok := strings.Cut(v, "=")
		language, value = strings.TrimSpace(language), strings.TrimSpace(value)
		if !ok || language == "" || value == "" {
			return nil, fmt.Errorf("invalid %s %q, expected language=value", valueType, v)
		}
		out = append(out, v1.LocalizedValue{Language: language, Type: valueType, Value: value})
	}
	return out, nil
}

func parseTime(value string, fallback *time.Time) (*time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q, expected RFC3339", value)
	}
	return &t, nil
}
