package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/derp/internal/adapters/detector"
	"go.trai.ch/derp/internal/app"
	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/ui/style"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var errUnknownOutput = zerr.New("unknown output format")

// indexRow is the wire form of one listed entry, shared by the json and yaml
// outputs. It mirrors the index document schema plus the fingerprint key.
type indexRow struct {
	Fingerprint    string    `json:"fingerprint" yaml:"fingerprint"`
	Callable       string    `json:"callable" yaml:"callable"`
	CalledAt       time.Time `json:"called_at" yaml:"called_at"`
	ExpiresAfter   float64   `json:"expires_after,omitempty" yaml:"expires_after,omitempty"`
	Annotation     string    `json:"annotation,omitempty" yaml:"annotation,omitempty"`
	HashAnnotation *bool     `json:"hash_annotation,omitempty" yaml:"hash_annotation,omitempty"`
}

func (c *CLI) newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "List the cached entries, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keepExpired, _ := cmd.Flags().GetBool("keep-expired")
			output, _ := cmd.Flags().GetString("output")

			records, err := c.app.List(cmd.Context(), app.ListOptions{KeepExpired: keepExpired})
			if err != nil {
				return err
			}

			switch output {
			case "json":
				return writeJSON(cmd, toRows(records))
			case "yaml":
				return writeYAML(cmd, toRows(records))
			case "table":
				writeTable(cmd, records)
				return nil
			default:
				return zerr.With(errUnknownOutput, "output", output)
			}
		},
	}

	cmd.Flags().Bool("keep-expired", false, "List without sweeping expired entries")
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json, or yaml")

	return cmd
}

func toRows(records []domain.Record) []indexRow {
	rows := make([]indexRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, indexRow{
			Fingerprint:    r.Fingerprint,
			Callable:       r.Entry.Callable,
			CalledAt:       r.Entry.CalledAt,
			ExpiresAfter:   r.Entry.ExpiresAfter,
			Annotation:     r.Entry.Annotation,
			HashAnnotation: r.Entry.HashAnnotation,
		})
	}

	return rows
}

func writeJSON(cmd *cobra.Command, rows []indexRow) error {
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode entries as json")
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

func writeYAML(cmd *cobra.Command, rows []indexRow) error {
	out, err := yaml.Marshal(rows)
	if err != nil {
		return zerr.Wrap(err, "failed to encode entries as yaml")
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), string(out))

	return nil
}

func writeTable(cmd *cobra.Command, records []domain.Record) {
	if len(records) == 0 {
		return
	}

	headerStyle := lipgloss.NewStyle().Align(lipgloss.Left).PaddingRight(2)
	cellStyle := lipgloss.NewStyle().Align(lipgloss.Left).PaddingRight(2)

	if detector.DetectEnvironment() == detector.ModeStyled {
		headerStyle = headerStyle.Foreground(style.Iris).Bold(true)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		expires := "never"
		if r.Entry.Expires() {
			expires = r.Entry.Window().String()
		}

		rows = append(rows, []string{
			r.Fingerprint,
			r.Entry.Callable,
			humanize.Time(r.Entry.CalledAt),
			expires,
			r.Entry.Annotation,
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("FINGERPRINT", "CALLABLE", "CALLED", "EXPIRES", "ANNOTATION").
		Rows(rows...)

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
}
