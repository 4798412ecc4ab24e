package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jcorbin/mdtable/internal/mdconfig"
	"github.com/jcorbin/mdtable/internal/sink"
	"github.com/jcorbin/mdtable/markdown"
	"github.com/jcorbin/mdtable/tables"
)

func (a *app) tablesCmd() *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "tables [FILE...]",
		Short: "Extract every table from documents",
		Long: `Extracts every table from each document, or from standard input when
none are given, printing them in document order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.Format = format
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			write, err := tableWriter(a.cfg.Format)
			if err != nil {
				return err
			}
			out := a.stdoutStore()
			if output != "" && output != "-" {
				out = sink.NewFile(output)
			}
			return a.each(a.inputs(args), out, func(in input, w io.Writer) error {
				blocks, err := in.proc.ProcessDocument(in.source)
				if err != nil {
					return err
				}
				found := collectTables(nil, blocks)
				for i, tb := range found {
					rec := tableRecord{Source: in.store.Name(), Index: i + 1, Table: tb}
					if err := write(w, rec); err != nil {
						return err
					}
				}
				in.log.Debug("extracted tables")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", mdconfig.FormatText, fmt.Sprintf("output format, one of %v", mdconfig.Formats()))
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file, replaced atomically, rather than standard output")
	return cmd
}

// tableRecord is a table found within a source document; Index counts from 1.
type tableRecord struct {
	Source string            `json:"source" yaml:"source"`
	Index  int               `json:"index" yaml:"index"`
	Table  tables.TableBlock `json:"table" yaml:"table"`
}

func tableWriter(format string) (func(w io.Writer, rec tableRecord) error, error) {
	switch format {
	case mdconfig.FormatText:
		return func(w io.Writer, rec tableRecord) error {
			_, err := fmt.Fprintf(w, "%v table %v\n%+v\n\n", rec.Source, rec.Index, rec.Table)
			return err
		}, nil

	case mdconfig.FormatJSON:
		// one record per line
		return func(w io.Writer, rec tableRecord) error {
			return json.NewEncoder(w).Encode(rec)
		}, nil

	case mdconfig.FormatYAML:
		return func(w io.Writer, rec tableRecord) error {
			b, err := yaml.Marshal(rec)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
			_, err = w.Write(b)
			return err
		}, nil

	case mdconfig.FormatMarkdown:
		// blank line separated, so that adjacent tables stay apart
		return func(w io.Writer, rec tableRecord) error {
			_, err := w.Write(append(markdown.Render([]markdown.Block{rec.Table}), '\n'))
			return err
		}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// collectTables appends every table within blocks, including those nested in
// quotes and lists.
func collectTables(found []tables.TableBlock, blocks []markdown.Block) []tables.TableBlock {
	for _, b := range blocks {
		switch v := b.(type) {
		case tables.TableBlock:
			found = append(found, v)
		case markdown.BlockQuote:
			found = collectTables(found, v.Blocks)
		case markdown.List:
			for _, item := range v.Items {
				found = collectTables(found, item.Blocks)
			}
		}
	}
	return found
}
