package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jcorbin/mdtable/internal/sink"
	"github.com/jcorbin/mdtable/internal/textutil"
	"github.com/jcorbin/mdtable/markdown"
)

var errRewriteStdin = errors.New("cannot rewrite standard input")

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [FILE...]",
		Short: "Print processed documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.each(a.inputs(args), a.stdoutStore(), func(in input, w io.Writer) error {
				blocks, err := in.proc.ProcessDocument(in.source)
				if err != nil {
					return err
				}
				ew := &textutil.ErrWriter{Writer: w}
				fmt.Fprintf(ew, "# %v\n", in.store.Name())
				for _, b := range blocks {
					fmt.Fprintf(ew, "%+v\n", b)
				}
				return ew.Err
			})
		},
	}
}

func (a *app) rawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "raw [FILE...]",
		Short: "Print the raw syntax tree of documents, as parsed by the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.each(a.inputs(args), a.stdoutStore(), func(in input, w io.Writer) error {
				doc := in.proc.Parse(in.source)
				if _, err := fmt.Fprintf(w, "# %v\n", in.store.Name()); err != nil {
					return err
				}
				n := 0
				var werr error
				err := textutil.WriteLines(w, func(w io.Writer) bool {
					if n >= len(doc.Children) || werr != nil {
						return false
					}
					item := textutil.ListItem(w, fmt.Sprintf("%v. ", n+1))
					werr = markdown.WriteRawTree(item, doc.Children[n])
					n++
					return true
				})
				if err == nil {
					err = werr
				}
				return err
			})
		},
	}
}

func (a *app) fmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt [FILE...]",
		Short: "Reformat documents as markdown",
		Long: `Reformats each document, printing the result, or with -w rewriting each
file in place. Content that no processor understands is dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stores := a.inputs(args)
			if !write {
				return a.each(stores, a.stdoutStore(), func(in input, w io.Writer) error {
					blocks, err := in.proc.ProcessDocument(in.source)
					if err != nil {
						return err
					}
					return markdown.WriteMarkdown(w, blocks)
				})
			}
			for _, st := range stores {
				if _, isFile := st.(*sink.File); !isFile {
					return errRewriteStdin
				}
			}
			return a.each(stores, nil, func(in input, _ io.Writer) error {
				blocks, err := in.proc.ProcessDocument(in.source)
				if err != nil {
					return err
				}
				out := markdown.Render(blocks)
				if string(out) == string(in.source) {
					in.log.Debug("unchanged")
					return nil
				}
				in.log.Info("rewriting", zap.Int("bytes", len(out)))
				return sink.Save(in.store, func(w io.Writer) error {
					_, err := w.Write(out)
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place")
	return cmd
}
