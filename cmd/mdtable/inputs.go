package main

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/mdtable/internal/sink"
	"github.com/jcorbin/mdtable/markdown"
)

const stdinName = "<stdin>"

// input is one document read for processing.
type input struct {
	store  sink.Store
	source []byte
	proc   *markdown.Processor
	log    *zap.Logger
}

// inputs returns a store per argument; every "-" shares one standard input
// store, so each reads the same content.
func (a *app) inputs(args []string) []sink.Store {
	stdin := sink.NewStream(stdinName, a.stdin, nil)
	if len(args) == 0 {
		return []sink.Store{stdin}
	}
	stores := make([]sink.Store, len(args))
	for i, arg := range args {
		if arg == "-" {
			stores[i] = stdin
		} else {
			stores[i] = sink.NewFile(arg)
		}
	}
	return stores
}

// each runs do over every input, a.jobs at a time, each with its own
// processor. Output is written into out in input order; inputs that fail
// contribute no output, and their errors are combined.
func (a *app) each(stores []sink.Store, out sink.Store, do func(in input, w io.Writer) error) error {
	var (
		g    errgroup.Group
		bufs = make([]bytes.Buffer, len(stores))
		errs = make([]error, len(stores))
	)
	g.SetLimit(a.jobs)
	for i, st := range stores {
		i, st := i, st
		g.Go(func() error {
			log := a.log.With(zap.String("input", st.Name()))
			if err := a.process(st, log, &bufs[i], do); err != nil {
				log.Error("failed", zap.Error(err))
				bufs[i].Reset()
				errs[i] = fmt.Errorf("%v: %w", st.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	err := multierr.Combine(errs...)
	if out == nil {
		return err
	}
	return multierr.Append(err, sink.Save(out, func(w io.Writer) error {
		for i := range bufs {
			if _, err := bufs[i].WriteTo(w); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (a *app) process(st sink.Store, log *zap.Logger, w io.Writer, do func(in input, w io.Writer) error) error {
	proc, err := a.cfg.NewProcessor(log)
	if err != nil {
		return err
	}
	src, err := sink.ReadAll(st)
	if err != nil {
		return err
	}
	log.Debug("read", zap.Int("bytes", len(src)))
	return do(input{store: st, source: src, proc: proc, log: log}, w)
}

func (a *app) stdoutStore() sink.Store {
	return sink.NewStream("<stdout>", nil, a.stdout)
}
