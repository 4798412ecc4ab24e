// Command mdtable extracts, dumps, and reformats markdown documents, with
// GitHub Flavored Markdown tables.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jcorbin/mdtable/internal/mdconfig"
	"github.com/jcorbin/mdtable/markdown"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	stdin  io.Reader
	stdout io.Writer

	configPath string
	engine     string
	exts       []string
	verbose    bool
	jobs       int

	cfg mdconfig.Config
	log *zap.Logger
}

func newApp(stdin io.Reader, stdout io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mdtable",
		Short: "Process markdown documents and their tables",
		Long: `mdtable parses markdown with a selectable engine, and GitHub Flavored
Markdown extensions such as tables and strikethrough.

Configuration is read from ` + mdconfig.FileName + `, looked up from the working
directory upward, unless given with --config; flags override it.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file")
	flags.StringVar(&a.engine, "engine", "", fmt.Sprintf("markdown engine, one of %v", markdown.EngineNames()))
	flags.StringSliceVar(&a.exts, "ext", nil, fmt.Sprintf("extensions to enable, of %v", mdconfig.ExtensionNames()))
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVarP(&a.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "how many documents to process at once")

	root.AddCommand(
		a.tablesCmd(),
		a.dumpCmd(),
		a.rawCmd(),
		a.fmtCmd(),
	)
	return root
}

// setup loads configuration, applies flags over it, and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := mdconfig.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine = a.engine
	}
	if flags.Changed("ext") {
		cfg.Extensions = a.exts
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if a.jobs < 1 {
		return fmt.Errorf("invalid --jobs %v, must be at least 1", a.jobs)
	}
	a.cfg = cfg

	if a.log == nil {
		log, level, err := cfg.Log.Logger()
		if err != nil {
			return err
		}
		if a.verbose {
			level.SetLevel(zapcore.DebugLevel)
		}
		a.log = log
	}
	a.log.Debug("configured",
		zap.String("config", path),
		zap.String("engine", cfg.Engine),
		zap.Strings("extensions", cfg.Extensions))
	return nil
}
