// Command pegomancy reads a grammar file and generates a Go parser package
// from it. Usage mirrors pigeon's original command
// (github.com/PuerkitoBio/pigeon/main.go) but the flag parsing is rebuilt on
// cobra/pflag, following open-policy-agent-opa/cmd's command style, since
// SPEC_FULL.md calls for the same CLI stack the rest of the ambient tooling
// uses.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/doom/pegomancy/codegen"
	"github.com/doom/pegomancy/front"
	"github.com/doom/pegomancy/internal/plog"
)

var params = struct {
	output       string
	packageName  string
	className    string
	receiverName string
	noBuild      bool
	logLevel     string
	logFormat    string
}{}

var rootCommand = &cobra.Command{
	Use:   "pegomancy [GRAMMAR_FILE]",
	Short: "Generate a Go PEG parser from a grammar file",
	Long: `pegomancy reads a grammar from GRAMMAR_FILE (or stdin, if omitted)
and writes a generated Go parser package to the path given by -o (or
stdout, if omitted).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return run(args, os.Stdin, os.Stdout, os.Stderr)
	},
	SilenceUsage: true,
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&params.output, "output", "o", "", "output file, defaults to stdout")
	flags.StringVar(&params.packageName, "package-name", "main", "package name for the generated parser")
	flags.StringVar(&params.className, "class-name", "Parser", "type name for the generated parser")
	flags.StringVar(&params.receiverName, "receiver-name", "p", "receiver name for the generated methods")
	flags.BoolVarP(&params.noBuild, "no-build", "x", false, "do not generate the parser, only parse the grammar")
	flags.StringVar(&params.logLevel, "log-level", "info", "set the logging level: debug, info, warn, error")
	flags.StringVar(&params.logFormat, "log-format", "json", "set the log format: text, json, json-pretty")
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) error {
	level, err := plog.GetLevel(params.logLevel)
	if err != nil {
		return err
	}
	logger := plog.New()
	logger.SetLevel(level)
	logger.SetFormat(params.logFormat)

	name, text, err := readGrammar(args, stdin)
	if err != nil {
		return err
	}
	logger = logger.WithFields(map[string]interface{}{"grammar": name}).(*plog.StandardLogger)

	p := front.NewParser(text)
	g, err := p.Parse()
	if err != nil {
		return fmt.Errorf("parse error in %s: %w", name, err)
	}
	logger.Debug("parsed %d rule(s) from %s", len(g.Rules), name)

	if params.noBuild {
		return nil
	}

	src, err := codegen.Generate(g, codegen.Options{
		PackageName:  params.packageName,
		ClassName:    params.className,
		ReceiverName: params.receiverName,
	})
	if err != nil {
		return fmt.Errorf("build error: %w", err)
	}

	out := stdout
	if params.output != "" {
		f, err := os.Create(params.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err = fmt.Fprint(out, src)
	return err
}

func readGrammar(args []string, stdin *os.File) (name, text string, err error) {
	if len(args) == 0 {
		bs, err := io.ReadAll(stdin)
		return "stdin", string(bs), err
	}
	bs, err := os.ReadFile(args[0])
	return args[0], string(bs), err
}

func main() {
	addFlags(rootCommand.Flags())
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
