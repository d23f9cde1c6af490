package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cerrors "github.com/jsonnetlang/jsonnet/compiler/errors"
	"github.com/jsonnetlang/jsonnet/compiler/lexer"
	"github.com/jsonnetlang/jsonnet/compiler/parser"
	clicfg "github.com/jsonnetlang/jsonnet/internal/cli/config"
	"github.com/jsonnetlang/jsonnet/internal/cli/ui"
	"github.com/jsonnetlang/jsonnet/internal/eval"
	"github.com/jsonnetlang/jsonnet/internal/value"
	"github.com/jsonnetlang/jsonnet/pkg/jsonnet"
)

// evalFlags holds the root command's flag values, following spec.md section
// 6.2 plus the -S/-m/-J additions supplemented from the original CLI.
type evalFlags struct {
	exec        bool
	extVars     []string
	showAST     bool
	indent      int
	ensureASCII bool
	asString    bool
	multiDir    string
	jpath       []string
	version     bool
	errorsJSON  bool
	verbose     bool
	noColor     bool
}

func newRootCmd() *cobra.Command {
	f := &evalFlags{}

	cmd := &cobra.Command{
		Use:   "jsonnet [options] [input]",
		Short: "Evaluate a Jsonnet program to JSON",
		Long: `jsonnet evaluates a Jsonnet program and prints the resulting JSON.

The input is a file path by default, an inline snippet with -e/--exec, or
read from stdin when no input is given and stdin is not a terminal.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, f)
		},
	}

	cmd.Flags().BoolVarP(&f.exec, "exec", "e", false, "treat the input argument as inline Jsonnet source, not a path")
	cmd.Flags().StringArrayVarP(&f.extVars, "ext-var", "V", nil, "bind an external variable: NAME=VALUE, or NAME to read from the environment (repeatable)")
	cmd.Flags().BoolVar(&f.showAST, "ast", false, "print the parsed AST as JSON instead of evaluating")
	cmd.Flags().IntVar(&f.indent, "indent", 0, "number of spaces to indent JSON output (0 uses the configured default)")
	cmd.Flags().BoolVar(&f.ensureASCII, "ensure-ascii", false, "escape non-ASCII characters in JSON output")
	cmd.Flags().BoolVarP(&f.asString, "string", "S", false, "if the top-level value is a string, print it raw instead of JSON-quoted")
	cmd.Flags().StringVarP(&f.multiDir, "multi", "m", "", "top-level value must be an object; manifest each field to DIR/<key>")
	cmd.Flags().StringArrayVarP(&f.jpath, "jpath", "J", nil, "add a directory to the library search path (repeatable)")
	cmd.Flags().BoolVarP(&f.version, "version", "v", false, "print version information and exit")
	cmd.Flags().BoolVar(&f.errorsJSON, "errors-as-json", false, "emit structured diagnostics as JSON on stderr instead of formatted text")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "enable verbose diagnostic logging")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colored terminal output")

	return cmd
}

func runEval(cmd *cobra.Command, args []string, f *evalFlags) error {
	if f.version {
		printVersion()
		return nil
	}

	logger := newLogger(f.verbose)
	defer logger.Sync()

	cfg, err := clicfg.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	input, isPath, err := resolveInput(cmd, args, f.exec)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.UsageError(err.Error(), nil, f.noColor))
		return errSilent
	}

	extVars, extCodeVars, err := parseExtVars(f.extVars)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.UsageError(err.Error(), nil, f.noColor))
		return errSilent
	}

	if f.showAST {
		astSrc := input
		if isPath {
			data, readErr := os.ReadFile(input)
			if readErr != nil {
				return fmt.Errorf("reading %s: %w", input, readErr)
			}
			astSrc = string(data)
		}
		return runAST(cmd, astSrc, f)
	}

	jpath := append(append([]string{}, clicfg.EnvJPath()...), cfg.Import.JPath...)
	jpath = append(jpath, f.jpath...)

	indent := cfg.Output.Indent
	if f.indent > 0 {
		indent = strings.Repeat(" ", f.indent)
	}
	ensureASCII := cfg.Output.EnsureASCII || f.ensureASCII

	interp, err := jsonnet.New(jsonnet.Options{
		JPath:       jpath,
		ExtVars:     extVars,
		ExtCodeVars: extCodeVars,
		Indent:      indent,
		EnsureASCII: ensureASCII,
		TraceOut: func(msg, loc string) {
			logger.Infow("trace", "location", loc, "message", msg)
		},
	})
	if err != nil {
		return fmt.Errorf("constructing interpreter: %w", err)
	}

	var result string
	if isPath {
		result, err = interp.EvaluateFile(input)
	} else {
		result, err = interp.EvaluateSnippet(input)
	}
	if err != nil {
		writeEvalError(cmd, err, f, sourceTextFor(input, isPath))
		return errSilent
	}

	if f.multiDir != "" {
		v, loadErr := loadRaw(interp, input, isPath)
		if loadErr != nil {
			writeEvalError(cmd, loadErr, f, sourceTextFor(input, isPath))
			return errSilent
		}
		if err := writeMulti(v, f.multiDir, indent, ensureASCII); err != nil {
			return err
		}
		return nil
	}

	if f.asString {
		v, loadErr := loadRaw(interp, input, isPath)
		if loadErr == nil {
			if s, ok := asRawString(v); ok {
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

// errSilent signals that an error was already written to stderr by the
// caller and cobra should just exit nonzero without printing it again.
var errSilent = fmt.Errorf("")

// toCompilerError converts whatever error the lex/parse/eval pipeline
// produced into a CompilerError, so the driver has a single type to render
// or marshal regardless of which phase failed.
func toCompilerError(err error) cerrors.CompilerError {
	switch e := err.(type) {
	case lexer.LexError:
		return cerrors.FromLexError(e)
	case parser.ParseErrorList:
		return cerrors.FromParseErrors(e)
	case *eval.RuntimeError:
		return cerrors.FromRuntime(e.Code, e.Message, e.File, e.Line, e.Column)
	default:
		return cerrors.NewCompilerError("runtime", cerrors.ErrTypeMismatch, err.Error(), cerrors.SourceLocation{}, cerrors.Error)
	}
}

// writeEvalError renders err to stderr, either as the structured
// CompilerError JSON document --errors-as-json asks for, or as the
// color-coded terminal format with source context and a fix suggestion
// when source is non-empty.
func writeEvalError(cmd *cobra.Command, err error, f *evalFlags, source string) {
	ce := toCompilerError(err)
	if source != "" {
		ce = cerrors.EnrichError(ce, source)
	}
	if f.errorsJSON {
		data, marshalErr := ce.MarshalJSON()
		if marshalErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), `{"error":%q}`+"\n", err.Error())
			return
		}
		fmt.Fprintln(cmd.ErrOrStderr(), string(data))
		return
	}
	prevNoColor := color.NoColor
	color.NoColor = f.noColor
	fmt.Fprint(cmd.ErrOrStderr(), ce.FormatForTerminal())
	color.NoColor = prevNoColor
}

// sourceTextFor returns the literal source text for an error's context
// enrichment: input itself for inline/stdin source, or the file's contents
// when input is a path (best-effort; enrichment is simply skipped if the
// read fails).
func sourceTextFor(input string, isPath bool) string {
	if !isPath {
		return input
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return ""
	}
	return string(data)
}

// resolveInput decides what source text to evaluate and whether it came
// from a path (so the evaluator can resolve relative imports) or was
// inline/stdin source with no associated directory.
func resolveInput(cmd *cobra.Command, args []string, exec bool) (input string, isPath bool, err error) {
	if len(args) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return "", false, fmt.Errorf("no input given and stdin is not redirected")
		}
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return "", false, fmt.Errorf("reading stdin: %w", readErr)
		}
		return string(data), false, nil
	}

	if exec {
		return args[0], false, nil
	}
	return args[0], true, nil
}

// parseExtVars turns every -V flag into a plain string binding; the returned
// code map is always empty. A flag with no '=' reads its value from the
// environment variable of the same name.
func parseExtVars(raw []string) (vars map[string]string, code map[string]string, err error) {
	vars = map[string]string{}
	code = map[string]string{}
	for _, entry := range raw {
		if eq := strings.IndexByte(entry, '='); eq >= 0 {
			vars[entry[:eq]] = entry[eq+1:]
			continue
		}
		val, ok := os.LookupEnv(entry)
		if !ok {
			return nil, nil, fmt.Errorf("external variable %q has no value and is not set in the environment", entry)
		}
		vars[entry] = val
	}
	return vars, code, nil
}

func loadRaw(interp *jsonnet.Interpreter, input string, isPath bool) (value.Value, error) {
	if isPath {
		return interp.Load(input)
	}
	return interp.Loads(input)
}

func newLogger(verbose bool) *zap.SugaredLogger {
	var l *zap.Logger
	var err error
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

func printVersion() {
	goVer := GoVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}
	fmt.Printf("jsonnet version: %s\n", Version)
	fmt.Printf("Git commit: %s\n", GitCommit)
	fmt.Printf("Build date: %s\n", BuildDate)
	fmt.Printf("Go version: %s\n", goVer)
}

// ensureDir creates dir and any missing parents, matching the permissions
// a shell's mkdir -p would use.
func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
