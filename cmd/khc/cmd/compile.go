package cmd

import (
	"context"
	"fmt"
	"os"

	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/foundation/khamseena"
	"github.com/msto63/khamseena/foundation/khamseena/ast"
	"github.com/msto63/khamseena/foundation/khamseena/parser"
	"github.com/msto63/khamseena/foundation/utils/stringx"
	"github.com/msto63/khamseena/internal/history"
	"github.com/msto63/khamseena/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportFormat string
	showTokens   bool
	showAST      bool
	showScopes   bool
	noHistory    bool
	fmtWrite     bool
)

var tokenizeCmd = &cobra.Command{
	Use:     "tokenize [file]",
	Aliases: []string{"scan", "lex"},
	Short:   "Print the token stream",
	Long: `Runs the lexer and prints every token with its position.

Examples:
  khc tokenize examples/kitchen.kh
  khc tokenize -f json examples/kitchen.kh
  echo 'serve 1;' | khc tokenize`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the syntax tree",
	Long: `Runs the lexer and the parser and prints the syntax tree together
with every recovered parse error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Print the source in canonical form",
	Long: `Parses the source and prints it back with canonical indentation and
spacing. Comments are always kept, whatever drop_comments says. Sources
with parse errors, or with comments that cannot be placed on a line of
their own (inside an expression, between ')' and '{', or before
'retaste'), are left untouched.

Examples:
  khc fmt recipe.kh
  khc fmt -w recipe.kh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

var analyzeCmd = &cobra.Command{
	Use:     "analyze [file]",
	Aliases: []string{"check", "compile"},
	Short:   "Run all stages and report diagnostics",
	Long: `Runs the lexer, the parser and the semantic analyzer and reports
every error and warning. The run is recorded in the history database
when history is enabled.

Examples:
  khc analyze recipe.kh
  khc analyze --scopes --ast recipe.kh
  khc analyze -f yaml recipe.kh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd, parseCmd, fmtCmd, analyzeCmd)

	for _, c := range []*cobra.Command{tokenizeCmd, parseCmd, analyzeCmd} {
		c.Flags().StringVarP(&reportFormat, "format", "f", "", "Report format: text, yaml or json (default from config)")
	}
	analyzeCmd.Flags().BoolVar(&showTokens, "tokens", false, "Include the token stream")
	analyzeCmd.Flags().BoolVar(&showAST, "ast", false, "Include the syntax tree")
	analyzeCmd.Flags().BoolVar(&showScopes, "scopes", false, "Include the symbol table")
	analyzeCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run")

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result back to the file")
}

func engineOptions() khamseena.Options {
	return khamseena.Options{
		Logger:          logger,
		DropComments:    cfg.Frontend.DropComments,
		MaxSourceLength: cfg.Frontend.MaxSourceBytes,
	}
}

func newEngine() *khamseena.Engine {
	return khamseena.NewEngine(engineOptions())
}

func outputFormat() (report.Format, error) {
	return report.ParseFormat(stringx.FirstNonBlank(reportFormat, cfg.Report.Format))
}

// errFailed makes the process exit non-zero after a report was printed
func errFailed(path string) error {
	return fmt.Errorf("%s: compilation failed", path)
}

func emit(cmd *cobra.Command, rep *report.Report) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
		return err
	}
	if !rep.Success {
		return errFailed(rep.File)
	}
	return nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	result := &khamseena.Result{Stage: khamseena.StageLexical}
	result.Tokens, err = newEngine().Tokenize(source)
	return emit(cmd, report.Build(path, result, err, report.Options{ShowTokens: true}))
}

// parseSource runs the lexer and the parser only
func parseSource(engine *khamseena.Engine, source string) (*khamseena.Result, error) {
	result := &khamseena.Result{Stage: khamseena.StageLexical}

	tokens, err := engine.Tokenize(source)
	if err != nil {
		return result, err
	}
	result.Tokens = tokens

	result.Stage = khamseena.StageSyntax
	result.Program, result.ParseErrors, err = engine.Parse(tokens)
	return result, err
}

func runParse(cmd *cobra.Command, args []string) error {
	path, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	result, err := parseSource(newEngine(), source)
	return emit(cmd, report.Build(path, result, err, report.Options{ShowAST: true}))
}

func runFmt(cmd *cobra.Command, args []string) error {
	path, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	if fmtWrite && path == stdinName {
		return fmt.Errorf("cannot use --write with standard input")
	}

	opts := engineOptions()
	opts.DropComments = false
	result, err := parseSource(khamseena.NewEngine(opts), source)
	if err != nil {
		return err
	}
	if len(result.ParseErrors) > 0 {
		for _, perr := range result.ParseErrors {
			fmt.Fprintln(cmd.ErrOrStderr(), perr)
		}
		return errFailed(path)
	}
	if lost := unplacedComments(result); len(lost) > 0 {
		for _, tok := range lost {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d:%d: comment cannot be kept: %s\n", tok.Line, tok.Column, tok.Value)
		}
		return fmt.Errorf("%s: formatting would drop %d comments", path, len(lost))
	}

	formatted := ast.Format(result.Program)
	if !fmtWrite {
		_, err := fmt.Fprint(cmd.OutOrStdout(), formatted)
		return err
	}
	if formatted == source {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	logger.Info("Formatted source", mdwlog.Fields{"path": path})
	return os.WriteFile(path, []byte(formatted), info.Mode().Perm())
}

// unplacedComments returns the comment tokens that did not become comment
// statements and so would not survive ast.Format.
func unplacedComments(result *khamseena.Result) []parser.Token {
	kept := make(map[ast.Position]bool)
	ast.Inspect(result.Program, func(n ast.Node) bool {
		if c, ok := n.(*ast.CommentStatement); ok {
			kept[c.Pos] = true
		}
		return true
	})

	var lost []parser.Token
	for _, tok := range result.Tokens {
		if tok.Type == parser.TokenComment && !kept[ast.Position{Line: tok.Line, Column: tok.Column}] {
			lost = append(lost, tok)
		}
	}
	return lost
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	result, compileErr := newEngine().Compile(source)
	rep := report.Build(path, result, compileErr, report.Options{
		ShowTokens: showTokens || cfg.Report.ShowTokens,
		ShowAST:    showAST || cfg.Report.ShowAST,
		ShowScopes: showScopes || cfg.Report.ShowScopes,
	})

	if cfg.History.Enabled && !noHistory {
		run := history.FromResult(path, source, result, compileErr)
		if err := recordRun(commandContext(cmd), run); err != nil {
			logger.Warn("Failed to record run", mdwlog.Fields{"error": err.Error()})
		} else {
			rep.RunID = run.ID
		}
	}

	return emit(cmd, rep)
}

func recordRun(ctx context.Context, run *history.Run) error {
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(ctx, run); err != nil {
		return err
	}
	logger.Info("Run recorded", mdwlog.Fields{"run_id": run.ID, "path": run.Path})
	return nil
}
