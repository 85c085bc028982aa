// Command jstrack runs one or more ESTree-encoded scripts against a host
// context and records every checker-matched call site to SQLite.
// os.Args-driven, no flag package.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jstrack/interp/internal/checkerrpc"
	"github.com/jstrack/interp/internal/evaluator"
	"github.com/jstrack/interp/internal/modules"
	"github.com/jstrack/interp/internal/report"
	"github.com/jstrack/interp/internal/runconfig"
	"github.com/jstrack/interp/internal/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s run <jstrack.yaml>\n", os.Args[0])
}

func main() {
	if len(os.Args) < 3 || os.Args[1] != "run" {
		usage()
		os.Exit(1)
	}

	cfg, err := runconfig.Load(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := runBatch(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBatch(cfg *runconfig.Config) error {
	db, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	// checker is declared as the evaluator.Checker interface, not
	// *checkerrpc.Checker, so that leaving it unset produces a true nil
	// interface — assigning a typed-nil *checkerrpc.Checker here instead
	// would make every e.Checker == nil check in the evaluator see a
	// non-nil interface value and dispatch to a connection that was never
	// dialed.
	var checker evaluator.Checker
	if cfg.Checker != nil {
		rpc, err := checkerrpc.Dial(checkerrpc.Config{
			Target:       cfg.Checker.Target,
			ProtoPath:    cfg.Checker.ProtoPath,
			ImportPaths:  cfg.Checker.ImportPaths,
			MethodPath:   cfg.Checker.MethodPath,
			CallerField:  cfg.Checker.CallerField,
			CalleeField:  cfg.Checker.CalleeField,
			ContextField: cfg.Checker.ContextField,
			MatchedField: cfg.Checker.MatchedField,
			TypeField:    cfg.Checker.TypeField,
			TargetField:  cfg.Checker.TargetField,
		})
		if err != nil {
			return err
		}
		defer rpc.Close()
		checker = rpc
	}

	loader := modules.NewLoader()

	summaries := make([]report.Summary, len(cfg.Scripts))
	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for i, scriptURL := range cfg.Scripts {
		i, scriptURL := i, scriptURL
		g.Go(func() error {
			summaries[i] = runScript(loader, checker, db, scriptURL)
			return nil
		})
	}
	_ = g.Wait() // each runScript records its own error in the summary, never fails the group

	fmt.Print(report.Render(summaries, report.ColorEnabled(os.Stdout)))
	return nil
}

func runScript(loader *modules.Loader, checker evaluator.Checker, db *store.Store, scriptURL string) report.Summary {
	start := time.Now()
	summary := report.Summary{ScriptURL: scriptURL}

	prog, err := loader.Load(scriptURL)
	if err != nil {
		summary.Err = err
		return summary
	}

	eval := evaluator.New(nil, checker)
	if _, err := eval.ParseAst(prog, scriptURL); err != nil {
		summary.Err = err
		summary.Duration = time.Since(start)
		return summary
	}

	// A fresh run ID per invocation (rather than reusing scriptURL) lets
	// the same script run repeatedly — e.g. once per commit in CI — without
	// colliding on the runs table's primary key.
	runID := uuid.NewString()
	if err := db.RecordRun(runID, scriptURL, start.Format(time.RFC3339)); err != nil {
		summary.Err = err
		summary.Duration = time.Since(start)
		return summary
	}

	collected := eval.Collection.Entries()
	entries := make([]store.Entry, len(collected))
	for i, ce := range collected {
		line, col := 0, 0
		if ce.Info != nil {
			line, col = ce.Info.Line, ce.Info.Col
		}
		entries[i] = store.Entry{
			Element: store.EncodeElement(ce.Element),
			Type:    store.EncodeElement(ce.Type),
			Line:    line,
			Col:     col,
		}
	}
	if err := db.RecordEntries(runID, entries); err != nil {
		summary.Err = err
		summary.Duration = time.Since(start)
		return summary
	}

	summary.EntryCount = len(entries)
	summary.Duration = time.Since(start)
	return summary
}
