package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ReviewMiner/internal/app"
	"ReviewMiner/internal/config"
)

func main() {
	var (
		inputPath    string
		reviewColumn string
		outputDir    string
		recommend    bool
	)
	columnMap := map[string]string{}

	flag.StringVar(&inputPath, "input", "", "path to the reviews file (.csv or .html)")
	flag.StringVar(&reviewColumn, "review-column", "Review", "column holding review text")
	flag.StringVar(&outputDir, "out", "", "output directory override")
	flag.BoolVar(&recommend, "recommend", false, "request a business recommendation after the run")
	flag.Func("map", "column substitution required=actual (repeatable)", func(v string) error {
		required, actual, ok := strings.Cut(v, "=")
		if !ok || required == "" || actual == "" {
			return fmt.Errorf("expected required=actual, got %q", v)
		}
		columnMap[required] = actual
		return nil
	})
	flag.Parse()

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "missing required -input flag")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx, app.RunParams{
		InputPath:    inputPath,
		ReviewColumn: reviewColumn,
		ColumnMap:    columnMap,
		Recommend:    recommend,
	}); err != nil {
		a.Logger().Error("run failed", "error", err)
		os.Exit(1)
	}
}
