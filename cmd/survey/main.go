package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"survey-pipeline/internal/model"
	"survey-pipeline/internal/pipeline"
	"survey-pipeline/internal/store"

	"github.com/google/uuid"
)

func main() {
	output := flag.String("output", "", "write the summary JSON to this file")
	embed := flag.String("embed", "", "embed the summary JSON into this HTML file")
	dbPath := flag.String("db", "", "optionally persist the run to this sqlite database")
	timeout := flag.String("timeout", "5m", "abort the run after this duration")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] survey.csv\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Pre-aggregate a survey export into the summary JSON consumed by the static page.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *dbPath != "" {
		if err := store.InitDB(*dbPath); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	runID := uuid.New().String()
	spec := model.RunSpec{
		Input:   flag.Arg(0),
		Output:  *output,
		Embed:   *embed,
		Timeout: *timeout,
	}
	store.SaveRun(runID, spec)

	if err := pipeline.Run(context.Background(), runID, spec); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
