// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"agal-core/align"
	"agal-core/aligner"
	"agal-core/scoring"
	"agal-core/sequence"

	"agal/internal/cli"
	"agal/internal/config"
	"agal/internal/fasta"
	"agal/internal/output"
	"agal/internal/version"
	"agal/internal/writers"
)

type pair struct {
	queryID  string
	targetID string
	query    string
	target   string
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("agal")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "agal version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	if opts.Quiet {
		logLevel = slog.LevelError
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	params, err := resolveScoring(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.Debug("scoring resolved",
		"match", params.Match, "mismatch", params.Mismatch,
		"gap_open", params.GapOpen, "gap_extend", params.GapExtend)

	pairs, err := collectPairs(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	aln := aligner.New(params.Match, params.Mismatch, params.GapOpen, params.GapExtend,
		aligner.WithMaxLens(opts.MaxQueryLen, opts.MaxTargetLen),
		aligner.WithBatchCapacity(opts.BatchSize),
		aligner.WithFreeEnds(resolveEnds(opts.Ends)),
		aligner.WithWorkers(opts.Threads),
	)

	in, errCh := writers.StartAlignmentWriter(outw, opts.Output, opts.Header, opts.Pretty, opts.BatchSize)

	runErr := func() error {
		for start := 0; start < len(pairs); start += opts.BatchSize {
			select {
			case <-parent.Done():
				return parent.Err()
			default:
			}
			end := start + opts.BatchSize
			if end > len(pairs) {
				end = len(pairs)
			}
			chunk := pairs[start:end]
			queries := make([]string, len(chunk))
			targets := make([]string, len(chunk))
			for i, p := range chunk {
				queries[i] = p.query
				targets[i] = p.target
			}
			results, err := aln.AlignBatch(queries, targets)
			if err != nil {
				return err
			}
			log.Debug("batch aligned", "pairs", len(chunk))
			for i, r := range results {
				a := output.FromResult(chunk[i].queryID, chunk[i].targetID, r)
				if opts.Pretty {
					a.QuerySeq = string(sequence.Sanitize(chunk[i].query))
					a.TargetSeq = string(sequence.Sanitize(chunk[i].target))
				}
				in <- a
			}
		}
		return nil
	}()
	close(in)
	werr := <-errCh

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, runErr)
		return 3
	}
	if werr != nil && !writers.IsBrokenPipe(werr) {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return 0
}

// resolveScoring layers defaults, then the scoring file, then flags the
// user set explicitly.
func resolveScoring(opts cli.Options) (scoring.Params, error) {
	params := scoring.Default
	if opts.ScoringFile != "" {
		var err error
		params, err = config.LoadScoring(opts.ScoringFile, params)
		if err != nil {
			return params, err
		}
	}
	if opts.Changed("match") {
		params.Match = opts.Match
	}
	if opts.Changed("mismatch") {
		params.Mismatch = opts.Mismatch
	}
	if opts.Changed("gap-open") {
		params.GapOpen = opts.GapOpen
	}
	if opts.Changed("gap-extend") {
		params.GapExtend = opts.GapExtend
	}
	return params, nil
}

func resolveEnds(name string) align.FreeEnds {
	switch name {
	case cli.EndsGlobal:
		return align.Global()
	case cli.EndsOverlap:
		return align.Overlap()
	case cli.EndsBoth:
		return align.BothFree()
	default:
		return align.SemiGlobalQuery()
	}
}

func collectPairs(opts cli.Options) ([]pair, error) {
	if opts.Query != "" {
		return []pair{{queryID: "query", targetID: "target", query: opts.Query, target: opts.Target}}, nil
	}
	qrecs, err := fasta.LoadRecords(opts.QueryFile)
	if err != nil {
		return nil, err
	}
	trecs, err := fasta.LoadRecords(opts.TargetFile)
	if err != nil {
		return nil, err
	}
	if len(qrecs) != len(trecs) {
		return nil, fmt.Errorf("record count mismatch: %d queries vs %d targets", len(qrecs), len(trecs))
	}
	pairs := make([]pair, len(qrecs))
	for i := range qrecs {
		pairs[i] = pair{
			queryID:  qrecs[i].ID,
			targetID: trecs[i].ID,
			query:    qrecs[i].Seq,
			target:   trecs[i].Seq,
		}
	}
	return pairs, nil
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
