// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
)

// Free-end policy names accepted by -ends.
const (
	EndsQuery   = "query"
	EndsGlobal  = "global"
	EndsOverlap = "overlap"
	EndsBoth    = "both"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Sequence input: literals or paired FASTA files
	Query      string
	Target     string
	QueryFile  string
	TargetFile string

	// Scoring
	Match       int
	Mismatch    int
	GapOpen     int
	GapExtend   int
	ScoringFile string

	// Engine limits
	MaxQueryLen  int
	MaxTargetLen int
	BatchSize    int
	Ends         string

	// Performance
	Threads int

	// Output
	Output  string
	Pretty  bool
	Header  bool // true unless --no-header
	Quiet   bool
	Verbose bool

	Version bool

	set map[string]bool
}

// Changed reports whether a flag was given explicitly on the command
// line (scoring-file precedence needs to know).
func (o Options) Changed(name string) bool { return o.set[name] }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Sequence input
	fs.StringVar(&opt.Query, "query", "", "query sequence literal [*]")
	fs.StringVar(&opt.Target, "target", "", "target sequence literal [*]")
	fs.StringVar(&opt.QueryFile, "query-file", "", "FASTA of queries, paired by record order with -target-file [*]")
	fs.StringVar(&opt.TargetFile, "target-file", "", "FASTA of targets [*]")

	// Scoring (additive; penalties negative)
	fs.IntVar(&opt.Match, "match", 2, "match score [2]")
	fs.IntVar(&opt.Mismatch, "mismatch", -3, "mismatch score [-3]")
	fs.IntVar(&opt.GapOpen, "gap-open", -5, "gap open score [-5]")
	fs.IntVar(&opt.GapExtend, "gap-extend", -2, "gap extend score [-2]")
	fs.StringVar(&opt.ScoringFile, "scoring", "", "TOML scoring file; explicit flags still win []")

	// Engine limits
	fs.IntVar(&opt.MaxQueryLen, "max-query-length", 2048, "maximum query length [2048]")
	fs.IntVar(&opt.MaxTargetLen, "max-target-length", 8192, "maximum target length [8192]")
	fs.IntVar(&opt.BatchSize, "batch-size", 64, "alignments per submitted batch [64]")
	fs.StringVar(&opt.Ends, "ends", EndsQuery, "free ends: query | global | overlap | both ["+EndsQuery+"]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "worker goroutines per batch (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json [text]")
	fs.BoolVar(&opt.Pretty, "pretty", false, "ASCII alignment block under each row (text) [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging to stderr [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	opt.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.set[f.Name] = true })
	opt.Header = !noHeader
	if opt.Version {
		return opt, nil
	}
	return opt, validate(opt)
}

func validate(opt Options) error {
	usingLiteral := opt.Query != "" || opt.Target != ""
	usingFiles := opt.QueryFile != "" || opt.TargetFile != ""
	switch {
	case usingLiteral && usingFiles:
		return errors.New("--query/--target conflicts with --query-file/--target-file")
	case usingLiteral && (opt.Query == "" || opt.Target == ""):
		return errors.New("--query and --target must be supplied together")
	case usingFiles && (opt.QueryFile == "" || opt.TargetFile == ""):
		return errors.New("--query-file and --target-file must be supplied together")
	case !usingLiteral && !usingFiles:
		return errors.New("provide --query/--target or --query-file/--target-file")
	}
	switch opt.Ends {
	case EndsQuery, EndsGlobal, EndsOverlap, EndsBoth:
	default:
		return fmt.Errorf("invalid --ends %q", opt.Ends)
	}
	if opt.Output != "text" && opt.Output != "json" {
		return fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.Pretty && opt.Output != "text" {
		return errors.New("--pretty requires --output text")
	}
	if opt.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if opt.MaxQueryLen < 1 || opt.MaxTargetLen < 1 {
		return errors.New("--max-query-length and --max-target-length must be ≥ 1")
	}
	if opt.BatchSize < 1 {
		return errors.New("--batch-size must be ≥ 1")
	}
	return nil
}
