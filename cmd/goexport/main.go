package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goexport/internal/app"
	"github.com/hyperifyio/goexport/internal/cargo"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR]: %v\n\n", err)
		usage(os.Stderr)
		os.Exit(2)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("export failed")
		os.Exit(1)
	}
}

// parseArgs turns the raw argument vector into a validated Config. The
// vector is split on "--" first, so build options never collide with
// goexport's own flags.
func parseArgs(argv []string) (app.Config, error) {
	selfArgs, buildArgs := cargo.SplitArgv(argv)

	var (
		tag        string
		command    string
		configPath string
		noDefaults bool
		nfcNames   bool
		verbose    bool
		help       bool
	)

	fs := flag.NewFlagSet("goexport", flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(discard{})
	fs.StringVar(&tag, "tag", os.Getenv("GOEXPORT_TAG"), "tag name added to exported binary file names")
	fs.StringVar(&command, "command", os.Getenv("GOEXPORT_COMMAND"), "build tool to spawn instead of cargo")
	fs.StringVar(&configPath, "config", "", "path to an optional YAML or JSON config file")
	fs.BoolVar(&noDefaults, "no-default-options", false, "do not add default build options (--no-run, --message-format=json)")
	fs.BoolVar(&nfcNames, "nfc", false, "normalize exported file names to Unicode NFC")
	fs.BoolVar(&verbose, "v", false, "verbose logging; prints files copied")
	fs.BoolVar(&help, "h", false, "print this help menu")

	if err := fs.Parse(selfArgs); err != nil {
		return app.Config{}, err
	}
	if help {
		usage(os.Stdout)
		os.Exit(0)
	}

	cfg := app.Config{
		Tag:              tag,
		Command:          command,
		BuildArgs:        buildArgs,
		NoDefaultOptions: noDefaults,
		NFCNames:         nfcNames,
		Verbose:          verbose,
	}

	switch fs.NArg() {
	case 0:
		// The config file may still supply the destination.
	case 1:
		cfg.DestDir = fs.Arg(0)
	default:
		return app.Config{}, fmt.Errorf("unexpected arguments before --: %s", strings.Join(fs.Args()[1:], " "))
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config %q: %w", configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if strings.TrimSpace(cfg.DestDir) == "" {
		return app.Config{}, errors.New("destination PATH is required")
	}
	if len(cfg.BuildArgs) == 0 {
		return app.Config{}, errors.New("build command is required after --")
	}
	return cfg, nil
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return a.Run(ctx)
}

func usage(w *os.File) {
	fmt.Fprint(w, `usage: goexport [OPTIONS] PATH -- BUILD_COMMAND [BUILD_OPTIONS...]

Runs the build, collects the executables it reports and copies them into
PATH under normalized names (the build tool's trailing hash is dropped).

Options:
  -tag TAG              tag name added to exported binary file names
                        (env GOEXPORT_TAG)
  -command NAME         build tool to spawn instead of cargo
                        (env GOEXPORT_COMMAND)
  -config PATH          optional YAML or JSON config file
  -no-default-options   do not add default build options
                        (--no-run, --message-format=json)
  -nfc                  normalize exported file names to Unicode NFC
  -v                    verbose logging; prints files copied
  -h                    print this help menu

Examples:

  $ goexport target/tests -- test
    Export all test binaries into the target/tests directory

  $ goexport -tag v1 target/benches -- bench
    Export all benchmark binaries into target/benches, tagged v1
`)
}

// discard silences the flag package's own error printing; parse errors are
// reported once by main with the usage text.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
