// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plmobile-server/classifier"
	"plmobile-server/commons"
	"plmobile-server/commons/prefixdb"
	"plmobile-server/recognizer"
)

const usage = `Usage: plmobile [flags] <command> [args]

Commands:
  recognize <number>...   recognize operators
  validate <number>...    validate numbers, exit status 1 if any is invalid
  normalize <number>...   print normalized numbers
  format [-style s] <number>...
                          format numbers (standard, spaced, international)
  batch                   recognize one number per stdin line, print JSON
  prefixes [-detailed]    list valid prefixes, or the detailed database
  operators [-yaml]       list operators and their prefixes
  watch                   validate stdin lines as debounced input events
  hash-key [key]          hash an API key for API_KEY_HASH

Flags:
`

// errInvalid makes the process exit with status 1 without printing an error.
var errInvalid = errors.New("invalid input")

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	tableName string
	tableFile string
	dbPath    string
	apiURL    string
	apiKey    string
	rps       float64
	jsonOut   bool

	rec        *recognizer.Recognizer
	db         *prefixdb.Database
	classifier classifier.Classifier
}

func main() {
	commons.LoadEnvFile()
	commons.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(ctx, os.Args[1:]))
}

func (a *app) run(ctx context.Context, args []string) int {
	commons.Logger.SetOutput(a.stderr)

	fs := flag.NewFlagSet("plmobile", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprint(a.stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&a.tableName, "table", "", "prefix table preset (server, browser)")
	fs.StringVar(&a.tableFile, "table-file", "", "YAML prefix table file")
	fs.StringVar(&a.dbPath, "db", "", "detailed prefix database CSV file")
	fs.StringVar(&a.apiURL, "api", "", "recognize through a plmobile server, falling back to local recognition")
	fs.StringVar(&a.apiKey, "api-key", commons.GetEnv("PLMOBILE_API_KEY"), "API key for -api")
	fs.Float64Var(&a.rps, "rps", 0, "request rate limit for -api, 0 for none")
	fs.BoolVar(&a.jsonOut, "json", false, "print JSON")
	fs.String("env-file", "", "environment file to load")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	var err error
	switch cmd {
	case "hash-key":
		err = a.hashKey(cmdArgs)
	case "normalize":
		err = a.normalize(cmdArgs)
	default:
		if err = a.init(ctx); err != nil {
			break
		}
		switch cmd {
		case "recognize":
			err = a.recognize(ctx, cmdArgs)
		case "validate":
			err = a.validate(cmdArgs)
		case "format":
			err = a.format(cmdArgs)
		case "batch":
			err = a.batch(ctx)
		case "prefixes":
			err = a.prefixes(cmdArgs)
		case "operators":
			err = a.operators(cmdArgs)
		case "watch":
			err = a.watch(ctx, cmdArgs)
		default:
			fmt.Fprintf(a.stderr, "unknown command %q\n\n", cmd)
			fs.Usage()
			return 2
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalid):
		return 1
	default:
		fmt.Fprintln(a.stderr, "error:", err)
		return 1
	}
}

// init builds the recognizer and classifier from flags, falling back to the
// environment for anything not given.
func (a *app) init(ctx context.Context) error {
	var (
		table *recognizer.Table
		err   error
	)
	switch {
	case a.tableFile != "":
		data, rerr := os.ReadFile(a.tableFile)
		if rerr != nil {
			return fmt.Errorf("read prefix table: %w", rerr)
		}
		table, err = recognizer.ParseTableYAML(data)
	case a.tableName != "":
		table, err = recognizer.TableByName(a.tableName)
	default:
		table, err = commons.InitTable()
	}
	if err != nil {
		return err
	}

	if a.dbPath != "" {
		if a.db, err = prefixdb.LoadFile(a.dbPath); err != nil {
			return err
		}
	} else {
		a.db = commons.InitPrefixDatabase(ctx)
	}
	if a.db != nil {
		a.rec = recognizer.New(table, a.db)
	} else {
		a.rec = recognizer.New(table, nil)
	}

	local := classifier.NewLocal(a.rec)
	a.classifier = local
	if a.apiURL != "" {
		remote, err := classifier.NewRemote(classifier.RemoteConfig{
			BaseURL:           a.apiURL,
			APIKey:            a.apiKey,
			Timeout:           10 * time.Second,
			RequestsPerSecond: a.rps,
		})
		if err != nil {
			return err
		}
		a.classifier = classifier.NewFallback(remote, local)
	}
	return nil
}
