// Command db is the line-oriented REPL front end for the key-value
// store: `db <filename>` opens (or creates) filename and reads
// statements and meta-commands from stdin until .exit or EOF.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oda/kvrepl/internal/config"

	"kv/meta"
	"kv/pager"
	"kv/statement"
	"kv/table"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}
	filename := os.Args[1]

	cfg, cfgErr := config.Load(os.Args[2:])
	log := newDiagnosticLogger(cfg.LogLevel)
	if cfgErr != nil {
		log.WithError(cfgErr).Warn("config load encountered an error; continuing with defaults")
	}

	tb, err := table.Open(filename)
	if err != nil {
		reportFatalOpenError(log, filename, err)
	}

	run(tb, cfg.Prompt, os.Stdin, os.Stdout, log)
}

// newDiagnosticLogger builds the operator-facing logrus logger tagged
// with a per-process session id, distinct from the scripted stdout
// transcript the REPL prints on the protocol's own wire, byte for byte.
func newDiagnosticLogger(level string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if parsed, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(parsed)
	}
	return l.WithField("session", uuid.NewString())
}

func reportFatalOpenError(log *logrus.Entry, filename string, err error) {
	if errors.Is(err, pager.ErrCorruptFile) {
		log.WithField("file", filename).
			WithError(pkgerrors.Wrap(err, "database file is not a whole number of pages")).
			Fatal("cannot open database")
	}
	log.WithField("file", filename).
		WithError(pkgerrors.Wrap(err, "failed to open database file")).
		Fatal("cannot open database")
}

// run drives the read-dispatch-execute loop. It never returns normally
// except on EOF; .exit terminates the process directly, matching the
// original tutorial's behavior of exiting before returning to main.
func run(tb *table.Table, prompt string, in io.Reader, out io.Writer, log *logrus.Entry) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt)

		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		if meta.IsMetaCommand(line) {
			result, err := meta.Dispatch(tb, line, out)
			if err != nil {
				log.WithError(pkgerrors.Wrap(err, "meta-command failed")).Fatal("unrecoverable error")
			}
			if result == meta.Exit {
				os.Exit(0)
			}
			continue
		}

		stmt, err := statement.Prepare(line)
		if err != nil {
			fmt.Fprintln(out, prepareErrorMessage(err, line))
			continue
		}

		if err := statement.Execute(tb, stmt, out); err != nil {
			switch {
			case errors.Is(err, statement.ErrTableFull):
				fmt.Fprintln(out, "Error: Table full.")
			case errors.Is(err, statement.ErrDuplicateKey):
				fmt.Fprintln(out, "Error: Duplicate key.")
			default:
				log.WithError(pkgerrors.Wrap(err, "statement execution failed")).Fatal("unrecoverable error")
			}
			continue
		}

		fmt.Fprintln(out, "Executed.")
	}
}

func prepareErrorMessage(err error, line string) string {
	switch {
	case errors.Is(err, statement.ErrSyntax):
		return "Syntax error. Could not parse statement."
	case errors.Is(err, statement.ErrNegativeID):
		return "ID must be positive."
	case errors.Is(err, statement.ErrStringTooLong):
		return "String is too long."
	case errors.Is(err, statement.ErrUnrecognizedStatement):
		return fmt.Sprintf("Unrecognized keyword at start of '%s'.", line)
	default:
		return err.Error()
	}
}
