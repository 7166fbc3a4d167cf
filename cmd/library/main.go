// Command library manages a small library catalog and its loans from the command line.
//
// Usage:
//
//	library [flags] <command> [arguments]
//
// Commands:
//
//	add-book <title> <author> <genre> <year> [category...]
//	add-magazine <title> <year> <issue> <publisher> [category...]
//	register <first name> <last name>
//	lend <item id> <reader id>
//	return <item id> <reader id>
//	extend <item id> <reader id> <days>
//	search <text>
//	category <name>
//	report
//	books | magazines | readers
//
// State is loaded before and saved after every mutating command. A state that
// exists but cannot be loaded aborts the command without touching the stored data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/config"
)

const (
	librarianSalary   = 4200
	librarianPosition = "Librarian"
)

var (
	errMissingCommand = errors.New("missing command")
	errSaveFailed     = errors.New("the library state could not be saved, see the log for details")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("library", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg, rest, err := config.ParseFlags(fs, args)
	if err != nil {
		return err
	}

	if len(rest) == 0 {
		fs.Usage()
		return errMissingCommand
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, closeStore, err := config.NewStore(ctx, cfg, logger, now)
	if err != nil {
		return err
	}
	defer closeStore()

	library := shell.NewLibrary(store,
		shell.WithLogger(logger),
		shell.WithRetry(shell.WithMaxAttempts(cfg.StoreAttempts)),
	)
	if err = library.Load(ctx); err != nil {
		return err
	}

	first, last, _ := cfg.LibrarianFirstAndLastName()
	librarian := core.NewLibrarian(first, last, librarianSalary, librarianPosition,
		core.WithClock(now), core.WithLogger(logger))
	library.HireLibrarian(librarian)

	app := newApp(library, librarian, stdout, now, logger)

	mutated, err := app.dispatch(ctx, rest[0], rest[1:])
	if err != nil {
		return err
	}

	if mutated && !library.Save(ctx) {
		return errSaveFailed
	}

	return nil
}
