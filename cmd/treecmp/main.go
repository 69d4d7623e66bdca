// Command treecmp checks a generated XML or HTML document against a
// reference snapshot.
//
// Usage:
//
//	treecmp ref.vtr out.vtr                         # default profile
//	treecmp -config treecmp.yaml ref.vtr out.vtr    # profile from YAML
//	treecmp -exclude created,offset ref.xml out.xml
//	treecmp -update ref.xml out.xml                 # refresh the reference
//
// Exit status is 0 when the documents match, 1 when they differ and 2 on
// any other error.
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
	"strings"
	"syscall"

	"github.com/katalvlaran/treecmp/compare"
	"github.com/katalvlaran/treecmp/profile"
	"github.com/katalvlaran/treecmp/snapshot"
)

const (
	exitMatch    = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliFlags struct {
	config   string
	exclude  string
	strategy string
	logPath  string
	sink     string
	update   bool
	logLevel string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("treecmp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f cliFlags
	fs.StringVar(&f.config, "config", "", "path to a treecmp.yaml profile")
	fs.StringVar(&f.exclude, "exclude", "", "comma-separated attribute/tag names to ignore (replaces the profile list)")
	fs.StringVar(&f.strategy, "strategy", "", "child matching: bipartite or greedy")
	fs.StringVar(&f.logPath, "log", "", "diagnostic log path")
	fs.StringVar(&f.sink, "sink", "", "diagnostic sink: file, sqlite, stderr, none")
	fs.BoolVar(&f.update, "update", false, "copy OUT over REF instead of comparing")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: treecmp [flags] REF OUT")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitMatch
		}

		return exitError
	}
	if fs.NArg() != 2 {
		fs.Usage()

		return exitError
	}
	refPath, outPath := fs.Arg(0), fs.Arg(1)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(f.logLevel)}))

	if f.update {
		if err := snapshot.Update(refPath, outPath); err != nil {
			logger.Error("treecmp: update failed", "ref", refPath, "out", outPath, "error", err)

			return exitError
		}
		logger.Info("treecmp: reference updated", "ref", refPath, "out", outPath)

		return exitMatch
	}

	p, err := loadProfile(f)
	if err != nil {
		logger.Error("treecmp: profile", "error", err)

		return exitError
	}
	logger.Debug("treecmp: comparing", "ref", refPath, "out", outPath,
		"strategy", p.Strategy, "excludes", p.Excludes, "sink", p.Log.Sink)

	rep, err := snapshot.Verify(ctx, refPath, outPath, *p, snapshot.WithDiagnosticWriter(stderr))
	if err != nil {
		logger.Error("treecmp: verify failed", "error", err)

		return exitError
	}
	if rep.Match {
		logger.Info("treecmp: match", "ref", refPath, "out", outPath, "identical", rep.Identical())

		return exitMatch
	}
	fmt.Fprint(stdout, rep.Summary())
	logger.Warn("treecmp: mismatch", "ref", refPath, "out", outPath,
		"entries", len(rep.Entries), "session", rep.SessionID, "log", p.Log.Path)

	return exitMismatch
}

// loadProfile reads -config (or the default profile) and applies flag
// overrides on top.
func loadProfile(f cliFlags) (*profile.Profile, error) {
	var p *profile.Profile
	if f.config != "" {
		loaded, err := profile.Load(f.config)
		if err != nil {
			return nil, err
		}
		p = loaded
	} else {
		d := profile.Default()
		p = &d
	}

	if f.exclude != "" {
		p.Excludes = splitList(f.exclude)
	}
	if f.strategy != "" {
		s, err := compare.ParseStrategy(f.strategy)
		if err != nil {
			return nil, err
		}
		p.Strategy = s.String()
	}
	if f.sink != "" {
		p.SetSink(f.sink)
	}
	if f.logPath != "" {
		p.Log.Path = f.logPath
	}

	return p, p.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
