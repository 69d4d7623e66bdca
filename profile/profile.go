// Package profile loads comparison profiles: the exclusion list, matching
// strategy, wildcard token and diagnostic sink of a snapshot check, kept in
// a YAML file next to the reference documents.
//
//	excludes: [offset, created]
//	strategy: bipartite        # or greedy, for legacy baselines
//	wildcard: "*"
//	log:
//	  sink: file               # file | sqlite | stderr | none
//	  path: xml-comparison.log
package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/treecmp/compare"
	"github.com/katalvlaran/treecmp/diaglog"
)

// Sink kinds accepted in log.sink.
const (
	SinkFile   = "file"
	SinkSQLite = "sqlite"
	SinkStderr = "stderr"
	SinkNone   = "none"
)

// DefaultSQLitePath is used for log.sink=sqlite without a path.
const DefaultSQLitePath = "xml-comparison.db"

// ErrUnknownSink indicates a log.sink value that is not one of the Sink* kinds.
var ErrUnknownSink = errors.New("profile: unknown log sink")

// Profile is the on-disk comparison configuration.
type Profile struct {
	Excludes []string  `yaml:"excludes"`
	Strategy string    `yaml:"strategy"`
	Wildcard string    `yaml:"wildcard"`
	Log      LogConfig `yaml:"log"`
}

// LogConfig selects where Explain output goes.
type LogConfig struct {
	Sink string `yaml:"sink"`
	Path string `yaml:"path"`
}

// Default returns the profile used when no file is given: no exclusions,
// bipartite matching, "*" wildcard, log file xml-comparison.log.
func Default() Profile {
	p := Profile{}
	p.applyDefaults()

	return p
}

// Load reads and validates a YAML profile.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Parse decodes YAML, fills defaults and validates the result.
// Unknown keys are rejected so typos do not silently disable an exclusion.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (p *Profile) applyDefaults() {
	if p.Strategy == "" {
		p.Strategy = compare.Bipartite.String()
	}
	if p.Wildcard == "" {
		p.Wildcard = compare.DefaultWildcard
	}
	if p.Log.Sink == "" {
		p.Log.Sink = SinkFile
	}
	p.Log.Sink = strings.ToLower(p.Log.Sink)
	if p.Log.Path == "" {
		switch p.Log.Sink {
		case SinkFile:
			p.Log.Path = diaglog.DefaultLogFile
		case SinkSQLite:
			p.Log.Path = DefaultSQLitePath
		}
	}
}

// SetSink switches the sink kind and resets the path to that kind's default.
func (p *Profile) SetSink(kind string) {
	p.Log.Sink = kind
	p.Log.Path = ""
	p.applyDefaults()
}

// Validate checks the strategy name and sink kind.
func (p *Profile) Validate() error {
	if _, err := compare.ParseStrategy(p.Strategy); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	switch p.Log.Sink {
	case SinkFile, SinkSQLite, SinkStderr, SinkNone:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSink, p.Log.Sink)
	}

	return nil
}

// Options converts the profile into compare options.
// An invalid strategy surfaces as compare.ErrOptionViolation on use.
func (p *Profile) Options() []compare.Option {
	opts := []compare.Option{compare.WithExcludes(p.Excludes...)}
	s, err := compare.ParseStrategy(p.Strategy)
	if err != nil {
		s = compare.Strategy(-1)
	}
	opts = append(opts, compare.WithStrategy(s))
	if p.Wildcard != "" {
		opts = append(opts, compare.WithWildcard(p.Wildcard))
	}

	return opts
}

// Opener builds the diagnostic sink opener for one session. sessionID tags
// SQLite rows; other sinks ignore it. stderr receives the lines of the
// stderr sink; nil means os.Stderr.
func (p *Profile) Opener(ctx context.Context, sessionID string, stderr io.Writer) (diaglog.Opener, error) {
	switch p.Log.Sink {
	case SinkFile:
		return diaglog.FileOpener(p.Log.Path), nil
	case SinkSQLite:
		return diaglog.SQLiteOpener(ctx, p.Log.Path, diaglog.WithSessionID(sessionID)), nil
	case SinkStderr:
		if stderr == nil {
			stderr = os.Stderr
		}

		return diaglog.Static(diaglog.NewWriterSink(stderr)), nil
	case SinkNone:
		return diaglog.Static(diaglog.Discard), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, p.Log.Sink)
	}
}
