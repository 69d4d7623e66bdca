// Package snapshot checks generated documents against stored reference
// snapshots: it loads both files, compares them under a profile, and on a
// mismatch runs one diagnostic session into the profile's sink.
package snapshot

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/treecmp/compare"
	"github.com/katalvlaran/treecmp/diaglog"
	"github.com/katalvlaran/treecmp/profile"
	"github.com/katalvlaran/treecmp/tree"
)

// Report is the outcome of one Verify call.
type Report struct {
	Match     bool
	RefPath   string
	OutPath   string
	RefHash   string // SHA-256 hex of the reference bytes
	OutHash   string // SHA-256 hex of the output bytes
	SessionID string // diagnostic session, empty when the documents match
	Entries   []diaglog.Entry
}

// Identical reports whether both files are byte-for-byte equal.
func (r Report) Identical() bool {
	return r.RefHash == r.OutHash
}

// Summary renders a short human-readable verdict followed by the
// diagnostic lines, if any.
func (r Report) Summary() string {
	if r.Match {
		return fmt.Sprintf("written file '%s' coincides with reference file '%s'", r.OutPath, r.RefPath)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "written file '%s' does not coincide with reference file '%s'!\n", r.OutPath, r.RefPath)
	sb.WriteString("they differ in:\n")
	for _, e := range r.Entries {
		sb.WriteString("  ")
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Option configures Verify.
type Option func(*options)

type options struct {
	stderr io.Writer
}

// WithDiagnosticWriter directs the profile's stderr sink to w instead of
// os.Stderr.
func WithDiagnosticWriter(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// Verify compares the document at outPath against the reference at refPath.
//
// Steps:
//  1. Read and hash both files; parse each as HTML (.html, .htm) or XML.
//  2. compare.Matches with the profile's options.
//  3. On mismatch, open the profile's sink under a fresh session ID, tee it
//     with an in-memory copy for the report, and compare.Explain into it.
//     The sink is closed before Verify returns.
//
// A mismatch is reported through Report.Match, not as an error. Parse
// failures and sink failures are errors; in the latter case the verdict is
// withheld (the returned Report is empty).
func Verify(ctx context.Context, refPath, outPath string, p profile.Profile, opts ...Option) (Report, error) {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	ref, refHash, err := load(refPath)
	if err != nil {
		return Report{}, fmt.Errorf("snapshot: reference: %w", err)
	}
	out, outHash, err := load(outPath)
	if err != nil {
		return Report{}, fmt.Errorf("snapshot: output: %w", err)
	}
	rep := Report{RefPath: refPath, OutPath: outPath, RefHash: refHash, OutHash: outHash}

	cmpOpts := p.Options()
	ok, err := compare.Matches(ref, out, cmpOpts...)
	if err != nil {
		return Report{}, fmt.Errorf("snapshot: %w", err)
	}
	if ok {
		rep.Match = true

		return rep, nil
	}

	rep.SessionID = diaglog.NewSessionID()
	open, err := p.Opener(ctx, rep.SessionID, o.stderr)
	if err != nil {
		return Report{}, fmt.Errorf("snapshot: %w", err)
	}
	mem := diaglog.NewMemorySink()
	teeOpen := func() (diaglog.Sink, error) {
		s, err := open()
		if err != nil {
			return nil, err
		}

		return diaglog.Tee(s, mem), nil
	}
	err = diaglog.Run(teeOpen, func(s diaglog.Sink) error {
		return compare.Explain(ref, out, s, cmpOpts...)
	})
	if err != nil {
		return Report{}, fmt.Errorf("snapshot: %w", err)
	}
	rep.Entries = mem.Entries()

	return rep, nil
}

// Update replaces the reference snapshot with the output document,
// creating the reference directory if needed. The output is parsed first so
// a malformed document never becomes a reference.
func Update(refPath, outPath string) error {
	if _, _, err := load(outPath); err != nil {
		return fmt.Errorf("snapshot: output: %w", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return fmt.Errorf("snapshot: read output: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir: %w", err)
	}
	if err := os.WriteFile(refPath, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write reference: %w", err)
	}

	return nil
}

// HashBytes returns the SHA-256 hex digest of data.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)

	return hex.EncodeToString(h[:])
}

func load(path string) (*tree.Node, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	var n *tree.Node
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		n, err = tree.ParseHTML(bytes.NewReader(data))
	default:
		n, err = tree.ParseXML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	return n, HashBytes(data), nil
}
