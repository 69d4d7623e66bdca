package snapshot_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treecmp/diaglog"
	"github.com/katalvlaran/treecmp/profile"
	"github.com/katalvlaran/treecmp/snapshot"
)

const refVTK = `<VTKFile type="RectilinearGrid" created="2019-01-10">
  <RectilinearGrid WholeExtent="0 2 0 2 0 0">
    <Piece Extent="0 2 0 2 0 0"/>
  </RectilinearGrid>
  <FieldData><DataArray Name="time">0.5</DataArray></FieldData>
</VTKFile>`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func quietProfile(t *testing.T, dir string) profile.Profile {
	t.Helper()
	p := profile.Default()
	p.Log.Path = filepath.Join(dir, diaglog.DefaultLogFile)

	return p
}

func TestVerify_Match(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.vtr", refVTK)
	out := writeFile(t, dir, "out.vtr", `<VTKFile type="RectilinearGrid" created="2026-10-16">
<FieldData><DataArray Name="time"> 0.5 </DataArray></FieldData>
<RectilinearGrid WholeExtent="0 2 0 2 0 0"><Piece Extent="0 2 0 2 0 0"/></RectilinearGrid>
</VTKFile>`)

	p := quietProfile(t, dir)
	p.Excludes = []string{"created"}
	rep, err := snapshot.Verify(context.Background(), ref, out, p)
	require.NoError(t, err)
	assert.True(t, rep.Match)
	assert.False(t, rep.Identical())
	assert.Empty(t, rep.SessionID)
	assert.Empty(t, rep.Entries)
	assert.Contains(t, rep.Summary(), "coincides")

	// no session, no log file
	_, err = os.Stat(p.Log.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestVerify_MismatchWritesLog(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.vtr", refVTK)
	out := writeFile(t, dir, "out.vtr", `<VTKFile type="RectilinearGrid" created="2019-01-10">
  <RectilinearGrid WholeExtent="0 3 0 2 0 0">
    <Piece Extent="0 3 0 2 0 0"/>
  </RectilinearGrid>
  <FieldData><DataArray Name="time">0.5</DataArray></FieldData>
</VTKFile>`)

	p := quietProfile(t, dir)
	rep, err := snapshot.Verify(context.Background(), ref, out, p)
	require.NoError(t, err)
	assert.False(t, rep.Match)
	assert.NotEmpty(t, rep.SessionID)
	require.NotEmpty(t, rep.Entries)
	assert.Contains(t, rep.Summary(), "does not coincide")

	data, err := os.ReadFile(p.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WholeExtent")
}

func TestVerify_SQLiteSession(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.xml", `<a><b k="1"/></a>`)
	out := writeFile(t, dir, "out.xml", `<a><b k="2"/></a>`)

	p := profile.Default()
	p.Log = profile.LogConfig{Sink: profile.SinkSQLite, Path: filepath.Join(dir, "diag.db")}
	rep, err := snapshot.Verify(context.Background(), ref, out, p)
	require.NoError(t, err)
	require.False(t, rep.Match)

	stored, err := diaglog.ReadSQLite(context.Background(), p.Log.Path, rep.SessionID)
	require.NoError(t, err)
	assert.Equal(t, rep.Entries, stored)
}

func TestVerify_HTMLByExtension(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.html", `<p class="x">hi</p>`)
	out := writeFile(t, dir, "out.HTM", `<html><head></head><body><p class="x">hi</p></body></html>`)

	p := quietProfile(t, dir)
	p.Log.Sink = profile.SinkNone
	rep, err := snapshot.Verify(context.Background(), ref, out, p)
	require.NoError(t, err)
	assert.True(t, rep.Match)
}

func TestVerify_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.xml", `<a/>`)
	bad := writeFile(t, dir, "bad.xml", `<a><b></a>`)
	p := quietProfile(t, dir)

	_, err := snapshot.Verify(context.Background(), filepath.Join(dir, "missing.xml"), good, p)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = snapshot.Verify(context.Background(), good, bad, p)
	assert.Error(t, err)

	p.Strategy = "bogus"
	_, err = snapshot.Verify(context.Background(), good, good, p)
	assert.Error(t, err)
}

func TestVerify_IdenticalHashes(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.xml", refVTK)
	out := writeFile(t, dir, "out.xml", refVTK)

	rep, err := snapshot.Verify(context.Background(), ref, out, quietProfile(t, dir))
	require.NoError(t, err)
	assert.True(t, rep.Match)
	assert.True(t, rep.Identical())
	assert.Equal(t, snapshot.HashBytes([]byte(refVTK)), rep.RefHash)
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	out := writeFile(t, dir, "out.xml", `<a><b/></a>`)
	ref := filepath.Join(dir, "golden", "nested", "ref.xml")

	require.NoError(t, snapshot.Update(ref, out))
	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, `<a><b/></a>`, string(data))

	bad := writeFile(t, dir, "bad.xml", `<a>`)
	assert.Error(t, snapshot.Update(ref, bad))
	data, err = os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, `<a><b/></a>`, string(data), "malformed output must not replace the reference")
}

func TestVerify_StderrSinkWriter(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.xml", `<a><b k="1"/></a>`)
	out := writeFile(t, dir, "out.xml", `<a><b k="2"/></a>`)

	p := profile.Default()
	p.SetSink(profile.SinkStderr)
	var buf bytes.Buffer
	rep, err := snapshot.Verify(context.Background(), ref, out, p, snapshot.WithDiagnosticWriter(&buf))
	require.NoError(t, err)
	require.False(t, rep.Match)
	for _, e := range rep.Entries {
		assert.Contains(t, buf.String(), e.String())
	}
}
