package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fuzzypath "github.com/baditaflorin/go_fuzzypath"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalizeArgs(t *testing.T) {
	out, err := runCLI(t, "", "normalize", `C:\Temp\`, "//usr//BIN/")
	require.NoError(t, err)
	assert.Equal(t, "c:/temp\n/usr/bin\n", out)
}

func TestNormalizeStdin(t *testing.T) {
	out, err := runCLI(t, "A\\B\r\n\n/\n", "normalize")
	require.NoError(t, err)
	assert.Equal(t, "a/b\n/\n", out)
}

func TestNormalizeStdinParallel(t *testing.T) {
	var in, want strings.Builder
	for i := 0; i < 1000; i++ {
		in.WriteString("ROOT\\Sub\\\n")
		want.WriteString("root/sub\n")
	}
	out, err := runCLI(t, in.String(), "normalize", "--workers", "4")
	require.NoError(t, err)
	assert.Equal(t, want.String(), out)
}

func TestNormalizeJSON(t *testing.T) {
	out, err := runCLI(t, "", "--json", "normalize", "X//Y")
	require.NoError(t, err)

	var entries []normalizedEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "X//Y", entries[0].Input)
	assert.Equal(t, fuzzypath.New("x/y"), entries[0].Path)
}

func TestCompare(t *testing.T) {
	out, err := runCLI(t, "", "compare", `HELLO\\world/////foo/bar/////////`, "hello/world/foo/bar")
	require.NoError(t, err)
	assert.Equal(t, "equal\n", out)

	out, err = runCLI(t, "", "compare", `C:\Users\x`, "/Users/x")
	assert.ErrorIs(t, err, errDifferent)
	assert.Contains(t, out, "different")
	assert.Contains(t, out, "c:/users/x")

	_, err = runCLI(t, "", "compare", "only-one")
	assert.Error(t, err)
}

func TestCompareJSON(t *testing.T) {
	out, err := runCLI(t, "", "--json", "compare", "/A", "/a/")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"/a","b":"/a","equal":true,"order":0}`, out)
}

func TestDedupePlain(t *testing.T) {
	out, err := runCLI(t, "/A/b\n/a//B/\nx\n", "dedupe")
	require.NoError(t, err)
	assert.Equal(t, "/a/b\t2\t/A/b\t/a//B/\nx\t1\tx\n", out)

	out, err = runCLI(t, "", "dedupe", "--duplicates", "/A/b", "/a//B/", "x")
	require.NoError(t, err)
	assert.Equal(t, "/a/b\t2\t/A/b\t/a//B/\n", out)
}

func TestStdinSplitIsSharedByAllCommands(t *testing.T) {
	input := "/A/b\r/a//B/\r\nx\ry"

	streamed, err := runCLI(t, input, "normalize")
	require.NoError(t, err)
	assert.Equal(t, "/a/b\n/a/b\nx\ny\n", streamed)

	out, err := runCLI(t, input, "--json", "normalize")
	require.NoError(t, err)
	var entries []normalizedEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "/A/b", entries[0].Input)
	assert.Equal(t, "y", entries[3].Input)

	out, err = runCLI(t, input, "dedupe")
	require.NoError(t, err)
	assert.Equal(t, "/a/b\t2\t/A/b\t/a//B/\nx\t1\tx\ny\t1\ty\n", out)
}

func TestDedupeJSON(t *testing.T) {
	out, err := runCLI(t, "", "--json", "dedupe", "q", "Q/")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"path":"q","inputs":["q","Q/"]}]`, out)
}

func TestVerboseLogsToStderr(t *testing.T) {
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--verbose", "compare", "a", "A"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "equal\n", stdout.String())
	assert.Contains(t, stderr.String(), "Compared paths")
}

func TestRenderGroups(t *testing.T) {
	out := renderGroups(fuzzypath.GroupInputs([]string{"/A/b", "/a//B/", "x"}))
	assert.Contains(t, out, "Path")
	assert.Contains(t, out, "Count")
	assert.NotContains(t, out, "PATH")
	assert.Contains(t, out, "/a/b")
	assert.Contains(t, out, "/a//B/")

	empty := renderGroups(nil)
	assert.Contains(t, empty, "Inputs")
}
