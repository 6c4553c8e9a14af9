package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/xlttj/whitelist/pkg/config"
	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/whitelist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	*Env
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestEnv(t *testing.T, stdin string) testEnv {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "whitelist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	l, err := whitelist.New(s, nil)
	require.NoError(t, err)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Env{
		Settings: &config.Settings{Listen: "127.0.0.1:0"},
		List:     l,
		In:       strings.NewReader(stdin),
		Out:      out,
		Err:      errOut,
	}
	return testEnv{Env: env, out: out, err: errOut}
}

func hostnames(l *whitelist.List) []string {
	var out []string
	for _, e := range l.Entries() {
		out = append(out, e.Hostname)
	}
	return out
}

func idOf(t *testing.T, l *whitelist.List, hostname string) string {
	t.Helper()
	for _, e := range l.Entries() {
		if e.Hostname == hostname {
			return strconv.FormatInt(e.ID, 10)
		}
	}
	t.Fatalf("no entry for %s", hostname)
	return ""
}

func TestAddCommand(t *testing.T) {
	env := newTestEnv(t, "")

	err := Run(env.Env, "add", []string{"example.com", "bad host", "ads.example.org"})
	assert.Error(t, err)
	assert.Equal(t, []string{"ads.example.org", "example.com"}, hostnames(env.List))
	assert.Contains(t, env.err.String(), "bad host: not a valid hostname")

	env.err.Reset()
	err = Run(env.Env, "add", []string{"example.com"})
	assert.Error(t, err)
	assert.Contains(t, env.err.String(), "already whitelisted")
}

func TestAddCommandNeedsArgs(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Error(t, Run(env.Env, "add", nil))
	assert.Contains(t, env.err.String(), "Usage:")
}

func TestHelpFlagIsNotAnError(t *testing.T) {
	env := newTestEnv(t, "")
	for _, name := range Commands() {
		t.Run(name, func(t *testing.T) {
			env.err.Reset()
			assert.NoError(t, Run(env.Env, name, []string{"-h"}))
			assert.Contains(t, env.err.String(), "Usage:")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	env := newTestEnv(t, "")
	assert.False(t, IsCommand("frobnicate"))
	assert.Error(t, Run(env.Env, "frobnicate", nil))
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.List.Add("a.example.com"))
	require.NoError(t, env.List.Add("b.example.com"))
	_, err := env.List.Toggle(env.List.Entries()[1].ID)
	require.NoError(t, err)

	require.NoError(t, Run(env.Env, "ls", nil))
	assert.Contains(t, env.out.String(), "a.example.com")
	assert.Contains(t, env.out.String(), "b.example.com")
	assert.Contains(t, env.out.String(), "HOSTNAME")

	env.out.Reset()
	require.NoError(t, Run(env.Env, "ls", []string{"-enabled"}))
	assert.Contains(t, env.out.String(), "a.example.com")
	assert.NotContains(t, env.out.String(), "b.example.com")
}

func TestListCommandEmpty(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, Run(env.Env, "ls", nil))
	assert.Equal(t, "No whitelist entries.\n", env.out.String())
}

func TestEditCommand(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.List.Add("old.example.com"))
	id := idOf(t, env.List, "old.example.com")

	require.NoError(t, Run(env.Env, "edit", []string{id, "new.example.com"}))
	assert.Equal(t, []string{"new.example.com"}, hostnames(env.List))

	assert.Error(t, Run(env.Env, "edit", []string{id, "bad host"}))
	assert.Error(t, Run(env.Env, "edit", []string{"999", "x.example.com"}))
	assert.Error(t, Run(env.Env, "edit", []string{"abc", "x.example.com"}))
	assert.Error(t, Run(env.Env, "edit", []string{id}))
	assert.Equal(t, []string{"new.example.com"}, hostnames(env.List))
}

func TestRemoveCommand(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.List.Add("a.example.com"))
	require.NoError(t, env.List.Add("b.example.com"))
	id := idOf(t, env.List, "a.example.com")

	require.NoError(t, Run(env.Env, "rm", []string{id, "999"}))
	assert.Equal(t, []string{"b.example.com"}, hostnames(env.List))
	assert.Contains(t, env.out.String(), "Deleted a.example.com")
	assert.Contains(t, env.out.String(), "No entry 999")
}

func TestToggleCommand(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.List.Add("example.com"))
	id := idOf(t, env.List, "example.com")

	require.NoError(t, Run(env.Env, "toggle", []string{id}))
	assert.False(t, env.List.Entries()[0].Enabled)
	require.NoError(t, Run(env.Env, "toggle", []string{id}))
	assert.True(t, env.List.Entries()[0].Enabled)

	assert.ErrorIs(t, Run(env.Env, "toggle", []string{"999"}), whitelist.ErrEntryNotFound)
}

func TestPruneCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  []string
	}{
		{"confirmed", nil, "y\n", []string{"keep.example.com"}},
		{"declined", nil, "n\n", []string{"keep.example.com", "off.example.com"}},
		{"no answer", nil, "", []string{"keep.example.com", "off.example.com"}},
		{"accept all", []string{"-y"}, "", []string{"keep.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.stdin)
			require.NoError(t, env.List.Add("keep.example.com"))
			require.NoError(t, env.List.Add("off.example.com"))
			for _, e := range env.List.Entries() {
				if e.Hostname == "off.example.com" {
					_, err := env.List.Toggle(e.ID)
					require.NoError(t, err)
				}
			}

			require.NoError(t, Run(env.Env, "prune", tt.args))
			assert.Equal(t, tt.want, hostnames(env.List))
		})
	}
}

func TestPruneCommandNothingToDo(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.List.Add("example.com"))

	require.NoError(t, Run(env.Env, "prune", nil))
	assert.Contains(t, env.out.String(), "No disabled entries")
}

func TestImportExportCommands(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.List.Add("existing.example.com"))

	path := filepath.Join(t.TempDir(), "in.yaml")
	data := `whitelist:
  - hostname: new.example.com
  - hostname: off.example.com
    enabled: false
  - hostname: existing.example.com
  - hostname: "bad host"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	require.NoError(t, Run(env.Env, "import", []string{path}))
	assert.Contains(t, env.out.String(), "Imported 2 entries")
	assert.Contains(t, env.out.String(), "Skipped 2")
	assert.Equal(t, []string{"existing.example.com", "new.example.com", "off.example.com"}, hostnames(env.List))

	out := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Run(env.Env, "export", []string{"-o", out}))
	exported, err := store.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, exported, 3)
	for _, e := range exported {
		assert.Equal(t, e.Hostname != "off.example.com", e.Enabled, e.Hostname)
	}

	env.out.Reset()
	require.NoError(t, Run(env.Env, "export", nil))
	assert.Contains(t, env.out.String(), "hostname: new.example.com")
}

func TestImportCommandMissingFile(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Error(t, Run(env.Env, "import", []string{filepath.Join(t.TempDir(), "missing.yaml")}))
	assert.Error(t, Run(env.Env, "import", nil))
}

func TestMainHelp(t *testing.T) {
	var buf bytes.Buffer
	HandleHelpCommand(&buf)
	for _, name := range Commands() {
		assert.Contains(t, buf.String(), "  "+name+" ")
	}
}
