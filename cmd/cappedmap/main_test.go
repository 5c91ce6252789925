package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DakshBaxi/cappedmap/internal/store"
)

func run(t *testing.T, s *store.Store, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, serve(strings.NewReader(input), &out, s, false))
	return out.String()
}

func TestServe_PutGetEvict(t *testing.T) {
	s := store.NewStore(10)
	out := run(t, s, strings.Join([]string{
		"PUT 1 abcde",
		"PUT 2 fghij",
		"PUT 3 k",
		"GET 1",
		"ENTRIES",
		"SIZE",
	}, "\n"))

	require.Equal(t, strings.Join([]string{
		"(nil)",
		"(nil)",
		"(nil)",
		"(nil)",
		`2 "fghij"`,
		`3 "k"`,
		":2",
		"",
	}, "\r\n"), out)
}

func TestServe_UpdateReturnsPrevious(t *testing.T) {
	s := store.NewStore(10)
	out := run(t, s, "put 1 abc\nput 2 def\nput 1 ghijk\nkeys\n")
	require.Equal(t, "(nil)\r\n(nil)\r\n\"abc\"\r\n2\r\n1\r\n", out)
}

func TestServe_Errors(t *testing.T) {
	s := store.NewStore(5)
	out := run(t, s, "PUT 1 abcdef\nPUT x v\nGET\nFLY\nDEL 99\n")

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	require.Len(t, lines, 5)
	require.Equal(t, "-ERR invalid argument: value length 6 exceeds capacity 5", lines[0])
	require.Equal(t, "-ERR invalid key 'x'", lines[1])
	require.Equal(t, "-ERR GET requires key", lines[2])
	require.Equal(t, "-ERR unknown command 'FLY'", lines[3])
	require.Equal(t, "(nil)", lines[4])
	require.Zero(t, s.Len())
}

func TestServe_StopsAtQuit(t *testing.T) {
	s := store.NewStore(10)
	out := run(t, s, "PUT 1 a\nQUIT\nPUT 2 b\n")
	require.Equal(t, "(nil)\r\n+OK bye\r\n", out)
	require.Equal(t, 1, s.Len())
}

func TestServe_ValueKeepsSpaces(t *testing.T) {
	s := store.NewStore(20)
	run(t, s, "PUT 4 hello there world\n")
	v, ok := s.Get(4)
	require.True(t, ok)
	require.Equal(t, "hello there world", v)
}

func TestServe_LineOver64KiB(t *testing.T) {
	require := require.New(t)
	value := strings.Repeat("v", 70000)
	s := store.NewStore(100000)

	out := run(t, s, "PUT 1 "+value+"\nSIZE\n")
	require.Equal("(nil)\r\n:1\r\n", out)
	got, ok := s.Get(1)
	require.True(ok)
	require.Equal(value, got)
}

func TestServe_LastLineWithoutNewline(t *testing.T) {
	s := store.NewStore(10)
	out := run(t, s, "PUT 1 a\nSIZE")
	require.Equal(t, "(nil)\r\n:1\r\n", out)
}

func TestServe_PutKeepsInnerSpacing(t *testing.T) {
	require := require.New(t)
	s := store.NewStore(20)
	run(t, s, "PUT 1   a   b\tc  \n")

	v, ok := s.Get(1)
	require.True(ok)
	require.Equal("a   b\tc", v)
	require.Equal(7, s.Used())
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		line string
		cmd  string
		args []string
	}{
		{"", "", nil},
		{"   \r\n", "", nil},
		{"get 5\r\n", "GET", []string{"5"}},
		{"put 1 x  y", "PUT", []string{"1", "x  y"}},
		{"PUT\t2\t\tz z", "PUT", []string{"2", "z z"}},
		{"PUT 3", "PUT", []string{"3"}},
		{"ping  hello   there", "PING", []string{"hello   there"}},
		{"PING", "PING", []string{}},
	}
	for _, c := range cases {
		cmd, args := splitCommand(c.line)
		require.Equal(t, c.cmd, cmd, "line %q", c.line)
		require.Equal(t, c.args, args, "line %q", c.line)
	}
}

func TestReplaySeed_LongLinesAndSpacing(t *testing.T) {
	require := require.New(t)
	long := strings.Repeat("é", 70000)
	path := filepath.Join(t.TempDir(), "seed.txt")
	require.NoError(os.WriteFile(path, []byte("PUT 1 "+long+"\nPUT 2 a  b"), 0644))

	s := store.NewStore(70004)
	n, err := replaySeed(s, path)
	require.NoError(err)
	require.Equal(2, n)
	require.Equal([]store.Entry{{Key: 1, Value: long}, {Key: 2, Value: "a  b"}}, s.Entries())
}

func TestReplaySeed(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "seed.txt")
	seed := strings.Join([]string{
		"# warm up",
		"PUT 1 abc",
		"PUT 2 def",
		"PUT x nope",
		"PUT 3 waytoolongvalue",
		"DEL 1",
		"SET 5 v",
	}, "\n")
	require.NoError(os.WriteFile(path, []byte(seed), 0644))

	s := store.NewStore(8)
	n, err := replaySeed(s, path)
	require.NoError(err)
	require.Equal(3, n)
	require.Equal([]store.Entry{{Key: 2, Value: "def"}}, s.Entries())
}

func TestReplaySeed_MissingFile(t *testing.T) {
	s := store.NewStore(8)
	n, err := replaySeed(s, filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CAPPEDMAP_CAPACITY=64\nCAPPEDMAP_SEED=seed.txt\n"), 0644))

	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig([]string{"-env", filepath.Join(dir, "missing")}, &bytes.Buffer{})
		require.NoError(t, err)
		require.Equal(t, defaultCapacity, cfg.Capacity)
		require.Empty(t, cfg.Seed)
		require.True(t, cfg.Prompt)
	})

	t.Run("flags win over environment", func(t *testing.T) {
		t.Setenv(envCapacity, "32")
		cfg, err := loadConfig([]string{"-capacity", "16", "-env", filepath.Join(dir, "missing")}, &bytes.Buffer{})
		require.NoError(t, err)
		require.Equal(t, 16, cfg.Capacity)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(envCapacity, "32")
		cfg, err := loadConfig([]string{"-env", filepath.Join(dir, "missing")}, &bytes.Buffer{})
		require.NoError(t, err)
		require.Equal(t, 32, cfg.Capacity)
	})

	t.Run("dotenv file", func(t *testing.T) {
		// register restores, then clear so the file is not shadowed
		t.Setenv(envCapacity, "")
		t.Setenv(envSeed, "")
		os.Unsetenv(envCapacity)
		os.Unsetenv(envSeed)

		cfg, err := loadConfig([]string{"-env", envFile}, &bytes.Buffer{})
		require.NoError(t, err)
		require.Equal(t, 64, cfg.Capacity)
		require.Equal(t, "seed.txt", cfg.Seed)
	})

	t.Run("negative capacity", func(t *testing.T) {
		_, err := loadConfig([]string{"-capacity", "-1", "-env", filepath.Join(dir, "missing")}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("bad environment value", func(t *testing.T) {
		t.Setenv(envCapacity, "lots")
		_, err := loadConfig([]string{"-env", filepath.Join(dir, "missing")}, &bytes.Buffer{})
		require.Error(t, err)
	})
}
