package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/tests"
)

type fakeTerminal struct {
	*bytes.Buffer
}

func (fakeTerminal) Fd() uintptr { return 0 }

func Test_newMenu(t *testing.T) {
	defer func(fn func(int) bool) { isTerminalFunc = fn }(isTerminalFunc)
	isTerminalFunc = func(int) bool { return true }

	conf := &core.Config{AppName: "Academic Records", Build: "1.0", Banner: true, Pause: true, ClearScreen: true}
	tty := fakeTerminal{new(bytes.Buffer)}

	tests := []struct {
		name   string
		params Params
		want   Options
	}{
		{
			name:   "terminal",
			params: Params{In: tty, Out: tty},
			want:   Options{AppName: "Academic Records", Build: "1.0", Banner: true, Pause: true, ClearScreen: true},
		},
		{
			name:   "piped input",
			params: Params{In: strings.NewReader(""), Out: tty},
			want:   Options{AppName: "Academic Records", Build: "1.0", Banner: true},
		},
		{
			name:   "redirected output",
			params: Params{In: tty, Out: new(bytes.Buffer)},
			want:   Options{AppName: "Academic Records", Build: "1.0", Banner: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMenu(testutil.NewRegistry(t), nil, conf, tt.params)
			assert.Equal(t, tt.want, m.opts)
		})
	}
}

func Test_newLogger(t *testing.T) {
	newTestLogger := func(t *testing.T, conf *core.Config, stderr io.Writer) (core.Logger, *logSink) {
		sink, err := newLogSink(conf, Params{Err: stderr})
		require.NoError(t, err)
		return newLogger(conf, sink, session("abc")), sink
	}

	t.Run("debug logs to stderr", func(t *testing.T) {
		stderr := new(bytes.Buffer)
		logger, sink := newTestLogger(t, &core.Config{Debug: true}, stderr)

		logger.Debug("menu option selected")
		got := stderr.String()
		assert.Contains(t, got, "session=abc")
		assert.Contains(t, got, "level=debug")
		assert.Contains(t, got, `msg="menu option selected"`)
		assert.NoError(t, sink.Close())
	})

	t.Run("silent by default", func(t *testing.T) {
		stderr := new(bytes.Buffer)
		logger, sink := newTestLogger(t, &core.Config{}, stderr)

		logger.Info("session started")
		assert.Empty(t, stderr.String())
		assert.NoError(t, sink.Close())
	})

	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "classbook.log")
		logger, sink := newTestLogger(t, &core.Config{LogFile: path}, io.Discard)

		logger.Debug("filtered")
		logger.Info("session started")
		require.NoError(t, sink.Close())
		assert.Error(t, sink.Close(), "the log file is closed once")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `msg="session started"`)
		assert.NotContains(t, string(data), "filtered")
	})

	t.Run("unwritable log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "classbook.log")
		_, err := newLogSink(&core.Config{LogFile: path}, Params{Err: io.Discard})
		assert.Error(t, err)
	})
}

func Test_run_closesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classbook.yaml")
	logPath := filepath.Join(t.TempDir(), "classbook.log")
	require.NoError(t, os.WriteFile(path, []byte("logFile: "+logPath+"\nbanner: false\n"), 0o600))

	out := new(bytes.Buffer)
	err := run(Params{ConfigFile: path, In: strings.NewReader("0\n"), Out: out, Err: io.Discard})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye!")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="session started"`)
	assert.Contains(t, string(data), `msg="session ended"`)
}

func Test_newConfig(t *testing.T) {
	conf, err := newConfig(Params{NoPause: true, NoBanner: true})
	require.NoError(t, err)
	assert.False(t, conf.Pause)
	assert.False(t, conf.Banner)
	assert.True(t, conf.ClearScreen)

	path := filepath.Join(t.TempDir(), "classbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("appName: Registro\nbanner: false\n"), 0o600))
	conf, err = newConfig(Params{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "Registro", conf.AppName)
	assert.False(t, conf.Banner)
	assert.True(t, conf.Pause)

	_, err = newConfig(Params{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
