package cli

import (
	"io"
	"log"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"golang.org/x/term"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/registry"
	logsvc "github.com/trezcool/classbook/services/logger"
	"github.com/trezcool/classbook/storage/database/inmem"
)

var isTerminalFunc = term.IsTerminal // mockable

// Params holds what the command line hands over to the session.
type Params struct {
	ConfigFile string
	NoPause    bool
	NoBanner   bool

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// session identifies one run of the menu in the logs.
type session string

func newSession() session {
	return session(uuid.New().String())
}

func newConfig(params Params) (*core.Config, error) {
	conf, err := core.LoadConfig(params.ConfigFile)
	if err != nil {
		return nil, err
	}
	if params.NoPause {
		conf.Pause = false
	}
	if params.NoBanner {
		conf.Banner = false
	}
	return conf, nil
}

// logSink is where the session logs go. Logs stay away from the menu unless asked otherwise.
type logSink struct {
	io.Writer
	file *os.File
}

func newLogSink(conf *core.Config, params Params) (*logSink, error) {
	switch {
	case conf.LogFile != "":
		f, err := os.OpenFile(conf.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "opening log file %s", conf.LogFile)
		}
		return &logSink{Writer: f, file: f}, nil
	case conf.Debug:
		return &logSink{Writer: params.Err}, nil
	default:
		return &logSink{Writer: io.Discard}, nil
	}
}

// Close releases the log file, if any.
func (s *logSink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func newLogger(conf *core.Config, sink *logSink, sess session) core.Logger {
	if conf.RollbarToken != "" {
		std := log.New(sink, "CLASSBOOK : ", log.LstdFlags)
		logger := logsvc.NewRollbarLogger(std, conf, string(sess))
		logger.Enable(!conf.Debug)
		return logger
	}

	kl := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(sink))
	kl = kitlog.With(kl, "ts", kitlog.DefaultTimestampUTC, "session", string(sess))
	if !conf.Debug {
		kl = level.NewFilter(kl, level.AllowInfo())
	}
	return logsvc.NewKitLogger(kl)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && isTerminalFunc(int(f.Fd()))
}

func newMenu(svc *registry.Service, logger core.Logger, conf *core.Config, params Params) *Menu {
	tty := isTerminal(params.In) && isTerminal(params.Out)
	return NewMenu(svc, logger, params.In, params.Out, Options{
		AppName:     conf.AppName,
		Build:       conf.Build,
		Banner:      conf.Banner,
		Pause:       conf.Pause && tty,
		ClearScreen: conf.ClearScreen && tty,
	})
}

// newContainer returns a dig.Container able to build a Menu for params.
func newContainer(params Params) (*dig.Container, error) {
	c := dig.New()
	err := provide(c,
		func() Params { return params },
		newConfig,
		newSession,
		newLogSink,
		newLogger,
		inmemdb.Open,
		inmemdb.NewRegistryRepository,
		registry.NewService,
		newMenu,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func provide(c *dig.Container, ctors ...interface{}) error {
	for _, ctor := range ctors {
		if err := c.Provide(ctor); err != nil {
			return errors.Wrap(err, "failed to provide dependency")
		}
	}
	return nil
}

// run builds the dependencies and drives the menu until the user exits.
func run(params Params) error {
	c, err := newContainer(params)
	if err != nil {
		return err
	}
	return c.Invoke(func(m *Menu, logger core.Logger, sink *logSink, sess session) (err error) {
		defer func() {
			if cerr := sink.Close(); err == nil && cerr != nil {
				err = errors.Wrap(cerr, "closing log file")
			}
		}()
		logger.Info("session started", map[string]interface{}{"session": string(sess)})
		defer logger.Info("session ended", map[string]interface{}{"session": string(sess)})
		return m.Run()
	})
}
