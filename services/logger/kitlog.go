package logsvc

import (
	"fmt"
	"os"
	"sort"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/trezcool/classbook/core"
)

// KitLogger writes logfmt records through a go-kit logger.
type KitLogger struct {
	logger kitlog.Logger
}

var _ core.Logger = (*KitLogger)(nil)

func NewKitLogger(logger kitlog.Logger) *KitLogger {
	return &KitLogger{logger: logger}
}

// keyvals flattens args into logfmt pairs.
// expected fmt: error, map[string]interface{} or any value
func keyvals(msg string, args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, 2+2*len(args))
	kvs = append(kvs, "msg", msg)
	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			kvs = append(kvs, "err", a.Error())
		case map[string]interface{}:
			keys := make([]string, 0, len(a))
			for k := range a {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				kvs = append(kvs, k, a[k])
			}
		default:
			kvs = append(kvs, fmt.Sprintf("arg%d", i), a)
		}
	}
	return kvs
}

func (l KitLogger) Debug(msg string, args ...interface{}) {
	_ = level.Debug(l.logger).Log(keyvals(msg, args)...)
}

func (l KitLogger) Info(msg string, args ...interface{}) {
	_ = level.Info(l.logger).Log(keyvals(msg, args)...)
}

func (l KitLogger) Warn(msg string, args ...interface{}) {
	_ = level.Warn(l.logger).Log(keyvals(msg, args)...)
}

func (l KitLogger) Error(msg string, args ...interface{}) {
	_ = level.Error(l.logger).Log(keyvals(msg, args)...)
}

func (l KitLogger) Fatal(msg string, args ...interface{}) {
	_ = level.Error(l.logger).Log(append(keyvals(msg, args), "fatal", true)...)
	os.Exit(1)
}
