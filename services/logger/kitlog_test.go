package logsvc

import (
	"bytes"
	"errors"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
)

func TestKitLogger(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *KitLogger)
		want string
	}{
		{
			name: "info with fields",
			log: func(l *KitLogger) {
				l.Info("person registered", map[string]interface{}{"kind": "Student", "id": "S1"})
			},
			want: "level=info msg=\"person registered\" id=S1 kind=Student\n",
		},
		{
			name: "warn with error",
			log: func(l *KitLogger) {
				l.Warn("invalid payment", errors.New("boom"), map[string]interface{}{"id": "P1"})
			},
			want: "level=warn msg=\"invalid payment\" err=boom id=P1\n",
		},
		{
			name: "debug with plain value",
			log:  func(l *KitLogger) { l.Debug("selected", 3) },
			want: "level=debug msg=selected arg0=3\n",
		},
		{
			name: "error",
			log:  func(l *KitLogger) { l.Error("failed") },
			want: "level=error msg=failed\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewKitLogger(kitlog.NewLogfmtLogger(&buf)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
