package log_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/log"
)

func TestSetLevel(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		level string
		exp   logrus.Level
	}{
		{name: "empty level is ignored", level: "", exp: logrus.InfoLevel},
		{name: "debug", level: "debug", exp: logrus.DebugLevel},
		{name: "warn", level: "warn", exp: logrus.WarnLevel},
		{name: "invalid level is ignored", level: "trace2", exp: logrus.InfoLevel},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			logE := logrus.NewEntry(logrus.New())
			log.SetLevel(d.level, logE)
			if got := logE.Logger.Level; got != d.exp {
				t.Errorf("wanted %v, got %v", d.exp, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	logE := log.New("v1.0.0")
	if logE == nil {
		t.Fatal("New must return a logger")
	}
	if got := logE.Data["anrun_version"]; got != "v1.0.0" {
		t.Errorf("anrun_version: wanted %q, got %v", "v1.0.0", got)
	}
}
