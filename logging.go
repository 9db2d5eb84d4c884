package gale

import (
	"io"
	"io/ioutil"

	"github.com/gale-lang/gale/internal/flushio"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
)

// newLogger builds the nucleus's default logger: a logrus.Logger writing
// to w (io.Discard when nil), formatted tersely enough to read next to a
// REPL transcript. WithOutput later points it at the Runtime's
// flushio.WriteFlusher so log lines and ordinary output flush together.
func newLogger(w io.Writer) *logrus.Logger {
	if w == nil {
		w = ioutil.Discard
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&easy.Formatter{
		TimestampFormat: "15:04:05.000",
		LogFormat:       "[%lvl%] %time% %msg%\n",
	})
	return logger
}

// wrapFlushLogger points a logrus.Logger at a flushio.WriteFlusher so the
// caller can Flush() the same sink the Runtime writes ordinary output to.
func wrapFlushLogger(logger *logrus.Logger, out flushio.WriteFlusher) {
	logger.SetOutput(out)
}
