package binutil

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"io"
	"os"

	"github.com/xiaonanln/gobridge/engine/gwlog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupHTTPServer starts the HTTP server for go tool pprof
func SetupHTTPServer(ip string, port int) {
	if port == 0 {
		// pprof not enabled
		gwlog.Infof("pprof server not enabled")
		return
	}

	httpHost := fmt.Sprintf("%s:%d", ip, port)
	gwlog.Infof("http server listening on %s", httpHost)
	gwlog.Infof("pprof http://%s/debug/pprof/ ... available commands: ", httpHost)
	gwlog.Infof("    go tool pprof http://%s/debug/pprof/heap", httpHost)
	gwlog.Infof("    go tool pprof http://%s/debug/pprof/profile", httpHost)

	go func() {
		if err := http.ListenAndServe(httpHost, nil); err != nil {
			gwlog.Errorf("http server on %s quit: %v", httpHost, err)
		}
	}()
}

// SetupGWLog setup the bridge log system
func SetupGWLog(component string, logLevel string, logFile string, logStderr bool) {
	outputWriters := make([]io.Writer, 0, 2)
	if logFile != "" {
		logFileWriter := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 100,
			MaxAge:     30, //days
			Compress:   true,
		}

		logFileWriter.Rotate() // rotate immediately
		outputWriters = append(outputWriters, logFileWriter)
	}

	if logStderr {
		outputWriters = append(outputWriters, os.Stderr)
	}

	if len(outputWriters) == 1 {
		gwlog.SetOutput(outputWriters[0])
	} else if len(outputWriters) > 1 {
		gwlog.SetOutput(io.MultiWriter(outputWriters...))
	} else {
		gwlog.SetOutput(io.Discard)
	}

	gwlog.SetSource(component)
	gwlog.SetLevel(gwlog.ParseLevel(logLevel))
	gwlog.Infof("Set log level to %s", logLevel)
}
