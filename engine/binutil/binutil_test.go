package binutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xiaonanln/gobridge/engine/gwlog"
)

func TestSetupGWLog(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "binutil_test.log")
	SetupGWLog("binutil_test", "info", logFile, false)
	defer func() {
		gwlog.SetOutput(os.Stderr)
		gwlog.SetLevel(gwlog.DebugLevel)
	}()

	gwlog.Debugf("not in file")
	gwlog.Infof("written to file %d", 42)

	data, err := ioutil.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "written to file 42") {
		t.Errorf("log file misses info message: %q", content)
	}
	if strings.Contains(content, "not in file") {
		t.Errorf("log file has debug message at info level: %q", content)
	}
	if !strings.Contains(content, "binutil_test") {
		t.Errorf("log file misses source: %q", content)
	}
}

func TestSetupHTTPServerDisabled(t *testing.T) {
	SetupHTTPServer("127.0.0.1", 0)
}
