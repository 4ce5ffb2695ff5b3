//go:build !windows
// +build !windows

package binutil

import (
	"os"

	"github.com/sevlyar/go-daemon"
	"github.com/xiaonanln/gobridge/engine/gwlog"
)

// Daemonize re-runs the current process in background, the parent process exits
//
// The returned context must be released when the child process quits.
func Daemonize(pidFile string, logFile string) *daemon.Context {
	context := &daemon.Context{
		PidFileName: pidFile,
		PidFilePerm: 0644,
		LogFileName: logFile,
		LogFilePerm: 0640,
		Umask:       027,
	}
	child, err := context.Reborn()

	if err != nil {
		// daemonize failed
		gwlog.Panicf("daemonize failed: %v", err)
	}

	if child != nil {
		gwlog.Infof("run in daemon mode, child pid %d", child.Pid)
		os.Exit(0)
		return nil
	}
	return context
}
