//go:build windows
// +build windows

package binutil

import "github.com/xiaonanln/gobridge/engine/gwlog"

type nopRelease int

func (_ nopRelease) Release() error {
	return nil
}

// Daemonize does nothing on windows
func Daemonize(pidFile string, logFile string) nopRelease {
	// Windows can not daemonize
	gwlog.Warnf("can not run in daemon mode in windows, -d ignored")
	return nopRelease(0)
}
