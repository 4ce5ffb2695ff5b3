package main

import (
	"flag"
	"time"
)

var args struct {
	configFile      string
	inFile          string
	outFile         string
	realtime        bool
	linger          time.Duration
	logLevel        string
	runInDaemonMode bool
}

func parseArgs() {
	flag.StringVar(&args.configFile, "configfile", "", "set config file path")
	flag.StringVar(&args.inFile, "in", "", "recorded inbound messages")
	flag.StringVar(&args.outFile, "out", "", "write outbound messages to file")
	flag.BoolVar(&args.realtime, "realtime", false, "honor recorded delays between messages")
	flag.DurationVar(&args.linger, "linger", time.Second*2, "keep the session open after replaying")
	flag.StringVar(&args.logLevel, "log", "", "set log level, will override log level in config")
	flag.BoolVar(&args.runInDaemonMode, "d", false, "run in daemon mode")
	flag.Parse()
}
