// bridgereplay replays recorded server messages through one bridged session
package main

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/pkg/errors"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
	"github.com/xiaonanln/gobridge/components/bridge"
	"github.com/xiaonanln/gobridge/engine/binutil"
	"github.com/xiaonanln/gobridge/engine/config"
	"github.com/xiaonanln/gobridge/engine/gwlog"
	"github.com/xiaonanln/gobridge/engine/gwvar"
	"github.com/xiaonanln/gobridge/engine/opmon"
	"github.com/xiaonanln/gobridge/engine/proto"
	"github.com/xiaonanln/gobridge/engine/session"
)

func main() {
	parseArgs()

	if args.runInDaemonMode {
		daemoncontext := binutil.Daemonize("bridgereplay.pid", "bridgereplay.out")
		defer daemoncontext.Release()
	}

	if args.configFile != "" {
		config.SetConfigFile(args.configFile)
	}

	if args.inFile == "" {
		gwlog.Errorf("no input file, use -in to specify the recorded messages")
		os.Exit(1)
	}

	cfg := config.Get()
	processConfig := cfg.Bridge
	if processConfig.GoMaxProcs > 0 {
		gwlog.Infof("SET GOMAXPROCS = %d", processConfig.GoMaxProcs)
		runtime.GOMAXPROCS(processConfig.GoMaxProcs)
	}
	logLevel := args.logLevel
	if logLevel == "" {
		logLevel = processConfig.LogLevel
	}
	binutil.SetupGWLog("bridgereplay", logLevel, processConfig.LogFile, processConfig.LogStderr)
	gwlog.Infof("Read config: \n%s", config.DumpPretty(cfg))
	binutil.SetupHTTPServer(processConfig.HTTPIp, processConfig.HTTPPort)
	opmon.StartDumping(processConfig.OpmonDumpInterval)

	svc := bridge.NewService(cfg)
	s := svc.OpenSession()

	var out *bufio.Writer
	if args.outFile != "" {
		f, err := os.Create(args.outFile)
		if err != nil {
			gwlog.Fatalf("create %s failed: %v", args.outFile, err)
		}
		defer f.Close()
		out = bufio.NewWriter(f)
	}

	writerDone := make(chan struct{})
	go func() {
		writeOutbound(s, out)
		close(writerDone)
	}()

	inbound := xnsyncutil.NewSyncQueue()
	serveDone := make(chan struct{})
	go func() {
		svc.Serve(s, inbound)
		close(serveDone)
	}()

	gwvar.IsReplaying.Set(true)
	n, err := replay(args.inFile, inbound, args.realtime)
	gwvar.IsReplaying.Set(false)
	if err != nil {
		gwlog.Errorf("replay stopped: %+v", err)
	}
	gwlog.Infof("%d messages replayed, lingering for %s", n, durafmt.Parse(args.linger))
	time.Sleep(args.linger)

	inbound.Close()
	<-serveDone
	<-writerDone
	svc.Close()

	if out != nil {
		if err := out.Flush(); err != nil {
			gwlog.Errorf("flush %s failed: %v", args.outFile, err)
		}
	}
	opmon.Dump()
}

func replay(inFile string, inbound *xnsyncutil.SyncQueue, realtime bool) (int, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return 0, errors.Wrap(err, "open input")
	}
	defer f.Close()

	r := bufio.NewReader(f)
	n := 0
	for {
		delay, msg, err := proto.ReadRecord(r)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrapf(err, "record %d", n)
		}
		if realtime && delay > 0 {
			time.Sleep(delay)
		}
		inbound.Push(msg)
		n += 1
	}
}

func writeOutbound(s *session.Session, out io.Writer) {
	counts := map[proto.MsgType]int64{}
	last := time.Now()
	for {
		msg := s.Recv()
		if msg == nil { // session closed
			break
		}
		counts[msg.MsgType()] += 1
		gwlog.Debugf("%s => %s %+v", s, msg.MsgType(), msg)

		if out != nil {
			now := time.Now()
			if err := proto.WriteRecord(out, now.Sub(last), msg); err != nil {
				gwlog.Errorf("write outbound failed: %+v", err)
			}
			last = now
		}
	}

	msgTypes := make([]proto.MsgType, 0, len(counts))
	for mt := range counts {
		msgTypes = append(msgTypes, mt)
	}
	sort.Slice(msgTypes, func(i, j int) bool { return msgTypes[i] < msgTypes[j] })
	for _, mt := range msgTypes {
		gwlog.Infof("outbound %-20s x%s", mt, humanize.Comma(counts[mt]))
	}
}
