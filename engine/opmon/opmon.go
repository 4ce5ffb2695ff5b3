package opmon

import (
	"sync"
	"time"

	"sort"

	"github.com/dustin/go-humanize"
	"github.com/xiaonanln/gobridge/engine/gwlog"
)

var (
	operationAllocPool = sync.Pool{
		New: func() interface{} {
			return &Operation{}
		},
	}

	monitor = newMonitor()

	dumpOnce sync.Once
)

// StartDumping prints opmon infos every interval, it is a no-op if interval <= 0
func StartDumping(interval time.Duration) {
	if interval <= 0 {
		return
	}

	dumpOnce.Do(func() {
		go func() {
			for {
				time.Sleep(interval)
				Dump()
			}
		}()
	})
}

// OpInfo is the accumulated statistics of one operation
type OpInfo struct {
	Count         uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

type _Monitor struct {
	sync.Mutex
	opInfos map[string]*OpInfo
}

func newMonitor() *_Monitor {
	m := &_Monitor{
		opInfos: map[string]*OpInfo{},
	}
	return m
}

func (monitor *_Monitor) record(opname string, duration time.Duration) {
	monitor.Lock()
	info := monitor.opInfos[opname]
	if info == nil {
		info = &OpInfo{}
		monitor.opInfos[opname] = info
	}
	info.Count += 1
	info.TotalDuration += duration
	if duration > info.MaxDuration {
		info.MaxDuration = duration
	}
	monitor.Unlock()
}

// Get returns a copy of the statistics of the named operation since the last dump
func Get(opname string) (OpInfo, bool) {
	monitor.Lock()
	defer monitor.Unlock()
	info := monitor.opInfos[opname]
	if info == nil {
		return OpInfo{}, false
	}
	return *info, true
}

// Dump writes all statistics to the log and clears them
func Dump() {
	type _T struct {
		name string
		info *OpInfo
	}
	var opInfos map[string]*OpInfo
	monitor.Lock()
	opInfos = monitor.opInfos
	monitor.opInfos = map[string]*OpInfo{} // clear to be empty
	monitor.Unlock()

	if len(opInfos) == 0 {
		return
	}

	var copyOpInfos []_T
	for name, opinfo := range opInfos {
		copyOpInfos = append(copyOpInfos, _T{name, opinfo})
	}
	sort.Slice(copyOpInfos, func(i, j int) bool {
		return copyOpInfos[i].name < copyOpInfos[j].name
	})
	gwlog.Infof("opmon: =====================================================================")
	for _, _t := range copyOpInfos {
		opname, opinfo := _t.name, _t.info
		gwlog.Infof("opmon: %-30s x%-10s AVG %-10s MAX %-10s", opname, humanize.Comma(int64(opinfo.Count)), opinfo.TotalDuration/time.Duration(opinfo.Count), opinfo.MaxDuration)
	}
}

// Operation is the type of operation to be monitored
type Operation struct {
	name      string
	startTime time.Time
}

// StartOperation creates a new operation
func StartOperation(operationName string) *Operation {
	op := operationAllocPool.Get().(*Operation)
	op.name = operationName
	op.startTime = time.Now()
	return op
}

// Finish finishes the operation and records the duration of operation
func (op *Operation) Finish(warnThreshold time.Duration) {
	takeTime := time.Since(op.startTime)
	monitor.record(op.name, takeTime)
	if takeTime >= warnThreshold {
		gwlog.Warnf("opmon: operation %s takes %s > %s", op.name, takeTime, warnThreshold)
	}
	operationAllocPool.Put(op)
}
