package config

import (
	"strings"

	"encoding/json"

	"sync"

	"time"

	"path"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
)

const (
	_DEFAULT_CONFIG_FILE  = "bridge.ini"
	_DEFAULT_HTTP_IP      = "127.0.0.1"
	_DEFAULT_LOG_LEVEL    = "debug"
	_DEFAULT_LOG_FILE     = "bridge.log"
	_MIN_BORDER_TICK_MSEC = 10
)

var (
	configFilePath = _DEFAULT_CONFIG_FILE
	bridgeConfig   *BridgeConfig
	configLock     sync.Mutex
)

// ProcessConfig defines fields of the [bridge] section
type ProcessConfig struct {
	LogFile           string
	LogStderr         bool
	LogLevel          string
	HTTPIp            string
	HTTPPort          int
	GoMaxProcs        int
	WorkerPoolSize    int
	OpmonDumpInterval time.Duration
}

// BorderConfig defines fields of the [border] section
type BorderConfig struct {
	TickInterval      time.Duration
	HighlightInterval time.Duration
	MaxDiameter       float64
}

// ItemsConfig defines fields of the [items] section
type ItemsConfig struct {
	LogMisses bool
}

// BridgeConfig defines the total bridge config file structure
type BridgeConfig struct {
	Bridge ProcessConfig
	Border BorderConfig
	Items  ItemsConfig
}

// SetConfigFile sets the config file path (bridge.ini by default)
func SetConfigFile(f string) {
	configLock.Lock()
	configFilePath = f
	configLock.Unlock()
}

// GetConfigDir returns the directory of bridge.ini
func GetConfigDir() string {
	dir, _ := path.Split(GetConfigFilePath())
	return dir
}

// GetConfigFilePath returns the config file path
func GetConfigFilePath() string {
	configLock.Lock()
	defer configLock.Unlock()
	return configFilePath
}

// Get returns the total bridge config
func Get() *BridgeConfig {
	configLock.Lock()
	defer configLock.Unlock() // protect concurrent access from sessions & tools
	if bridgeConfig == nil {
		bridgeConfig = readBridgeConfig()
	}
	return bridgeConfig
}

// Reload forces the bridge to reload the whole config
func Reload() *BridgeConfig {
	configLock.Lock()
	bridgeConfig = nil
	configLock.Unlock()

	return Get()
}

// GetBridge returns the [bridge] config
func GetBridge() *ProcessConfig {
	return &Get().Bridge
}

// GetBorder returns the [border] config
func GetBorder() *BorderConfig {
	return &Get().Border
}

// GetItems returns the [items] config
func GetItems() *ItemsConfig {
	return &Get().Items
}

// DumpPretty format config to string in pretty format
func DumpPretty(cfg interface{}) string {
	s, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err.Error()
	}
	return string(s)
}

func readBridgeConfig() *BridgeConfig {
	config := BridgeConfig{}
	setDefaults(&config)

	gwlog.Infof("Using config file: %s", configFilePath)
	iniFile, err := ini.Load(configFilePath)
	checkConfigError(err, "")

	for _, sec := range iniFile.Sections() {
		secName := strings.ToLower(sec.Name())
		if secName == "default" {
			continue
		}

		if secName == "bridge" {
			readProcessConfig(sec, &config.Bridge)
		} else if secName == "border" {
			readBorderConfig(sec, &config.Border)
		} else if secName == "items" {
			readItemsConfig(sec, &config.Items)
		} else {
			gwlog.Errorf("unknown section: %s", secName)
		}
	}

	validateConfig(&config)
	return &config
}

func setDefaults(config *BridgeConfig) {
	pc := &config.Bridge
	pc.LogFile = _DEFAULT_LOG_FILE
	pc.LogStderr = true
	pc.LogLevel = _DEFAULT_LOG_LEVEL
	pc.HTTPIp = _DEFAULT_HTTP_IP
	pc.HTTPPort = 0 // pprof not enabled by default
	pc.GoMaxProcs = 0
	pc.WorkerPoolSize = consts.DEFAULT_WORKER_POOL_SIZE
	pc.OpmonDumpInterval = consts.OPMON_DUMP_INTERVAL

	bc := &config.Border
	bc.TickInterval = consts.BORDER_TASK_INTERVAL
	bc.HighlightInterval = consts.BORDER_HIGHLIGHT_INTERVAL
	bc.MaxDiameter = consts.MAX_WORLD_DIAMETER

	config.Items.LogMisses = true
}

func readProcessConfig(sec *ini.Section, pc *ProcessConfig) {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "log_file" {
			pc.LogFile = key.MustString(pc.LogFile)
		} else if name == "log_stderr" {
			pc.LogStderr = key.MustBool(pc.LogStderr)
		} else if name == "log_level" {
			pc.LogLevel = key.MustString(pc.LogLevel)
		} else if name == "http_ip" {
			pc.HTTPIp = key.MustString(pc.HTTPIp)
		} else if name == "http_port" {
			pc.HTTPPort = key.MustInt(pc.HTTPPort)
		} else if name == "gomaxprocs" {
			pc.GoMaxProcs = key.MustInt(pc.GoMaxProcs)
		} else if name == "worker_pool_size" {
			pc.WorkerPoolSize = key.MustInt(pc.WorkerPoolSize)
		} else if name == "opmon_dump_interval" {
			pc.OpmonDumpInterval = time.Second * time.Duration(key.MustInt(int(pc.OpmonDumpInterval/time.Second)))
		} else {
			gwlog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func readBorderConfig(sec *ini.Section, bc *BorderConfig) {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "tick_interval_ms" {
			bc.TickInterval = time.Millisecond * time.Duration(key.MustInt(int(bc.TickInterval/time.Millisecond)))
		} else if name == "highlight_interval_ms" {
			bc.HighlightInterval = time.Millisecond * time.Duration(key.MustInt(int(bc.HighlightInterval/time.Millisecond)))
		} else if name == "max_diameter" {
			bc.MaxDiameter = key.MustFloat64(bc.MaxDiameter)
		} else {
			gwlog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func readItemsConfig(sec *ini.Section, ic *ItemsConfig) {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "log_misses" {
			ic.LogMisses = key.MustBool(ic.LogMisses)
		} else {
			gwlog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func checkConfigError(err error, msg string) {
	if err != nil {
		if msg == "" {
			msg = err.Error()
		}
		gwlog.Panic(errors.Wrap(err, "read config error: "+msg))
	}
}

func validateConfig(config *BridgeConfig) {
	if config.Bridge.WorkerPoolSize <= 0 {
		gwlog.Panicf("worker_pool_size must be positive, but is %d", config.Bridge.WorkerPoolSize)
	}

	if config.Border.TickInterval < _MIN_BORDER_TICK_MSEC*time.Millisecond {
		gwlog.Panicf("tick_interval_ms must be at least %d, but is %s", _MIN_BORDER_TICK_MSEC, config.Border.TickInterval)
	}

	if config.Border.HighlightInterval < 0 {
		gwlog.Panicf("highlight_interval_ms must not be negative")
	}

	if config.Border.MaxDiameter <= 0 {
		gwlog.Panicf("max_diameter must be positive, but is %v", config.Border.MaxDiameter)
	}
}
