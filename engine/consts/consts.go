package consts

import "time"

// Tunable Options
const (
	// For Scheduler
	// SCHEDULER_TICK_INTERVAL is the resolution of the scheduler timer loop
	SCHEDULER_TICK_INTERVAL = time.Millisecond * 10 // affects timer resolution of border tasks
	// DEFAULT_WORKER_POOL_SIZE is the default number of border ticks allowed to run at the same time
	DEFAULT_WORKER_POOL_SIZE = 256

	// For World Border
	// BORDER_TASK_INITIAL_DELAY is the delay before the first tick of a freshly scheduled border task
	BORDER_TASK_INITIAL_DELAY = time.Millisecond
	// BORDER_TASK_INTERVAL is the default interval between two border ticks
	BORDER_TASK_INTERVAL = time.Millisecond * 200
	// BORDER_HIGHLIGHT_INTERVAL is the default minimal interval between two border highlights
	BORDER_HIGHLIGHT_INTERVAL = time.Millisecond * 500
	// MAX_WORLD_DIAMETER is the world size ceiling; borders at least this large are not simulated
	MAX_WORLD_DIAMETER = 59999967

	// For Translators
	// TRANSLATE_WARN_THRESHOLD is the duration above which a single translation is logged as slow
	TRANSLATE_WARN_THRESHOLD = time.Millisecond * 20
	// BORDER_TICK_WARN_THRESHOLD is the duration above which a single border tick is logged as slow
	BORDER_TICK_WARN_THRESHOLD = time.Millisecond * 50
	// UNHANDLED_LOG_PER_SECOND limits how many dropped-message logs are written per second
	UNHANDLED_LOG_PER_SECOND = 10

	// For Operation Monitor
	// OPMON_DUMP_INTERVAL is the default interval to print opmon infos to output
	OPMON_DUMP_INTERVAL = 0
)

// Debug Options
const (
	// DEBUG_PACKETS prints inbound/outbound message debug logs
	DEBUG_PACKETS = false
	// DEBUG_BORDER prints world border transitions and task swaps
	DEBUG_BORDER = false
	// DEBUG_ITEMS prints every item remap
	DEBUG_ITEMS = false
)
