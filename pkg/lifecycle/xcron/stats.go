package xcron

import (
	"maps"
	"sync"
	"time"
)

// Stats 调度器的执行统计快照。
type Stats struct {
	Runs     int64
	Failures int64 // 含 panic 与超时

	// LastRun 最后一次执行结束的时间，未执行过为零值。
	LastRun      time.Time
	LastDuration time.Duration

	// LastError 最后一次执行的错误，成功执行会将其清空。
	LastError error

	// Jobs 按任务名汇总，匿名任务只计入总数。
	Jobs map[string]JobStats
}

// Successes 成功次数。
func (s Stats) Successes() int64 {
	return s.Runs - s.Failures
}

// JobStats 单个命名任务的统计。
type JobStats struct {
	Runs      int64
	Failures  int64
	LastError error
}

// recorder 累积统计，wrapper 并发写入，Stats() 读取快照。
type recorder struct {
	mu sync.Mutex
	s  Stats
}

func (r *recorder) record(name string, end time.Time, d time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.s.Runs++
	if err != nil {
		r.s.Failures++
	}
	r.s.LastRun = end
	r.s.LastDuration = d
	r.s.LastError = err

	if name == "" {
		return
	}
	if r.s.Jobs == nil {
		r.s.Jobs = make(map[string]JobStats)
	}
	js := r.s.Jobs[name]
	js.Runs++
	if err != nil {
		js.Failures++
	}
	js.LastError = err
	r.s.Jobs[name] = js
}

func (r *recorder) snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.s
	out.Jobs = maps.Clone(r.s.Jobs)
	return out
}
