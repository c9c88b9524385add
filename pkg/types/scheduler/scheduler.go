package scheduler

import "time"

type Scheduler interface {
	Start() error
	Stop()
	NextRun() time.Time
}
