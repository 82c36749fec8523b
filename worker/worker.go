package worker

import (
	"github.com/robfig/cron/v3"
)

// IJob job的接口
type IJob interface {
	Start() error
	Run()
	Stop() error
}

// OnWork one round of a job
type OnWork func() error

// BaseJob cron driven job, a round is skipped while the previous one still runs
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	_ = job.OnWork()

	job.IsRunning = false
}
