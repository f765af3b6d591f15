package jobs

import (
	"context"
	"time"

	"Potluck-Backend/pkg/realtime"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

// RolloverJob re-broadcasts every live subscription at the start of each
// day, so streamed views move events from upcoming to past without a write.
type RolloverJob struct {
	store realtime.Store
	cron  *cron.Cron
}

func NewRolloverJob(store realtime.Store, spec string, loc *time.Location) (*RolloverJob, error) {
	j := &RolloverJob{
		store: store,
		cron:  cron.New(cron.WithLocation(loc)),
	}
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *RolloverJob) Start() {
	log.Info("rollover job started")
	j.cron.Start()
}

// Stop waits for a running broadcast to finish.
func (j *RolloverJob) Stop() {
	<-j.cron.Stop().Done()
	log.Info("rollover job stopped")
}

func (j *RolloverJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := j.store.Broadcast(ctx); err != nil {
		log.Errorw("rollover broadcast failed", "error", err)
		return
	}
	log.Debug("rollover broadcast completed")
}
