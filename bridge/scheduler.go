package bridge

import (
	"time"

	"github.com/go-co-op/gocron/v2"
)

// gocron.Scheduler wrapper so jobs can be added with one call.
type Scheduler struct {
	gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		Scheduler: scheduler,
	}, nil
}

// AddDurationJob runs jobFunc every interval for as long as the process
// lives.
func (s *Scheduler) AddDurationJob(interval time.Duration, jobFunc func()) error {
	_, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(jobFunc),
	)
	return err
}
