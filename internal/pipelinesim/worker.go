package pipelinesim

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

type task func(ctx context.Context) error

// pool is a small fixed-size worker pool running generator simulations.
type pool struct {
	wg   sync.WaitGroup
	jobs chan task
	quit chan struct{}
	n    int
	log  zerolog.Logger
}

func newPool(workers int, logger zerolog.Logger) *pool {
	if workers <= 0 {
		workers = 4
	}
	return &pool{
		jobs: make(chan task, workers*4),
		quit: make(chan struct{}),
		n:    workers,
		log:  logger,
	}
}

func (p *pool) start(ctx context.Context) {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-p.quit:
					return
				case t := <-p.jobs:
					if t == nil {
						continue
					}
					if err := t(ctx); err != nil {
						p.log.Warn().Int("worker", id).Err(err).Msg("task error")
					}
				}
			}
		}(i)
	}
}

func (p *pool) stop() {
	close(p.quit)
	p.wg.Wait()
}

func (p *pool) submit(t task) error {
	select {
	case p.jobs <- t:
		return nil
	default:
		return errors.New("pipelinesim: worker queue full")
	}
}
