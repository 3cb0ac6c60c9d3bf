package tracking

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/teslashibe/parallax-box/internal/log"
)

// Sampler runs capture and detection on its own goroutine so a slow
// detector never stalls the render loop. Only the newest sample is kept;
// older ones are overwritten before the render loop sees them.
type Sampler struct {
	perception *Perception
	interval   time.Duration
	out        chan Sample

	produced atomic.Uint64
	dropped  atomic.Uint64
}

// NewSampler creates a sampler that looks at a frame every interval.
// A zero interval samples as fast as capture allows.
func NewSampler(perception *Perception, interval time.Duration) *Sampler {
	return &Sampler{
		perception: perception,
		interval:   interval,
		out:        make(chan Sample, 1),
	}
}

// Run samples until ctx is cancelled
func (s *Sampler) Run(ctx context.Context) {
	log.Info("sampler started", "interval", s.interval)
	defer log.Info("sampler stopped", "produced", s.produced.Load(), "dropped", s.dropped.Load())

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return
		}

		s.publish(s.perception.Sample())
	}
}

// publish replaces any unread sample with sample
func (s *Sampler) publish(sample Sample) {
	s.produced.Add(1)
	for {
		select {
		case s.out <- sample:
			return
		default:
		}
		select {
		case <-s.out:
			s.dropped.Add(1)
		default:
		}
	}
}

// Latest returns the newest unread sample without blocking
func (s *Sampler) Latest() (Sample, bool) {
	select {
	case sample := <-s.out:
		return sample, true
	default:
		return Sample{}, false
	}
}

// Produced returns how many samples have been taken
func (s *Sampler) Produced() uint64 {
	return s.produced.Load()
}

// Dropped returns how many samples were overwritten unread
func (s *Sampler) Dropped() uint64 {
	return s.dropped.Load()
}
