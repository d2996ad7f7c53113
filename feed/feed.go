// Package feed polls the message store and submits local messages.
//
// Network calls run on their own goroutines. Their results are queued on a
// channel and applied by the game loop through Drain or Pump, so ingestion
// and the physics world are only ever touched from the Ebiten update
// goroutine and need no locking.
package feed

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milk9111/msgfall/api"
)

const (
	DefaultInterval = 5 * time.Second
	resultBuffer    = 64
)

// Kind tells poll results from submit results.
type Kind int

const (
	KindPoll Kind = iota
	KindSubmit
)

func (k Kind) String() string {
	switch k {
	case KindPoll:
		return "poll"
	case KindSubmit:
		return "submit"
	default:
		return "unknown"
	}
}

// Result is a successful network call waiting to be applied.
type Result struct {
	Kind Kind
	// Messages is the full remote list for KindPoll.
	Messages []api.Message
	// Message is the stored echo for KindSubmit.
	Message api.Message
}

// Client is the part of api.Client the feed needs.
type Client interface {
	List(ctx context.Context) ([]api.Message, error)
	Post(ctx context.Context, text string) (api.Message, error)
}

// Ingester receives messages on the game goroutine.
type Ingester interface {
	IngestAll(msgs []api.Message) int
}

// Feed drives polling and submission.
type Feed struct {
	client   Client
	results  chan Result
	interval chan time.Duration
	started  atomic.Bool
	wg       sync.WaitGroup

	period time.Duration
}

// New creates a feed that polls every interval once started.
func New(client Client, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Feed{
		client:   client,
		results:  make(chan Result, resultBuffer),
		interval: make(chan time.Duration, 1),
		period:   interval,
	}
}

// Start polls once immediately and then on every tick until ctx is done.
// Calling Start again is a no-op.
func (f *Feed) Start(ctx context.Context) {
	if !f.started.CompareAndSwap(false, true) {
		return
	}
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.PollOnce(ctx)

		ticker := time.NewTicker(f.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case d := <-f.interval:
				ticker.Reset(d)
				log.Printf("Feed: poll interval set to %s", d)
			case <-ticker.C:
				f.PollOnce(ctx)
			}
		}
	}()
}

// SetInterval changes the poll period of a started feed. Only the latest
// pending value is kept.
func (f *Feed) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	for {
		select {
		case f.interval <- d:
			return
		default:
		}
		select {
		case <-f.interval:
		default:
		}
	}
}

// PollOnce fetches the full remote list and queues it. Failures are logged
// and dropped.
func (f *Feed) PollOnce(ctx context.Context) {
	msgs, err := f.client.List(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Feed: error fetching messages: %v", err)
		}
		return
	}
	f.deliver(ctx, Result{Kind: KindPoll, Messages: msgs})
}

// Submit sends text to the store in the background. Blank text is rejected
// without a network call and Submit returns false. A failed post is logged
// and dropped; nothing is retried.
func (f *Feed) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		msg, err := f.client.Post(ctx, text)
		if err != nil {
			log.Printf("Feed: error posting message: %v", err)
			return
		}
		f.deliver(ctx, Result{Kind: KindSubmit, Message: msg})
	}()
	return true
}

// Drain returns every queued result without blocking.
func (f *Feed) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-f.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Pump drains queued results into ing and calls onSubmitted for every
// accepted submission after it has been ingested. It returns the number of
// blocks created. Call it from the game goroutine only.
func (f *Feed) Pump(ing Ingester, onSubmitted func(api.Message)) int {
	created := 0
	for _, r := range f.Drain() {
		switch r.Kind {
		case KindPoll:
			created += ing.IngestAll(r.Messages)
		case KindSubmit:
			created += ing.IngestAll([]api.Message{r.Message})
			if onSubmitted != nil {
				onSubmitted(r.Message)
			}
		}
	}
	return created
}

// Wait blocks until the poll loop and every in-flight submit have returned.
func (f *Feed) Wait() {
	f.wg.Wait()
}

func (f *Feed) deliver(ctx context.Context, r Result) {
	select {
	case f.results <- r:
	case <-ctx.Done():
	}
}
