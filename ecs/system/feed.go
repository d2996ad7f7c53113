package system

import (
	"log"

	"github.com/milk9111/msgfall/api"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/feed"
)

// FeedSystem applies finished network calls to the world. Every submission
// the store accepted is announced with EventMessageSubmitted once its block
// exists.
type FeedSystem struct {
	feed     *feed.Feed
	ingester feed.Ingester
}

func NewFeedSystem(f *feed.Feed, ingester feed.Ingester) *FeedSystem {
	return &FeedSystem{feed: f, ingester: ingester}
}

func (fs *FeedSystem) Update(w *ecs.World) {
	if fs == nil || fs.feed == nil || fs.ingester == nil || w == nil {
		return
	}

	created := fs.feed.Pump(fs.ingester, func(msg api.Message) {
		w.Events().Push(ecs.Event{Type: ecs.EventMessageSubmitted, Data: msg})
	})
	if created > 0 {
		log.Printf("Feed: spawned %d new blocks", created)
	}
}
