package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/milk9111/msgfall/api"
)

type fakeClient struct {
	mu      sync.Mutex
	remote  []api.Message
	listErr error
	postErr error
	lists   int
	posts   []string
}

func (c *fakeClient) List(ctx context.Context) ([]api.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	if c.listErr != nil {
		return nil, c.listErr
	}
	return append([]api.Message(nil), c.remote...), nil
}

func (c *fakeClient) Post(ctx context.Context, text string) (api.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, text)
	if c.postErr != nil {
		return api.Message{}, c.postErr
	}
	msg := api.Message{ID: "id-" + text, Text: text}
	c.remote = append(c.remote, msg)
	return msg, nil
}

func (c *fakeClient) listCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lists
}

// countingIngester mirrors the Seen-set rule of ingest.Service.
type countingIngester struct {
	seen    map[string]bool
	created int
}

func (g *countingIngester) IngestAll(msgs []api.Message) int {
	if g.seen == nil {
		g.seen = make(map[string]bool)
	}
	n := 0
	for _, m := range msgs {
		if m.ID != "" && g.seen[m.ID] {
			continue
		}
		if m.ID != "" {
			g.seen[m.ID] = true
		}
		n++
	}
	g.created += n
	return n
}

func TestSubmitBlankMakesNoCall(t *testing.T) {
	client := &fakeClient{}
	f := New(client, time.Second)

	for _, text := range []string{"", "  ", "\n\t"} {
		if f.Submit(context.Background(), text) {
			t.Fatalf("Submit(%q) accepted blank text", text)
		}
	}
	f.Wait()
	if len(client.posts) != 0 {
		t.Fatalf("expected no posts, got %v", client.posts)
	}
}

func TestSubmitDeliversTrimmedEcho(t *testing.T) {
	client := &fakeClient{}
	f := New(client, time.Second)

	if !f.Submit(context.Background(), "  hello  ") {
		t.Fatalf("Submit rejected non-blank text")
	}
	f.Wait()

	results := f.Drain()
	if len(results) != 1 || results[0].Kind != KindSubmit {
		t.Fatalf("unexpected results %+v", results)
	}
	if results[0].Message.Text != "hello" || client.posts[0] != "hello" {
		t.Fatalf("expected trimmed text, got %+v posted %q", results[0].Message, client.posts[0])
	}
}

func TestSubmitFailureIsDropped(t *testing.T) {
	client := &fakeClient{postErr: errors.New("offline")}
	f := New(client, time.Second)

	if !f.Submit(context.Background(), "lost") {
		t.Fatalf("Submit should accept the text even if the post fails later")
	}
	f.Wait()
	if got := f.Drain(); len(got) != 0 {
		t.Fatalf("failed post produced results %+v", got)
	}
}

func TestPollOnce(t *testing.T) {
	cases := []struct {
		name    string
		client  *fakeClient
		wantLen int
	}{
		{"delivers_full_list", &fakeClient{remote: []api.Message{{ID: "a"}, {ID: "b"}}}, 1},
		{"error_dropped", &fakeClient{listErr: errors.New("boom")}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := New(c.client, time.Second)
			f.PollOnce(context.Background())
			got := f.Drain()
			if len(got) != c.wantLen {
				t.Fatalf("got %d results, want %d", len(got), c.wantLen)
			}
			if c.wantLen == 1 && len(got[0].Messages) != 2 {
				t.Fatalf("expected both messages, got %+v", got[0].Messages)
			}
		})
	}
}

func TestRepeatPollsIngestOnce(t *testing.T) {
	client := &fakeClient{remote: []api.Message{{ID: "a", Text: "hi"}, {ID: "b", Text: "yo"}}}
	f := New(client, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	f.Start(ctx)
	f.Start(ctx)

	deadline := time.Now().Add(3 * time.Second)
	for client.listCount() < 3 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("only %d polls before the deadline", client.listCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	f.Wait()

	ing := &countingIngester{}
	f.Pump(ing, nil)
	if ing.created != 2 {
		t.Fatalf("created %d blocks across repeated polls, want 2", ing.created)
	}
}

func TestPumpReportsSubmissions(t *testing.T) {
	client := &fakeClient{}
	f := New(client, time.Second)
	ctx := context.Background()

	f.Submit(ctx, "mine")
	f.Wait()
	f.PollOnce(ctx)

	var submitted []api.Message
	ing := &countingIngester{}
	created := f.Pump(ing, func(m api.Message) { submitted = append(submitted, m) })

	if created != 1 {
		t.Fatalf("own message spawned %d blocks, want 1", created)
	}
	if len(submitted) != 1 || submitted[0].ID != "id-mine" {
		t.Fatalf("unexpected submissions %+v", submitted)
	}
}

func TestSetIntervalKeepsLatest(t *testing.T) {
	f := New(&fakeClient{}, time.Second)
	f.SetInterval(2 * time.Second)
	f.SetInterval(3 * time.Second)
	f.SetInterval(0)

	select {
	case d := <-f.interval:
		if d != 3*time.Second {
			t.Fatalf("pending interval = %v, want 3s", d)
		}
	default:
		t.Fatalf("no pending interval")
	}
}
