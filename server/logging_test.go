package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/milk9111/msgfall/msgstore"
)

func TestLoggerRecordsMessageActivity(t *testing.T) {
	cases := []struct {
		name      string
		method    string
		body      string
		wantLevel string
		wantID    bool
		wantCount float64 // -1 = field absent
	}{
		{"post_logs_id", http.MethodPost, `{"message":"hi"}`, "info", true, -1},
		{"get_logs_count", http.MethodGet, "", "info", false, 1},
		{"bad_request_warns", http.MethodPost, `{"message":""}`, "warn", false, -1},
		{"method_not_allowed_warns", http.MethodPut, `{}`, "warn", false, -1},
		{"bad_json_errors", http.MethodPost, `{`, "error", false, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := msgstore.NewMemoryStore()
			seed, err := store.Create(context.Background(), "seed")
			if err != nil {
				t.Fatalf("seed: %v", err)
			}

			var buf bytes.Buffer
			router := NewRouter(zerolog.New(&buf), store, "")
			req := httptest.NewRequest(c.method, messagesPath, strings.NewReader(c.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			line := accessLine(t, buf.String())
			if line["level"] != c.wantLevel {
				t.Fatalf("level = %v, want %s (%v)", line["level"], c.wantLevel, line)
			}
			if line["status"] != float64(rec.Code) {
				t.Fatalf("status = %v, want %d", line["status"], rec.Code)
			}
			id, hasID := line["message_id"]
			if hasID != c.wantID {
				t.Fatalf("message_id present = %v, want %v", hasID, c.wantID)
			}
			if c.wantID && (id == "" || id == seed.ID) {
				t.Fatalf("unexpected message_id %v", id)
			}
			count, hasCount := line["messages"]
			if c.wantCount < 0 && hasCount {
				t.Fatalf("unexpected messages field %v", count)
			}
			if c.wantCount >= 0 && count != c.wantCount {
				t.Fatalf("messages = %v, want %v", count, c.wantCount)
			}
		})
	}
}

// accessLine returns the "request completed" entry from a zerolog buffer.
func accessLine(t *testing.T, out string) map[string]any {
	t.Helper()
	for _, raw := range strings.Split(strings.TrimSpace(out), "\n") {
		var line map[string]any
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			t.Fatalf("decode log line %q: %v", raw, err)
		}
		if line["message"] == "request completed" {
			return line
		}
	}
	t.Fatalf("no access line in %q", out)
	return nil
}
