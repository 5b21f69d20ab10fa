package aiengine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient points the client at an httptest server speaking the chat
// completions wire format.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

// completionReply wraps assistant message content in a minimal chat
// completions response body.
func completionReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "cmpl-test",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
}

func TestAnalyze_ParsesStructuredResult(t *testing.T) {
	want := Analysis{
		Summary:  "S",
		RedFlags: []string{"R1"},
		Clauses:  []Clause{{Title: "C1", Content: "..."}},
	}
	content, _ := json.Marshal(want)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		completionReply(w, string(content))
	})

	got, err := c.Analyze(context.Background(), "Agreement between A and B...")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if got.Summary != want.Summary {
		t.Fatalf("summary: got %q want %q", got.Summary, want.Summary)
	}
	if len(got.RedFlags) != 1 || got.RedFlags[0] != "R1" {
		t.Fatalf("red flags: %#v", got.RedFlags)
	}
	if len(got.Clauses) != 1 || got.Clauses[0] != want.Clauses[0] {
		t.Fatalf("clauses: %#v", got.Clauses)
	}
}

func TestAnalyze_FencedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		completionReply(w, "```json\n{\"summary\":\"S\",\"red_flags\":[],\"clauses\":[]}\n```")
	})
	got, err := c.Analyze(context.Background(), "text")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if got.Summary != "S" {
		t.Fatalf("summary: %q", got.Summary)
	}
}

func TestAnalyze_MissingFieldIsHardFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		completionReply(w, `{"summary":"S"}`)
	})
	_, err := c.Analyze(context.Background(), "text")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse for missing fields, got %v", err)
	}
}

func TestAnalyze_NonJSONContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		completionReply(w, "I could not analyze this document.")
	})
	_, err := c.Analyze(context.Background(), "text")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse for prose reply, got %v", err)
	}
}

func TestAnalyze_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})
	_, err := c.Analyze(context.Background(), "text")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on 500, got %v", err)
	}
}

func TestAnalyze_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// stall until the client gives up
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	c := New(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "test-model",
		Timeout: 50 * time.Millisecond,
	})
	_, err := c.Analyze(context.Background(), "text")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
}

func TestAnswer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		completionReply(w, "The notice period is 30 days.")
	})
	answer, err := c.Answer(context.Background(), "contract text", "What is the notice period?")
	if err != nil {
		t.Fatalf("Answer error: %v", err)
	}
	if answer != "The notice period is 30 days." {
		t.Fatalf("unexpected answer: %q", answer)
	}
}

func TestTrimCodeFence(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := trimCodeFence(tc.in); got != tc.want {
			t.Fatalf("trimCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
