package bot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linkhoard/linkhoard/app/database"
)

type sentMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

// newRecordingClient points a Client at a fake Telegram API and records
// every sendMessage call.
func newRecordingClient(t *testing.T) (*Client, *[]sentMessage) {
	t.Helper()

	var sent []sentMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/bot") {
			t.Errorf("Unexpected path: %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			sent = append(sent, sentMessage{
				ChatID:    r.PostForm.Get("chat_id"),
				Text:      r.PostForm.Get("text"),
				ParseMode: r.PostForm.Get("parse_mode"),
			})
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient("1234567890:TESTTOKEN")
	client.apiBase = server.URL

	return client, &sent
}

type fakeProcessor struct {
	item  *database.Item
	err   error
	calls int
}

func (f *fakeProcessor) Run(ctx context.Context, rawURL string) (*database.Item, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func updateWith(text string) Update {
	return Update{
		UpdateID: 1,
		Message:  &Message{Chat: Chat{ID: 42}, Text: text},
	}
}

func TestHandleUpdate_Start(t *testing.T) {
	client, sent := newRecordingClient(t)
	handler := NewHandler(client, &fakeProcessor{}, "http://localhost:8080")

	handler.HandleUpdate(context.Background(), updateWith("/start"))

	if len(*sent) != 1 {
		t.Fatalf("Sent %d messages, expected 1", len(*sent))
	}
	if !strings.Contains((*sent)[0].Text, "Welcome") {
		t.Errorf("Reply = %q, expected a welcome message", (*sent)[0].Text)
	}
	if (*sent)[0].ChatID != "42" {
		t.Errorf("ChatID = %q, expected 42", (*sent)[0].ChatID)
	}
	if (*sent)[0].ParseMode != "Markdown" {
		t.Errorf("ParseMode = %q, expected Markdown", (*sent)[0].ParseMode)
	}
}

func TestHandleUpdate_InvalidURL(t *testing.T) {
	client, sent := newRecordingClient(t)
	processor := &fakeProcessor{}
	handler := NewHandler(client, processor, "http://localhost:8080")

	handler.HandleUpdate(context.Background(), updateWith("hello bot"))

	if processor.calls != 0 {
		t.Errorf("Processor called %d times for non-URL text, expected 0", processor.calls)
	}
	if len(*sent) != 1 || !strings.Contains((*sent)[0].Text, "valid URL") {
		t.Errorf("Sent = %+v, expected a prompt for a valid URL", *sent)
	}
}

func TestHandleUpdate_SavesURL(t *testing.T) {
	client, sent := newRecordingClient(t)
	processor := &fakeProcessor{item: &database.Item{
		Title:    "Intro to Foo",
		Category: database.CategoryDev,
		Tags:     []string{"foo", "basics"},
		Summary:  "A primer.",
	}}
	handler := NewHandler(client, processor, "http://localhost:8080")

	handler.HandleUpdate(context.Background(), updateWith("https://www.youtube.com/watch?v=abc123XYZ9"))

	if processor.calls != 1 {
		t.Fatalf("Processor called %d times, expected 1", processor.calls)
	}
	// Acknowledgement first, then the saved confirmation.
	if len(*sent) != 2 {
		t.Fatalf("Sent %d messages, expected 2", len(*sent))
	}
	if !strings.Contains((*sent)[0].Text, "Processing") {
		t.Errorf("First reply = %q, expected the acknowledgement", (*sent)[0].Text)
	}
	confirmation := (*sent)[1].Text
	for _, want := range []string{"Saved!", "Intro to Foo", "dev", "foo, basics", "A primer."} {
		if !strings.Contains(confirmation, want) {
			t.Errorf("Confirmation %q missing %q", confirmation, want)
		}
	}
}

func TestHandleUpdate_ProcessingFailure(t *testing.T) {
	client, sent := newRecordingClient(t)
	processor := &fakeProcessor{err: errors.New("upstream unavailable")}
	handler := NewHandler(client, processor, "http://localhost:8080")

	handler.HandleUpdate(context.Background(), updateWith("https://example.com/broken"))

	if len(*sent) != 2 {
		t.Fatalf("Sent %d messages, expected 2", len(*sent))
	}
	if !strings.Contains((*sent)[1].Text, "upstream unavailable") {
		t.Errorf("Error reply = %q, expected the failure reason", (*sent)[1].Text)
	}
}

func TestHandleUpdate_IgnoresEmptyUpdates(t *testing.T) {
	client, sent := newRecordingClient(t)
	handler := NewHandler(client, &fakeProcessor{}, "http://localhost:8080")

	handler.HandleUpdate(context.Background(), Update{UpdateID: 1})
	handler.HandleUpdate(context.Background(), updateWith(""))

	if len(*sent) != 0 {
		t.Errorf("Sent %d messages for empty updates, expected 0", len(*sent))
	}
}

func TestWebhookSecret(t *testing.T) {
	client := NewClient("1234567890:TESTTOKEN")
	if client.WebhookSecret() != "1234567890" {
		t.Errorf("WebhookSecret = %q, expected the first 10 token characters", client.WebhookSecret())
	}

	short := NewClient("abc")
	if short.WebhookSecret() != "abc" {
		t.Errorf("WebhookSecret = %q for a short token", short.WebhookSecret())
	}
}
