package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/dorm-duty-bot/internal/conversation"
)

func TestInlineKeyboardChunksRowsOfThree(t *testing.T) {
	t.Parallel()

	options := []conversation.Option{
		{Label: "1", Value: "1"}, {Label: "2", Value: "2"}, {Label: "3", Value: "3"},
		{Label: "4", Value: "4"}, {Label: "5", Value: "5"}, {Label: "6", Value: "6"},
		{Label: "Generate", Value: "generate_schedule"},
	}

	markup := inlineKeyboard(options)
	rows, ok := markup["inline_keyboard"].([][]map[string]string)
	if !ok {
		t.Fatalf("unexpected markup shape: %#v", markup)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(rows[0]) != 3 || len(rows[1]) != 3 || len(rows[2]) != 1 {
		t.Fatalf("unexpected row sizes: %d/%d/%d", len(rows[0]), len(rows[1]), len(rows[2]))
	}
	last := rows[2][0]
	if last["text"] != "Generate" || last["callback_data"] != "generate_schedule" {
		t.Fatalf("unexpected button %v", last)
	}
}

func TestToEvent(t *testing.T) {
	t.Parallel()

	t.Run("text message", func(t *testing.T) {
		t.Parallel()

		var upd update
		raw := `{"update_id":7,"message":{"chat":{"id":42},"text":"/start"}}`
		if err := json.Unmarshal([]byte(raw), &upd); err != nil {
			t.Fatalf("failed to decode update: %v", err)
		}

		event, callbackID, ok := toEvent(upd)
		if !ok {
			t.Fatal("expected an event")
		}
		if callbackID != "" {
			t.Fatalf("text messages carry no callback id, got %q", callbackID)
		}
		if event.ChatID != "42" || event.Kind != conversation.KindText || event.Payload != "/start" {
			t.Fatalf("unexpected event %+v", event)
		}
	})

	t.Run("button press", func(t *testing.T) {
		t.Parallel()

		var upd update
		raw := `{"update_id":8,"callback_query":{"id":"cb-1","data":"generate_schedule","message":{"chat":{"id":42}}}}`
		if err := json.Unmarshal([]byte(raw), &upd); err != nil {
			t.Fatalf("failed to decode update: %v", err)
		}

		event, callbackID, ok := toEvent(upd)
		if !ok {
			t.Fatal("expected an event")
		}
		if callbackID != "cb-1" {
			t.Fatalf("unexpected callback id %q", callbackID)
		}
		if event.Kind != conversation.KindButton || event.Payload != "generate_schedule" {
			t.Fatalf("unexpected event %+v", event)
		}
	})

	t.Run("unsupported update", func(t *testing.T) {
		t.Parallel()

		if _, _, ok := toEvent(update{UpdateID: 9}); ok {
			t.Fatal("updates without message or callback must be skipped")
		}
	})
}

func TestSendMessagePostsToAPI(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	client := NewTelegramClient(TelegramConfig{Token: "test-token", BaseURL: server.URL}, nil)
	err := client.SendMessage(context.Background(), "42", "hello", []conversation.Option{{Label: "Go", Value: "go"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody["chat_id"] != "42" || gotBody["text"] != "hello" {
		t.Fatalf("unexpected body %v", gotBody)
	}
	if _, ok := gotBody["reply_markup"]; !ok {
		t.Fatal("expected an inline keyboard in the body")
	}
}

func TestSendMessageSurfacesAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client := NewTelegramClient(TelegramConfig{Token: "test-token", BaseURL: server.URL}, nil)
	err := client.SendMessage(context.Background(), "42", "hello", nil)
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected the API description in the error, got %v", err)
	}
}

func TestSendDocumentUploadsArtifact(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schedule_abc.tex")
	if err := os.WriteFile(path, []byte("\\documentclass{article}"), 0o644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}

	var gotChatID, gotCaption, gotFilename, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
			return
		}
		gotChatID = r.FormValue("chat_id")
		gotCaption = r.FormValue("caption")
		file, header, err := r.FormFile("document")
		if err != nil {
			t.Errorf("missing document part: %v", err)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		content := make([]byte, header.Size)
		if _, err := file.Read(content); err != nil {
			t.Errorf("failed to read document part: %v", err)
		}
		gotContent = string(content)
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	client := NewTelegramClient(TelegramConfig{Token: "test-token", BaseURL: server.URL}, nil)
	err := client.SendDocument(context.Background(), "42", conversation.DocumentDelivery{
		Path:     path,
		Filename: "schedule_abc.tex",
		Caption:  "your schedule",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotChatID != "42" || gotCaption != "your schedule" {
		t.Fatalf("unexpected form fields: chat_id=%q caption=%q", gotChatID, gotCaption)
	}
	if gotFilename != "schedule_abc.tex" {
		t.Fatalf("unexpected filename %q", gotFilename)
	}
	if gotContent != "\\documentclass{article}" {
		t.Fatalf("unexpected content %q", gotContent)
	}
}

func TestSendDocumentFailsOnMissingArtifact(t *testing.T) {
	t.Parallel()

	client := NewTelegramClient(TelegramConfig{Token: "test-token", BaseURL: "http://127.0.0.1:0"}, nil)
	err := client.SendDocument(context.Background(), "42", conversation.DocumentDelivery{
		Path: filepath.Join(t.TempDir(), "missing.tex"),
	})
	if err == nil {
		t.Fatal("expected an error for a missing artifact file")
	}
}
