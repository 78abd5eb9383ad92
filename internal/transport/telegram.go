package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/example/dorm-duty-bot/internal/conversation"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramClient talks to the Telegram Bot API over HTTP: long polling for
// updates, sendMessage with inline keyboards, and multipart sendDocument.
type TelegramClient struct {
	token       string
	baseURL     string
	httpClient  *http.Client
	pollTimeout time.Duration
	logger      *slog.Logger
}

// TelegramConfig configures the client.
type TelegramConfig struct {
	Token       string
	BaseURL     string
	PollTimeout time.Duration
	HTTPClient  *http.Client
}

// NewTelegramClient constructs a client from the given configuration.
func NewTelegramClient(cfg TelegramConfig, logger *slog.Logger) *TelegramClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIBase
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.PollTimeout + 15*time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TelegramClient{
		token:       cfg.Token,
		baseURL:     cfg.BaseURL,
		httpClient:  cfg.HTTPClient,
		pollTimeout: cfg.PollTimeout,
		logger:      logger,
	}
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
	CallbackQuery *struct {
		ID      string `json:"id"`
		Data    string `json:"data"`
		Message *struct {
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"callback_query"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// Poll long-polls getUpdates until the context is cancelled, invoking handle
// for each inbound event in update order. handle must return quickly; the
// dispatcher queues per chat, so a slow chat does not stall polling.
func (c *TelegramClient) Poll(ctx context.Context, handle func(ctx context.Context, event conversation.Event)) error {
	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := c.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("getUpdates failed", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			event, callbackID, ok := toEvent(upd)
			if !ok {
				continue
			}
			if callbackID != "" {
				c.answerCallback(ctx, callbackID)
			}
			handle(ctx, event)
		}
	}
}

func toEvent(upd update) (conversation.Event, string, bool) {
	switch {
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		return conversation.Event{
			ChatID:  strconv.FormatInt(upd.CallbackQuery.Message.Chat.ID, 10),
			Kind:    conversation.KindButton,
			Payload: upd.CallbackQuery.Data,
		}, upd.CallbackQuery.ID, true
	case upd.Message != nil && upd.Message.Text != "":
		return conversation.Event{
			ChatID:  strconv.FormatInt(upd.Message.Chat.ID, 10),
			Kind:    conversation.KindText,
			Payload: upd.Message.Text,
		}, "", true
	default:
		return conversation.Event{}, "", false
	}
}

func (c *TelegramClient) getUpdates(ctx context.Context, offset int64) ([]update, error) {
	body := map[string]any{
		"timeout":         int(c.pollTimeout.Seconds()),
		"offset":          offset,
		"allowed_updates": []string{"message", "callback_query"},
	}
	raw, err := c.call(ctx, "getUpdates", body)
	if err != nil {
		return nil, err
	}
	var updates []update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}

// SendMessage implements Gateway.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID string, text string, options []conversation.Option) error {
	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if len(options) > 0 {
		body["reply_markup"] = inlineKeyboard(options)
	}
	_, err := c.call(ctx, "sendMessage", body)
	return err
}

// inlineKeyboard lays options out in rows of three, the way the original bot
// arranged room number buttons.
func inlineKeyboard(options []conversation.Option) map[string]any {
	const perRow = 3
	rows := make([][]map[string]string, 0, (len(options)+perRow-1)/perRow)
	for start := 0; start < len(options); start += perRow {
		end := start + perRow
		if end > len(options) {
			end = len(options)
		}
		row := make([]map[string]string, 0, end-start)
		for _, option := range options[start:end] {
			row = append(row, map[string]string{
				"text":          option.Label,
				"callback_data": option.Value,
			})
		}
		rows = append(rows, row)
	}
	return map[string]any{"inline_keyboard": rows}
}

// SendDocument implements Gateway, uploading the artifact as a multipart form.
func (c *TelegramClient) SendDocument(ctx context.Context, chatID string, delivery conversation.DocumentDelivery) error {
	file, err := os.Open(delivery.Path)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("chat_id", chatID); err != nil {
		return err
	}
	if delivery.Caption != "" {
		if err := writer.WriteField("caption", delivery.Caption); err != nil {
			return err
		}
	}
	filename := delivery.Filename
	if filename == "" {
		filename = filepath.Base(delivery.Path)
	}
	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendDocument"), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendDocument request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeAPIResponse(resp.Body, nil)
}

func (c *TelegramClient) answerCallback(ctx context.Context, callbackID string) {
	if _, err := c.call(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": callbackID}); err != nil {
		c.logger.Warn("answerCallbackQuery failed", "error", err)
	}
}

func (c *TelegramClient) call(ctx context.Context, method string, body map[string]any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var result json.RawMessage
	if err := decodeAPIResponse(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return result, nil
}

func (c *TelegramClient) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

func decodeAPIResponse(body io.Reader, result *json.RawMessage) error {
	var api apiResponse
	if err := json.NewDecoder(body).Decode(&api); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	if !api.OK {
		return fmt.Errorf("API error: %s", api.Description)
	}
	if result != nil {
		*result = api.Result
	}
	return nil
}
