package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/example/dorm-duty-bot/internal/duty"
	"github.com/example/dorm-duty-bot/internal/holiday"
	"github.com/example/dorm-duty-bot/internal/logging"
	"github.com/example/dorm-duty-bot/internal/persistence"
	"github.com/example/dorm-duty-bot/internal/render"
	"github.com/example/dorm-duty-bot/internal/roster"
)

// StartDateMode selects the default start date applied at generation time.
type StartDateMode string

const (
	// StartDateToday starts the schedule on the current day.
	StartDateToday StartDateMode = "today"
	// StartDateFirstOfMonth starts the schedule on the first of the current month.
	StartDateFirstOfMonth StartDateMode = "first_of_month"
)

// Options captures the behavioral configuration of the engine. The room
// bound check and the start date default are deliberate configuration
// choices rather than hard-coded behavior.
type Options struct {
	Catalog           Catalog
	DefaultHorizon    int
	HolidayPolicy     bool
	StartDateMode     StartDateMode
	EnforceRoomBounds bool
	ShowResidents     bool
	IndexPrefix       string
	CorpusChoices     []string
	FloorChoices      []string
}

// DefaultCorpusChoices is the building grid offered on the corpus prompt.
func DefaultCorpusChoices() []string {
	return []string{"1A", "1B", "1C", "1D", "2A", "2B", "2C", "2D", "3A", "3B", "3C", "3D", "4A", "4B", "4C", "4D"}
}

// DefaultFloorChoices is the floor set offered on the floor prompt.
func DefaultFloorChoices() []string {
	return []string{"0", "1", "2"}
}

// Engine drives the collection dialogue for one chat at a time. All state
// lives in the session store; the engine itself is stateless and safe for
// concurrent use across chats as long as events for a single chat are
// serialized by the caller.
type Engine struct {
	store    persistence.SessionStore
	renderer render.Renderer
	holidays holiday.Oracle
	opts     Options
	now      func() time.Time
	logger   *slog.Logger
}

// NewEngine wires the engine's collaborators.
func NewEngine(store persistence.SessionStore, renderer render.Renderer, holidays holiday.Oracle, opts Options, now func() time.Time, logger *slog.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DefaultHorizon <= 0 {
		opts.DefaultHorizon = 30
	}
	if opts.StartDateMode == "" {
		opts.StartDateMode = StartDateToday
	}
	if len(opts.CorpusChoices) == 0 {
		opts.CorpusChoices = DefaultCorpusChoices()
	}
	if len(opts.FloorChoices) == 0 {
		opts.FloorChoices = DefaultFloorChoices()
	}
	return &Engine{store: store, renderer: renderer, holidays: holidays, opts: opts, now: now, logger: logger}
}

// Handle processes one inbound event to completion and returns the outbound
// responses. Every failure is converted into a user-visible message; the
// returned error exists for logging only and is always accompanied by a
// response.
func (e *Engine) Handle(ctx context.Context, event Event) ([]Response, error) {
	payload := strings.TrimSpace(event.Payload)
	msgs := e.opts.Catalog

	if payload == commandStart {
		return e.startSession(ctx, event.ChatID)
	}

	session, err := e.store.Get(ctx, event.ChatID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return []Response{{Text: msgs.RestartRequired}}, nil
		}
		e.loggerFor(ctx, event.ChatID, "load_session").Error("failed to load session", "error", err)
		return []Response{{Text: msgs.InternalError}}, err
	}

	if payload == commandCancel {
		return e.cancelSession(ctx, session)
	}

	switch State(session.State) {
	case StateCancelled:
		return []Response{{Text: msgs.CancelledNoEvents}}, nil
	case StateAwaitingCorpus:
		return e.collectCorpus(ctx, session, payload)
	case StateAwaitingFloor:
		return e.collectFloor(ctx, session, payload)
	case StateAwaitingRoomCount:
		return e.collectRoomCount(ctx, session, payload)
	case StateAwaitingRequesterRoom:
		return e.collectRequesterRoom(ctx, session, payload)
	case StateAwaitingRequesterName:
		return e.collectRequesterName(ctx, session, payload)
	case StateAwaitingHorizon:
		return e.collectHorizon(ctx, session, payload)
	case StateAwaitingConfirmation:
		return e.handleConfirmation(ctx, session, payload)
	case StateAwaitingDelivery:
		return e.handleDelivery(ctx, session, payload)
	default:
		e.loggerFor(ctx, event.ChatID, "dispatch").Error("session in unknown state", "state", session.State)
		return []Response{{Text: msgs.RestartRequired}}, nil
	}
}

// startSession resets or creates the session and emits the first prompt.
func (e *Engine) startSession(ctx context.Context, chatID string) ([]Response, error) {
	msgs := e.opts.Catalog
	session := persistence.Session{
		ChatID: chatID,
		State:  string(StateAwaitingCorpus),
	}
	if existing, err := e.store.Get(ctx, chatID); err == nil {
		session.CreatedAt = existing.CreatedAt
	}
	if err := e.store.Put(ctx, session); err != nil {
		e.loggerFor(ctx, chatID, "start").Error("failed to reset session", "error", err)
		return []Response{{Text: msgs.InternalError}}, err
	}
	return []Response{
		{Text: msgs.Welcome},
		{Text: msgs.PromptCorpus, Options: plainOptions(e.opts.CorpusChoices)},
	}, nil
}

// cancelSession clears all collected fields and parks the session in the
// terminal state.
func (e *Engine) cancelSession(ctx context.Context, session persistence.Session) ([]Response, error) {
	msgs := e.opts.Catalog
	cleared := persistence.Session{
		ChatID:    session.ChatID,
		State:     string(StateCancelled),
		CreatedAt: session.CreatedAt,
	}
	if err := e.store.Put(ctx, cleared); err != nil {
		e.loggerFor(ctx, session.ChatID, "cancel").Error("failed to cancel session", "error", err)
		return []Response{{Text: msgs.InternalError}}, err
	}
	return []Response{{Text: msgs.Cancelled}}, nil
}

func (e *Engine) collectCorpus(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	if payload == "" {
		return []Response{{Text: msgs.PromptCorpus, Options: plainOptions(e.opts.CorpusChoices)}}, nil
	}
	session.Corpus = payload
	session.State = string(StateAwaitingFloor)
	if err := e.store.Put(ctx, session); err != nil {
		return e.storeFailure(ctx, session.ChatID, "collect_corpus", err)
	}
	return []Response{
		{Text: fmt.Sprintf(msgs.CorpusChosen, session.Corpus)},
		{Text: msgs.PromptFloor, Options: plainOptions(e.opts.FloorChoices)},
	}, nil
}

func (e *Engine) collectFloor(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	if payload == "" {
		return []Response{{Text: msgs.PromptFloor, Options: plainOptions(e.opts.FloorChoices)}}, nil
	}
	session.Floor = payload
	session.State = string(StateAwaitingRoomCount)
	if err := e.store.Put(ctx, session); err != nil {
		return e.storeFailure(ctx, session.ChatID, "collect_floor", err)
	}
	return []Response{
		{Text: fmt.Sprintf(msgs.FloorChosen, session.Floor)},
		{Text: msgs.PromptRoomCount},
	}, nil
}

func (e *Engine) collectRoomCount(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	count, vErr := parsePositiveInt("num_rooms", payload)
	if vErr != nil {
		return []Response{{Text: msgs.InvalidRoomCount}, {Text: msgs.PromptRoomCount}}, nil
	}
	session.NumRooms = count
	session.State = string(StateAwaitingRequesterRoom)
	if err := e.store.Put(ctx, session); err != nil {
		return e.storeFailure(ctx, session.ChatID, "collect_room_count", err)
	}
	return []Response{{Text: msgs.PromptRequesterRoom, Options: roomOptions(count)}}, nil
}

func (e *Engine) collectRequesterRoom(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	index, vErr := parsePositiveInt("requester_room", payload)
	if vErr != nil {
		return []Response{{Text: msgs.InvalidNumber}, {Text: msgs.PromptRequesterRoom, Options: roomOptions(session.NumRooms)}}, nil
	}
	if e.opts.EnforceRoomBounds && (index < 1 || index > session.NumRooms) {
		return []Response{{Text: msgs.OutOfRange(session.NumRooms)}, {Text: msgs.PromptRequesterRoom, Options: roomOptions(session.NumRooms)}}, nil
	}
	session.RequesterRoom = index
	session.State = string(StateAwaitingRequesterName)
	if err := e.store.Put(ctx, session); err != nil {
		return e.storeFailure(ctx, session.ChatID, "collect_requester_room", err)
	}
	return []Response{
		{Text: fmt.Sprintf(msgs.RoomChosen, index)},
		{Text: msgs.PromptName},
	}, nil
}

func (e *Engine) collectRequesterName(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	if payload == "" {
		return []Response{{Text: msgs.NameRequired}, {Text: msgs.PromptName}}, nil
	}
	session.RequesterName = payload
	session.State = string(StateAwaitingHorizon)
	if err := e.store.Put(ctx, session); err != nil {
		return e.storeFailure(ctx, session.ChatID, "collect_requester_name", err)
	}
	return []Response{{Text: msgs.PromptHorizon}}, nil
}

func (e *Engine) collectHorizon(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	horizon := e.opts.DefaultHorizon
	if payload != "" {
		parsed, vErr := parsePositiveInt("horizon_days", payload)
		if vErr != nil {
			return []Response{{Text: msgs.InvalidNumber}, {Text: msgs.PromptHorizon}}, nil
		}
		horizon = parsed
	}
	session.HorizonDays = horizon
	session.State = string(StateAwaitingConfirmation)
	if err := e.store.Put(ctx, session); err != nil {
		return e.storeFailure(ctx, session.ChatID, "collect_horizon", err)
	}
	return e.confirmationPrompt(session), nil
}

func (e *Engine) confirmationPrompt(session persistence.Session) []Response {
	msgs := e.opts.Catalog
	summary := msgs.Summarize(session.Corpus, session.Floor, session.NumRooms, session.RequesterRoom, session.RequesterName, session.HorizonDays)
	return []Response{
		{Text: summary},
		{Text: msgs.ConfirmPrompt, Options: []Option{{Label: msgs.ButtonGenerate, Value: ActionGenerate}}},
	}
}

func (e *Engine) handleConfirmation(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	switch payload {
	case ActionGenerate, "confirm":
		return e.generate(ctx, session)
	case ActionSend:
		// Delivery requested before anything was generated.
		return []Response{{Text: msgs.NoArtifact}}, nil
	default:
		return e.confirmationPrompt(session), nil
	}
}

func (e *Engine) handleDelivery(ctx context.Context, session persistence.Session, payload string) ([]Response, error) {
	msgs := e.opts.Catalog
	switch payload {
	case ActionSend, "/save":
		if !session.HasArtifact() {
			// The delivery state always follows a successful generation, so a
			// missing artifact here means the record was tampered with.
			return []Response{{Text: msgs.NoArtifact}}, ErrNoArtifact
		}
		return []Response{{
			Document: &DocumentDelivery{
				Path:     session.ArtifactPath,
				Filename: session.ArtifactName,
				Caption:  msgs.DeliveryCaption,
			},
		}}, nil
	case ActionGenerate, "confirm":
		// Regeneration reuses the collected fields and overwrites the artifact.
		return e.generate(ctx, session)
	default:
		return []Response{{
			Text:    msgs.Generated,
			Options: []Option{{Label: msgs.ButtonSend, Value: ActionSend}},
		}}, nil
	}
}

// generate runs the assignment and rendering pipeline. On failure the
// session is left untouched so the requester can simply try again.
func (e *Engine) generate(ctx context.Context, session persistence.Session) ([]Response, error) {
	msgs := e.opts.Catalog
	logger := e.loggerFor(ctx, session.ChatID, "generate")

	floorRoster, err := roster.New(session.Corpus, session.Floor, session.NumRooms)
	if err != nil {
		logger.Error("invalid roster in session", "error", err, "error_kind", errorKind(err), "num_rooms", session.NumRooms)
		return []Response{{Text: msgs.RequestInvalid}}, nil
	}
	floorRoster.IndexPrefix = e.opts.IndexPrefix

	var oracle holiday.Oracle
	if e.opts.HolidayPolicy {
		oracle = e.holidays
	}

	rows, err := duty.Assign(duty.Params{
		Roster:        floorRoster,
		RequesterRoom: session.RequesterRoom,
		RequesterName: session.RequesterName,
		StartDate:     e.startDate(),
		HorizonDays:   session.HorizonDays,
		Holidays:      oracle,
	})
	if err != nil {
		logger.Error("assignment failed", "error", err, "error_kind", errorKind(err))
		return []Response{{Text: msgs.RequestInvalid}}, nil
	}

	artifact, err := e.renderer.Render(ctx, render.Document{
		Title:         msgs.DocumentTitle,
		Caption:       fmt.Sprintf("%s.%s", session.Corpus, session.Floor),
		ShowResidents: e.opts.ShowResidents,
		Headers: render.Headers{
			Room:      msgs.HeaderRoom,
			Date:      msgs.HeaderDate,
			Checkin:   msgs.HeaderCheckin,
			Residents: msgs.HeaderResidents,
		},
		Rows: rows,
	})
	if err != nil {
		logger.Error("rendering failed", "error", err, "error_kind", errorKind(err))
		return []Response{{Text: msgs.RenderFailed}}, nil
	}

	generatedAt := artifact.GeneratedAt
	session.ArtifactID = artifact.ID
	session.ArtifactPath = artifact.Path
	session.ArtifactName = artifact.Filename
	session.GeneratedAt = &generatedAt
	session.State = string(StateAwaitingDelivery)
	if err := e.store.Put(ctx, session); err != nil {
		return e.storeFailure(ctx, session.ChatID, "generate", err)
	}

	logger.Info("schedule generated", "artifact", artifact.Filename, "rows", len(rows))
	return []Response{{
		Text:    msgs.Generated,
		Options: []Option{{Label: msgs.ButtonSend, Value: ActionSend}},
	}}, nil
}

// startDate resolves the configured start date default against the clock.
func (e *Engine) startDate() time.Time {
	now := e.now()
	day := now.Day()
	if e.opts.StartDateMode == StartDateFirstOfMonth {
		day = 1
	}
	return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
}

func (e *Engine) storeFailure(ctx context.Context, chatID, operation string, err error) ([]Response, error) {
	e.loggerFor(ctx, chatID, operation).Error("failed to persist session", "error", err, "error_kind", errorKind(err))
	return []Response{{Text: e.opts.Catalog.InternalError}}, err
}

// errorKind labels an error for log filtering.
func errorKind(err error) string {
	var vErr *ValidationError
	var rErr *render.RenderError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, roster.ErrInvalidRosterSize),
		errors.Is(err, duty.ErrInvalidHorizon),
		errors.Is(err, duty.ErrInvalidStartDate):
		return "validation"
	case errors.As(err, &rErr):
		return "render"
	case errors.Is(err, persistence.ErrNotFound):
		return "not_found"
	case errors.Is(err, persistence.ErrConstraintViolation):
		return "constraint"
	default:
		return "internal"
	}
}

func (e *Engine) loggerFor(ctx context.Context, chatID, operation string) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = e.logger
	}
	return logger.With("service", "conversation", "operation", operation, "chat_id", chatID)
}

func parsePositiveInt(field, payload string) (int, *ValidationError) {
	value, err := strconv.Atoi(payload)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: "must be an integer"}
	}
	if value <= 0 {
		return 0, &ValidationError{Field: field, Message: "must be positive"}
	}
	return value, nil
}

func plainOptions(values []string) []Option {
	options := make([]Option, 0, len(values))
	for _, value := range values {
		options = append(options, Option{Label: value, Value: value})
	}
	return options
}

func roomOptions(numRooms int) []Option {
	if numRooms <= 0 || numRooms > 60 {
		return nil
	}
	options := make([]Option, 0, numRooms)
	for i := 1; i <= numRooms; i++ {
		label := strconv.Itoa(i)
		options = append(options, Option{Label: label, Value: label})
	}
	return options
}
