package conversation

import "fmt"

// Catalog is the fixed message set the engine speaks through. All
// user-visible text lives here so the flow logic stays language-neutral.
type Catalog struct {
	Welcome             string
	PromptCorpus        string
	CorpusChosen        string
	PromptFloor         string
	FloorChosen         string
	PromptRoomCount     string
	PromptRequesterRoom string
	RoomChosen          string
	PromptName          string
	PromptHorizon       string

	InvalidNumber    string
	InvalidRoomCount string
	RoomOutOfRange   string
	NameRequired     string

	Summary        string
	ConfirmPrompt  string
	ButtonGenerate string
	ButtonSend     string

	Generated       string
	RenderFailed    string
	RequestInvalid  string
	NoArtifact      string
	DeliveryCaption string

	Cancelled         string
	CancelledNoEvents string
	RestartRequired   string
	InternalError     string

	DocumentTitle   string
	HeaderRoom      string
	HeaderDate      string
	HeaderCheckin   string
	HeaderResidents string
}

// Summarize formats the confirmation summary for the collected fields.
func (c Catalog) Summarize(corpus, floor string, numRooms, requesterRoom int, name string, horizon int) string {
	return fmt.Sprintf(c.Summary, corpus, floor, numRooms, requesterRoom, name, horizon)
}

// OutOfRange formats the room bound violation notice.
func (c Catalog) OutOfRange(numRooms int) string {
	return fmt.Sprintf(c.RoomOutOfRange, numRooms)
}

// Ukrainian returns the message set of the original dormitory bot.
func Ukrainian() Catalog {
	return Catalog{
		Welcome:             "Ласкаво просимо до бота управління гуртожитком! Давайте налаштуємо ваш графік.",
		PromptCorpus:        "Будь ласка, виберіть корпус:",
		CorpusChosen:        "Ви вибрали корпус: %s.",
		PromptFloor:         "Тепер виберіть номер поверху:",
		FloorChosen:         "Ви вибрали поверх номер: %s.",
		PromptRoomCount:     "Скільки кімнат на цьому поверсі?",
		PromptRequesterRoom: "Який номер вашої кімнати?",
		RoomChosen:          "Ви вибрали номер кімнати: %d.",
		PromptName:          "Як вас звати?",
		PromptHorizon:       "На скільки днів уперед ви хочете створити графік?",

		InvalidNumber:    "Будь ласка, введіть додатне ціле число.",
		InvalidRoomCount: "Будь ласка, введіть дійсну кількість кімнат.",
		RoomOutOfRange:   "Номер кімнати має бути від 1 до %d.",
		NameRequired:     "Будь ласка, введіть ваше ім'я.",

		Summary: "Дякуємо! Ось інформація, яку ви надали:\n" +
			"- Корпус: %s\n- Поверх: %s\n- Кількість кімнат: %d\n" +
			"- Ваша кімната: %d\n- Ваше ім'я: %s\n- Днів уперед: %d",
		ConfirmPrompt:  "Підтвердьте створення графіка:",
		ButtonGenerate: "Створити графік",
		ButtonSend:     "Надіслати файл",

		Generated:       "Ваш розклад створено! Натисніть кнопку нижче, щоб отримати файл.",
		RenderFailed:    "Сталася помилка під час створення розкладу. Спробуйте ще раз.",
		RequestInvalid:  "Зібрані дані некоректні. Введіть /start, щоб розпочати знову.",
		NoArtifact:      "Розклад ще не створено. Спочатку натисніть кнопку створення графіка.",
		DeliveryCaption: "Ось розклад вашої кімнати. Повідомте нас, якщо вам потрібна додаткова допомога!",

		Cancelled:         "Процес скасовано. До побачення!",
		CancelledNoEvents: "Сесію скасовано. Введіть /start, щоб розпочати знову.",
		RestartRequired:   "Сесію не знайдено. Введіть /start, щоб розпочати.",
		InternalError:     "Сталася внутрішня помилка. Спробуйте ще раз.",

		DocumentTitle:   "Розклад прибирання кухні",
		HeaderRoom:      "Номер кімнати",
		HeaderDate:      "Дата (День тижня, дд.мм.рррр)",
		HeaderCheckin:   "Перевірка",
		HeaderResidents: "Мешканці",
	}
}

// English returns the English message set.
func English() Catalog {
	return Catalog{
		Welcome:             "Welcome to the dorm management bot! Let's set up your schedule.",
		PromptCorpus:        "Please choose the corpus:",
		CorpusChosen:        "You chose corpus: %s.",
		PromptFloor:         "Now choose the floor number:",
		FloorChosen:         "You chose floor: %s.",
		PromptRoomCount:     "How many rooms are on this floor?",
		PromptRequesterRoom: "Which room number is yours?",
		RoomChosen:          "You chose room number: %d.",
		PromptName:          "What is your name?",
		PromptHorizon:       "How many days ahead should the schedule cover?",

		InvalidNumber:    "Please enter a positive whole number.",
		InvalidRoomCount: "Please enter a valid number of rooms.",
		RoomOutOfRange:   "The room number must be between 1 and %d.",
		NameRequired:     "Please enter your name.",

		Summary: "Thank you! Here is the information you provided:\n" +
			"- Corpus: %s\n- Floor: %s\n- Number of rooms: %d\n" +
			"- Your room: %d\n- Your name: %s\n- Days ahead: %d",
		ConfirmPrompt:  "Confirm schedule generation:",
		ButtonGenerate: "Generate schedule",
		ButtonSend:     "Send file",

		Generated:       "Your schedule is ready! Press the button below to receive the file.",
		RenderFailed:    "An error occurred while generating the schedule. Please try again.",
		RequestInvalid:  "The collected details are invalid. Type /start to begin again.",
		NoArtifact:      "No schedule has been generated yet. Press the generate button first.",
		DeliveryCaption: "Here is your room schedule. Let us know if you need further assistance!",

		Cancelled:         "Process cancelled. Goodbye!",
		CancelledNoEvents: "This session is cancelled. Type /start to begin again.",
		RestartRequired:   "No session found. Type /start to begin.",
		InternalError:     "An internal error occurred. Please try again.",

		DocumentTitle:   "Kitchen Cleaning Schedule",
		HeaderRoom:      "Room Number",
		HeaderDate:      "Date (Day of the Week, dd.mm.yyyy)",
		HeaderCheckin:   "Checkin",
		HeaderResidents: "Residents",
	}
}

// CatalogFor selects a catalog by locale tag, defaulting to Ukrainian.
func CatalogFor(locale string) Catalog {
	switch locale {
	case "en":
		return English()
	default:
		return Ukrainian()
	}
}
