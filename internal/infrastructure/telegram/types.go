package telegram

// Wire types for the slice of the Bot API this service touches.

// Update is an inbound webhook event. Only callback_query updates are
// meaningful here; everything else is acknowledged and dropped.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// CallbackQuery is the operator's button press. Data carries the
// "<verb>:<verification id>" string set on the prompt button.
type CallbackQuery struct {
	ID   string `json:"id"`
	From *User  `json:"from,omitempty"`
	Data string `json:"data"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

// InlineKeyboard is the reply_markup attached to an approval prompt.
type InlineKeyboard struct {
	Buttons [][]InlineButton `json:"inline_keyboard"`
}

type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}
