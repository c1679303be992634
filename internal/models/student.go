package models

// Student - ученик из списка школы. TelegramChatID используется как адрес канала уведомлений.
type Student struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Class          string `json:"class,omitempty"`
	ParentWhatsapp string `json:"parent_whatsapp,omitempty"`
	TelegramChatID string `json:"telegram_chat_id,omitempty"`
}
