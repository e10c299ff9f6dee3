package ui

import (
	"strings"

	tele "gopkg.in/telebot.v3"
)

// Transport is the minimal messaging surface the renderer needs.
// Implemented by BotTransport over telebot; faked in tests.
type Transport interface {
	Send(chatID int64, text string, markup *tele.ReplyMarkup) (int, error)
	SendPhoto(chatID int64, fileID, caption string, markup *tele.ReplyMarkup) (int, error)
	Edit(chatID int64, messageID int, text string, markup *tele.ReplyMarkup) error
	Delete(chatID int64, messageID int) error
}

// IsNotModified reports whether an edit was rejected only because the
// content is unchanged. That is a no-op, not a failure.
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
