package ui

import (
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// BotTransport implements Transport over a telebot bot
type BotTransport struct {
	bot *tele.Bot
}

// NewBotTransport wraps a telebot bot
func NewBotTransport(bot *tele.Bot) *BotTransport {
	return &BotTransport{bot: bot}
}

// Send sends a new text message and returns its id
func (t *BotTransport) Send(chatID int64, text string, markup *tele.ReplyMarkup) (int, error) {
	msg, err := t.bot.Send(tele.ChatID(chatID), text, sendOptions(markup))
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// SendPhoto sends a photo by Telegram file id and returns the message id
func (t *BotTransport) SendPhoto(chatID int64, fileID, caption string, markup *tele.ReplyMarkup) (int, error) {
	photo := &tele.Photo{
		File:    tele.File{FileID: fileID},
		Caption: caption,
	}
	msg, err := t.bot.Send(tele.ChatID(chatID), photo, sendOptions(markup))
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// Edit replaces the text/controls of an existing message
func (t *BotTransport) Edit(chatID int64, messageID int, text string, markup *tele.ReplyMarkup) error {
	_, err := t.bot.Edit(storedMessage(chatID, messageID), text, sendOptions(markup))
	return err
}

// Delete removes a message
func (t *BotTransport) Delete(chatID int64, messageID int) error {
	return t.bot.Delete(storedMessage(chatID, messageID))
}

func storedMessage(chatID int64, messageID int) tele.Editable {
	return &tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    chatID,
	}
}

func sendOptions(markup *tele.ReplyMarkup) *tele.SendOptions {
	return &tele.SendOptions{
		ReplyMarkup:           markup,
		DisableWebPagePreview: true,
	}
}
