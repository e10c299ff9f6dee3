package ui

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AnchorStore persists the single live message id per user
type AnchorStore interface {
	GetAnchor(ctx context.Context, userID int64) (int, error)
	SetAnchor(ctx context.Context, userID int64, messageID int) error
}

// Renderer keeps exactly one live outgoing message per user. Every
// screen is drawn into that anchor: edited in place when possible,
// replaced otherwise.
type Renderer struct {
	transport Transport
	anchors   AnchorStore
	logger    *zap.Logger
}

// NewRenderer creates a renderer
func NewRenderer(transport Transport, anchors AnchorStore, logger *zap.Logger) *Renderer {
	return &Renderer{
		transport: transport,
		anchors:   anchors,
		logger:    logger,
	}
}

// Render draws text and controls into the user's anchor message.
// After a successful call exactly one anchor id is stored and it refers
// to a message that was just edited or created.
func (r *Renderer) Render(ctx context.Context, chatID, userID int64, text string, markup *tele.ReplyMarkup) error {
	anchor, err := r.anchors.GetAnchor(ctx, userID)
	if err != nil {
		return err
	}

	if anchor != 0 {
		err := r.transport.Edit(chatID, anchor, text, markup)
		if err == nil || IsNotModified(err) {
			return nil
		}
		// Deleted, too old, or otherwise uneditable: replace it
		r.logger.Warn("failed to edit anchor message, replacing",
			zap.Int64("user_id", userID),
			zap.Int("message_id", anchor),
			zap.Error(err),
		)
	}

	return r.replace(ctx, chatID, userID, anchor, func() (int, error) {
		return r.transport.Send(chatID, text, markup)
	})
}

// RenderPhoto draws a photo screen into the anchor. Editing between
// text and media content is unreliable on the platform, so photo
// renders always replace the anchor instead of editing it.
func (r *Renderer) RenderPhoto(ctx context.Context, chatID, userID int64, fileID, caption string, markup *tele.ReplyMarkup) error {
	anchor, err := r.anchors.GetAnchor(ctx, userID)
	if err != nil {
		return err
	}

	return r.replace(ctx, chatID, userID, anchor, func() (int, error) {
		return r.transport.SendPhoto(chatID, fileID, caption, markup)
	})
}

// replace sends a new anchor message, stores its id, and best-effort
// deletes the old one. Deletion failures never surface to the user.
func (r *Renderer) replace(ctx context.Context, chatID, userID int64, oldAnchor int, send func() (int, error)) error {
	messageID, err := send()
	if err != nil {
		return err
	}

	if err := r.anchors.SetAnchor(ctx, userID, messageID); err != nil {
		return err
	}

	if oldAnchor != 0 && oldAnchor != messageID {
		if err := r.transport.Delete(chatID, oldAnchor); err != nil {
			r.logger.Debug("failed to delete old anchor message",
				zap.Int64("user_id", userID),
				zap.Int("message_id", oldAnchor),
				zap.Error(err),
			)
		}
	}
	return nil
}

// DeleteUserMessage best-effort removes a user's own message (checkout
// answers are folded into the anchor, the raw input is cleaned up)
func (r *Renderer) DeleteUserMessage(chatID int64, messageID int) {
	if err := r.transport.Delete(chatID, messageID); err != nil {
		r.logger.Debug("failed to delete user message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}
