package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// fakeTransport records calls and scripts failures
type fakeTransport struct {
	nextID     int
	editErr    error
	sendErr    error
	deleteErr  error
	sent       []int
	edited     []int
	deleted    []int
	photosSent []string
}

func (f *fakeTransport) Send(chatID int64, text string, markup *tele.ReplyMarkup) (int, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, f.nextID)
	return f.nextID, nil
}

func (f *fakeTransport) SendPhoto(chatID int64, fileID, caption string, markup *tele.ReplyMarkup) (int, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, f.nextID)
	f.photosSent = append(f.photosSent, fileID)
	return f.nextID, nil
}

func (f *fakeTransport) Edit(chatID int64, messageID int, text string, markup *tele.ReplyMarkup) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edited = append(f.edited, messageID)
	return nil
}

func (f *fakeTransport) Delete(chatID int64, messageID int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

// fakeAnchors is an in-memory AnchorStore
type fakeAnchors struct {
	anchors map[int64]int
}

func newFakeAnchors() *fakeAnchors {
	return &fakeAnchors{anchors: make(map[int64]int)}
}

func (f *fakeAnchors) GetAnchor(_ context.Context, userID int64) (int, error) {
	return f.anchors[userID], nil
}

func (f *fakeAnchors) SetAnchor(_ context.Context, userID int64, messageID int) error {
	f.anchors[userID] = messageID
	return nil
}

func newTestRenderer(transport *fakeTransport, anchors *fakeAnchors) *Renderer {
	return NewRenderer(transport, anchors, zap.NewNop())
}

func TestRenderer_FirstRenderSendsAndStoresAnchor(t *testing.T) {
	transport := &fakeTransport{}
	anchors := newFakeAnchors()
	r := newTestRenderer(transport, anchors)

	err := r.Render(context.Background(), 42, 42, "hello", nil)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, transport.sent)
	assert.Equal(t, 1, anchors.anchors[42])
}

func TestRenderer_EditsExistingAnchor(t *testing.T) {
	transport := &fakeTransport{}
	anchors := newFakeAnchors()
	anchors.anchors[42] = 7
	r := newTestRenderer(transport, anchors)

	err := r.Render(context.Background(), 42, 42, "updated", nil)

	require.NoError(t, err)
	assert.Equal(t, []int{7}, transport.edited)
	assert.Empty(t, transport.sent)
	assert.Equal(t, 7, anchors.anchors[42], "anchor unchanged after in-place edit")
}

func TestRenderer_NotModifiedIsSuccess(t *testing.T) {
	transport := &fakeTransport{editErr: errors.New("telegram: message is not modified (400)")}
	anchors := newFakeAnchors()
	anchors.anchors[42] = 7
	r := newTestRenderer(transport, anchors)

	err := r.Render(context.Background(), 42, 42, "same text", nil)

	require.NoError(t, err)
	assert.Empty(t, transport.sent, "no replacement on a no-op edit")
	assert.Equal(t, 7, anchors.anchors[42])
}

func TestRenderer_EditFailureFallsBackToReplace(t *testing.T) {
	transport := &fakeTransport{editErr: errors.New("telegram: message to edit not found (400)")}
	anchors := newFakeAnchors()
	anchors.anchors[42] = 7
	r := newTestRenderer(transport, anchors)

	err := r.Render(context.Background(), 42, 42, "fresh", nil)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, transport.sent)
	assert.Equal(t, 1, anchors.anchors[42], "anchor points at the replacement")
	assert.Equal(t, []int{7}, transport.deleted, "old anchor cleaned up")
}

func TestRenderer_DeleteFailureIsSwallowed(t *testing.T) {
	transport := &fakeTransport{
		editErr:   errors.New("telegram: forbidden (403)"),
		deleteErr: errors.New("telegram: message can't be deleted (400)"),
	}
	anchors := newFakeAnchors()
	anchors.anchors[42] = 7
	r := newTestRenderer(transport, anchors)

	err := r.Render(context.Background(), 42, 42, "fresh", nil)

	require.NoError(t, err, "cleanup failure never blocks the flow")
	assert.Equal(t, 1, anchors.anchors[42])
}

func TestRenderer_SendFailureSurfaces(t *testing.T) {
	transport := &fakeTransport{sendErr: errors.New("telegram: internal (500)")}
	anchors := newFakeAnchors()
	r := newTestRenderer(transport, anchors)

	err := r.Render(context.Background(), 42, 42, "hello", nil)

	assert.Error(t, err)
	assert.Zero(t, anchors.anchors[42], "no anchor stored for a failed send")
}

func TestRenderer_PhotoAlwaysReplaces(t *testing.T) {
	transport := &fakeTransport{}
	anchors := newFakeAnchors()
	anchors.anchors[42] = 7
	r := newTestRenderer(transport, anchors)

	err := r.RenderPhoto(context.Background(), 42, 42, "file-abc", "Widget", nil)

	require.NoError(t, err)
	assert.Empty(t, transport.edited, "photo mode never edits")
	assert.Equal(t, []string{"file-abc"}, transport.photosSent)
	assert.Equal(t, []int{7}, transport.deleted)
	assert.Equal(t, 1, anchors.anchors[42])
}

func TestRenderer_SingleAnchorAfterMixedSequence(t *testing.T) {
	transport := &fakeTransport{}
	anchors := newFakeAnchors()
	r := newTestRenderer(transport, anchors)
	ctx := context.Background()

	require.NoError(t, r.Render(ctx, 42, 42, "one", nil))
	require.NoError(t, r.RenderPhoto(ctx, 42, 42, "file", "two", nil))
	transport.editErr = errors.New("telegram: message can't be edited (400)")
	require.NoError(t, r.Render(ctx, 42, 42, "three", nil))
	transport.editErr = nil
	require.NoError(t, r.Render(ctx, 42, 42, "four", nil))

	// Every superseded anchor was deleted; exactly one remains live
	live := anchors.anchors[42]
	assert.NotContains(t, transport.deleted, live)
	assert.Len(t, transport.deleted, len(transport.sent)-1)
}

func TestIsNotModified(t *testing.T) {
	assert.True(t, IsNotModified(errors.New("telegram: message is not modified (400)")))
	assert.False(t, IsNotModified(errors.New("telegram: message to edit not found (400)")))
	assert.False(t, IsNotModified(nil))
}
