package chat

import (
	"context"
	"fmt"
	"sort"

	"tripmate/models"
	"tripmate/utils"
)

// BatchSize is both the initial number of visible messages and the scroll-back step.
const BatchSize = 20

// MessageWindow shows the newest messages of a chat and grows towards older ones.
type MessageWindow struct {
	all     []models.ChatMessage
	visible int
	batch   int
}

// NewMessageWindow shows the last visible messages of all, which must be in key order.
// A non-positive visible means one batch.
func NewMessageWindow(all []models.ChatMessage, visible int) *MessageWindow {
	w := &MessageWindow{all: all, batch: BatchSize}
	if visible <= 0 {
		visible = w.batch
	}
	w.visible = min(visible, len(all))
	return w
}

// Visible returns the rendered messages, oldest first.
func (w *MessageWindow) Visible() []models.ChatMessage {
	return w.all[len(w.all)-w.visible:]
}

func (w *MessageWindow) HasMore() bool {
	return w.visible < len(w.all)
}

// ScrollResult tells the client how to keep its scroll position after older messages were
// prepended: the message Anchor was first before the scroll and Revealed messages now precede it.
type ScrollResult struct {
	Revealed int    `json:"revealed"`
	Anchor   string `json:"anchor,omitempty"`
}

// ScrollToTop reveals one more batch of older messages; a window already at the first
// message is left unchanged.
func (w *MessageWindow) ScrollToTop() ScrollResult {
	if !w.HasMore() {
		return ScrollResult{}
	}
	var anchor string
	if w.visible > 0 {
		anchor = w.Visible()[0].ID
	}
	before := w.visible
	w.visible = min(w.visible+w.batch, len(w.all))
	return ScrollResult{Revealed: w.visible - before, Anchor: anchor}
}

// WindowView is the serialized state of a MessageWindow.
type WindowView struct {
	Messages []models.ChatMessage `json:"messages"`
	Visible  int                  `json:"visible"`
	Total    int                  `json:"total"`
	HasMore  bool                 `json:"has_more"`
	Typing   bool                 `json:"typing"`
}

func (w *MessageWindow) View() WindowView {
	return WindowView{
		Messages: w.Visible(),
		Visible:  w.visible,
		Total:    len(w.all),
		HasMore:  w.HasMore(),
	}
}

func (s *DefaultChatService) Window(ctx context.Context, uid, itineraryID string, visible int) (*WindowView, error) {
	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}
	view := NewMessageWindow(rec.Messages, visible).View()
	view.Typing = rec.Reply.Effective(s.now()).Typing()
	return &view, nil
}

// Page is a batch of messages older than a cursor.
type Page struct {
	Messages []models.ChatMessage `json:"messages"`
	HasMore  bool                 `json:"has_more"`
	// Next is the cursor for the following older page.
	Next string `json:"next,omitempty"`
}

// Page returns up to limit messages strictly older than the message keyed before. An empty
// before pages back from the newest message.
func (s *DefaultChatService) Page(ctx context.Context, uid, itineraryID, before string, limit int) (*Page, error) {
	if limit <= 0 {
		limit = BatchSize
	}
	msgs, err := s.Repo.Messages(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}
	end := len(msgs)
	if before != "" {
		end = sort.Search(len(msgs), func(i int) bool { return msgs[i].ID >= before })
		if end == len(msgs) || msgs[end].ID != before {
			return nil, fmt.Errorf("message %s: %w", before, utils.ErrNotFound)
		}
	}
	start := max(end-limit, 0)
	page := &Page{Messages: msgs[start:end], HasMore: start > 0}
	if page.HasMore {
		page.Next = msgs[start].ID
	}
	return page, nil
}
