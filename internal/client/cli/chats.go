package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adminconsole/internal/client/router"
	"github.com/dmitrijs2005/adminconsole/internal/client/services"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

// Chats lists AI agent conversations, e.g. "chats status=human".
func (a *App) Chats(ctx context.Context, args []string) error {
	f := models.ParseConversationFilter(parseArgs(args))
	return a.openList(ctx, router.AIAgent, func() error { return a.chats.SetFilters(ctx, f) })
}

func (a *App) Chat(ctx context.Context, args []string) error {
	id, err := argID("chat", args)
	if err != nil {
		return err
	}
	msgs, err := a.chats.Messages(ctx, id)
	if err != nil {
		return err
	}
	renderMessages(a.out, msgs)
	return nil
}

func (a *App) Takeover(ctx context.Context, args []string) error {
	return a.mutate("takeover", args, func(id string) error { return a.chats.Takeover(ctx, id) },
		"You are now answering conversation %s.")
}

func (a *App) CloseChat(ctx context.Context, args []string) error {
	return a.mutate("close", args, func(id string) error { return a.chats.Close(ctx, id) }, "Conversation %s closed.")
}

// Reply sends an agent message. Text after the id is the message; without
// it the message is read from the prompt.
func (a *App) Reply(ctx context.Context, args []string) error {
	id, err := argID("reply", args)
	if err != nil {
		return err
	}
	content := strings.Join(args[1:], " ")
	if content == "" {
		if content, err = GetMultiline(a.reader, "Reply", a.out); err != nil {
			return err
		}
	}

	m, err := a.chats.Reply(ctx, id, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sent at %s.\n", formatTime(m.CreatedAt))
	return nil
}

func (a *App) Analyze(ctx context.Context, args []string) error {
	id, err := argID("analyze", args)
	if err != nil {
		return err
	}
	res, err := a.chats.Analyze(ctx, id)
	if errors.Is(err, services.ErrNothingToAnalyze) {
		fmt.Fprintln(a.out, noticeStyle.Render("Nothing to analyze yet: the conversation has no messages."))
		return nil
	}
	if err != nil {
		return err
	}
	renderAnalysis(a.out, res)
	return nil
}
