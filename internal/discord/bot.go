// Package discord adapts the Discord gateway to the application service:
// inbound messages are scored, prefixed commands are dispatched, replies are
// sent back to the originating channel.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/lemDace/Smackhouse-Saltbot/internal/app"
	"github.com/lemDace/Smackhouse-Saltbot/internal/correlation"
	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
	"github.com/lemDace/Smackhouse-Saltbot/internal/logging"
)

// Bot owns the Discord session and routes events into the service layer.
type Bot struct {
	session *discordgo.Session
	app     *app.Service
	prefix  string
}

// New creates the bot and registers its gateway handlers. The session is not
// opened until Start.
func New(token, prefix string, svc *app.Service) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	b := &Bot{session: session, app: svc, prefix: prefix}
	session.AddHandler(b.handleReady)
	session.AddHandler(b.handleMessageCreate)
	return b, nil
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Discord session ready", "username", r.User.Username)
}

// handleMessageCreate scores every non-bot message, then dispatches a command
// if the message carries the command prefix. Command invocations are scored
// too; a salty !mysalt still counts.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx := correlation.WithID(context.Background(), correlation.NewID())

	authorID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Unparseable author ID", "author_id", m.Author.ID, "error", err)
		return
	}

	msg := domain.Message{
		Text:         m.Content,
		AuthorID:     authorID,
		MentionCount: len(m.Mentions),
	}
	delta, err := b.app.HandleMessage(ctx, msg)
	if err != nil {
		logging.WithError(err).ErrorContext(ctx, "Failed to score message", "user_id", authorID)
	} else if delta > 0 {
		logging.WithUser(authorID).DebugContext(ctx, "Salt applied", "delta", delta)
	}

	if name, args, ok := parseCommand(b.prefix, m.Content); ok {
		b.dispatchCommand(ctx, s, m, name, args)
	}
}

// isAdmin reports whether the message author holds the administrator
// permission in the channel.
func (b *Bot) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		slog.Error("Failed to resolve permissions", "user_id", m.Author.ID, "error", err)
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSend(m.ChannelID, text); err != nil {
		slog.Error("Failed to send reply", "channel_id", m.ChannelID, "error", err)
	}
}
