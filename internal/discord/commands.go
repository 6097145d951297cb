package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
	apperrors "github.com/lemDace/Smackhouse-Saltbot/internal/errors"
	"github.com/lemDace/Smackhouse-Saltbot/internal/metrics"
)

const (
	cmdMySalt         = "mysalt"
	cmdSetSalt        = "setsalt"
	cmdResetSalt      = "resetsalt"
	cmdBoardToday     = "saltboardtoday"
	cmdBoardWeek      = "saltboardweek"
	msgNotAdmin       = "You need administrator permissions for that."
	msgNoSaltToday    = "No salt recorded today."
	msgNoSaltThisWeek = "No salt recorded this week."
)

func (b *Bot) dispatchCommand(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, name string, args []string) {
	var err error
	switch name {
	case cmdMySalt:
		err = b.cmdMySalt(ctx, s, m)
	case cmdSetSalt:
		err = b.cmdSetSalt(ctx, s, m, args)
	case cmdResetSalt:
		err = b.cmdResetSalt(ctx, s, m, args)
	case cmdBoardToday:
		err = b.cmdBoardToday(ctx, s, m)
	case cmdBoardWeek:
		err = b.cmdBoardWeek(ctx, s, m)
	default:
		return // not our command, stay silent
	}

	if err != nil {
		structured := apperrors.AsStructuredError(err)
		metrics.CommandsTotal.WithLabelValues(name, string(structured.Type)).Inc()
		slog.ErrorContext(ctx, "Command failed", "command", name, "error", structured)
		b.reply(s, m, structured.UserMessage())
		return
	}
	metrics.CommandsTotal.WithLabelValues(name, "ok").Inc()
}

func (b *Bot) cmdMySalt(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) error {
	userID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		return apperrors.InternalError("unparseable author ID", err)
	}
	total, rank, err := b.app.MySalt(ctx, userID)
	if err != nil {
		return err
	}
	b.reply(s, m, formatMySalt(m.Author.Mention(), total, rank))
	return nil
}

func (b *Bot) cmdSetSalt(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) error {
	if !b.isAdmin(s, m) {
		return apperrors.PermissionError(msgNotAdmin)
	}
	if len(args) != 2 {
		return apperrors.ValidationError(fmt.Sprintf("Usage: %s%s @user <value>", b.prefix, cmdSetSalt))
	}
	userID, err := parseUserMention(args[0])
	if err != nil {
		return apperrors.ValidationError("First argument must be a user mention.")
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return apperrors.ValidationError("Second argument must be a number.")
	}

	if _, err := b.app.SetSalt(ctx, userID, value); err != nil {
		return err
	}
	b.reply(s, m, formatSetSalt(mention(userID), value))
	return nil
}

func (b *Bot) cmdResetSalt(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) error {
	if !b.isAdmin(s, m) {
		return apperrors.PermissionError(msgNotAdmin)
	}
	if len(args) != 1 {
		return apperrors.ValidationError(fmt.Sprintf("Usage: %s%s @user", b.prefix, cmdResetSalt))
	}
	userID, err := parseUserMention(args[0])
	if err != nil {
		return apperrors.ValidationError("Argument must be a user mention.")
	}

	prior, err := b.app.ResetSalt(ctx, userID)
	if err != nil {
		return err
	}
	b.reply(s, m, formatResetSalt(mention(userID), prior))
	return nil
}

func (b *Bot) cmdBoardToday(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) error {
	board, err := b.app.DailyLeaderboard(ctx)
	if err != nil {
		return err
	}
	if len(board) == 0 {
		b.reply(s, m, msgNoSaltToday)
		return nil
	}
	b.reply(s, m, formatLeaderboard("📅 **Today's Salt Leaderboard (UTC)**", board))
	return nil
}

func (b *Bot) cmdBoardWeek(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) error {
	board, err := b.app.WeeklyLeaderboard(ctx)
	if err != nil {
		return err
	}
	if len(board) == 0 {
		b.reply(s, m, msgNoSaltThisWeek)
		return nil
	}
	b.reply(s, m, formatLeaderboard("📆 **This Week's Salt Leaderboard (UTC)**", board))
	return nil
}

// parseCommand splits a prefixed message into a command name and arguments.
// Returns ok=false for anything that is not a command invocation.
func parseCommand(prefix, content string) (string, []string, bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// parseUserMention extracts the numeric user ID from a <@id> or <@!id>
// mention, or from a bare numeric ID.
func parseUserMention(arg string) (int64, error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
	trimmed = strings.TrimPrefix(trimmed, "!")
	return strconv.ParseInt(trimmed, 10, 64)
}

func mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

func formatMySalt(mention string, total float64, rank string) string {
	return fmt.Sprintf("🧂 %s, your salt is **%.2f** — Rank: **%s**", mention, total, rank)
}

func formatSetSalt(mention string, value float64) string {
	return fmt.Sprintf("✅ Set %s's salt to **%.2f**", mention, value)
}

func formatResetSalt(mention string, prior float64) string {
	if prior == 0 {
		return fmt.Sprintf("%s already has **0.00** salt.", mention)
	}
	return fmt.Sprintf("🧹 Reset %s's salt to **0.00** (logged -%.2f today).", mention, prior)
}

func formatLeaderboard(header string, board []domain.LeaderboardRow) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, row := range board {
		sb.WriteString(fmt.Sprintf("\n%s: %.2f", mention(row.UserID), row.Amount))
	}
	return sb.String()
}
