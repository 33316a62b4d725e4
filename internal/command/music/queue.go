package music

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/player"
)

const queuePageSize = 15

func (c *MusicCommand) runQueue(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	current := p.Current()
	pending := p.Queue()

	if current == nil && len(pending) == 0 {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "The queue is empty. Use `/music play` to add something.",
		})
	}

	var sb strings.Builder
	if current != nil {
		sb.WriteString(fmt.Sprintf("▶️ %s `%s / %s`\n\n",
			trackLink(current),
			formatDuration(p.Elapsed()),
			formatDuration(current.Duration)))
	}

	for i, t := range pending {
		if i == queuePageSize {
			sb.WriteString(fmt.Sprintf("… and %d more\n", len(pending)-queuePageSize))
			break
		}
		sb.WriteString(fmt.Sprintf("`%2d.` %s `%s`\n", i+1, trackLink(t), formatDuration(t.Duration)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Queue",
		Description: sb.String(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d pending · repeat %s · volume %d%%", len(pending), p.Repeat(), p.Volume()),
		},
	}
	return command.RespondEmbed(s, e, embed)
}

func (c *MusicCommand) runNowPlaying(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	current := p.Current()
	if current == nil {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "Nothing is playing.",
		})
	}

	marker := "▶️"
	if p.State() == player.StatePaused {
		marker = "⏸"
	}

	elapsed := p.Elapsed()
	desc := fmt.Sprintf("%s %s\n\n%s `%s / %s`",
		marker,
		trackLink(current),
		progressBar(elapsed, current.Duration, progressBarWidth),
		formatDuration(elapsed),
		formatDuration(current.Duration))

	embed := &discordgo.MessageEmbed{
		Title:       "Now Playing",
		Description: desc,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Requested by", Value: orDash(current.Requester), Inline: true},
			{Name: "Source", Value: orDash(current.SourceInfo.SourceName), Inline: true},
			{Name: "Parser", Value: orDash(current.CurrentParser), Inline: true},
		},
	}
	return command.RespondEmbed(s, e, embed)
}

func (c *MusicCommand) runHistory(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event

	if ctx.Storage == nil {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "History is not available.",
		})
	}

	history, err := ctx.Storage.FetchTrackHistory(e.GuildID)
	if err != nil {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Title:       "🎵 Storage Error",
			Description: fmt.Sprintf("%v", err),
		})
	}
	if len(history) == 0 {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "Nothing has been played here yet.",
		})
	}

	var sb strings.Builder
	for i := len(history) - 1; i >= 0; i-- {
		rec := history[i]
		title := truncate(rec.Title, 60)
		if rec.URL != "" {
			title = fmt.Sprintf("[%s](%s)", title, rec.URL)
		}
		sb.WriteString(fmt.Sprintf("%s — played %d time(s), %s total\n",
			title, rec.PlayCount, formatDuration(rec.TotalDuration)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Recently Played",
		Description: sb.String(),
	}
	return command.RespondEmbed(s, e, embed)
}
