package music

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/player"
)

func (c *MusicCommand) runSkip(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	skipped := p.Current()
	if err := p.Skip(); err != nil {
		if errors.Is(err, player.ErrNoTrackPlaying) {
			return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
				Description: "Nothing is playing.",
			})
		}
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Title:       "🎵 Playback Error",
			Description: fmt.Sprintf("Failed to skip.\n\n**Error:** %v", err),
		})
	}

	desc := "⏭ Skipped"
	if skipped != nil {
		desc = "⏭ Skipped " + trackLink(skipped)
	}
	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{Description: desc})
}

func (c *MusicCommand) runStop(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	if err := p.Stop(); err != nil {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Title:       "🎵 Playback Error",
			Description: fmt.Sprintf("%v", err),
		})
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Description: "⏹️ Playback stopped. Queue cleared.",
	})
}

func (c *MusicCommand) runPause(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	if err := p.Pause(); err != nil {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "Nothing is playing.",
		})
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Description: "⏸ Paused. Use `/music resume` to continue.",
	})
}

func (c *MusicCommand) runResume(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	if err := p.Resume(); err != nil {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "Playback is not paused.",
		})
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Description: "▶️ Resumed.",
	})
}

func (c *MusicCommand) runVolume(ctx *command.SlashInteractionContext, level int) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	if level < 0 {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("🔊 Volume is **%d%%**", p.Volume()),
		})
	}

	applied := p.SetVolume(level)
	if ctx.Storage != nil {
		if err := ctx.Storage.SetGuildVolume(e.GuildID, applied); err != nil {
			return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
				Title:       "🎵 Storage Error",
				Description: fmt.Sprintf("Volume set but not saved: %v", err),
			})
		}
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🔊 Volume set to **%d%%**", applied),
	})
}

func (c *MusicCommand) runRepeat(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	mode := p.CycleRepeat()

	var desc string
	switch mode {
	case player.RepeatAll:
		desc = "🔁 Repeating the whole queue."
	case player.RepeatOne:
		desc = "🔂 Repeating the current track."
	default:
		desc = "➡️ Repeat is off."
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{Description: desc})
}

func (c *MusicCommand) runShuffle(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	n := p.Shuffle()
	if n == 0 {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "Not enough tracks in the queue to shuffle.",
		})
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🔀 Shuffled **%d** tracks.", n),
	})
}

func (c *MusicCommand) runRemove(ctx *command.SlashInteractionContext, position int) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	removed, err := p.Remove(position)
	if err != nil {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("No track at position %d. Check `/music queue`.", position),
		})
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Description: "🗑 Removed " + trackLink(removed),
	})
}

func (c *MusicCommand) runClear(ctx *command.SlashInteractionContext) error {
	s, e := ctx.Session, ctx.Event
	p := c.Bot.GetOrCreatePlayer(e.GuildID)

	n := p.ClearQueue()
	if n == 0 {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "The queue is already empty.",
		})
	}

	return command.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🧹 Cleared **%d** pending tracks.", n),
	})
}
