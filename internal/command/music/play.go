package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

func (c *MusicCommand) runPlay(ctx *command.SlashInteractionContext, input, parser string) error {
	s := ctx.Session
	e := ctx.Event

	if input == "" {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Title:       "🎵 Error",
			Description: "Input is required.",
		})
	}

	// Resolving can hit the network, answer within the 3s interaction window.
	if err := command.RespondDeferred(s, e); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	user := command.ResolveUser(s, e)

	voiceState, err := c.Bot.FindUserVoiceState(e.GuildID, user.ID)
	if err != nil {
		return command.FollowupEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Title:       "🎵 Voice Error",
			Description: fmt.Sprintf("Join a voice channel first.\n\n**Error:** %v", err),
		})
	}

	infos, err := c.Resolver.Resolve(input)
	if err != nil || len(infos) == 0 {
		return command.FollowupEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Title:       "🎵 Error",
			Description: fmt.Sprintf("Failed to resolve track: %v", err),
		})
	}

	tracks := make([]*parsers.Track, 0, len(infos))
	for _, info := range infos {
		t := parsers.NewTrack(info, user.Username)
		if parser != "" {
			t.SourceInfo.AvailableParsers = []string{parser}
		}
		tracks = append(tracks, t)
	}

	p := c.Bot.GetOrCreatePlayer(e.GuildID)
	p.SetTextChannel(e.ChannelID)

	if err := p.Enqueue(voiceState.ChannelID, tracks...); err != nil {
		return command.FollowupEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Title:       "🎵 Queue Error",
			Description: fmt.Sprintf("%v", err),
		})
	}

	var desc string
	if len(tracks) == 1 {
		desc = "🎶 " + trackLink(tracks[0])
	} else {
		desc = fmt.Sprintf("🎶 Queued **%d** tracks", len(tracks))
	}

	return command.FollowupEmbed(s, e, &discordgo.MessageEmbed{
		Title:       "Queued",
		Description: desc,
	})
}
