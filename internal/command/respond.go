package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/storage"
)

const EmbedColor = 0xff4757

// --- Interaction responses ---

// Respond sends a public message response to an interaction.
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// RespondEphemeral sends an ephemeral message response to an interaction.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed sends a public embed response to an interaction.
func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// RespondEmbedEphemeral sends an ephemeral embed response to an interaction.
func RespondEmbedEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// RespondDeferred acknowledges an interaction without an immediate reply.
func RespondDeferred(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// RespondDeferredEphemeral acknowledges an interaction ephemerally without an
// immediate reply.
func RespondDeferredEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

// --- Followup messages ---

// FollowupEmbed sends a public embed followup message.
func FollowupEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}

// FollowupEmbedEphemeral sends an ephemeral embed followup message.
func FollowupEmbedEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}

// --- Channel messages (non-interaction) ---

// MessageEmbed sends an embed to a channel.
func MessageEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	_, err := s.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// --- Command history ---

// LogCommand appends the invocation to the guild's command history.
func LogCommand(s *discordgo.Session, st *storage.Storage, e *discordgo.InteractionCreate, commandName string) error {
	user := ResolveUser(s, e)

	channelName := ""
	if channel, err := s.State.Channel(e.ChannelID); err == nil {
		channelName = channel.Name
	} else if channel, err := s.Channel(e.ChannelID); err == nil {
		channelName = channel.Name
	}

	guildName := ""
	if guild, err := s.State.Guild(e.GuildID); err == nil {
		guildName = guild.Name
	} else if guild, err := s.Guild(e.GuildID); err == nil {
		guildName = guild.Name
	}

	return st.AppendCommandToHistory(e.GuildID, storage.CommandHistoryRecord{
		ChannelID:   e.ChannelID,
		ChannelName: channelName,
		GuildName:   guildName,
		UserID:      user.ID,
		Username:    user.Username,
		Command:     commandName,
		Param:       describeInvocation(e),
		Datetime:    time.Now(),
	})
}

// ResolveUser retrieves the invoking user from an interaction event.
func ResolveUser(s *discordgo.Session, e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		return e.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

// describeInvocation flattens subcommand and option values for the log.
func describeInvocation(e *discordgo.InteractionCreate) string {
	if e.Type != discordgo.InteractionApplicationCommand {
		return ""
	}

	var parts []string
	options := e.ApplicationCommandData().Options
	for len(options) > 0 {
		opt := options[0]
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand ||
			opt.Type == discordgo.ApplicationCommandOptionSubCommandGroup {
			parts = append(parts, opt.Name)
			options = opt.Options
			continue
		}
		for _, o := range options {
			parts = append(parts, fmt.Sprintf("%s=%v", o.Name, o.Value))
		}
		break
	}
	return strings.Join(parts, " ")
}
