package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/bot"
	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/source_resolver"
)

// MusicCommand is the /music slash command with all playback subcommands.
type MusicCommand struct {
	Bot      bot.BotVoice
	Resolver *source_resolver.SourceResolver
}

func (c *MusicCommand) Name() string        { return "music" }
func (c *MusicCommand) Description() string { return "Control music playback" }
func (c *MusicCommand) Group() string       { return "music" }
func (c *MusicCommand) Category() string    { return "🎵 Music" }

func (c *MusicCommand) SlashDefinition() *discordgo.ApplicationCommand {
	var volumeMin float64 = 0

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "play",
				Description: "Play a track, playlist or search query",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "input",
						Description: "Link or search query",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "parser",
						Description: "Override autodetect parser",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "ytdlp pipe", Value: "ytdlp-pipe"},
							{Name: "ytdlp link", Value: "ytdlp-link"},
							{Name: "kkdai pipe", Value: "kkdai-pipe"},
							{Name: "kkdai link", Value: "kkdai-link"},
							{Name: "ffmpeg direct link", Value: "ffmpeg-link"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "skip",
				Description: "Skip to the next track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stop",
				Description: "Stop playback and clear the queue",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pause",
				Description: "Pause the current track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "resume",
				Description: "Resume a paused track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "volume",
				Description: "Show or set the playback volume",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "level",
						Description: "Volume in percent (0-200)",
						MinValue:    &volumeMin,
						MaxValue:    200,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "repeat",
				Description: "Cycle repeat mode: off, all, one",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "shuffle",
				Description: "Shuffle the pending queue",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a track from the queue",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "position",
						Description: "Queue position as shown by /music queue",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "clear",
				Description: "Clear the pending queue, keep the current track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "queue",
				Description: "Show the current queue",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "nowplaying",
				Description: "Show the current track and progress",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "history",
				Description: "Show recently played tracks",
			},
		},
	}
}

func (c *MusicCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context.Session
	e := context.Event

	if len(e.ApplicationCommandData().Options) == 0 {
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "Missing subcommand.",
		})
	}

	sub := e.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "play":
		var input, parser string
		for _, opt := range sub.Options {
			switch opt.Name {
			case "input":
				input = opt.StringValue()
			case "parser":
				parser = opt.StringValue()
			}
		}
		return c.runPlay(context, input, parser)

	case "skip":
		return c.runSkip(context)

	case "stop":
		return c.runStop(context)

	case "pause":
		return c.runPause(context)

	case "resume":
		return c.runResume(context)

	case "volume":
		level := -1
		for _, opt := range sub.Options {
			if opt.Name == "level" {
				level = int(opt.IntValue())
			}
		}
		return c.runVolume(context, level)

	case "repeat":
		return c.runRepeat(context)

	case "shuffle":
		return c.runShuffle(context)

	case "remove":
		position := 0
		for _, opt := range sub.Options {
			if opt.Name == "position" {
				position = int(opt.IntValue())
			}
		}
		return c.runRemove(context, position)

	case "clear":
		return c.runClear(context)

	case "queue":
		return c.runQueue(context)

	case "nowplaying":
		return c.runNowPlaying(context)

	case "history":
		return c.runHistory(context)

	default:
		return command.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Unknown subcommand: %s", sub.Name),
		})
	}
}
