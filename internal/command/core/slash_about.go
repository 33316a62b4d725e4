package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/version"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover the origin of this bot" }
func (c *AboutCommand) Group() string       { return "core" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	return command.RespondEmbedEphemeral(context.Session, context.Event, buildAboutMessage())
}

func buildAboutMessage() *discordgo.MessageEmbed {
	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		}
	}

	goVer := "unknown"
	if version.GoVersion != "" {
		goVer = strings.TrimPrefix(version.GoVersion, "go")
	}

	return embed.NewEmbed().
		SetColor(command.EmbedColor).
		SetDescription(fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppName, version.AppDescription)).
		AddField("Repository", "https://github.com/dohun0310/Discord-Music-Bot").
		AddField("Release", fmt.Sprintf("%s %s (Go %s)", version.AppVersion, buildDate, goVer)).
		MessageEmbed
}

func init() {
	command.Register(
		command.ApplyMiddlewares(
			&AboutCommand{},
			command.WithGuildOnly(),
			command.WithCommandLogger(),
		),
	)
}
