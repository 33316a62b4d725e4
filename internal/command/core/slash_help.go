package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/version"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Group() string       { return "core" }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: buildHelpByCategory(),
	}
	return command.RespondEmbedEphemeral(context.Session, context.Event, embed)
}

func buildHelpByCategory() string {
	all := command.All()

	categoryMap := make(map[string][]command.Command)
	for _, cmd := range all {
		cat := cmd.Category()
		categoryMap[cat] = append(categoryMap[cat], cmd)
	}

	var sortedCats []string
	for cat := range categoryMap {
		sortedCats = append(sortedCats, cat)
	}
	sort.Strings(sortedCats)

	var sb strings.Builder
	for _, cat := range sortedCats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		cmds := categoryMap[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
		for _, cmd := range cmds {
			sb.WriteString(fmt.Sprintf("`/%s` - %s\n", cmd.Name(), cmd.Description()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func init() {
	command.Register(
		command.ApplyMiddlewares(
			&HelpCommand{},
			command.WithGuildOnly(),
			command.WithCommandLogger(),
		),
	)
}
