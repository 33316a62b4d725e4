package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/storage"
)

// Command is the contract every bot command implements. Run receives one of
// the context types below depending on how the command was invoked.
type Command interface {
	Name() string
	Description() string
	Group() string
	Category() string
	Run(ctx interface{}) error
}

// SlashProvider is implemented by commands registered as slash commands.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// SlashInteractionContext is what the runtime passes when executing a slash
// command.
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}
