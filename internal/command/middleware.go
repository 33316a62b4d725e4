package command

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithGuildOnly rejects invocations that arrive outside a guild (DMs).
func WithGuildOnly() Middleware {
	return func(c Command) Command {
		return &wrappedCommand{
			Command: c,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashInteractionContext)
				if ok && v.Event.GuildID == "" {
					return RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{
						Description: "This command only works inside a server.",
					})
				}
				return c.Run(ctx)
			},
		}
	}
}

// WithCommandLogger records each invocation in the guild's command history.
func WithCommandLogger() Middleware {
	return func(c Command) Command {
		return &wrappedCommand{
			Command: c,
			wrap: func(ctx interface{}) error {
				err := c.Run(ctx)

				if v, ok := ctx.(*SlashInteractionContext); ok && v.Storage != nil {
					if logErr := LogCommand(v.Session, v.Storage, v.Event, c.Name()); logErr != nil {
						log.Warn().Err(logErr).Str("command", c.Name()).Msg("failed to log command")
					}
				}
				return err
			},
		}
	}
}
