package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/command/music"
	"github.com/dohun0310/Discord-Music-Bot/internal/config"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/source_resolver"
	"github.com/dohun0310/Discord-Music-Bot/internal/storage"

	// Core commands self-register on import.
	_ "github.com/dohun0310/Discord-Music-Bot/internal/command/core"
)

// Bot is the Discord runtime: one session, per-guild music sessions and the
// slash command dispatch.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	storage  *storage.Storage
	resolver *source_resolver.SourceResolver
	log      zerolog.Logger

	mu          sync.Mutex
	sessions    map[string]*guildSession
	aloneTimers map[string]*time.Timer
}

// StartBot runs the bot until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, st *storage.Storage, logger zerolog.Logger) error {
	b := &Bot{
		cfg:         cfg,
		storage:     st,
		resolver:    source_resolver.New(cfg.PlaylistMax),
		log:         logger.With().Str("component", "discord").Logger(),
		sessions:    make(map[string]*guildSession),
		aloneTimers: make(map[string]*time.Timer),
	}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	b.registerMusicCommands()

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onGuildDelete)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onVoiceStateUpdate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, cleaning up")
	b.teardownAll()
	return nil
}

// registerMusicCommands wires the /music command into the registry.
func (b *Bot) registerMusicCommands() {
	command.Register(
		command.ApplyMiddlewares(
			&music.MusicCommand{Bot: b, Resolver: b.resolver},
			command.WithGuildOnly(),
			command.WithCommandLogger(),
		),
	)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if err := b.registerCommands(g.ID); err != nil {
			b.log.Error().Err(err).Str("guild", g.ID).Msg("failed to register slash commands")
		}
	}

	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("bot is running")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("joined guild")

	if err := b.registerCommands(g.Guild.ID); err != nil {
		b.log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to register slash commands")
	}
}

func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	b.log.Info().Str("guild", g.ID).Msg("left guild")
	b.destroyPlayer(g.ID, "left guild")
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, ok := command.Get(cmdName)
	if !ok {
		b.log.Warn().Str("command", cmdName).Msg("unknown command")
		return
	}

	ctx := &command.SlashInteractionContext{
		Session: s,
		Event:   i,
		Storage: b.storage,
	}
	if err := cmd.Run(ctx); err != nil {
		b.log.Error().Err(err).Str("command", cmdName).Msg("command failed")
		_ = command.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error running command: %v", err),
		})
	}
}

// teardownAll destroys every guild session on shutdown.
func (b *Bot) teardownAll() {
	b.mu.Lock()
	guilds := make([]string, 0, len(b.sessions))
	for id := range b.sessions {
		guilds = append(guilds, id)
	}
	b.mu.Unlock()

	for _, id := range guilds {
		b.destroyPlayer(id, "shutdown")
	}
}
