package discord

import (
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/player"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/stream"
	"github.com/dohun0310/Discord-Music-Bot/internal/storage"
)

// guildSession bundles one guild's player with its voice sink and the
// announcement consumer's stop channel.
type guildSession struct {
	player *player.Player
	sink   *stream.DiscordSink
	done   chan struct{}
}

// autoOpener adapts the parser fallback chain to the player's Opener.
type autoOpener struct{}

func (autoOpener) Open(t *parsers.Track) (io.ReadCloser, func(), error) {
	s, cleanup, err := stream.AutoOpenStream(t)
	if err != nil {
		return nil, nil, err
	}
	return s, cleanup, nil
}

// GetOrCreatePlayer returns the guild's player, building one on first use.
func (b *Bot) GetOrCreatePlayer(guildID string) *player.Player {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gs, ok := b.sessions[guildID]; ok {
		return gs.player
	}

	volume := b.cfg.DefaultVolume
	if v, ok, err := b.storage.GetGuildVolume(guildID); err == nil && ok {
		volume = v
	}

	sink := stream.NewDiscordSink(b.dg, guildID)
	p := player.New(guildID, autoOpener{}, sink, player.Options{
		Volume:       volume,
		QueueTimeout: b.cfg.QueueTimeout,
		Logger:       b.log,
	})
	p.SetOnIdleTimeout(func() {
		b.destroyPlayer(guildID, "queue stayed empty")
	})

	gs := &guildSession{player: p, sink: sink, done: make(chan struct{})}
	b.sessions[guildID] = gs

	go b.announceLoop(guildID, gs)
	return p
}

// destroyPlayer tears down a guild's session: playback, voice connection and
// the announcement consumer.
func (b *Bot) destroyPlayer(guildID, reason string) {
	b.mu.Lock()
	gs, ok := b.sessions[guildID]
	delete(b.sessions, guildID)
	if t := b.aloneTimers[guildID]; t != nil {
		t.Stop()
		delete(b.aloneTimers, guildID)
	}
	b.mu.Unlock()

	if !ok {
		return
	}

	close(gs.done)
	gs.player.Teardown()
	if err := gs.sink.Disconnect(); err != nil {
		b.log.Warn().Err(err).Str("guild", guildID).Msg("failed to disconnect voice")
	}

	b.log.Info().Str("guild", guildID).Str("reason", reason).Msg("player destroyed")
}

// announceLoop forwards player events to the guild's text channel.
func (b *Bot) announceLoop(guildID string, gs *guildSession) {
	for {
		select {
		case <-gs.done:
			return
		case ev := <-gs.player.Events():
			b.handlePlayerEvent(guildID, gs.player, ev)
		}
	}
}

func (b *Bot) handlePlayerEvent(guildID string, p *player.Player, ev player.Event) {
	channelID := p.TextChannel()

	switch ev.Status {
	case player.StatusPlaying:
		if ev.Track == nil {
			return
		}
		b.recordPlay(guildID, ev.Track)
		if channelID == "" {
			return
		}
		_ = command.MessageEmbed(b.dg, channelID, &discordgo.MessageEmbed{
			Title:       ev.Status.Emoji() + " Now Playing",
			Description: trackDescription(ev.Track),
		})

	case player.StatusError:
		if channelID == "" {
			return
		}
		desc := "Playback failed."
		if ev.Track != nil {
			desc = fmt.Sprintf("Failed to play %s", trackDescription(ev.Track))
		}
		if ev.Err != nil {
			desc += fmt.Sprintf("\n\n**Error:** %v", ev.Err)
		}
		_ = command.MessageEmbed(b.dg, channelID, &discordgo.MessageEmbed{
			Title:       ev.Status.Emoji() + " Error",
			Description: desc,
		})

	case player.StatusIdle:
		if channelID == "" {
			return
		}
		_ = command.MessageEmbed(b.dg, channelID, &discordgo.MessageEmbed{
			Description: ev.Status.Emoji() + " Queue finished. Add more with `/music play`.",
		})
	}
}

// recordPlay appends the track to the guild's play history.
func (b *Bot) recordPlay(guildID string, t *parsers.Track) {
	rec := storage.TrackHistoryRecord{
		URL:           t.URL,
		Title:         t.DisplayTitle(),
		Source:        t.SourceInfo.SourceName,
		TotalDuration: t.Duration,
		LastPlayedAt:  time.Now(),
	}
	if err := b.storage.AppendTrackToHistory(guildID, rec); err != nil {
		b.log.Warn().Err(err).Str("guild", guildID).Msg("failed to record play history")
	}
}

func trackDescription(t *parsers.Track) string {
	switch {
	case t.Title != "" && t.URL != "":
		return fmt.Sprintf("🎶 [%s](%s)", t.Title, t.URL)
	case t.Title != "":
		return "🎶 " + t.Title
	case t.URL != "":
		return "🎶 " + t.URL
	default:
		return "🎶 Unknown track"
	}
}
