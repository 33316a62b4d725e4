package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/bot"
)

// FindUserVoiceState finds the voice state of a user.
func (b *Bot) FindUserVoiceState(guildID, userID string) (*bot.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &bot.VoiceState{
				ChannelID: vs.ChannelID,
				UserID:    vs.UserID,
			}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}

// onVoiceStateUpdate watches for the bot being kicked from voice and for the
// channel emptying out.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if s.State.User == nil {
		return
	}

	// The bot itself was moved or disconnected.
	if vs.UserID == s.State.User.ID {
		if vs.ChannelID == "" {
			b.destroyPlayer(vs.GuildID, "disconnected from voice")
		}
		return
	}

	b.checkListeners(vs.GuildID)
}

// checkListeners arms the alone-in-channel teardown timer when no humans are
// left with the bot, and disarms it when someone comes back.
func (b *Bot) checkListeners(guildID string) {
	b.mu.Lock()
	gs, ok := b.sessions[guildID]
	b.mu.Unlock()
	if !ok {
		return
	}

	channelID := gs.sink.ChannelID()
	if channelID == "" {
		return
	}

	if b.countListeners(guildID, channelID) > 0 {
		b.stopAloneTimer(guildID)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, armed := b.aloneTimers[guildID]; armed {
		return
	}
	b.log.Info().Str("guild", guildID).Dur("timeout", b.cfg.IdleTimeout).Msg("alone in voice channel")
	b.aloneTimers[guildID] = time.AfterFunc(b.cfg.IdleTimeout, func() {
		b.onAloneTimeout(guildID)
	})
}

func (b *Bot) onAloneTimeout(guildID string) {
	b.mu.Lock()
	gs, ok := b.sessions[guildID]
	delete(b.aloneTimers, guildID)
	b.mu.Unlock()
	if !ok {
		return
	}

	// Someone may have joined while the timer was running.
	channelID := gs.sink.ChannelID()
	if channelID == "" || b.countListeners(guildID, channelID) > 0 {
		return
	}

	b.destroyPlayer(guildID, "no listeners left")
}

func (b *Bot) stopAloneTimer(guildID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t := b.aloneTimers[guildID]; t != nil {
		t.Stop()
		delete(b.aloneTimers, guildID)
	}
}

// countListeners returns how many users besides the bot sit in the channel.
func (b *Bot) countListeners(guildID, channelID string) int {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return 0
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID && vs.UserID != b.dg.State.User.ID {
			count++
		}
	}
	return count
}
