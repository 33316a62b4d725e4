package bot

import "github.com/dohun0310/Discord-Music-Bot/internal/music/player"

// BotVoice is the slice of the bot the music commands need: per-guild
// players and voice state lookups.
type BotVoice interface {
	GetOrCreatePlayer(guildID string) *player.Player
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}

// VoiceState holds minimal voice channel state for a user.
type VoiceState struct {
	ChannelID string
	UserID    string
}
