package storage

import "time"

// TrackHistoryRecord aggregates plays of one track within a guild.
type TrackHistoryRecord struct {
	URL           string        `json:"url"`
	Title         string        `json:"title"`
	Source        string        `json:"source"`
	PlayCount     int           `json:"play_count"`
	TotalDuration time.Duration `json:"total_duration"`
	LastPlayedAt  time.Time     `json:"last_played_at"`
}

// SetGuildVolume remembers the preferred playback volume for a guild.
func (s *Storage) SetGuildVolume(guildID string, volume int) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Volume = &volume
	s.ds.Add(guildID, record)
	return nil
}

// GetGuildVolume returns the stored volume and whether one was ever set.
func (s *Storage) GetGuildVolume(guildID string) (int, bool, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return 0, false, err
	}

	if record.Volume == nil {
		return 0, false, nil
	}
	return *record.Volume, true, nil
}

// AppendTrackToHistory records a finished play. Plays of the same URL are
// merged into one entry; the history keeps the most recent tracks only.
func (s *Storage) AppendTrackToHistory(guildID string, play TrackHistoryRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	merged := play
	if merged.PlayCount == 0 {
		merged.PlayCount = 1
	}
	history := record.TrackHistory[:0]
	for _, entry := range record.TrackHistory {
		if entry.URL == play.URL {
			merged.PlayCount += entry.PlayCount
			merged.TotalDuration += entry.TotalDuration
			continue
		}
		history = append(history, entry)
	}
	history = append(history, merged)

	if len(history) > trackHistoryLimit {
		history = history[len(history)-trackHistoryLimit:]
	}

	record.TrackHistory = history
	s.ds.Add(guildID, record)
	return nil
}

// FetchTrackHistory returns the guild's play history, oldest first.
func (s *Storage) FetchTrackHistory(guildID string) ([]TrackHistoryRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	return record.TrackHistory, nil
}
