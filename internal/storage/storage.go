package storage

import (
	"encoding/json"
	"fmt"

	"github.com/keshon/datastore"
)

const (
	commandHistoryLimit int = 20
	trackHistoryLimit   int = 12
)

// Storage persists per-guild settings and history in a JSON-backed
// key-value store. Keys are guild IDs.
type Storage struct {
	ds *datastore.DataStore
}

// Record is everything the bot remembers about one guild.
type Record struct {
	Volume         *int                   `json:"volume,omitempty"`
	TrackHistory   []TrackHistoryRecord   `json:"track_history"`
	CommandHistory []CommandHistoryRecord `json:"cmd_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// Helper function to get or create a Record for a guild
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		newRecord := &Record{}
		s.ds.Add(guildID, newRecord)
		return newRecord, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	err = json.Unmarshal(jsonData, &record)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}

	if len(record.TrackHistory) > trackHistoryLimit {
		record.TrackHistory = record.TrackHistory[len(record.TrackHistory)-trackHistoryLimit:]
	}
	if len(record.CommandHistory) > commandHistoryLimit {
		record.CommandHistory = record.CommandHistory[len(record.CommandHistory)-commandHistoryLimit:]
	}

	return &record, nil
}
