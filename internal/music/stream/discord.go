package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

// DiscordSink encodes PCM to opus and pushes it into a guild's voice
// connection.
type DiscordSink struct {
	dg      *discordgo.Session
	guildID string

	mu sync.Mutex
	vc *discordgo.VoiceConnection
}

// NewDiscordSink builds a sink for one guild.
func NewDiscordSink(dg *discordgo.Session, guildID string) *DiscordSink {
	return &DiscordSink{dg: dg, guildID: guildID}
}

// Connect joins the voice channel, reusing an existing connection when the
// bot is already there.
func (s *DiscordSink) Connect(channelID string) error {
	if channelID == "" {
		return errors.New("voice channel ID is not set")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vc != nil && s.vc.ChannelID == channelID {
		return nil
	}

	vc, err := s.dg.ChannelVoiceJoin(s.guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}
	s.vc = vc
	return nil
}

// ChannelID returns the connected voice channel, or "".
func (s *DiscordSink) ChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vc == nil {
		return ""
	}
	return s.vc.ChannelID
}

// Stream blocks until the PCM source ends or ctl is cancelled.
func (s *DiscordSink) Stream(r io.ReadCloser, ctl *Controls) error {
	s.mu.Lock()
	vc := s.vc
	s.mu.Unlock()

	if vc == nil {
		return errors.New("not connected to a voice channel")
	}

	vc.Speaking(true)
	defer vc.Speaking(false)

	return StreamToDiscord(r, ctl, vc)
}

// Disconnect leaves the voice channel.
func (s *DiscordSink) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vc == nil {
		return nil
	}
	err := s.vc.Disconnect()
	s.vc = nil
	return err
}

// StreamToDiscord reads s16le PCM frames, applies volume, encodes to opus
// and sends them to the voice connection. Returns nil on natural end of
// stream or cancellation.
func StreamToDiscord(r io.ReadCloser, ctl *Controls, vc *discordgo.VoiceConnection) error {
	encoder, err := gopus.NewEncoder(parsers.SampleRate, parsers.Channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	defer r.Close()

	pcmBuf := make([]byte, parsers.FrameSize*parsers.Channels*2)
	intBuf := make([]int16, parsers.FrameSize*parsers.Channels)

	for {
		select {
		case <-ctl.Done():
			return nil
		default:
		}

		if ctl.Paused() {
			time.Sleep(20 * time.Millisecond)
			continue
		}

		if _, err := io.ReadFull(r, pcmBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}

		vol := int32(ctl.Volume())
		for i := range intBuf {
			sample := int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
			intBuf[i] = scaleSample(sample, vol)
		}

		opus, err := encoder.Encode(intBuf, parsers.FrameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}

		select {
		case <-ctl.Done():
			return nil
		case vc.OpusSend <- opus:
		}
	}
}

// scaleSample applies a percent volume with clipping.
func scaleSample(s int16, volPercent int32) int16 {
	v := int32(s) * volPercent / 100
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
