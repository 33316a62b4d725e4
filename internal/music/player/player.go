package player

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/stream"
)

// State is the playback state of one guild's player.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Idle"
	}
}

// RepeatMode controls what happens to a track after it finishes.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

// Status labels player events for the announcement layer.
type Status string

const (
	StatusPlaying  Status = "Playing"
	StatusAdded    Status = "Track(s) Added"
	StatusFinished Status = "Track Finished"
	StatusStopped  Status = "Playback Stopped"
	StatusPaused   Status = "Playback Paused"
	StatusResumed  Status = "Playback Resumed"
	StatusIdle     Status = "Queue Drained"
	StatusError    Status = "Error"
)

// Emoji returns the marker used in Discord embeds.
func (s Status) Emoji() string {
	m := map[Status]string{
		StatusPlaying:  "▶️",
		StatusAdded:    "🎶",
		StatusFinished: "✅",
		StatusStopped:  "⏹",
		StatusPaused:   "⏸",
		StatusResumed:  "▶️",
		StatusIdle:     "💤",
		StatusError:    "❌",
	}
	return m[s]
}

// Event is pushed on the player's event channel for every state change.
type Event struct {
	Status Status
	Track  *parsers.Track
	Err    error
}

var (
	ErrNoTrackPlaying  = errors.New("no track is currently playing")
	ErrNoTracksInQueue = errors.New("no tracks in queue")
	ErrNotPaused       = errors.New("playback is not paused")
	ErrInvalidPosition = errors.New("invalid queue position")
)

// Opener turns a track into a PCM stream. Production wiring uses
// stream.AutoOpenStream; tests substitute a fake.
type Opener interface {
	Open(track *parsers.Track) (io.ReadCloser, func(), error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(track *parsers.Track) (io.ReadCloser, func(), error)

func (f OpenerFunc) Open(t *parsers.Track) (io.ReadCloser, func(), error) { return f(t) }

// Sink delivers an open PCM stream into a voice channel.
type Sink interface {
	Connect(channelID string) error
	Stream(r io.ReadCloser, ctl *stream.Controls) error
	Disconnect() error
}

// Options configures a new Player.
type Options struct {
	Volume       int           // initial volume percent
	QueueTimeout time.Duration // 0 disables the idle teardown timer
	Logger       zerolog.Logger
}

// Player owns one guild's queue and playback state. All transitions are
// serialized on its mutex; the streaming goroutine reports completion
// through finished(), carrying a generation number so that skip and stop
// can invalidate stale callbacks.
type Player struct {
	mu sync.Mutex

	guildID       string
	channelID     string // voice channel for the current session
	textChannelID string // where announcements go

	state   State
	queue   Queue
	current *parsers.Track
	repeat  RepeatMode
	volume  int

	startedAt  time.Time
	pausedFor  time.Duration
	pauseStart time.Time

	opener Opener
	sink   Sink
	log    zerolog.Logger

	gen uint64
	ctl *stream.Controls

	queueTimeout  time.Duration
	idleTimer     *time.Timer
	onIdleTimeout func()

	events chan Event
}

// New builds an idle player for a guild.
func New(guildID string, opener Opener, sink Sink, opts Options) *Player {
	vol := opts.Volume
	if vol < 0 || vol > 200 {
		vol = 100
	}
	return &Player{
		guildID:      guildID,
		state:        StateIdle,
		volume:       vol,
		opener:       opener,
		sink:         sink,
		log:          opts.Logger.With().Str("component", "player").Str("guild", guildID).Logger(),
		queueTimeout: opts.QueueTimeout,
		events:       make(chan Event, 16),
	}
}

// Events returns the player's announcement channel. Events are dropped,
// not blocked on, when the consumer lags.
func (p *Player) Events() <-chan Event { return p.events }

// SetOnIdleTimeout registers the teardown hook fired when the queue stays
// empty past the configured timeout. Called without the player lock held.
func (p *Player) SetOnIdleTimeout(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onIdleTimeout = fn
}

// SetTextChannel remembers where announcements for this guild should go.
func (p *Player) SetTextChannel(channelID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.textChannelID = channelID
}

// TextChannel returns the current announcement channel.
func (p *Player) TextChannel() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.textChannelID
}

// GuildID returns the owning guild.
func (p *Player) GuildID() string { return p.guildID }

// Enqueue appends tracks and starts playback when idle. channelID is the
// voice channel of the requesting user.
func (p *Player) Enqueue(channelID string, tracks ...*parsers.Track) error {
	if len(tracks) == 0 {
		return errors.New("no tracks to enqueue")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue.Push(tracks...)
	p.channelID = channelID
	p.stopIdleTimerLocked()

	p.log.Info().Int("added", len(tracks)).Int("queue_len", p.queue.Len()).Msg("tracks enqueued")

	if p.state == StateIdle {
		return p.playNextLocked()
	}

	p.emit(Event{Status: StatusAdded, Track: tracks[0]})
	return nil
}

// Skip drops the current track and advances. Repeat-one is switched off so
// the skip actually moves forward.
func (p *Player) Skip() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNoTrackPlaying
	}

	if p.repeat == RepeatOne {
		p.repeat = RepeatOff
	}

	p.log.Info().Str("track", p.current.DisplayTitle()).Msg("skipping track")

	p.cancelPlaybackLocked()
	return p.playNextLocked()
}

// Stop cancels playback, clears the queue and goes idle. Calling Stop on an
// idle player is a no-op.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	dropped := p.queue.Clear()
	p.repeat = RepeatOff

	if p.current == nil && p.state == StateIdle {
		return nil
	}

	p.log.Info().Int("dropped", dropped).Msg("stopping playback")

	p.cancelPlaybackLocked()
	p.toIdleLocked()
	p.emit(Event{Status: StatusStopped})
	return nil
}

// Pause suspends frame delivery without losing the stream.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePlaying || p.ctl == nil {
		return ErrNoTrackPlaying
	}

	p.ctl.SetPaused(true)
	p.state = StatePaused
	p.pauseStart = time.Now()
	p.emit(Event{Status: StatusPaused, Track: p.current})
	return nil
}

// Resume continues a paused track.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePaused || p.ctl == nil {
		return ErrNotPaused
	}

	p.ctl.SetPaused(false)
	p.state = StatePlaying
	p.pausedFor += time.Since(p.pauseStart)
	p.emit(Event{Status: StatusResumed, Track: p.current})
	return nil
}

// SetVolume clamps to 0-200 percent and applies it to the live stream.
// Returns the effective volume.
func (p *Player) SetVolume(v int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 200 {
		v = 200
	}
	p.volume = v
	if p.ctl != nil {
		p.ctl.SetVolume(v)
	}
	return p.volume
}

// Volume returns the current volume percent.
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// CycleRepeat advances off -> all -> one -> off and returns the new mode.
func (p *Player) CycleRepeat() RepeatMode {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.repeat {
	case RepeatOff:
		p.repeat = RepeatAll
	case RepeatAll:
		p.repeat = RepeatOne
	default:
		p.repeat = RepeatOff
	}
	return p.repeat
}

// Repeat returns the current repeat mode.
func (p *Player) Repeat() RepeatMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repeat
}

// Shuffle permutes the pending queue. Returns how many tracks moved.
func (p *Player) Shuffle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Shuffle()
}

// Remove drops the track at a 1-based queue position.
func (p *Player) Remove(pos int) (*parsers.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.queue.Remove(pos)
	if !ok {
		return nil, ErrInvalidPosition
	}
	return t, nil
}

// ClearQueue empties the pending queue, leaving the current track playing.
func (p *Player) ClearQueue() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Clear()
}

// Queue returns a copy of the pending tracks.
func (p *Player) Queue() []*parsers.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Items()
}

// Current returns the playing track, or nil when idle.
func (p *Player) Current() *parsers.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// State returns the playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Elapsed returns how far into the current track playback is, excluding
// paused time.
func (p *Player) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return 0
	}

	elapsed := time.Since(p.startedAt) - p.pausedFor
	if p.state == StatePaused {
		elapsed -= time.Since(p.pauseStart)
	}
	if d := p.current.Duration; d > 0 && elapsed > d {
		return d
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Teardown cancels playback and timers without emitting events. Used when
// the guild-level registry destroys the player.
func (p *Player) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue.Clear()
	p.cancelPlaybackLocked()
	p.stopIdleTimerLocked()
	p.state = StateIdle
}

// cancelPlaybackLocked stops the live stream and invalidates its completion
// callback.
func (p *Player) cancelPlaybackLocked() {
	if p.ctl != nil {
		p.ctl.Cancel()
		p.ctl = nil
	}
	p.gen++
	p.current = nil
}

// playNextLocked pops tracks until one starts. A track that fails to open
// is logged and skipped; an empty queue parks the player idle.
func (p *Player) playNextLocked() error {
	var firstErr error

	for {
		t, ok := p.queue.Pop()
		if !ok {
			p.toIdleLocked()
			p.emit(Event{Status: StatusIdle})
			if firstErr != nil {
				return firstErr
			}
			return nil
		}

		err := p.startTrackLocked(t)
		if err == nil {
			return nil
		}

		// Skip-and-continue: a broken track must not wedge the queue.
		p.log.Error().Err(err).Str("track", t.DisplayTitle()).Msg("failed to start track, trying next")
		p.emit(Event{Status: StatusError, Track: t, Err: err})
		if firstErr == nil {
			firstErr = err
		}
	}
}

// startTrackLocked opens the stream, joins voice and launches the playback
// goroutine.
func (p *Player) startTrackLocked(t *parsers.Track) error {
	r, cleanup, err := p.opener.Open(t)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := p.sink.Connect(p.channelID); err != nil {
		cleanup()
		return fmt.Errorf("failed to connect voice: %w", err)
	}

	p.gen++
	gen := p.gen
	ctl := stream.NewControls(p.volume)
	p.ctl = ctl
	p.current = t
	p.state = StatePlaying
	p.startedAt = time.Now()
	p.pausedFor = 0
	p.stopIdleTimerLocked()

	p.log.Info().Str("track", t.DisplayTitle()).Str("parser", t.CurrentParser).Msg("now playing")
	p.emit(Event{Status: StatusPlaying, Track: t})

	go func() {
		streamErr := p.sink.Stream(r, ctl)
		cleanup()
		p.finished(gen, streamErr)
	}()

	return nil
}

// finished is the completion path shared by natural track end and stream
// errors. Stale generations (skipped or stopped tracks) are ignored.
func (p *Player) finished(gen uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return
	}

	t := p.current
	p.current = nil
	p.ctl = nil

	if err != nil {
		p.log.Error().Err(err).Str("track", t.DisplayTitle()).Msg("playback ended with error")
		p.emit(Event{Status: StatusError, Track: t, Err: err})
	} else {
		p.log.Info().Str("track", t.DisplayTitle()).Msg("track finished")
		p.emit(Event{Status: StatusFinished, Track: t})
	}

	switch p.repeat {
	case RepeatOne:
		p.queue.PushFront(t)
	case RepeatAll:
		p.queue.Push(t)
	}

	_ = p.playNextLocked()
}

// toIdleLocked parks the player and arms the queue-empty teardown timer.
func (p *Player) toIdleLocked() {
	p.state = StateIdle
	p.current = nil
	p.ctl = nil
	p.armIdleTimerLocked()
}

func (p *Player) armIdleTimerLocked() {
	if p.queueTimeout <= 0 {
		return
	}
	p.stopIdleTimerLocked()
	p.idleTimer = time.AfterFunc(p.queueTimeout, p.handleIdleTimeout)
}

func (p *Player) stopIdleTimerLocked() {
	if p.idleTimer != nil {
		p.idleTimer.Stop()
		p.idleTimer = nil
	}
}

func (p *Player) handleIdleTimeout() {
	p.mu.Lock()
	if p.state != StateIdle || p.queue.Len() > 0 {
		p.mu.Unlock()
		return
	}
	fn := p.onIdleTimeout
	p.mu.Unlock()

	p.log.Info().Dur("timeout", p.queueTimeout).Msg("queue stayed empty, tearing down")
	if fn != nil {
		fn()
	}
}

// emit pushes an event without blocking; a full channel drops the event.
func (p *Player) emit(ev Event) {
	select {
	case p.events <- ev:
	default:
		p.log.Warn().Str("status", string(ev.Status)).Msg("event dropped, channel full")
	}
}
