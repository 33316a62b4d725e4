package player

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/stream"
)

// fakeStream stands in for an opened PCM stream. The test completes it by
// sending the terminal error (nil for a natural end) on finish.
type fakeStream struct {
	finish chan error
}

func (f *fakeStream) Read(p []byte) (int, error) { return 0, io.EOF }
func (f *fakeStream) Close() error               { return nil }

type fakeOpener struct {
	mu       sync.Mutex
	streams  map[string]*fakeStream
	opens    map[string]int
	failures map[string]error
	cleanups int
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{
		streams:  make(map[string]*fakeStream),
		opens:    make(map[string]int),
		failures: make(map[string]error),
	}
}

func (o *fakeOpener) Open(t *parsers.Track) (io.ReadCloser, func(), error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.opens[t.Title]++
	if err, ok := o.failures[t.Title]; ok {
		return nil, nil, err
	}

	fs := &fakeStream{finish: make(chan error, 1)}
	o.streams[t.Title] = fs
	cleanup := func() {
		o.mu.Lock()
		o.cleanups++
		o.mu.Unlock()
	}
	return fs, cleanup, nil
}

// finish ends the stream opened for the named track.
func (o *fakeOpener) finish(t *testing.T, title string, err error) {
	t.Helper()
	o.mu.Lock()
	fs := o.streams[title]
	o.mu.Unlock()
	if fs == nil {
		t.Fatalf("no stream was opened for %q", title)
	}
	fs.finish <- err
}

func (o *fakeOpener) openCount(title string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens[title]
}

type fakeSink struct {
	mu          sync.Mutex
	connectErr  error
	connects    []string
	disconnects int
}

func (s *fakeSink) Connect(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connects = append(s.connects, channelID)
	return nil
}

func (s *fakeSink) Stream(r io.ReadCloser, ctl *stream.Controls) error {
	fs := r.(*fakeStream)
	select {
	case <-ctl.Done():
		return nil
	case err := <-fs.finish:
		return err
	}
}

func (s *fakeSink) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnects++
	return nil
}

func newTestPlayer(t *testing.T, opts Options) (*Player, *fakeOpener, *fakeSink) {
	t.Helper()
	opener := newFakeOpener()
	sink := &fakeSink{}
	opts.Logger = zerolog.Nop()
	p := New("guild-1", opener, sink, opts)
	t.Cleanup(p.Teardown)
	return p, opener, sink
}

func waitFor(t *testing.T, desc string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", desc)
}

func nextEvent(t *testing.T, p *Player) Event {
	t.Helper()
	select {
	case ev := <-p.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPlayer_EnqueueStartsPlaybackWhenIdle(t *testing.T) {
	p, _, sink := newTestPlayer(t, Options{Volume: 100})
	tracks := makeTracks(1)

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	if p.State() != StatePlaying {
		t.Errorf("state = %v, expected Playing", p.State())
	}
	if cur := p.Current(); cur != tracks[0] {
		t.Errorf("current = %v, expected the enqueued track", cur)
	}
	if len(p.Queue()) != 0 {
		t.Errorf("queue has %d pending tracks, expected 0", len(p.Queue()))
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.connects) != 1 || sink.connects[0] != "vc-1" {
		t.Errorf("sink connects = %v, expected [vc-1]", sink.connects)
	}
}

// Walks the enqueue/skip/finish lifecycle: three tracks play in FIFO order,
// skip moves to the next immediately, and draining the queue parks idle.
func TestPlayer_QueueLifecycle(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{Volume: 100})
	tracks := makeTracks(3)
	a, b, c := tracks[0], tracks[1], tracks[2]

	if err := p.Enqueue("vc-1", a, b, c); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if p.Current() != a {
		t.Fatalf("current = %v, expected first track", p.Current())
	}
	if q := p.Queue(); len(q) != 2 || q[0] != b || q[1] != c {
		t.Fatalf("pending = %v, expected [b c]", q)
	}

	// Skip is synchronous: the next track is live when it returns.
	if err := p.Skip(); err != nil {
		t.Fatalf("Skip() error: %v", err)
	}
	if p.Current() != b {
		t.Errorf("current after skip = %v, expected second track", p.Current())
	}
	if q := p.Queue(); len(q) != 1 || q[0] != c {
		t.Errorf("pending after skip = %v, expected [c]", q)
	}

	opener.finish(t, b.Title, nil)
	waitFor(t, "third track to start", func() bool { return p.Current() == c })

	opener.finish(t, c.Title, nil)
	waitFor(t, "player to go idle", func() bool { return p.State() == StateIdle })
	if p.Current() != nil {
		t.Errorf("current after drain = %v, expected nil", p.Current())
	}
	if len(p.Queue()) != 0 {
		t.Errorf("queue not empty after drain")
	}
}

func TestPlayer_SkipWithEmptyQueueGoesIdle(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(1)

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if err := p.Skip(); err != nil {
		t.Fatalf("Skip() error: %v", err)
	}
	if p.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", p.State())
	}
}

func TestPlayer_SkipWhenIdle(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})

	if err := p.Skip(); !errors.Is(err, ErrNoTrackPlaying) {
		t.Errorf("Skip() on idle player = %v, expected ErrNoTrackPlaying", err)
	}
}

func TestPlayer_StopClearsEverything(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(3)

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	if p.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", p.State())
	}
	if p.Current() != nil {
		t.Errorf("current = %v, expected nil", p.Current())
	}
	if len(p.Queue()) != 0 {
		t.Errorf("queue not cleared by stop")
	}

	// The player accepts new work after a stop.
	if err := p.Enqueue("vc-1", makeTracks(1)...); err != nil {
		t.Fatalf("Enqueue() after stop error: %v", err)
	}
	if p.State() != StatePlaying {
		t.Errorf("state after re-enqueue = %v, expected Playing", p.State())
	}
}

func TestPlayer_StopWhenIdleIsNoOp(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})

	if err := p.Stop(); err != nil {
		t.Errorf("Stop() on idle player = %v, expected nil", err)
	}
	if p.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", p.State())
	}
	select {
	case ev := <-p.Events():
		t.Errorf("idle stop emitted %v", ev.Status)
	default:
	}
}

func TestPlayer_PauseResume(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(1)

	if err := p.Pause(); !errors.Is(err, ErrNoTrackPlaying) {
		t.Errorf("Pause() when idle = %v, expected ErrNoTrackPlaying", err)
	}
	if err := p.Resume(); !errors.Is(err, ErrNotPaused) {
		t.Errorf("Resume() when idle = %v, expected ErrNotPaused", err)
	}

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	if err := p.Pause(); err != nil {
		t.Fatalf("Pause() error: %v", err)
	}
	if p.State() != StatePaused {
		t.Errorf("state = %v, expected Paused", p.State())
	}
	if err := p.Pause(); !errors.Is(err, ErrNoTrackPlaying) {
		t.Errorf("double Pause() = %v, expected ErrNoTrackPlaying", err)
	}

	if err := p.Resume(); err != nil {
		t.Fatalf("Resume() error: %v", err)
	}
	if p.State() != StatePlaying {
		t.Errorf("state = %v, expected Playing", p.State())
	}
}

func TestPlayer_StreamErrorAdvancesToNext(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(2)

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	opener.finish(t, tracks[0].Title, errors.New("connection reset"))
	waitFor(t, "second track to start", func() bool { return p.Current() == tracks[1] })
}

func TestPlayer_OpenFailureSkipsToNext(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(2)
	opener.failures[tracks[0].Title] = errors.New("video unavailable")

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if p.Current() != tracks[1] {
		t.Errorf("current = %v, expected the second track", p.Current())
	}
	if p.State() != StatePlaying {
		t.Errorf("state = %v, expected Playing", p.State())
	}
}

func TestPlayer_AllTracksFailingGoesIdle(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(2)
	broken := errors.New("video unavailable")
	opener.failures[tracks[0].Title] = broken
	opener.failures[tracks[1].Title] = broken

	err := p.Enqueue("vc-1", tracks...)
	if !errors.Is(err, broken) {
		t.Errorf("Enqueue() = %v, expected the open error", err)
	}
	if p.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", p.State())
	}
}

func TestPlayer_ConnectFailure(t *testing.T) {
	p, opener, sink := newTestPlayer(t, Options{})
	sink.connectErr = errors.New("voice gateway unreachable")

	err := p.Enqueue("vc-1", makeTracks(1)...)
	if err == nil {
		t.Fatal("Enqueue() succeeded despite connect failure")
	}
	if p.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", p.State())
	}

	opener.mu.Lock()
	defer opener.mu.Unlock()
	if opener.cleanups != 1 {
		t.Errorf("cleanups = %d, expected the opened stream to be released", opener.cleanups)
	}
}

func TestPlayer_RepeatOneReplaysTrack(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(1)

	p.CycleRepeat() // all
	p.CycleRepeat() // one

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	opener.finish(t, tracks[0].Title, nil)
	waitFor(t, "track to replay", func() bool { return opener.openCount(tracks[0].Title) == 2 })
	if p.Current() != tracks[0] {
		t.Errorf("current = %v, expected the same track again", p.Current())
	}
}

func TestPlayer_RepeatAllRequeuesAtTail(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(2)

	p.CycleRepeat() // all

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	opener.finish(t, tracks[0].Title, nil)
	waitFor(t, "second track to start", func() bool { return p.Current() == tracks[1] })

	q := p.Queue()
	if len(q) != 1 || q[0] != tracks[0] {
		t.Errorf("pending = %v, expected the finished track requeued", q)
	}
}

func TestPlayer_SkipDisablesRepeatOne(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(2)

	p.CycleRepeat()
	p.CycleRepeat()

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if err := p.Skip(); err != nil {
		t.Fatalf("Skip() error: %v", err)
	}

	if p.Repeat() != RepeatOff {
		t.Errorf("repeat = %v, expected off after skip", p.Repeat())
	}
	if p.Current() != tracks[1] {
		t.Errorf("current = %v, expected the next track", p.Current())
	}
}

func TestPlayer_VolumeClamping(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{Volume: 100})

	if got := p.SetVolume(300); got != 200 {
		t.Errorf("SetVolume(300) = %d, expected 200", got)
	}
	if got := p.SetVolume(-5); got != 0 {
		t.Errorf("SetVolume(-5) = %d, expected 0", got)
	}
	if got := p.SetVolume(85); got != 85 || p.Volume() != 85 {
		t.Errorf("SetVolume(85) = %d, Volume() = %d", got, p.Volume())
	}
}

func TestPlayer_OptionsVolumeOutOfRangeDefaults(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{Volume: 999})
	if p.Volume() != 100 {
		t.Errorf("Volume() = %d, expected the 100 default", p.Volume())
	}
}

func TestPlayer_RemoveAndClearLeaveCurrentPlaying(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(3)

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	removed, err := p.Remove(1)
	if err != nil {
		t.Fatalf("Remove(1) error: %v", err)
	}
	if removed != tracks[1] {
		t.Errorf("Remove(1) = %v, expected the first pending track", removed)
	}
	if _, err := p.Remove(5); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Remove(5) = %v, expected ErrInvalidPosition", err)
	}

	if n := p.ClearQueue(); n != 1 {
		t.Errorf("ClearQueue() = %d, expected 1", n)
	}
	if p.State() != StatePlaying || p.Current() != tracks[0] {
		t.Errorf("clearing the queue disturbed the current track")
	}
}

func TestPlayer_QueueTimeoutFiresWhenIdle(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{QueueTimeout: 30 * time.Millisecond})
	fired := make(chan struct{})
	p.SetOnIdleTimeout(func() { close(fired) })

	tracks := makeTracks(1)
	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	opener.finish(t, tracks[0].Title, nil)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("idle timeout never fired")
	}
}

func TestPlayer_QueueTimeoutSuppressedWhilePlaying(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{QueueTimeout: 20 * time.Millisecond})
	fired := make(chan struct{})
	p.SetOnIdleTimeout(func() { close(fired) })

	if err := p.Enqueue("vc-1", makeTracks(1)...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	select {
	case <-fired:
		t.Fatal("idle timeout fired while a track was playing")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestPlayer_EventsAnnounceTransitions(t *testing.T) {
	p, opener, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(2)

	if err := p.Enqueue("vc-1", tracks[0]); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if ev := nextEvent(t, p); ev.Status != StatusPlaying || ev.Track != tracks[0] {
		t.Errorf("event = %v %v, expected Playing for the first track", ev.Status, ev.Track)
	}

	if err := p.Enqueue("vc-1", tracks[1]); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if ev := nextEvent(t, p); ev.Status != StatusAdded {
		t.Errorf("event = %v, expected the added announcement", ev.Status)
	}

	opener.finish(t, tracks[0].Title, nil)
	if ev := nextEvent(t, p); ev.Status != StatusFinished {
		t.Errorf("event = %v, expected Finished", ev.Status)
	}
	if ev := nextEvent(t, p); ev.Status != StatusPlaying || ev.Track != tracks[1] {
		t.Errorf("event = %v, expected Playing for the second track", ev.Status)
	}
}

func TestPlayer_ElapsedExcludesPausedTime(t *testing.T) {
	p, _, _ := newTestPlayer(t, Options{})
	tracks := makeTracks(1)
	tracks[0].Duration = time.Hour

	if err := p.Enqueue("vc-1", tracks...); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause() error: %v", err)
	}
	atPause := p.Elapsed()

	time.Sleep(40 * time.Millisecond)
	drift := p.Elapsed() - atPause
	if drift < 0 {
		drift = -drift
	}
	if drift > 10*time.Millisecond {
		t.Errorf("elapsed advanced by %v while paused", drift)
	}
}
