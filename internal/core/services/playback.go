package services

import (
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"

	"go.uber.org/zap"
)

// PlaybackController enforces uninterruptible, looping playback of the
// selected stream. It is pure policy over a ports.MediaSurface: looping
// at end of media, auto-resume after an external pause, static fallback
// on error. A failed media load is not retried; recovery happens only
// when the stream is re-selected.
type PlaybackController struct {
	mu sync.Mutex

	surface ports.MediaSurface
	sched   ports.Scheduler
	logger  *zap.Logger

	resumeDelay       time.Duration
	controlsHideDelay time.Duration

	stream   *domain.Stream
	fallback bool
	ended    bool

	muted      bool
	volume     float64
	prevVolume float64
	fullscreen bool

	controlsVisible bool

	resumeTimer   ports.TimerHandle
	controlsTimer ports.TimerHandle
}

func NewPlaybackController(surface ports.MediaSurface, sched ports.Scheduler, resumeDelay, controlsHideDelay time.Duration, logger *zap.Logger) *PlaybackController {
	if resumeDelay <= 0 {
		resumeDelay = 100 * time.Millisecond
	}
	if controlsHideDelay <= 0 {
		controlsHideDelay = 4 * time.Second
	}
	return &PlaybackController{
		surface:           surface,
		sched:             sched,
		logger:            logger,
		resumeDelay:       resumeDelay,
		controlsHideDelay: controlsHideDelay,
		volume:            1.0,
		prevVolume:        1.0,
	}
}

// Load attaches a stream and starts playback. Streams without a media
// URL go straight to the fallback presentation.
func (p *PlaybackController) Load(stream domain.Stream) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelTimersLocked()
	s := stream
	p.stream = &s
	p.ended = false
	p.fallback = false

	if stream.VideoURL == "" {
		p.fallback = true
		p.surface.ShowFallback(stream.Thumbnail)
		return
	}

	p.surface.Load(stream.VideoURL, stream.Thumbnail)
	p.surface.SetLoop(true)
	p.surface.SetMuted(p.muted)
	p.surface.SetVolume(p.volume)
	p.surface.Play()
}

// HandleError switches this stream's presentation to the static
// fallback. Likes, comments and navigation stay operable; no retry.
func (p *PlaybackController) HandleError() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil || p.fallback {
		return
	}
	p.fallback = true
	if p.logger != nil {
		p.logger.Warn("media playback failed, showing fallback",
			zap.String("stream_id", string(p.stream.ID)))
	}
	p.surface.ShowFallback(p.stream.Thumbnail)
}

// HandlePause schedules an automatic resume. Playback is treated as
// never-ending; an external pause sticks only when the media has ended
// by policy.
func (p *PlaybackController) HandlePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil || p.fallback || p.ended {
		return
	}
	if p.resumeTimer != nil {
		p.resumeTimer.Cancel()
	}
	p.resumeTimer = p.sched.After(p.resumeDelay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.stream == nil || p.fallback || p.ended {
			return
		}
		p.surface.Play()
	})
}

// HandleEnded loops the media back around.
func (p *PlaybackController) HandleEnded() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil || p.fallback {
		return
	}
	p.surface.Play()
}

// ToggleMute flips the mute state.
func (p *PlaybackController) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	p.surface.SetMuted(p.muted)
	return p.muted
}

// SetVolume sets the volume in [0, 1]. Volume 0 implies muted;
// unmuting through a non-zero volume restores sound.
func (p *PlaybackController) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if volume > 0 {
		p.prevVolume = volume
	}
	p.volume = volume
	p.surface.SetVolume(volume)

	if volume == 0 && !p.muted {
		p.muted = true
		p.surface.SetMuted(true)
	} else if volume > 0 && p.muted {
		p.muted = false
		p.surface.SetMuted(false)
	}
}

// Volume returns the current volume.
func (p *PlaybackController) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Muted returns the current mute state.
func (p *PlaybackController) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// ToggleFullscreen enters fullscreen when inactive and exits when
// active.
func (p *PlaybackController) ToggleFullscreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fullscreen {
		p.surface.ExitFullscreen()
	} else {
		p.surface.EnterFullscreen()
	}
	p.fullscreen = !p.fullscreen
	return p.fullscreen
}

// Fullscreen reports whether fullscreen is active.
func (p *PlaybackController) Fullscreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullscreen
}

// Fallback reports whether the static fallback presentation is shown.
func (p *PlaybackController) Fallback() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fallback
}

// ShowControls makes the overlay controls visible and arms the
// auto-hide timer. Calling it again re-arms the timer.
func (p *PlaybackController) ShowControls() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.controlsVisible = true
	if p.controlsTimer != nil {
		p.controlsTimer.Cancel()
	}
	p.controlsTimer = p.sched.After(p.controlsHideDelay, func() {
		p.mu.Lock()
		p.controlsVisible = false
		p.controlsTimer = nil
		p.mu.Unlock()
	})
}

// ControlsVisible reports whether the overlay controls are shown.
func (p *PlaybackController) ControlsVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controlsVisible
}

// Stop detaches the current stream and cancels pending timers. Called
// on stream switch and session close.
func (p *PlaybackController) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelTimersLocked()
	p.stream = nil
	p.fallback = false
	p.ended = false
	p.controlsVisible = false
}

func (p *PlaybackController) cancelTimersLocked() {
	if p.resumeTimer != nil {
		p.resumeTimer.Cancel()
		p.resumeTimer = nil
	}
	if p.controlsTimer != nil {
		p.controlsTimer.Cancel()
		p.controlsTimer = nil
	}
}
