package services

import (
	"testing"
	"time"

	"livevip/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newTestPlayback(t *testing.T) (*PlaybackController, *fakeSurface, *fakeScheduler) {
	surface := &fakeSurface{}
	sched := newFakeScheduler()
	p := NewPlaybackController(surface, sched, 100*time.Millisecond, 4*time.Second, zaptest.NewLogger(t))
	return p, surface, sched
}

func TestPlaybackController_LoadStartsLoopingPlayback(t *testing.T) {
	p, surface, _ := newTestPlayback(t)

	p.Load(domain.Stream{ID: "s1", VideoURL: "https://cdn.example/1.m3u8", Thumbnail: "poster"})

	assert.Equal(t, "https://cdn.example/1.m3u8", surface.loadedURL)
	assert.Equal(t, "poster", surface.loadedPoster)
	assert.True(t, surface.loop)
	assert.Equal(t, 1, surface.plays())
	assert.False(t, p.Fallback())
}

func TestPlaybackController_EmptyURLShowsFallback(t *testing.T) {
	p, surface, _ := newTestPlayback(t)

	p.Load(domain.Stream{ID: "s1", VideoURL: "", Thumbnail: "poster"})

	assert.True(t, p.Fallback())
	assert.Equal(t, "poster", surface.fallbackPoster)
	assert.Equal(t, 0, surface.plays())
}

func TestPlaybackController_ErrorFallsBackWithoutRetry(t *testing.T) {
	p, surface, _ := newTestPlayback(t)
	p.Load(domain.Stream{ID: "s1", VideoURL: "https://cdn.example/1.m3u8", Thumbnail: "poster"})

	p.HandleError()
	assert.True(t, p.Fallback())
	assert.Equal(t, 1, surface.fallbacks())

	// Repeated errors do not stack fallbacks, and nothing resumes.
	p.HandleError()
	p.HandleEnded()
	p.HandlePause()
	assert.Equal(t, 1, surface.fallbacks())
	assert.Equal(t, 1, surface.plays())

	// Re-selecting the stream recovers.
	p.Load(domain.Stream{ID: "s1", VideoURL: "https://cdn.example/1.m3u8", Thumbnail: "poster"})
	assert.False(t, p.Fallback())
	assert.Equal(t, 2, surface.plays())
}

func TestPlaybackController_PauseAutoResumes(t *testing.T) {
	p, surface, sched := newTestPlayback(t)
	p.Load(domain.Stream{ID: "s1", VideoURL: "https://cdn.example/1.m3u8", Thumbnail: "poster"})

	p.HandlePause()
	assert.Equal(t, 1, surface.plays())

	sched.fireOneShots()
	assert.Equal(t, 2, surface.plays())
}

func TestPlaybackController_PendingResumeDiesWithStream(t *testing.T) {
	p, surface, sched := newTestPlayback(t)
	p.Load(domain.Stream{ID: "s1", VideoURL: "https://cdn.example/1.m3u8", Thumbnail: "poster"})

	p.HandlePause()
	p.Stop()
	sched.fireOneShots()
	assert.Equal(t, 1, surface.plays())
}

func TestPlaybackController_EndedLoops(t *testing.T) {
	p, surface, _ := newTestPlayback(t)
	p.Load(domain.Stream{ID: "s1", VideoURL: "https://cdn.example/1.m3u8", Thumbnail: "poster"})

	p.HandleEnded()
	assert.Equal(t, 2, surface.plays())
}

func TestPlaybackController_VolumeAndMute(t *testing.T) {
	p, surface, _ := newTestPlayback(t)
	p.Load(domain.Stream{ID: "s1", VideoURL: "https://cdn.example/1.m3u8", Thumbnail: "poster"})

	assert.True(t, p.ToggleMute())
	assert.True(t, surface.muted)

	// Raising the volume unmutes.
	p.SetVolume(0.7)
	assert.False(t, p.Muted())
	assert.Equal(t, 0.7, p.Volume())

	// Volume zero mutes.
	p.SetVolume(0)
	assert.True(t, p.Muted())

	// Out-of-range values clamp.
	p.SetVolume(2)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
}

func TestPlaybackController_FullscreenToggle(t *testing.T) {
	p, surface, _ := newTestPlayback(t)

	assert.True(t, p.ToggleFullscreen())
	assert.True(t, surface.fullscreen)
	assert.False(t, p.ToggleFullscreen())
	assert.False(t, surface.fullscreen)
}

func TestPlaybackController_ControlsAutoHide(t *testing.T) {
	p, _, sched := newTestPlayback(t)

	p.ShowControls()
	assert.True(t, p.ControlsVisible())

	sched.fireOneShots()
	assert.False(t, p.ControlsVisible())

	// Showing again re-arms the timer.
	p.ShowControls()
	p.ShowControls()
	assert.True(t, p.ControlsVisible())
	sched.fireOneShots()
	assert.False(t, p.ControlsVisible())
}
