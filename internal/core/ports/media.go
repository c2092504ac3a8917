package ports

// MediaSurface is the rendering surface the playback controller drives.
// The controller owns policy (looping, auto-resume, fallback); the
// surface owns the actual media element.
type MediaSurface interface {
	Load(url, poster string)
	Play()
	SetLoop(loop bool)
	SetMuted(muted bool)
	SetVolume(volume float64)
	EnterFullscreen()
	ExitFullscreen()
	// ShowFallback swaps the surface to the static poster presentation.
	ShowFallback(poster string)
}
