package domain

import (
	"time"
)

type StreamID string

// Stream is an immutable snapshot of one live stream as served by the
// catalog. The whole list is replaced wholesale on every refresh.
type Stream struct {
	ID             StreamID  `json:"id"`
	Title          string    `json:"title"`
	Thumbnail      string    `json:"thumbnail"`
	VideoURL       string    `json:"videoUrl"`
	StreamerName   string    `json:"streamerName"`
	StreamerAvatar string    `json:"streamerAvatar"`
	Category       string    `json:"category"`
	ViewerCount    int       `json:"viewerCount"`
	VIPOnly        bool      `json:"isVipOnly"`
	Live           bool      `json:"isLive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// VisibleStreams filters the catalog down to what a viewer may browse.
// VIP-only streams are hidden from non-premium viewers entirely.
func VisibleStreams(streams []Stream, premium bool) []Stream {
	if premium {
		return streams
	}
	visible := make([]Stream, 0, len(streams))
	for _, s := range streams {
		if !s.VIPOnly {
			visible = append(visible, s)
		}
	}
	return visible
}

// HiddenVIPCount reports how many VIP-only streams a viewer cannot see.
func HiddenVIPCount(streams []Stream, premium bool) int {
	if premium {
		return 0
	}
	n := 0
	for _, s := range streams {
		if s.VIPOnly {
			n++
		}
	}
	return n
}
