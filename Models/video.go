package Models

import "fmt"

// VideoState is the state of the video source machine.
type VideoState int

const (
	VideoIdle VideoState = iota
	VideoCameraActive
	VideoUploadPlaying
)

func (s VideoState) String() string {
	switch s {
	case VideoIdle:
		return "idle"
	case VideoCameraActive:
		return "camera_active"
	case VideoUploadPlaying:
		return "upload_playing"
	default:
		return fmt.Sprintf("VideoState(%d)", int(s))
	}
}

func (s VideoState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Feed element ids on the dashboard page.
const (
	CameraFeedID   = "cameraFeed"
	PlaybackFeedID = "liveFrame"
)
