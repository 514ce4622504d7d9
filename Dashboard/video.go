package Dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"SpeedWatch/Models"
)

// VideoBackend is the capture control surface of the backend.
type VideoBackend interface {
	UploadVideo(ctx context.Context, name string, content io.Reader) error
	OpenCamera(ctx context.Context) error
	StopCamera(ctx context.Context) error
	StopVideoUpload(ctx context.Context) error
	FeedURL(token int64) string
}

// Notifier surfaces a transient message to the operator.
type Notifier interface {
	Notify(ctx context.Context, level Models.NotificationLevel, source, message string)
}

// UploadFile is the file picked for upload.
type UploadFile struct {
	Name    string    `json:"name" validate:"required"`
	Content io.Reader `json:"-" validate:"required"`
}

const (
	msgNoFile         = "No file selected!"
	msgUploadOK       = "Upload succeeded!"
	msgUploadFailed   = "Upload failed!"
	msgCameraFailed   = "Could not open the camera."
	msgCameraStopFail = "Could not stop the camera."
	msgVideoStopped   = "Video stopped."
	msgVideoStopFail  = "Could not stop the video."
)

// VideoController is the Idle / CameraActive / UploadPlaying machine. A
// transition only commits after the backend acknowledges it, and only one
// transition runs at a time. Whichever feed becomes active, the other one
// is cleared, so at most one feed ever has a source.
type VideoController struct {
	mu        sync.Mutex
	board     *State
	backend   VideoBackend
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
	lastToken int64
}

func NewVideoController(board *State, backend VideoBackend, notifier Notifier, logger *slog.Logger) *VideoController {
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoController{
		board:    board,
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// State returns the current machine state.
func (v *VideoController) State() Models.VideoState {
	state, _, _ := v.board.Feeds()
	return state
}

// cacheBust returns a token distinct from every earlier one.
func (v *VideoController) cacheBust() int64 {
	token := v.now().UnixMilli()
	if token <= v.lastToken {
		token = v.lastToken + 1
	}
	v.lastToken = token
	return token
}

type outcome struct {
	level   Models.NotificationLevel
	source  string
	message string
}

// transition runs step under the transition lock. Its notification goes out
// after the lock is released.
func (v *VideoController) transition(ctx context.Context, step func() (*outcome, error)) error {
	v.mu.Lock()
	out, err := step()
	v.mu.Unlock()

	if out != nil {
		v.notifier.Notify(ctx, out.level, out.source, out.message)
	}
	return err
}

// SubmitUpload uploads file and switches to playback.
func (v *VideoController) SubmitUpload(ctx context.Context, file *UploadFile) error {
	if err := validateUpload(file); err != nil {
		v.notifier.Notify(ctx, Models.LevelError, "upload", err.Message)
		return err
	}

	return v.transition(ctx, func() (*outcome, error) {
		if err := v.backend.UploadVideo(ctx, file.Name, file.Content); err != nil {
			return v.rejected("upload", msgUploadFailed, err), err
		}
		v.board.setVideo(Models.VideoUploadPlaying, "", v.backend.FeedURL(v.cacheBust()))
		v.logger.Info("video source changed", "state", Models.VideoUploadPlaying, "file", file.Name)
		return &outcome{level: Models.LevelSuccess, source: "upload", message: msgUploadOK}, nil
	})
}

// StartCamera opens the camera and binds the camera feed.
func (v *VideoController) StartCamera(ctx context.Context) error {
	return v.transition(ctx, func() (*outcome, error) {
		if err := v.backend.OpenCamera(ctx); err != nil {
			return v.rejected("camera", msgCameraFailed, err), err
		}
		v.board.setVideo(Models.VideoCameraActive, v.backend.FeedURL(v.cacheBust()), "")
		v.logger.Info("video source changed", "state", Models.VideoCameraActive)
		return nil, nil
	})
}

// StopCamera closes the camera and returns to Idle.
func (v *VideoController) StopCamera(ctx context.Context) error {
	return v.transition(ctx, func() (*outcome, error) {
		if err := v.backend.StopCamera(ctx); err != nil {
			return v.rejected("camera", msgCameraStopFail, err), err
		}
		v.board.setVideo(Models.VideoIdle, "", "")
		v.logger.Info("video source changed", "state", Models.VideoIdle)
		return nil, nil
	})
}

// StopUpload stops playback and returns to Idle.
func (v *VideoController) StopUpload(ctx context.Context) error {
	return v.transition(ctx, func() (*outcome, error) {
		if err := v.backend.StopVideoUpload(ctx); err != nil {
			return v.rejected("video", msgVideoStopFail, err), err
		}
		v.board.setVideo(Models.VideoIdle, "", "")
		v.logger.Info("video source changed", "state", Models.VideoIdle)
		return &outcome{level: Models.LevelInfo, source: "video", message: msgVideoStopped}, nil
	})
}

func (v *VideoController) rejected(source, message string, err error) *outcome {
	var failure *Models.RequestFailure
	if errors.As(err, &failure) {
		v.logger.Warn("video transition rejected", "endpoint", failure.Endpoint, "status", failure.Status, "err", err)
	} else {
		v.logger.Warn("video transition rejected", "err", err)
	}
	return &outcome{level: Models.LevelError, source: source, message: message}
}

func validateUpload(file *UploadFile) *Models.ValidationError {
	if file == nil {
		return &Models.ValidationError{Field: "video", Message: msgNoFile}
	}
	if err := Models.Validate.Struct(file); err != nil {
		return &Models.ValidationError{Field: "video", Message: msgNoFile + " " + Models.ValidationMessage(err)}
	}
	return nil
}
