package Dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"SpeedWatch/Models"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{fail: map[string]bool{}}
}

func (b *fakeBackend) call(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, name)
	if b.fail[name] {
		return &Models.RequestFailure{Endpoint: "/" + name, Reply: "error"}
	}
	return nil
}

func (b *fakeBackend) setFail(name string, fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[name] = fail
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) UploadVideo(_ context.Context, name string, content io.Reader) error {
	if _, err := io.ReadAll(content); err != nil {
		return err
	}
	return b.call("upload_video")
}

func (b *fakeBackend) OpenCamera(context.Context) error      { return b.call("open_camera") }
func (b *fakeBackend) StopCamera(context.Context) error      { return b.call("stop_camera") }
func (b *fakeBackend) StopVideoUpload(context.Context) error { return b.call("stop_video_upload") }

func (b *fakeBackend) FeedURL(token int64) string {
	return fmt.Sprintf("http://backend/video_feed?%d", token)
}

type notification struct {
	Level   Models.NotificationLevel
	Source  string
	Message string
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []notification
	board *State
}

func (n *fakeNotifier) Notify(_ context.Context, level Models.NotificationLevel, source, message string) {
	n.mu.Lock()
	n.sent = append(n.sent, notification{Level: level, Source: source, Message: message})
	n.mu.Unlock()
	if n.board != nil {
		n.board.ShowNotice(Notice{Level: level, Source: source, Message: message})
	}
}

func (n *fakeNotifier) Sent() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}

type fakeHistory struct {
	records []Models.ViolationRecord
	err     error
}

func (h fakeHistory) Violations(context.Context) ([]Models.ViolationRecord, error) {
	return h.records, h.err
}

var errBackendDown = errors.New("connection refused")

func record(plate string) Models.ViolationRecord {
	return Models.ViolationRecord{Plate: plate, Speed: 80, SpeedLimit: 60}
}

func plates(records []Models.ViolationRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Plate)
	}
	return out
}
