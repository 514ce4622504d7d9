package Controllers

import (
	"github.com/gofiber/fiber/v2"

	"SpeedWatch/Dashboard"
)

// UploadVideo forwards the "video" form file to the backend
func (d *DashboardController) UploadVideo(c *fiber.Ctx) error {
	var upload *Dashboard.UploadFile

	if header, err := c.FormFile("video"); err == nil && header.Filename != "" {
		file, err := header.Open()
		if err != nil {
			d.Logger.Error("failed to open uploaded file", "err", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid upload"})
		}
		defer file.Close()
		upload = &Dashboard.UploadFile{Name: header.Filename, Content: file}
	}

	if err := d.Video.SubmitUpload(c.UserContext(), upload); err != nil {
		return d.fail(c, err)
	}
	return d.done(c, fiber.Map{"status": "ok", "video": d.Video.State()})
}

// StartCamera opens the camera feed
func (d *DashboardController) StartCamera(c *fiber.Ctx) error {
	if err := d.Video.StartCamera(c.UserContext()); err != nil {
		return d.fail(c, err)
	}
	return d.done(c, fiber.Map{"status": "ok", "video": d.Video.State()})
}

// StopCamera closes the camera feed
func (d *DashboardController) StopCamera(c *fiber.Ctx) error {
	if err := d.Video.StopCamera(c.UserContext()); err != nil {
		return d.fail(c, err)
	}
	return d.done(c, fiber.Map{"status": "ok", "video": d.Video.State()})
}

// StopVideo stops uploaded video playback
func (d *DashboardController) StopVideo(c *fiber.Ctx) error {
	if err := d.Video.StopUpload(c.UserContext()); err != nil {
		return d.fail(c, err)
	}
	return d.done(c, fiber.Map{"status": "ok", "video": d.Video.State()})
}
