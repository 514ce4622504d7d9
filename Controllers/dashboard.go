package Controllers

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"SpeedWatch/Alerts"
	"SpeedWatch/Dashboard"
	"SpeedWatch/Models"
)

// DashboardController maps operator actions onto the dashboard components.
type DashboardController struct {
	Board   *Dashboard.State
	Video   *Dashboard.VideoController
	Search  *Dashboard.Suggestions
	Journal *Alerts.Journal
	Logger  *slog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(board *Dashboard.State, video *Dashboard.VideoController, search *Dashboard.Suggestions, journal *Alerts.Journal, logger *slog.Logger) *DashboardController {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardController{Board: board, Video: video, Search: search, Journal: journal, Logger: logger}
}

// Index renders the dashboard page
func (d *DashboardController) Index(c *fiber.Ctx) error {
	return c.Render("dashboard", d.Board.Snapshot())
}

// State returns the whole dashboard document as JSON
func (d *DashboardController) State(c *fiber.Ctx) error {
	return c.JSON(d.Board.Snapshot())
}

// DismissNotice hides the alert box
func (d *DashboardController) DismissNotice(c *fiber.Ctx) error {
	d.Board.DismissNotice()
	return d.done(c, fiber.Map{"status": "ok"})
}

// Notifications lists the notification journal, newest first
func (d *DashboardController) Notifications(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid limit"})
	}
	notifications, err := d.Journal.Recent(c.UserContext(), limit)
	if err != nil {
		d.Logger.Error("failed to read journal", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve notifications"})
	}
	return c.JSON(notifications)
}

// done answers a browser form post with a redirect back to the page and
// any other client with JSON.
func (d *DashboardController) done(c *fiber.Ctx, body fiber.Map) error {
	if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.JSON(body)
}

// fail maps the error taxonomy onto HTTP statuses.
func (d *DashboardController) fail(c *fiber.Ctx, err error) error {
	if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	var validationErr *Models.ValidationError
	var requestErr *Models.RequestFailure
	var decodeErr *Models.DecodeFailure
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &requestErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": requestErr.Error()})
	case errors.As(err, &decodeErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": decodeErr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
