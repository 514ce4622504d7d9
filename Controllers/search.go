package Controllers

import (
	"github.com/gofiber/fiber/v2"

	"SpeedWatch/Models"
)

type selectRequest struct {
	Value string `json:"value" form:"value" validate:"required"`
}

type clickRequest struct {
	Target string `json:"target" form:"target"`
}

// Autocomplete handles one change of the plate search field. The page's
// search form lands back on the page with the suggestions rendered.
func (d *DashboardController) Autocomplete(c *fiber.Ctx) error {
	if err := d.Search.Input(c.UserContext(), c.Query("q")); err != nil {
		return d.fail(c, err)
	}
	return d.done(c, d.suggestions())
}

// SelectSuggestion copies a picked plate into the search field
func (d *DashboardController) SelectSuggestion(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := Models.Validate.Struct(req); err != nil {
		return d.fail(c, &Models.ValidationError{Field: "value", Message: Models.ValidationMessage(err)})
	}
	d.Search.Select(req.Value)
	return d.done(c, d.suggestions())
}

// Click reports a click on the page; anything but the search field
// dismisses the suggestions
func (d *DashboardController) Click(c *fiber.Ctx) error {
	var req clickRequest
	if len(c.Body()) == 0 {
		d.Search.Click(req.Target)
		return d.done(c, d.suggestions())
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	d.Search.Click(req.Target)
	return d.done(c, d.suggestions())
}

func (d *DashboardController) suggestions() fiber.Map {
	plates, visible := d.Board.Suggestions()
	return fiber.Map{
		"search":      d.Board.Search(),
		"suggestions": plates,
		"visible":     visible,
	}
}
