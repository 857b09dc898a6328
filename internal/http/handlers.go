package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/voltview/voltview/internal/domain"
	"github.com/voltview/voltview/internal/repository"
	"github.com/voltview/voltview/internal/service"
)

// dashboardWindow is how many recent readings the analytics views cover.
const dashboardWindow = 1000

// Register wires every route onto the app. The artifact directory is
// served under /files so stored report file paths resolve directly.
func Register(app *fiber.App, svcs *service.Services, reportDir string) {
	app.Static("/files", reportDir)

	app.Post("/readings", func(c *fiber.Ctx) error {
		var in service.ReadingInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
		}
		rd, err := svcs.Readings.Ingest(in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "saved": rd})
	})

	app.Get("/readings/latest", func(c *fiber.Ctx) error {
		rd, err := svcs.Repos.LatestReading()
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no data yet"})
			}
			return fail(c, err)
		}
		return c.JSON(rd)
	})

	app.Get("/readings/grouped-by-day", func(c *fiber.Ctx) error {
		readings, err := svcs.Repos.AllReadings()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"grouped": service.GroupByDay(readings)})
	})

	app.Get("/readings", func(c *fiber.Ctx) error {
		var (
			readings []domain.Reading
			err      error
		)
		if c.Query("all") == "true" {
			readings, err = svcs.Repos.AllReadings()
		} else {
			readings, err = svcs.Repos.ReadingRange(c.QueryInt("limit"), c.QueryInt("offset"))
		}
		if err != nil {
			return fail(c, err)
		}
		if readings == nil {
			readings = []domain.Reading{}
		}
		return c.JSON(readings)
	})

	app.Get("/alerts", func(c *fiber.Ctx) error {
		filter := repository.AllAlerts
		switch c.Query("resolved") {
		case "true":
			filter = repository.ResolvedAlerts
		case "false":
			filter = repository.ActiveAlerts
		}
		alerts, err := svcs.Alerts.List(filter)
		if err != nil {
			return fail(c, err)
		}
		if alerts == nil {
			alerts = []domain.Alert{}
		}
		return c.JSON(alerts)
	})

	app.Post("/alerts", func(c *fiber.Ctx) error {
		var in struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
		}
		a, err := svcs.Alerts.Create(in.Type, in.Message)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "alert": a})
	})

	app.Put("/alerts/:id/resolve", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "alert not found"})
		}
		if err := svcs.Alerts.Resolve(int64(id)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true})
	})

	app.Get("/reports/export", func(c *fiber.Ctx) error {
		return exportReports(c, svcs)
	})

	app.Get("/reports", func(c *fiber.Ctx) error {
		reports, err := svcs.Reports.List()
		if err != nil {
			return fail(c, err)
		}
		if reports == nil {
			reports = []domain.Report{}
		}
		return c.JSON(reports)
	})

	app.Post("/reports/generate", func(c *fiber.Ctx) error {
		rp, err := svcs.Reports.Generate()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "report": rp})
	})

	app.Post("/reports", func(c *fiber.Ctx) error {
		var in service.CreateInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
		}
		rp, err := svcs.Reports.Create(in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "report": rp})
	})

	app.Get("/analytics/summary", func(c *fiber.Ctx) error {
		readings, err := svcs.Repos.RecentReadings(dashboardWindow)
		if err != nil {
			return fail(c, err)
		}
		stats, err := service.Summarize(readings)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(stats)
	})

	app.Get("/analytics/hourly", func(c *fiber.Ctx) error {
		readings, err := svcs.Repos.RecentReadings(dashboardWindow)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(service.HourlyAverages(readings))
	})

	app.Post("/login", func(c *fiber.Ctx) error {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
		}
		u, err := svcs.Auth.Login(in.Username, in.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "username": u.Username})
	})
}

// fail maps a service error to its taxonomy status code. Anything
// unrecognized is a persistence or artifact failure and reports 500.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNoData):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
