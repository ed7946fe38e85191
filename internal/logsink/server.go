package logsink

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewServer builds the log sink fiber app. The contract is fixed: clients of
// the original logger endpoint must keep working unchanged.
func NewServer(store *FileStore, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(corsMiddleware)

	h := &handler{store: store, logger: logger}

	app.Post("/api/logs", h.save)
	app.Get("/api/logs/view", h.view)
	app.Get("/api/logs/download", h.download)
	app.Get("/health", h.health)

	return app
}

// corsMiddleware applies the permissive headers every response carries and
// short-circuits preflight requests.
func corsMiddleware(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")

	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(http.StatusOK)
	}
	return c.Next()
}

type handler struct {
	store  *FileStore
	logger *zap.Logger
}

func (h *handler) save(c *fiber.Ctx) error {
	var entry Entry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if err := h.store.Append(entry); err != nil {
		h.logger.Error("failed to save log entry", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Log saved"})
}

func (h *handler) view(c *fiber.Ctx) error {
	content, exists, err := h.store.Read()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !exists {
		return c.JSON(fiber.Map{"content": "No logs available yet"})
	}
	return c.JSON(fiber.Map{"content": content})
}

func (h *handler) download(c *fiber.Ctx) error {
	_, exists, err := h.store.Read()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !exists {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "No logs available"})
	}
	return c.Download(h.store.FilePath(), h.store.DownloadName())
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "Logger server running",
		"logDir": h.store.Dir(),
	})
}
