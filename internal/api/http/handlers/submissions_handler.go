package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-approval/internal/api/dto"
	"github.com/spec-kit/student-approval/internal/auth"
	"github.com/spec-kit/student-approval/internal/service"
)

// SubmissionsHandler exposes the submitter-facing endpoints.
type SubmissionsHandler struct {
	submissions *service.SubmissionService
}

// NewSubmissionsHandler constructs handler.
func NewSubmissionsHandler(submissionService *service.SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{submissions: submissionService}
}

// Create handles POST /api/user/submissions. Field values are accepted
// as-is; the form is the only gatekeeper for their content.
func (h *SubmissionsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	sub, err := h.submissions.Create(c.Context(), identity, service.SubmissionCreateInput{
		Name:       req.Name,
		Year:       req.Year,
		Department: req.Department,
	})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "Error submitting form")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.SubmissionFromDomain(sub),
	})
}

// ListOwn handles GET /api/user/submissions.
func (h *SubmissionsHandler) ListOwn(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	subs, err := h.submissions.ListBySubmitter(c.Context(), identity.UID)
	if err != nil {
		// Degrade to an empty list; the read failure is already logged.
		subs = nil
	}
	return c.JSON(fiber.Map{"data": dto.SubmissionsFromDomain(subs)})
}
