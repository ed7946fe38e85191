package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-approval/internal/api/dto"
	"github.com/spec-kit/student-approval/internal/auth"
	"github.com/spec-kit/student-approval/internal/domain"
	"github.com/spec-kit/student-approval/internal/service"
)

// ApprovalsHandler exposes the manager-facing endpoints.
type ApprovalsHandler struct {
	submissions *service.SubmissionService
}

// NewApprovalsHandler constructs handler.
func NewApprovalsHandler(submissionService *service.SubmissionService) *ApprovalsHandler {
	return &ApprovalsHandler{submissions: submissionService}
}

// List handles GET /api/manager/submissions?status=pending.
func (h *ApprovalsHandler) List(c *fiber.Ctx) error {
	status := domain.SubmissionStatus(c.Query("status", string(domain.SubmissionStatusPending)))
	if !status.Valid() {
		return fiber.NewError(http.StatusBadRequest, "unknown status")
	}

	subs, err := h.submissions.ListByStatus(c.Context(), status)
	if err != nil {
		// Same degrade: the manager view shows an empty list over an error.
		subs = nil
	}
	return c.JSON(fiber.Map{"data": dto.SubmissionsFromDomain(subs)})
}

// Approve handles POST /api/manager/submissions/:id/approve.
func (h *ApprovalsHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.submissions.Approve)
}

// Reject handles POST /api/manager/submissions/:id/reject.
func (h *ApprovalsHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.submissions.Reject)
}

func (h *ApprovalsHandler) decide(c *fiber.Ctx, transition func(ctx context.Context, manager *domain.Identity, id string) error) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(http.StatusBadRequest, "submission id required")
	}
	if err := transition(c.Context(), identity, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id}})
}
