package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lajournal/lajournal/internal/services/label"
)

type labelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListLabels(c *fiber.Ctx) error {
	labels, err := s.labels.ListLabels(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(toLabelListJSON(labels))
}

func (s *Server) handleCreateLabel(c *fiber.Ctx) error {
	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	created, err := s.labels.CreateLabel(c.UserContext(), label.CreateLabelRequest{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toLabelJSON(created))
}

func (s *Server) handleGetLabel(c *fiber.Ctx) error {
	labelID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid label ID")
	}

	l, err := s.labels.GetLabel(c.UserContext(), currentUserID(c), labelID)
	if err != nil {
		return err
	}
	return c.JSON(toLabelJSON(l))
}

func (s *Server) handleUpdateLabel(c *fiber.Ctx) error {
	labelID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid label ID")
	}

	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := s.labels.UpdateLabel(c.UserContext(), label.UpdateLabelRequest{
		UserID:      currentUserID(c),
		LabelID:     labelID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(toLabelJSON(updated))
}

func (s *Server) handleDeleteLabel(c *fiber.Ctx) error {
	labelID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid label ID")
	}

	if err := s.labels.DeleteLabel(c.UserContext(), currentUserID(c), labelID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleLabelParagraphs(c *fiber.Ctx) error {
	labelID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid label ID")
	}

	items, err := s.labels.ListParagraphs(c.UserContext(), currentUserID(c), labelID)
	if err != nil {
		return err
	}
	return c.JSON(toLabelParagraphsJSON(items))
}
