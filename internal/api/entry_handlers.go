package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lajournal/lajournal/internal/services/entry"
)

type paragraphInput struct {
	Order   int    `json:"order"`
	Content string `json:"content"`
}

type createEntryRequest struct {
	Title        string           `json:"title"`
	Date         *string          `json:"date"` // YYYY-MM-DD, nil means today
	Rating       *float64         `json:"rating"`
	IsBookmarked bool             `json:"is_bookmarked"`
	Content      string           `json:"content"`
	Paragraphs   []paragraphInput `json:"paragraphs"`
}

// updateEntryRequest carries a partial update: absent fields are left
// untouched. An absent paragraphs key leaves the paragraph set alone; a
// present one (even an empty list) replaces it via reconciliation.
type updateEntryRequest struct {
	Title        *string          `json:"title"`
	Date         *string          `json:"date"`
	Rating       *float64         `json:"rating"`
	IsBookmarked *bool            `json:"is_bookmarked"`
	Content      *string          `json:"content"`
	Paragraphs   []paragraphInput `json:"paragraphs"`
}

type assignLabelRequest struct {
	LabelID         int   `json:"label_id"`
	ParagraphOrders []int `json:"paragraph_orders"`
}

type removeLabelRequest struct {
	LabelID        int `json:"label_id"`
	ParagraphOrder int `json:"paragraph_order"`
}

func parseEntryDate(raw string) (time.Time, error) {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return d, nil
}

func toParagraphInputs(in []paragraphInput) []entry.ParagraphInput {
	if in == nil {
		return nil
	}
	out := make([]entry.ParagraphInput, 0, len(in))
	for _, p := range in {
		out = append(out, entry.ParagraphInput{Order: p.Order, Content: p.Content})
	}
	return out
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	var bookmarked *bool
	switch c.Query("bookmarked") {
	case "true":
		v := true
		bookmarked = &v
	case "false":
		v := false
		bookmarked = &v
	}

	entries, err := s.entries.ListEntries(c.UserContext(), currentUserID(c), c.Query("search"), bookmarked)
	if err != nil {
		return err
	}
	return c.JSON(toEntryListJSON(entries))
}

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	var req createEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var date *time.Time
	if req.Date != nil {
		d, err := parseEntryDate(*req.Date)
		if err != nil {
			return err
		}
		date = &d
	}

	created, err := s.entries.CreateEntry(c.UserContext(), entry.CreateEntryRequest{
		UserID:       currentUserID(c),
		Title:        req.Title,
		Date:         date,
		Rating:       req.Rating,
		IsBookmarked: req.IsBookmarked,
		Content:      req.Content,
		Paragraphs:   toParagraphInputs(req.Paragraphs),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryJSON(created))
}

func (s *Server) handleGetEntry(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entry ID")
	}

	e, err := s.entries.GetEntry(c.UserContext(), currentUserID(c), entryID)
	if err != nil {
		return err
	}
	return c.JSON(toEntryJSON(e))
}

func (s *Server) handleUpdateEntry(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entry ID")
	}

	var req updateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var date *time.Time
	if req.Date != nil {
		d, err := parseEntryDate(*req.Date)
		if err != nil {
			return err
		}
		date = &d
	}

	updated, err := s.entries.UpdateEntry(c.UserContext(), entry.UpdateEntryRequest{
		UserID:       currentUserID(c),
		EntryID:      entryID,
		Title:        req.Title,
		Date:         date,
		Rating:       req.Rating,
		IsBookmarked: req.IsBookmarked,
		Content:      req.Content,
		Paragraphs:   toParagraphInputs(req.Paragraphs),
	})
	if err != nil {
		return err
	}
	return c.JSON(toEntryJSON(updated))
}

func (s *Server) handleDeleteEntry(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entry ID")
	}

	if err := s.entries.DeleteEntry(c.UserContext(), currentUserID(c), entryID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleToggleBookmark(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entry ID")
	}

	e, err := s.entries.ToggleBookmark(c.UserContext(), currentUserID(c), entryID)
	if err != nil {
		return err
	}
	return c.JSON(toEntryJSON(e))
}

func (s *Server) handleAssignLabel(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entry ID")
	}

	var req assignLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	e, err := s.entries.AssignLabel(c.UserContext(), entry.AssignLabelRequest{
		UserID:          currentUserID(c),
		EntryID:         entryID,
		ParagraphOrders: req.ParagraphOrders,
		LabelID:         req.LabelID,
	})
	if err != nil {
		return err
	}
	return c.JSON(toEntryJSON(e))
}

func (s *Server) handleRemoveLabel(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entry ID")
	}

	var req removeLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	e, err := s.entries.RemoveLabel(c.UserContext(), entry.RemoveLabelRequest{
		UserID:         currentUserID(c),
		EntryID:        entryID,
		ParagraphOrder: req.ParagraphOrder,
		LabelID:        req.LabelID,
	})
	if err != nil {
		return err
	}
	return c.JSON(toEntryJSON(e))
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	results, err := s.stats.SearchEntries(c.UserContext(), currentUserID(c), c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(toSearchResultsJSON(results))
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	st, err := s.stats.GetStats(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(toStatsJSON(st))
}

func (s *Server) handleTimeline(c *fiber.Ctx) error {
	tl, err := s.stats.GetTimeline(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(toTimelineJSON(tl))
}
