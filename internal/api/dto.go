package api

import (
	"time"

	"github.com/lajournal/lajournal/internal/models"
)

// dateLayout is the wire format for entry dates and timeline periods.
const dateLayout = "2006-01-02"

type labelJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type paragraphJSON struct {
	ID      int         `json:"id"`
	Order   int         `json:"order"`
	Content string      `json:"content"`
	Labels  []labelJSON `json:"labels"`
}

type entryJSON struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Date         string          `json:"date"`
	Rating       *float64        `json:"rating"`
	IsBookmarked bool            `json:"is_bookmarked"`
	Content      string          `json:"content"`
	Paragraphs   []paragraphJSON `json:"paragraphs"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type userJSON struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenPairJSON struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type labelUsageJSON struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	ParagraphsCount int    `json:"paragraphs_count"`
}

type statsJSON struct {
	EntriesThisMonth      int              `json:"entries_this_month"`
	EntriesThisYear       int              `json:"entries_this_year"`
	TotalEntries          int              `json:"total_entries"`
	LatestEntry           *entryJSON       `json:"latest_entry"`
	TotalLabelsUsed       int              `json:"total_labels_used"`
	MostUsedLabel         *labelUsageJSON  `json:"most_used_label"`
	LabelsParagraphsCount []labelUsageJSON `json:"labels_paragraphs_count"`
	BookmarkedEntries     int              `json:"bookmarked_entries"`
}

type timelinePointJSON struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

type timelineJSON struct {
	Week  []timelinePointJSON `json:"week"`
	Month []timelinePointJSON `json:"month"`
	Year  []timelinePointJSON `json:"year"`
}

type searchResultJSON struct {
	Entry      entryJSON       `json:"entry"`
	Paragraphs []paragraphJSON `json:"paragraphs"`
}

type labelParagraphJSON struct {
	Paragraph paragraphJSON `json:"paragraph"`
	Entry     entryJSON     `json:"entry"`
}

func toLabelJSON(l *models.Label) labelJSON {
	return labelJSON{ID: l.ID, Name: l.Name, Description: l.Description}
}

func toLabelListJSON(labels []*models.Label) []labelJSON {
	out := make([]labelJSON, 0, len(labels))
	for _, l := range labels {
		out = append(out, toLabelJSON(l))
	}
	return out
}

func toParagraphJSON(p *models.EntryParagraph) paragraphJSON {
	return paragraphJSON{
		ID:      p.ID,
		Order:   p.Position,
		Content: p.Content,
		Labels:  toLabelListJSON(p.Labels),
	}
}

func toParagraphListJSON(paragraphs []*models.EntryParagraph) []paragraphJSON {
	out := make([]paragraphJSON, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, toParagraphJSON(p))
	}
	return out
}

func toEntryJSON(e *models.JournalEntry) entryJSON {
	return entryJSON{
		ID:           e.ID,
		Title:        e.Title,
		Date:         e.Date.Format(dateLayout),
		Rating:       e.Rating,
		IsBookmarked: e.IsBookmarked,
		Content:      e.Content,
		Paragraphs:   toParagraphListJSON(e.Paragraphs),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEntryListJSON(entries []*models.JournalEntry) []entryJSON {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	return out
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toLabelUsageJSON(u *models.LabelUsage) labelUsageJSON {
	return labelUsageJSON{ID: u.ID, Name: u.Name, ParagraphsCount: u.ParagraphsCount}
}

func toStatsJSON(s *models.EntryStats) statsJSON {
	out := statsJSON{
		EntriesThisMonth:      s.EntriesThisMonth,
		EntriesThisYear:       s.EntriesThisYear,
		TotalEntries:          s.TotalEntries,
		TotalLabelsUsed:       s.TotalLabelsUsed,
		BookmarkedEntries:     s.BookmarkedEntries,
		LabelsParagraphsCount: make([]labelUsageJSON, 0, len(s.LabelsParagraphsCount)),
	}
	if s.LatestEntry != nil {
		latest := toEntryJSON(s.LatestEntry)
		out.LatestEntry = &latest
	}
	if s.MostUsedLabel != nil {
		most := toLabelUsageJSON(s.MostUsedLabel)
		out.MostUsedLabel = &most
	}
	for _, u := range s.LabelsParagraphsCount {
		out.LabelsParagraphsCount = append(out.LabelsParagraphsCount, toLabelUsageJSON(u))
	}
	return out
}

func toTimelinePoints(points []*models.TimelinePoint) []timelinePointJSON {
	out := make([]timelinePointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, timelinePointJSON{Period: p.Period.Format(dateLayout), Count: p.Count})
	}
	return out
}

func toTimelineJSON(t *models.Timeline) timelineJSON {
	return timelineJSON{
		Week:  toTimelinePoints(t.Week),
		Month: toTimelinePoints(t.Month),
		Year:  toTimelinePoints(t.Year),
	}
}

func toSearchResultsJSON(results []*models.SearchResult) []searchResultJSON {
	out := make([]searchResultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultJSON{
			Entry:      toEntryJSON(r.Entry),
			Paragraphs: toParagraphListJSON(r.Paragraphs),
		})
	}
	return out
}

func toLabelParagraphsJSON(items []*models.LabelParagraph) []labelParagraphJSON {
	out := make([]labelParagraphJSON, 0, len(items))
	for _, it := range items {
		out = append(out, labelParagraphJSON{
			Paragraph: toParagraphJSON(it.Paragraph),
			Entry:     toEntryJSON(it.Entry),
		})
	}
	return out
}
