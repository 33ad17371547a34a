// devotional/devotional_model.go
package devotional

import (
	"time"

	"github.com/devoapp/backend/internal/store"
)

const (
	devotionalsCollection = "devotionals"
	messagesCollection    = "devotionalMessages"
)

// Days is the fixed length of every devotional.
const Days = 7

// DailyInstruction is one day's prompt. Day numbers run 1..7 and every
// devotional has all seven, even when the content is a generic placeholder.
type DailyInstruction struct {
	Day         int       `json:"day"`
	Date        time.Time `json:"date"`
	Instruction string    `json:"instruction"`
	Passage     string    `json:"passage,omitempty"`
}

// Devotional is a 7-day shared reflection plan scoped to one team.
type Devotional struct {
	ID                string             `json:"id"`
	TeamID            string             `json:"team_id"`
	Title             string             `json:"title"`
	StartDate         time.Time          `json:"start_date"`
	EndDate           time.Time          `json:"end_date"`
	DailyInstructions []DailyInstruction `json:"daily_instructions"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// InstructionForDay returns the instruction for a day, or nil.
func (d *Devotional) InstructionForDay(day int) *DailyInstruction {
	for i := range d.DailyInstructions {
		if d.DailyInstructions[i].Day == day {
			return &d.DailyInstructions[i]
		}
	}
	return nil
}

// IsActive reports whether now falls inside [StartDate, EndDate].
func (d *Devotional) IsActive(now time.Time) bool {
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// CurrentDay computes the 1-based day number for today. Outside the date
// range it returns 1; inside, the day count since start clamped to 1..7.
func CurrentDay(d *Devotional, today time.Time) int {
	if !d.IsActive(today) {
		return 1
	}
	days := daysBetween(d.StartDate, today)
	day := days + 1
	if day < 1 {
		day = 1
	}
	if day > Days {
		day = Days
	}
	return day
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	a = startOfDay(a)
	b = startOfDay(b)
	return int(b.Sub(a).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (d *Devotional) toDoc() map[string]interface{} {
	instructions := make([]map[string]interface{}, 0, len(d.DailyInstructions))
	for _, di := range d.DailyInstructions {
		instructions = append(instructions, map[string]interface{}{
			"id":          di.Day,
			"date":        di.Date,
			"instruction": di.Instruction,
			"passage":     di.Passage,
		})
	}
	return map[string]interface{}{
		"teamId":            d.TeamID,
		"title":             d.Title,
		"startDate":         d.StartDate,
		"endDate":           d.EndDate,
		"dailyInstructions": instructions,
		"createdAt":         d.CreatedAt,
		"updatedAt":         d.UpdatedAt,
	}
}

// FromDoc maps a store document onto a Devotional.
func FromDoc(doc *store.Document) *Devotional {
	if doc == nil {
		return nil
	}
	d := &Devotional{
		ID:        doc.ID,
		TeamID:    store.String(doc.Data, "teamId"),
		Title:     store.String(doc.Data, "title"),
		StartDate: store.Time(doc.Data, "startDate"),
		EndDate:   store.Time(doc.Data, "endDate"),
		CreatedAt: store.Time(doc.Data, "createdAt"),
		UpdatedAt: store.Time(doc.Data, "updatedAt"),
	}
	for _, m := range store.Maps(doc.Data, "dailyInstructions") {
		d.DailyInstructions = append(d.DailyInstructions, DailyInstruction{
			Day:         store.Int(m, "id"),
			Date:        store.Time(m, "date"),
			Instruction: store.String(m, "instruction"),
			Passage:     store.String(m, "passage"),
		})
	}
	return d
}
