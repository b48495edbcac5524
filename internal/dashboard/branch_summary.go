package dashboard

import (
	"time"

	"edp-shifts/internal/auth"
	"edp-shifts/internal/shift"

	"github.com/gofiber/fiber/v2"
)

type BranchRow struct {
	Branch  string           `json:"branch"`
	Total   int64            `json:"total"`
	Timings map[string]int64 `json:"timings"`
}

type BranchSummaryResponse struct {
	Date        string      `json:"date"`
	DateDisplay string      `json:"date_display"`
	Branches    []BranchRow `json:"branches"`
	GrandTotal  int64       `json:"grand_total"`
}

// GET /api/admin/dashboard/branches?date=2024-01-01
// date defaults to today in loc.
func BranchSummaryHandler(svc *shift.Service, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := time.Now().In(loc)
		if q := c.Query("date"); q != "" {
			d, err := shift.ParseDate(q)
			if err != nil {
				return err
			}
			day = d
		}

		counts, err := svc.BranchSummary(c.UserContext(), auth.SessionFrom(c), day)
		if err != nil {
			return err
		}

		return c.JSON(buildSummary(day, counts))
	}
}

// buildSummary folds per-(branch, timing) counts into one row per branch,
// keeping the branch order of counts.
func buildSummary(day time.Time, counts []shift.BranchCount) BranchSummaryResponse {
	resp := BranchSummaryResponse{
		Date:        day.Format(shift.DateLayout),
		DateDisplay: shift.FormatDisplayDate(day),
		Branches:    []BranchRow{},
	}

	index := map[string]int{}
	for _, bc := range counts {
		i, ok := index[bc.Branch]
		if !ok {
			i = len(resp.Branches)
			index[bc.Branch] = i
			resp.Branches = append(resp.Branches, BranchRow{
				Branch:  bc.Branch,
				Timings: map[string]int64{},
			})
		}
		row := &resp.Branches[i]
		row.Timings[string(bc.ShiftTiming)] += bc.Count
		row.Total += bc.Count
		resp.GrandTotal += bc.Count
	}
	return resp
}
