package shift

import (
	"bytes"
	"fmt"
	"time"

	"edp-shifts/internal/auth"
	"edp-shifts/internal/models"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ShiftRequest struct {
	Date        string `json:"date"`   // "2024-01-01"
	Branch      string `json:"branch"` // admin edits only; submissions use the caller's branch
	StaffName   string `json:"staff_name"`
	StaffNumber string `json:"staff_number"`
	MobilePhone string `json:"mobile_phone"`
	ShiftTiming string `json:"shift_timing"`
}

type ShiftResponse struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	DateDisplay string `json:"date_display"`
	Branch      string `json:"branch"`
	StaffName   string `json:"staff_name"`
	StaffNumber string `json:"staff_number"`
	MobilePhone string `json:"mobile_phone"`
	ShiftTiming string `json:"shift_timing"`
	Timestamp   string `json:"timestamp"`
}

func NewShiftResponse(sh *models.Shift) ShiftResponse {
	return ShiftResponse{
		ID:          sh.ID,
		Date:        sh.Date.Format(DateLayout),
		DateDisplay: FormatDisplayDate(sh.Date),
		Branch:      sh.Branch,
		StaffName:   sh.StaffName,
		StaffNumber: sh.StaffNumber,
		MobilePhone: sh.MobilePhone,
		ShiftTiming: string(sh.ShiftTiming),
		Timestamp:   sh.Timestamp.Format(TimestampLayout),
	}
}

func (r ShiftRequest) fields() (Fields, error) {
	d, err := ParseDate(r.Date)
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		Date:        d,
		Branch:      r.Branch,
		StaffName:   r.StaffName,
		StaffNumber: r.StaffNumber,
		MobilePhone: r.MobilePhone,
		ShiftTiming: models.ShiftTiming(r.ShiftTiming),
	}, nil
}

func parseShiftID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid shift id")
	}
	return uint(id), nil
}

// POST /api/shifts
func CreateShiftHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		f, err := body.fields()
		if err != nil {
			return err
		}

		sh, err := svc.Submit(c.UserContext(), auth.SessionFrom(c), f)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(NewShiftResponse(sh))
	}
}

// GET /api/shifts/suggestions?q=kum
func SuggestionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Suggest(c.UserContext(), auth.SessionFrom(c), c.Query("q"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /api/shifts/timings
func TimingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.ShiftTimings)
	}
}

// GET /api/admin/shifts
func ListShiftsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shifts, err := svc.ListAll(c.UserContext(), auth.SessionFrom(c))
		if err != nil {
			return err
		}

		res := make([]ShiftResponse, 0, len(shifts))
		for i := range shifts {
			res = append(res, NewShiftResponse(&shifts[i]))
		}
		return c.JSON(res)
	}
}

// PUT /api/admin/shifts/:id
func UpdateShiftHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseShiftID(c)
		if err != nil {
			return err
		}

		var body ShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		f, err := body.fields()
		if err != nil {
			return err
		}

		sh, err := svc.Update(c.UserContext(), auth.SessionFrom(c), id, f)
		if err != nil {
			return err
		}
		return c.JSON(NewShiftResponse(sh))
	}
}

// DELETE /api/admin/shifts/:id
func DeleteShiftHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseShiftID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), auth.SessionFrom(c), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/admin/shifts/export
func ExportShiftsHandler(svc *Service, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := svc.Export(c.UserContext(), auth.SessionFrom(c), &buf); err != nil {
			return err
		}

		name := fmt.Sprintf("shifts-%s.xlsx", time.Now().In(loc).Format("2006-01-02"))
		c.Attachment(name)
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	}
}
