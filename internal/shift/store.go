package shift

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"edp-shifts/internal/models"

	"gorm.io/gorm"
)

// Suggestion is one distinct staff identity seen across shifts.
type Suggestion struct {
	StaffName   string `json:"staff_name"`
	StaffNumber string `json:"staff_number"`
	MobilePhone string `json:"mobile_phone"`
}

type BranchCount struct {
	Branch      string             `json:"branch"`
	ShiftTiming models.ShiftTiming `json:"shift_timing"`
	Count       int64              `json:"count"`
}

// Store persists shifts. Writes are single statements; concurrent edits to
// the same id resolve as last write wins.
type Store struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewStore stamps writes with the wall clock and renders timestamps in loc;
// nil means UTC.
func NewStore(db *gorm.DB, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{db: db, loc: loc, now: time.Now}
}

// WithClock replaces the clock used to stamp writes.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) stamp() time.Time {
	return s.now().In(s.loc).Truncate(time.Second)
}

func (s *Store) local(sh *models.Shift) {
	sh.Timestamp = sh.Timestamp.In(s.loc)
}

func (s *Store) Create(ctx context.Context, f Fields) (*models.Shift, error) {
	f = f.Normalize()
	sh := models.Shift{
		Date:        f.Date,
		Branch:      f.Branch,
		StaffName:   f.StaffName,
		StaffNumber: f.StaffNumber,
		MobilePhone: f.MobilePhone,
		ShiftTiming: f.ShiftTiming,
		Timestamp:   s.stamp(),
	}
	if err := s.db.WithContext(ctx).Create(&sh).Error; err != nil {
		return nil, fmt.Errorf("create shift: %w", err)
	}
	s.local(&sh)
	return &sh, nil
}

func (s *Store) Get(ctx context.Context, id uint) (*models.Shift, error) {
	var sh models.Shift
	err := s.db.WithContext(ctx).Take(&sh, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shift %d: %w", id, err)
	}
	s.local(&sh)
	return &sh, nil
}

// ListAll returns every shift ordered by date, then branch.
func (s *Store) ListAll(ctx context.Context) ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.db.WithContext(ctx).
		Order("date asc").
		Order("branch asc").
		Order("id asc").
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	for i := range shifts {
		s.local(&shifts[i])
	}
	return shifts, nil
}

// Update overwrites every mutable column of id and refreshes its timestamp.
// found is false when no such shift exists; nothing is written in that case.
func (s *Store) Update(ctx context.Context, id uint, f Fields) (found bool, err error) {
	f = f.Normalize()
	res := s.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"date":         f.Date,
			"branch":       f.Branch,
			"staff_name":   f.StaffName,
			"staff_number": f.StaffNumber,
			"mobile_phone": f.MobilePhone,
			"shift_timing": f.ShiftTiming,
			"timestamp":    s.stamp(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("update shift %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes id. found is false when it did not exist.
func (s *Store) Delete(ctx context.Context, id uint) (found bool, err error) {
	res := s.db.WithContext(ctx).Delete(&models.Shift{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete shift %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Suggest returns each distinct (staff name, number, phone) once. A non-empty
// prefix keeps only names starting with it, ignoring case.
func (s *Store) Suggest(ctx context.Context, prefix string) ([]Suggestion, error) {
	var rows []Suggestion
	err := s.db.WithContext(ctx).
		Model(&models.Shift{}).
		Distinct("staff_name", "staff_number", "mobile_phone").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("suggest staff: %w", err)
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := rows[:0]
	for _, r := range rows {
		if prefix == "" || strings.HasPrefix(strings.ToLower(r.StaffName), prefix) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StaffName != out[j].StaffName {
			return out[i].StaffName < out[j].StaffName
		}
		if out[i].StaffNumber != out[j].StaffNumber {
			return out[i].StaffNumber < out[j].StaffNumber
		}
		return out[i].MobilePhone < out[j].MobilePhone
	})
	return out, nil
}

// BranchSummary counts the shifts of one day per branch and timing.
func (s *Store) BranchSummary(ctx context.Context, date time.Time) ([]BranchCount, error) {
	var out []BranchCount
	err := s.db.WithContext(ctx).
		Model(&models.Shift{}).
		Select("branch, shift_timing, count(*) as count").
		Where("date = ?", day(date)).
		Group("branch, shift_timing").
		Order("branch asc, shift_timing asc").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("branch summary: %w", err)
	}
	return out, nil
}
