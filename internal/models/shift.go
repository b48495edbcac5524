package models

import "time"

type ShiftTiming string

// Shift timing labels offered on the submission form.
const (
	Timing6to2       ShiftTiming = "6-2"
	Timing8to5       ShiftTiming = "8-5"
	Timing10to6      ShiftTiming = "10-6"
	Timing2to10      ShiftTiming = "2-10"
	Timing5to1       ShiftTiming = "5-1"
	Timing5to9       ShiftTiming = "5-9(DAY/NIGHT)"
	Timing10to6Night ShiftTiming = "10-6(NIGHT)"
)

var ShiftTimings = []ShiftTiming{
	Timing6to2, Timing8to5, Timing10to6, Timing2to10, Timing5to1, Timing5to9, Timing10to6Night,
}

func (t ShiftTiming) Valid() bool {
	for _, v := range ShiftTimings {
		if v == t {
			return true
		}
	}
	return false
}

type Shift struct {
	ID          uint        `gorm:"primaryKey"`
	Date        time.Time   `gorm:"type:date;not null;index"`
	Branch      string      `gorm:"size:50;not null;index"`
	StaffName   string      `gorm:"size:100;not null;index:idx_staff,priority:1"`
	StaffNumber string      `gorm:"size:50;not null;index:idx_staff,priority:2"`
	MobilePhone string      `gorm:"size:30;not null;index:idx_staff,priority:3"`
	ShiftTiming ShiftTiming `gorm:"size:30;not null"`

	// Last write, stamped by the store on create and update.
	Timestamp time.Time `gorm:"column:timestamp;not null"`
}
