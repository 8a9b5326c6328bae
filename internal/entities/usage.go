package entities

import (
	"math"
	"time"
)

// Usage текущий расход трафика, звонков и SMS по eSIM
type Usage struct {
	ICCID       string
	Status      string
	Unlimited   bool
	TotalMB     int
	RemainingMB int
	UsedMB      int
	UsedPercent float64

	TotalVoice     int
	RemainingVoice int
	TotalText      int
	RemainingText  int

	ExpiresAt     *time.Time
	DaysTotal     int
	DaysRemaining int
}

// Fill считает производные поля по total/remaining и сроку действия
func (u *Usage) Fill(now time.Time, validityDays int) {
	if u.RemainingMB > u.TotalMB {
		u.RemainingMB = u.TotalMB
	}
	u.UsedMB = u.TotalMB - u.RemainingMB
	if u.TotalMB > 0 {
		u.UsedPercent = math.Round(float64(u.UsedMB)/float64(u.TotalMB)*10000) / 100
	}

	u.DaysTotal = validityDays
	if u.ExpiresAt == nil {
		return
	}
	left := u.ExpiresAt.Sub(now)
	if left <= 0 {
		u.DaysRemaining = 0
		return
	}
	u.DaysRemaining = int(math.Ceil(left.Hours() / 24))
}
