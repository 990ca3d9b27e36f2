package models

// Timer types. Pomodoro and break timers get default durations when none
// is given; custom timers must state one.
const (
	TimerPomodoro = "pomodoro"
	TimerBreak    = "break"
	TimerCustom   = "custom"
)

type Timer struct {
	Base
	Name          string `json:"name"`
	Duration      int    `json:"duration"` // minutes
	TimeRemaining int    `json:"timeRemaining"` // seconds
	IsRunning     bool   `gorm:"default:false" json:"isRunning"`
	Type          string `json:"type"`
}
