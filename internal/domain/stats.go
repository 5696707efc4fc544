package domain

import "time"

// Statistics - сводка по набору данных и взаимодействиям
type Statistics struct {
	Fields         int              `json:"fields"`
	Rings          int              `json:"rings"`
	Points         int              `json:"points"`
	Images         int              `json:"images"`
	Clubs          int              `json:"clubs"`
	Instructors    int              `json:"instructors"`
	ActiveSessions int              `json:"active_sessions"`
	Opens          map[string]int64 `json:"opens,omitempty"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
