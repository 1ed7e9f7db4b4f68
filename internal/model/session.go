package model

import "time"

// Flash carries one-shot notifications: read once on the next rendered
// page, then cleared.
type Flash struct {
	Success string
	Error   string
}

func (f Flash) Empty() bool {
	return f.Success == "" && f.Error == ""
}

type Session struct {
	Token     string
	UserID    int64
	Flash     Flash
	ExpiresAt time.Time
	CreatedAt time.Time
}
