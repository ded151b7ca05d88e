package model

import "time"

// ElectionWindow is the interval during which casting is permitted,
// fixed at deployment. The lower bound is inclusive, the upper exclusive.
type ElectionWindow struct {
	ElectionID string
	Start      time.Time
	End        time.Time
}

func (w ElectionWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
