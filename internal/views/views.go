package views

// View names a derived client view. Mutating engine operations return the
// views they invalidate so the caller can decide what to refetch; there is no
// broadcast channel behind this.
type View string

const (
	Attendance View = "attendance"
	Scoreboard View = "scoreboard"
	Profile    View = "profile"
	Roster     View = "roster"
)
