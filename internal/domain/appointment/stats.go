package appointment

// Badge is the visual rendering of an appointment status: the icon asset and
// color classes the admin table shows next to the status text.
type Badge struct {
	Status     Status `json:"status"`
	Icon       string `json:"icon"`
	Background string `json:"background"`
	TextColor  string `json:"text_color"`
}

var statusBadges = map[Status]Badge{
	StatusScheduled: {Status: StatusScheduled, Icon: "/assets/icons/check.svg", Background: "bg-green-600", TextColor: "text-green-500"},
	StatusPending:   {Status: StatusPending, Icon: "/assets/icons/pending.svg", Background: "bg-blue-600", TextColor: "text-blue-500"},
	StatusCancelled: {Status: StatusCancelled, Icon: "/assets/icons/cancelled.svg", Background: "bg-red-600", TextColor: "text-red-500"},
}

// BadgeFor returns the fixed badge for a status. Unknown statuses have no
// badge.
func BadgeFor(s Status) (Badge, bool) {
	b, ok := statusBadges[s]
	return b, ok
}

// Summary is the dashboard's appointment count breakdown.
type Summary struct {
	TotalCount     int `json:"total_count"`
	ScheduledCount int `json:"scheduled_count"`
	PendingCount   int `json:"pending_count"`
	CancelledCount int `json:"cancelled_count"`
}

// Summarize folds a list of appointments into the count summary. The fold is
// a commutative count, so input order never affects the result. Unknown
// status values contribute to the total but to none of the three counters.
func Summarize(appointments []*Appointment) Summary {
	s := Summary{TotalCount: len(appointments)}
	for _, a := range appointments {
		switch a.Status {
		case StatusScheduled:
			s.ScheduledCount++
		case StatusPending:
			s.PendingCount++
		case StatusCancelled:
			s.CancelledCount++
		}
	}
	return s
}
