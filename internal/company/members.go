package company

import (
	"sort"
	"time"
)

var memberSinceLayouts = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

// SortMembersBySince returns a copy of members ordered by membership start
// date, most recent first. Members without a parseable date go last; ties keep
// their upstream order. Normalize never calls this: ordering is a display
// concern.
func SortMembersBySince(members []Member) []Member {
	type dated struct {
		member Member
		since  time.Time
	}
	rows := make([]dated, len(members))
	for i, m := range members {
		rows[i] = dated{member: m, since: parseMemberSince(m.MemberSince)}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].since, rows[j].since
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	out := make([]Member, len(rows))
	for i, row := range rows {
		out[i] = row.member
	}
	return out
}

func parseMemberSince(value string) time.Time {
	for _, layout := range memberSinceLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
