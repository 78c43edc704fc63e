package export

// Entry is a message annotated for display against its predecessor.
type Entry struct {
	Message
	ShowDateHeader      bool `json:"show_date_header"`
	IsConsecutiveSender bool `json:"is_consecutive_sender"`
	IsPrimary           bool `json:"is_primary"`
}

// Annotate walks an ordered message list once, comparing each message with
// the one before it.
func Annotate(msgs []Message, primaryUser string) []Entry {
	entries := make([]Entry, len(msgs))
	var prevUser, prevDate string
	for i, m := range msgs {
		entries[i] = Entry{
			Message:             m,
			ShowDateHeader:      i == 0 || m.DisplayDate != prevDate,
			IsConsecutiveSender: i > 0 && m.User == prevUser,
			IsPrimary:           primaryUser != "" && m.User == primaryUser,
		}
		prevUser, prevDate = m.User, m.DisplayDate
	}
	return entries
}

// Entries annotates the conversation's own messages.
func (c *Conversation) Entries() []Entry {
	return Annotate(c.Messages, c.PrimaryUser)
}

// DayGroup is a run of entries sharing one display date.
type DayGroup struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// GroupByDay splits annotated entries at every date header.
func GroupByDay(entries []Entry) []DayGroup {
	var groups []DayGroup
	for _, e := range entries {
		if e.ShowDateHeader || len(groups) == 0 {
			groups = append(groups, DayGroup{Date: e.DisplayDate})
		}
		g := &groups[len(groups)-1]
		g.Entries = append(g.Entries, e)
	}
	return groups
}
