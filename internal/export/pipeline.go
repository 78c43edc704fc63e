package export

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var errMissingUser = errors.New("missing user")

// Options controls how a conversation is built.
type Options struct {
	// Location is the display time zone. Nil means time.Local.
	Location *time.Location
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// BuildConversation turns a decoded export into an ordered Conversation.
// Messages without a user or with an unparsable timestamp are skipped and
// reported in Conversation.Skipped. The input slice is not modified.
func BuildConversation(raw []RawMessage, opts Options) *Conversation {
	loc := opts.location()
	conv := &Conversation{Messages: make([]Message, 0, len(raw))}

	for i, rm := range raw {
		msg, merr := normalize(i, rm, loc)
		if merr != nil {
			conv.Skipped = append(conv.Skipped, *merr)
			continue
		}
		conv.Messages = append(conv.Messages, msg)
	}

	// Stable so equal timestamps keep their input order.
	sort.SliceStable(conv.Messages, func(i, j int) bool {
		return conv.Messages[i].Time.Before(conv.Messages[j].Time)
	})

	conv.Participants = countParticipants(conv.Messages)
	conv.PrimaryUser = primaryUser(conv.Participants)

	// Names may only be known from a later message; apply the final map.
	for i := range conv.Messages {
		conv.Messages[i].DisplayName = conv.DisplayName(conv.Messages[i].User)
	}
	return conv
}

func normalize(idx int, rm RawMessage, loc *time.Location) (Message, *MessageError) {
	if rm.decodeErr != nil {
		return Message{}, &MessageError{Index: idx, Err: rm.decodeErr}
	}
	user := strings.TrimSpace(rm.User)
	if user == "" {
		return Message{}, &MessageError{Index: idx, Field: "user", Err: errMissingUser}
	}

	rawTS := rm.Timestamp
	if strings.TrimSpace(rawTS) == "" {
		rawTS = rm.TS
	}
	t, err := ParseTimestamp(rawTS, loc)
	if err != nil {
		return Message{}, &MessageError{Index: idx, Field: "timestamp", Err: err}
	}

	return Message{
		User:         user,
		DisplayName:  profileName(rm),
		Initials:     Initials(user),
		Text:         rm.Text,
		Files:        rm.Files,
		RawTimestamp: rawTS,
		Time:         t,
		DisplayDate:  DisplayDate(t, loc),
		TimeLabel:    t.In(loc).Format(TimeLabelLayout),
		Index:        idx,
	}, nil
}

func profileName(rm RawMessage) string {
	if rm.UserProfile != nil {
		if n := strings.TrimSpace(rm.UserProfile.DisplayName); n != "" {
			return n
		}
		if n := strings.TrimSpace(rm.UserProfile.RealName); n != "" {
			return n
		}
	}
	return strings.TrimSpace(rm.UserName)
}

// countParticipants tallies senders in first-seen order of msgs. The first
// non-empty name seen for a user wins; the id is used when none is known.
func countParticipants(msgs []Message) []Participant {
	var out []Participant
	pos := make(map[string]int)
	for _, m := range msgs {
		i, ok := pos[m.User]
		if !ok {
			i = len(out)
			pos[m.User] = i
			out = append(out, Participant{User: m.User})
		}
		out[i].Count++
		if out[i].DisplayName == "" && m.DisplayName != "" {
			out[i].DisplayName = m.DisplayName
		}
	}
	for i := range out {
		if out[i].DisplayName == "" {
			out[i].DisplayName = out[i].User
		}
	}
	return out
}

// primaryUser picks the strictly highest count. Ties go to the participant
// seen first in chronological order.
func primaryUser(ps []Participant) string {
	best := -1
	for i, p := range ps {
		if best < 0 || p.Count > ps[best].Count {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return ps[best].User
}

// Initials returns the avatar label for a user id: its last two runes.
func Initials(user string) string {
	r := []rune(user)
	if len(r) > 2 {
		r = r[len(r)-2:]
	}
	return string(r)
}
