package export

import (
	"encoding/json"
	"fmt"
	"time"
)

// Attachment is a file reference embedded in an exported message.
type Attachment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mimetype  string `json:"mimetype"`
	LocalPath string `json:"local_path"`
}

// UserProfile is the optional profile block Slack attaches to each message.
type UserProfile struct {
	RealName    string `json:"real_name"`
	DisplayName string `json:"display_name"`
}

// RawMessage is one untrusted record from an export file.
type RawMessage struct {
	User        string       `json:"user"`
	UserName    string       `json:"user_name,omitempty"`
	UserProfile *UserProfile `json:"user_profile,omitempty"`
	Timestamp   string       `json:"timestamp"`
	TS          string       `json:"ts,omitempty"`
	Text        string       `json:"text"`
	Files       []Attachment `json:"files,omitempty"`

	decodeErr error // set by Decode when the element is not a usable object
}

// Message is a RawMessage after normalization.
type Message struct {
	User         string       `json:"user"`
	DisplayName  string       `json:"display_name"`
	Initials     string       `json:"initials"`
	Text         string       `json:"text"`
	Files        []Attachment `json:"files,omitempty"`
	RawTimestamp string       `json:"raw_timestamp"`
	Time         time.Time    `json:"timestamp"`
	DisplayDate  string       `json:"display_date"`
	TimeLabel    string       `json:"time_label"`
	Index        int          `json:"index"` // position in the input sequence
}

// Participant is a distinct sender with its message count.
type Participant struct {
	User        string `json:"user"`
	DisplayName string `json:"display_name"`
	Count       int    `json:"count"`
}

// Conversation is the rendering-ready result of BuildConversation.
// Messages are ordered non-decreasing by Time. PrimaryUser is empty when
// there are no messages.
type Conversation struct {
	Messages     []Message      `json:"messages"`
	PrimaryUser  string         `json:"primary_user,omitempty"`
	Participants []Participant  `json:"participants"`
	Skipped      []MessageError `json:"skipped,omitempty"`
}

// Primary returns the primary user and whether one exists.
func (c *Conversation) Primary() (string, bool) {
	return c.PrimaryUser, c.PrimaryUser != ""
}

// DisplayName returns the best known name for user, falling back to the id.
func (c *Conversation) DisplayName(user string) string {
	for _, p := range c.Participants {
		if p.User == user && p.DisplayName != "" {
			return p.DisplayName
		}
	}
	return user
}

// MessageError describes a single message dropped from a conversation.
type MessageError struct {
	Index int    // position in the input sequence
	Field string // offending field, empty for a non-object element
	Err   error
}

func (e MessageError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("message %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("message %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e MessageError) Unwrap() error { return e.Err }

func (e MessageError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index int    `json:"index"`
		Field string `json:"field,omitempty"`
		Error string `json:"error"`
	}{e.Index, e.Field, e.Err.Error()})
}
