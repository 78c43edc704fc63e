package export

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode_InvalidFile(t *testing.T) {
	for _, in := range []string{
		``,
		`   `,
		`{"user":"A"}`,
		`null`,
		`[{"user":"A",`,
		`not json`,
	} {
		msgs, err := Decode([]byte(in))
		if !errors.Is(err, ErrInvalidFile) {
			t.Errorf("Decode(%q): expected ErrInvalidFile, got %v", in, err)
		}
		if msgs != nil {
			t.Errorf("Decode(%q): expected no messages on failure", in)
		}
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	msgs, err := Decode([]byte(" [ ] "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected 0 messages, got %d", len(msgs))
	}
}

func TestDecode_SlackFields(t *testing.T) {
	in := "\xef\xbb\xbf" + `[{
		"user":"U04",
		"ts":"1747645200.000200",
		"timestamp":"2025-05-19T09:00:00Z",
		"text":"see attached",
		"user_profile":{"real_name":"Ada","display_name":""},
		"files":[{"id":"F1","name":"a.png","mimetype":"image/png","local_path":"C:\\Backup\\a.png"}],
		"reactions":[{"name":"+1"}]
	}]`
	msgs, err := DecodeReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	m := msgs[0]
	if m.User != "U04" || m.TS != "1747645200.000200" || m.UserProfile == nil || m.UserProfile.RealName != "Ada" {
		t.Errorf("unexpected message: %+v", m)
	}
	if len(m.Files) != 1 || m.Files[0].LocalPath != `C:\Backup\a.png` {
		t.Errorf("unexpected files: %+v", m.Files)
	}
	if m.decodeErr != nil {
		t.Errorf("unexpected decode error: %v", m.decodeErr)
	}
}
