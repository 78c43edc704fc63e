package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/backupviewer/internal/export"
	"github.com/MikeSquared-Agency/backupviewer/internal/store"
)

// EntryResponse is one annotated message with resolved attachments.
type EntryResponse struct {
	export.Entry
	Attachments []export.ResolvedAttachment `json:"attachments"`
}

// ConversationResponse is the JSON form of the current conversation.
type ConversationResponse struct {
	ConversationID string                `json:"conversation_id"`
	Source         string                `json:"source"`
	LoadedAt       time.Time             `json:"loaded_at"`
	PrimaryUser    string                `json:"primary_user,omitempty"`
	Participants   []export.Participant  `json:"participants"`
	Messages       []EntryResponse       `json:"messages"`
	Skipped        []export.MessageError `json:"skipped"`
}

// LoadResponse summarizes a successful load.
type LoadResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageCount   int    `json:"message_count"`
	PrimaryUser    string `json:"primary_user,omitempty"`
	Skipped        int    `json:"skipped"`
}

func (s *Server) resolveEntries(conv *export.Conversation) []EntryResponse {
	entries := conv.Entries()
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			Entry:       e,
			Attachments: export.ResolveAttachments(e.Files, s.opts.WebRoot),
		}
	}
	return out
}

// getConversation handles GET /api/v1/conversation
func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no conversation loaded")
		return
	}
	conv := snap.Conversation
	resp := ConversationResponse{
		ConversationID: snap.ID.String(),
		Source:         snap.Source,
		LoadedAt:       snap.LoadedAt,
		PrimaryUser:    conv.PrimaryUser,
		Participants:   conv.Participants,
		Messages:       s.resolveEntries(conv),
		Skipped:        conv.Skipped,
	}
	if resp.Participants == nil {
		resp.Participants = []export.Participant{}
	}
	if resp.Skipped == nil {
		resp.Skipped = []export.MessageError{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// postConversation handles POST /api/v1/conversation with a raw export body.
func (s *Server) postConversation(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	snap, err := s.loader.Load(r.Context(), "api", body)
	if err != nil {
		status, msg := loadErrorStatus(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusCreated, loadResponse(snap))
}

// deleteConversation handles DELETE /api/v1/conversation
func (s *Server) deleteConversation(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func loadResponse(snap *store.Snapshot) LoadResponse {
	return LoadResponse{
		ConversationID: snap.ID.String(),
		MessageCount:   len(snap.Conversation.Messages),
		PrimaryUser:    snap.Conversation.PrimaryUser,
		Skipped:        len(snap.Conversation.Skipped),
	}
}

// loadErrorStatus maps a loader error onto an HTTP status and a user-facing message.
func loadErrorStatus(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "file too large"
	case errors.Is(err, export.ErrInvalidFile):
		return http.StatusBadRequest, "invalid file: expected a JSON array of chat messages"
	default:
		return http.StatusInternalServerError, "could not load file"
	}
}
