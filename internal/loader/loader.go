package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MikeSquared-Agency/backupviewer/internal/export"
	"github.com/MikeSquared-Agency/backupviewer/internal/notify"
	"github.com/MikeSquared-Agency/backupviewer/internal/store"
)

// Publisher receives an event after each successful load.
type Publisher interface {
	PublishLoaded(evt notify.LoadedEvent) error
}

// Loader decodes exports, builds conversations, and swaps them into a store.
type Loader struct {
	store     *store.Store
	opts      export.Options
	publisher Publisher
	logger    *slog.Logger
}

// New creates a loader. publisher may be nil.
func New(s *store.Store, opts export.Options, publisher Publisher, logger *slog.Logger) *Loader {
	return &Loader{
		store:     s,
		opts:      opts,
		publisher: publisher,
		logger:    logger,
	}
}

// Load reads an export from r. On any error the store keeps its previous
// conversation; decoding failures wrap export.ErrInvalidFile.
func (l *Loader) Load(ctx context.Context, source string, r io.Reader) (*store.Snapshot, error) {
	raw, err := export.DecodeReader(r)
	if err != nil {
		l.logger.Warn("export rejected", "source", source, "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conv := export.BuildConversation(raw, l.opts)
	for _, s := range conv.Skipped {
		l.logger.Warn("skipped malformed message", "source", source, "index", s.Index, "field", s.Field, "error", s.Err)
	}

	snap := l.store.Replace(source, conv)
	l.logger.Info("conversation loaded",
		"conversation_id", snap.ID,
		"source", source,
		"message_count", len(conv.Messages),
		"primary_user", conv.PrimaryUser,
		"skipped", len(conv.Skipped),
	)

	if l.publisher != nil {
		evt := notify.LoadedEvent{
			ConversationID: snap.ID.String(),
			Source:         source,
			MessageCount:   len(conv.Messages),
			PrimaryUser:    conv.PrimaryUser,
			Skipped:        len(conv.Skipped),
			LoadedAt:       snap.LoadedAt,
		}
		if err := l.publisher.PublishLoaded(evt); err != nil {
			l.logger.Warn("failed to publish load event", "conversation_id", snap.ID, "error", err)
		}
	}
	return snap, nil
}

// LoadFile loads the export at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*store.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return l.Load(ctx, filepath.Base(path), f)
}
