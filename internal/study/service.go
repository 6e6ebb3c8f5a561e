// Package study ties the SM-2 scheduler to the deck store: deck lifecycle,
// due-card queries, the dashboard, and the global review stats.
package study

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/studybuddy/studydeck/internal/storage"
)

// Service runs every operation against the store it was constructed with.
// No state is cached between calls; each operation re-reads from storage.
type Service struct {
	store storage.Store
	log   *slog.Logger
	now   func() time.Time
}

// New returns a service backed by the given store.
func New(store storage.Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

const slugMaxLen = 30

// generateDeckID derives a collision-resistant deck ID: a name slug plus the
// first six hex chars of a hash over name and creation time.
func generateDeckID(name string, created time.Time) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	if len(slug) > slugMaxLen {
		slug = slug[:slugMaxLen]
	}
	sum := sha256.Sum256([]byte(name + created.Format(time.RFC3339Nano)))
	return fmt.Sprintf("%s-%x", slug, sum[:3])
}
