// Package deck loads and holds the ordered set of cards available for a
// review session. A deck is immutable once loaded; the review queue only
// ever holds cards by reference.
package deck

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Card is a single reviewable item. The body is markdown and is only
// rendered when the card is visible in the window.
type Card struct {
	UUID  uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Path  string    `json:"path,omitempty"`
}

// ID returns the card's stable string identity.
func (c Card) ID() string {
	return c.UUID.String()
}

// Deck is an ordered, immutable-for-the-session list of cards.
type Deck struct {
	cards []Card
}

// New creates a deck from an already-ordered card list.
func New(cards []Card) *Deck {
	return &Deck{cards: cards}
}

// Cards returns the deck contents in review order.
func (d *Deck) Cards() []Card {
	return d.cards
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Load reads a deck from path. A directory is treated as a folder of
// markdown cards; a file is treated as a JSON deck.
func Load(path string) (*Deck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat deck path %q", path)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadDir builds a deck from every .md file in dir (non-recursive),
// sorted by filename so review order is stable across runs. The first
// `# ` heading becomes the card title; files without one use the
// filename.
func LoadDir(dir string) (*Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read deck directory %q", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	cards := make([]Card, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read card %q", path)
		}

		title, body := splitTitle(string(data))
		if title == "" {
			title = strings.TrimSuffix(name, filepath.Ext(name))
		}

		cards = append(cards, Card{
			UUID:  uuid.New(),
			Title: title,
			Body:  body,
			Path:  path,
		})
	}

	return New(cards), nil
}

// jsonDeck is the on-disk JSON shape: either a bare card array or an
// object with a "cards" field.
type jsonDeck struct {
	Cards []Card `json:"cards"`
}

// LoadFile reads a JSON deck file. Cards without an id get a fresh one.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read deck file %q", path)
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		var wrapped jsonDeck
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, errors.Wrapf(err, "parse deck file %q", path)
		}
		cards = wrapped.Cards
	}

	for i := range cards {
		if cards[i].UUID == uuid.Nil {
			cards[i].UUID = uuid.New()
		}
		if cards[i].Path == "" {
			cards[i].Path = path
		}
	}

	return New(cards), nil
}

// splitTitle separates the first markdown H1 from the remaining body.
func splitTitle(content string) (title, body string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return title, body
		}
		break
	}
	return "", strings.TrimSpace(content)
}
