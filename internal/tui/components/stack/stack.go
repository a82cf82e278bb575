// Package stack renders the materialized review window as a deck of
// cards and translates terminal mouse drags into gesture samples.
package stack

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/riffle/internal/deck"
	"github.com/billie-coop/riffle/internal/gesture"
	"github.com/billie-coop/riffle/internal/review"
	"github.com/billie-coop/riffle/internal/tui/components/core"
	"github.com/billie-coop/riffle/internal/tui/events"
	"github.com/billie-coop/riffle/internal/tui/styles"
)

var (
	_ core.Component = (*Component)(nil)
	_ core.Sizeable  = (*Component)(nil)
)

const (
	maxCardWidth  = 52
	minCardWidth  = 24
	statusReserve = 2 // rows kept clear for status bar and help line
)

// DecisionMsg is emitted when a finished gesture crossed the commit
// threshold. The root model applies it to the review queue.
type DecisionMsg struct {
	Direction review.Direction
}

// CancelledMsg is emitted when a gesture ended below the threshold
// and the front card springs back to rest.
type CancelledMsg struct{}

// Component renders the card stack and owns the in-flight gesture.
type Component struct {
	width  int
	height int

	slots     []review.MaterializedSlot[deck.Card]
	exhausted bool
	canUndo   bool

	classifier *gesture.Classifier
	tracker    *gesture.Tracker
	progress   gesture.Progress
	dragShift  int

	broker *events.Broker

	// rendered card bodies, keyed by card ID; dropped on resize
	bodies map[string]string

	// now is injectable for gesture timing in tests
	now func() time.Time
}

// New creates a card stack component publishing gesture feedback to
// broker.
func New(broker *events.Broker, classifier *gesture.Classifier) *Component {
	return &Component{
		classifier: classifier,
		broker:     broker,
		bodies:     make(map[string]string),
		now:        time.Now,
	}
}

// SetSlots replaces the rendered window contents.
func (c *Component) SetSlots(slots []review.MaterializedSlot[deck.Card]) {
	c.slots = slots
	c.exhausted = len(slots) == 0
	c.pruneBodies()
}

// SetCanUndo controls the hint shown on the exhausted panel.
func (c *Component) SetCanUndo(canUndo bool) {
	c.canUndo = canUndo
}

// Init implements the component contract.
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update handles mouse input; everything else passes through.
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			return c, c.beginDrag(msg.X, msg.Y)
		}
	case tea.MouseMotionMsg:
		return c, c.moveDrag(msg.X)
	case tea.MouseReleaseMsg:
		return c, c.endDrag(msg.X)
	}
	return c, nil
}

// SetSize resizes the component and invalidates rendered bodies.
func (c *Component) SetSize(width, height int) tea.Cmd {
	if width != c.width {
		c.bodies = make(map[string]string)
	}
	c.width = width
	c.height = height
	return nil
}

// GetSize returns the component size.
func (c *Component) GetSize() (int, int) {
	return c.width, c.height
}

// Dragging reports whether a gesture is in flight.
func (c *Component) Dragging() bool {
	return c.tracker != nil && c.tracker.Active()
}

func (c *Component) beginDrag(x, y int) tea.Cmd {
	// Gestures on an exhausted deck are ignored, not errors.
	if c.exhausted || len(c.slots) == 0 {
		return nil
	}
	if y >= c.height-statusReserve {
		return nil
	}
	c.tracker = gesture.Begin(x, c.now())
	c.progress = gesture.Progress{}
	c.dragShift = 0
	return nil
}

func (c *Component) moveDrag(x int) tea.Cmd {
	if !c.Dragging() {
		return nil
	}
	translation := c.tracker.Move(x, c.now())
	c.dragShift = int(translation)
	c.progress = c.classifier.Changed(translation, float64(c.cardWidth()))

	c.broker.Publish(events.Event{
		Type: events.GestureProgressEvent,
		Payload: events.ProgressPayload{
			Progress:  c.progress.Value,
			Direction: c.progress.Direction,
		},
	})
	return nil
}

func (c *Component) endDrag(x int) tea.Cmd {
	if !c.Dragging() {
		return nil
	}
	result := c.tracker.End(x, c.now(), c.classifier, float64(c.cardWidth()))
	c.tracker = nil
	c.progress = gesture.Progress{}
	c.dragShift = 0

	if result.Committed {
		return func() tea.Msg {
			return DecisionMsg{Direction: result.Direction}
		}
	}

	c.broker.Publish(events.Event{Type: events.GestureCancelledEvent})
	return func() tea.Msg {
		return CancelledMsg{}
	}
}

// View renders the window back to front: deeper slots peek out as top
// edges above the front card.
func (c *Component) View() string {
	if c.width <= 0 || c.height <= 0 {
		return ""
	}
	if len(c.slots) == 0 {
		return c.viewExhausted()
	}

	var b strings.Builder
	for i := len(c.slots) - 1; i >= 1; i-- {
		b.WriteString(c.viewPeek(c.slots[i]))
		b.WriteString("\n")
	}
	b.WriteString(c.viewFront(c.slots[0]))

	return lipgloss.NewStyle().Width(c.width).Render(b.String())
}

// viewPeek draws the sliver of a background card visible behind the
// front one: a scaled top border leaning with its rotation.
func (c *Component) viewPeek(slot review.MaterializedSlot[deck.Card]) string {
	theme := styles.CurrentTheme()

	w := int(float64(c.cardWidth()) * slot.Transform.Scale)
	if w < minCardWidth/2 {
		w = minCardWidth / 2
	}

	edge := "╭" + strings.Repeat("─", max(0, w-2)) + "╮"
	lean := int(slot.Transform.RotationDegrees)

	return lipgloss.NewStyle().
		Foreground(theme.Border).
		MarginLeft(max(0, c.cardLeft(w)+lean)).
		Render(edge)
}

func (c *Component) viewFront(slot review.MaterializedSlot[deck.Card]) string {
	theme := styles.CurrentTheme()
	card := slot.Item
	w := c.cardWidth()

	title := theme.S().Title.Render(truncate(card.Title, w-4))

	bodyHeight := c.height - statusReserve - len(c.slots) - 5
	body := c.renderBody(card, w-4)
	body = clampHeight(body, max(3, bodyHeight))

	var footer string
	if c.progress.Value > 0 {
		footer = c.progressBadge()
	} else {
		footer = theme.S().Subtle.Render("← drop · keep →")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer)

	style := theme.S().CardFocused.Width(w - 2).Padding(0, 1)
	rendered := style.Render(content)

	return lipgloss.NewStyle().
		MarginLeft(max(0, c.cardLeft(w)+c.dragShift)).
		Render(rendered)
}

func (c *Component) viewExhausted() string {
	theme := styles.CurrentTheme()

	lines := []string{
		theme.S().Subtitle.Render("Deck exhausted"),
		"",
		theme.S().Muted.Render("Every card has been reviewed."),
	}
	if c.canUndo {
		lines = append(lines, theme.S().Subtle.Render("Press u to step back."))
	}

	panel := theme.S().Card.
		Width(c.cardWidth() - 2).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		MarginLeft(max(0, c.cardLeft(c.cardWidth()))).
		MarginTop(2).
		Render(panel)
}

// progressBadge shows live commit feedback while dragging.
func (c *Component) progressBadge() string {
	theme := styles.CurrentTheme()

	label := fmt.Sprintf("DROP %d%%", int(c.progress.Value*100))
	style := theme.S().BadgeDrop
	if c.progress.Direction == review.DirectionForward {
		label = fmt.Sprintf("KEEP %d%%", int(c.progress.Value*100))
		style = theme.S().BadgeKeep
	}
	// Neutral until the release would actually commit.
	if !c.classifier.Committable(c.progress.Value) {
		style = theme.S().Badge
	}
	return style.Render(label)
}

// renderBody lazily renders a card's markdown, caching per card. Only
// cards in the window ever pay the render cost.
func (c *Component) renderBody(card deck.Card, width int) string {
	if body, ok := c.bodies[card.ID()]; ok {
		return body
	}

	rendered := card.Body
	if r := styles.GetMarkdownRenderer(width); r != nil {
		if out, err := r.Render(card.Body); err == nil {
			rendered = strings.TrimRight(out, "\n")
		}
	}

	c.bodies[card.ID()] = rendered
	return rendered
}

// pruneBodies drops cached renders for cards no longer in the window.
func (c *Component) pruneBodies() {
	visible := make(map[string]bool, len(c.slots))
	for _, slot := range c.slots {
		visible[slot.Item.ID()] = true
	}
	for id := range c.bodies {
		if !visible[id] {
			delete(c.bodies, id)
		}
	}
}

func (c *Component) cardWidth() int {
	w := c.width - 8
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

// cardLeft centers a card of width w in the component.
func (c *Component) cardLeft(w int) int {
	return (c.width - w) / 2
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 1 || len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

func clampHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n") + "\n…"
}
