package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/billie-coop/riffle/internal/config"
	"github.com/billie-coop/riffle/internal/deck"
	"github.com/billie-coop/riffle/internal/gesture"
	"github.com/billie-coop/riffle/internal/review"
	"github.com/billie-coop/riffle/internal/transform"
	"github.com/billie-coop/riffle/internal/tui/components/stack"
	"github.com/billie-coop/riffle/internal/tui/components/status"
	"github.com/billie-coop/riffle/internal/tui/events"
	"github.com/billie-coop/riffle/internal/tui/styles"
)

// Model is the component-based root of the review TUI. It owns the
// queue and the broker; components stay decoupled from both and only
// see slots and events.
type Model struct {
	width  int
	height int

	// Components
	stack     *stack.Component
	statusBar *status.Component
	help      help.Model

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	// Review state machine
	queue *review.Queue[deck.Card]

	keyMap   KeyMap
	showHelp bool
}

// New creates the root model for reviewing the given deck.
func New(cfg *config.Config, cards *deck.Deck) (*Model, error) {
	styles.SetDefaultManager(styles.NewManager(cfg.Theme))

	eventBroker := events.NewBroker()

	policy := transform.NewPolicy(
		cfg.TransformConfig(),
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	queue, err := review.New(
		cards.Cards(),
		review.WithWindowSize[deck.Card](cfg.WindowSize),
		review.WithTransformPolicy[deck.Card](policy),
		review.WithObserver[deck.Card](events.NewQueueBridge(eventBroker)),
	)
	if err != nil {
		return nil, err
	}

	classifier := gesture.NewClassifier(cfg.GestureConfig())

	m := &Model{
		stack:       stack.New(eventBroker, classifier),
		statusBar:   status.New(),
		help:        help.New(),
		eventBroker: eventBroker,
		queue:       queue,
		keyMap:      DefaultKeyMap(),
	}

	// Subscribe to all events
	m.eventSub = eventBroker.Subscribe()

	return m, nil
}

// Init initializes the TUI model and all components
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	cmds = append(cmds, m.stack.Init())
	cmds = append(cmds, m.statusBar.Init())

	// Seed components from the initial window
	m.stack.SetSlots(m.queue.Window())
	m.syncStatus()

	// Start event processing
	cmds = append(cmds, m.listenForEvents())

	m.eventBroker.PublishAsync(events.Event{
		Type: events.StatusMessageEvent,
		Payload: events.StatusMessagePayload{
			Message: "Drag a card or use ←/→ · u to undo",
			Type:    "info",
		},
	})

	return tea.Batch(cmds...)
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle events that come as messages
	if event, ok := msg.(events.Event); ok {
		model, cmd := m.handleEvent(event)
		cmds = append(cmds, cmd, model.(*Model).listenForEvents())
		return model, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const statusHeight = 1
		const helpHeight = 1

		cmds = append(cmds, m.stack.SetSize(m.width, m.height-statusHeight-helpHeight))
		cmds = append(cmds, m.statusBar.SetSize(m.width, statusHeight))
		m.help.Width = m.width

	case stack.DecisionMsg:
		m.queue.Commit(msg.Direction)
		return m, tea.Batch(cmds...)

	case stack.CancelledMsg:
		// Below threshold: card springs back, nothing committed.
		return m, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Keep):
			if !m.stack.Dragging() {
				m.queue.Commit(review.DirectionForward)
			}
			return m, nil
		case key.Matches(msg, m.keyMap.Drop):
			if !m.stack.Dragging() {
				m.queue.Commit(review.DirectionBackward)
			}
			return m, nil
		case key.Matches(msg, m.keyMap.Undo):
			if !m.queue.Undo() {
				m.eventBroker.Publish(events.Event{
					Type: events.StatusMessageEvent,
					Payload: events.StatusMessagePayload{
						Message: "Nothing to undo",
						Type:    "warning",
					},
				})
			}
			return m, nil
		case key.Matches(msg, m.keyMap.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		}
	}

	// Update components with everything else (mouse, ticks)
	var cmd tea.Cmd

	var stackModel tea.Model
	stackModel, cmd = m.stack.Update(msg)
	if sm, ok := stackModel.(*stack.Component); ok {
		m.stack = sm
	}
	cmds = append(cmds, cmd)

	var statusModel tea.Model
	statusModel, cmd = m.statusBar.Update(msg)
	if sbm, ok := statusModel.(*status.Component); ok {
		m.statusBar = sbm
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("Initializing...")
	}

	stackView := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Render(m.stack.View())

	helpView := lipgloss.NewStyle().
		Width(m.width).
		Render(m.help.View(m.keyMap))

	statusView := m.statusBar.View()

	return tea.NewView(lipgloss.JoinVertical(lipgloss.Left, stackView, helpView, statusView))
}

// listenForEvents creates a command that waits for events
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event := <-m.eventSub
		return event
	}
}

// Event handling

func (m *Model) handleEvent(event events.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch event.Type {
	case events.ReviewWindowEvent:
		if payload, ok := event.Payload.(events.WindowPayload); ok {
			m.stack.SetSlots(payload.Slots)
			m.syncStatus()
		}

	case events.ReviewCommittedEvent:
		if payload, ok := event.Payload.(events.DecisionPayload); ok {
			log.Debug().
				Str("card", payload.Card.Title).
				Stringer("direction", payload.Direction).
				Msg("card committed")

			verb := "Dropped"
			show := m.statusBar.ShowError
			if payload.Direction == review.DirectionForward {
				verb = "Kept"
				show = m.statusBar.ShowSuccess
			}
			cmds = append(cmds, show(verb+" "+payload.Card.Title))
			m.syncStatus()
		}

	case events.ReviewRestoredEvent:
		if payload, ok := event.Payload.(events.DecisionPayload); ok {
			log.Debug().
				Str("card", payload.Card.Title).
				Stringer("direction", payload.Direction).
				Msg("card restored")
			cmds = append(cmds, m.statusBar.ShowInfo("Restored "+payload.Card.Title))
			m.syncStatus()
		}

	case events.ReviewExhaustedEvent:
		cmds = append(cmds, m.statusBar.ShowSuccess("Deck complete"))
		m.syncStatus()

	case events.GestureProgressEvent:
		// Live feedback is rendered by the stack itself.

	case events.GestureCancelledEvent:
		cmds = append(cmds, m.statusBar.ShowInfo("Card returned"))

	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			switch payload.Type {
			case "warning":
				cmds = append(cmds, m.statusBar.ShowWarning(payload.Message))
			case "error":
				cmds = append(cmds, m.statusBar.ShowError(payload.Message))
			case "success":
				cmds = append(cmds, m.statusBar.ShowSuccess(payload.Message))
			default:
				cmds = append(cmds, m.statusBar.ShowInfo(payload.Message))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// syncStatus pushes queue progress into the status bar and the
// exhausted-panel undo hint into the stack.
func (m *Model) syncStatus() {
	kept, dropped := m.queue.Tally()
	m.statusBar.SetProgress(m.queue.Cursor(), m.queue.Len(), kept, dropped, m.queue.CanUndo())
	m.stack.SetCanUndo(m.queue.CanUndo())
}
