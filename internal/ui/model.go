package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"launchscroll/internal/config"
	"launchscroll/internal/domain"
	"launchscroll/internal/eventbus"
	"launchscroll/internal/fetcher"
	"launchscroll/internal/logging"
	"launchscroll/internal/ui/commands"
	"launchscroll/internal/ui/input"
	inputtypes "launchscroll/internal/ui/input/types"
	"launchscroll/internal/ui/logic"
	"launchscroll/internal/ui/state"
	"launchscroll/internal/ui/views"
)

// mouseWheelRows is how far one wheel notch scrolls the list
const mouseWheelRows = 3

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	log    logrus.FieldLogger

	// UI-specific state not in AppState
	width   int
	height  int
	spinner spinner.Model

	// Handlers
	navigator    *logic.Navigator    // selection and viewport handler
	renderer     *views.Renderer     // view renderer
	helpRenderer *HelpRenderer       // pager content
	cmdExecutor  *commands.Executor  // command executor
	inputHandler *input.Handler      // input handling
	pager        *PagerOps           // pager operations handler

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. The first page of search is requested
// when the program starts.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, client commands.LaunchQuerier, log logrus.FieldLogger, search string) *Model {
	if log == nil {
		log = logging.Discard()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		bus:          bus,
		config:       cfg,
		state:        state.NewAppState(search, cfg.UI.ShowDetails),
		log:          log,
		spinner:      s,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		cmdExecutor:  commands.NewExecutor(ctx, client, bus, log),
		inputHandler: input.New(),
		pager:        NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.navigator.SetViewportHeight(views.ListHeight(m.height))
	return tea.Batch(m.spinner.Tick, m.cmdExecutor.ExecuteFetch(m.state.Start()))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncNavigator()
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case commands.FetchResultMsg, spinner.TickMsg, pagerMsg, pauseRenderingMsg, resumeRenderingMsg, clearStatusMsg:
		return m.handleNonKeyboardMsg(msg)

	default:
		// Cursor blinks and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	q := m.state.Query
	viewState := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Launches:       m.state.Launches(),
		SelectedIndex:  m.navigator.SelectedIndex(),
		ViewportOffset: m.navigator.ViewportOffset(),
		ViewportHeight: m.navigator.ViewportHeight(),
		ShowDetails:    q.ShowDetails,
		SearchQuery:    q.Search,
		Loading:        q.Loading,
		Spinner:        m.spinner.View(),
		EndOfResults:   q.EndOfResults(),
		Page:           q.Page,
		ErrorMessage:   m.state.ErrorMessage(),
		StatusMessage:  m.state.StatusMessage,
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		viewState.Searching = true
		viewState.SearchInput = m.inputHandler.Prompt() + ti.View()
	}

	return m.renderer.Render(viewState)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Navigate(a.Direction)
		switch a.Direction {
		case "down", "pagedown", "end":
			return m.maybeLoadMore()
		}

	case inputtypes.UpdateTextAction:
		return m.dispatch(fetcher.SearchChanged{Text: a.Text})

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch {
			return m.dispatch(fetcher.SearchChanged{Text: a.Text})
		}

	case inputtypes.CancelTextAction:
		return m.dispatch(fetcher.SearchChanged{Text: ""})

	case inputtypes.ReloadAction:
		return m.dispatch(fetcher.Reload{})

	case inputtypes.ToggleDetailsAction:
		m.dispatch(fetcher.DetailsToggled{})
		if m.bus != nil {
			m.bus.Publish(eventbus.DetailsToggledEvent{Visible: m.state.Query.ShowDetails})
		}
		m.syncNavigator()

	case inputtypes.OpenLaunchAction:
		launch, ok := m.state.LaunchAt(m.navigator.SelectedIndex())
		if !ok || m.program == nil {
			return nil
		}
		return m.runPager(m.helpRenderer.RenderLaunchPage(launch))

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			return nil
		}
		return m.runPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		m.cmdExecutor.Cancel()
		return tea.Quit
	}

	return nil
}

// handleMouse scrolls the list on wheel events
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.navigator.Scroll(-mouseWheelRows)
	case tea.MouseButtonWheelDown:
		m.navigator.Scroll(mouseWheelRows)
		return m.maybeLoadMore()
	}
	return nil
}

// maybeLoadMore requests the next page once the viewport bottom is within
// the scroll threshold of the end of the list. The reducer ignores the
// request while a fetch is in flight or after the last page.
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.navigator.NearBottom(m.config.UI.ScrollThreshold) {
		return nil
	}
	return m.dispatch(fetcher.PageIncremented{})
}

// dispatch reduces action into the state and starts the resulting request
func (m *Model) dispatch(action fetcher.Action) tea.Cmd {
	req := m.state.Dispatch(action)
	return m.cmdExecutor.ExecuteFetch(req)
}

// handleFetchResult applies a completed request. Responses of superseded
// requests are dropped.
func (m *Model) handleFetchResult(msg commands.FetchResultMsg) {
	req := msg.Request
	fields := logrus.Fields{
		"token":  req.Token,
		"search": req.Search,
		"page":   req.Page,
	}

	if !m.state.IsCurrent(req.Token) {
		m.log.WithFields(fields).Debug("discarding stale launch response")
		return
	}

	if msg.Err != nil {
		m.state.Dispatch(fetcher.FetchFailed{Token: req.Token, Err: msg.Err})
		if m.bus != nil {
			m.bus.Publish(eventbus.FetchFailedEvent{
				Token:  req.Token,
				Search: req.Search,
				Page:   req.Page,
				Err:    msg.Err,
			})
		}
		return
	}

	var docs []domain.Launch
	matching := 0
	if msg.Page != nil {
		docs = msg.Page.Docs
		matching = msg.Page.TotalDocs
	}
	m.state.Dispatch(fetcher.FetchSucceeded{Token: req.Token, Records: docs})
	if req.Page == 1 {
		m.navigator.Reset()
	}
	m.syncNavigator()

	if m.bus != nil {
		m.bus.Publish(eventbus.PageLoadedEvent{
			Token:    req.Token,
			Search:   req.Search,
			Page:     req.Page,
			Count:    len(docs),
			Total:    len(m.state.Launches()),
			Matching: matching,
			HasMore:  m.state.Query.HasMore,
			Duration: msg.Duration,
		})
	}
}

// syncNavigator refreshes the item layout after records, details or size change
func (m *Model) syncNavigator() {
	q := m.state.Query
	m.navigator.SetViewportHeight(views.ListHeight(m.height))
	m.navigator.SetItems(m.renderer.ItemHeights(m.state.Launches(), q.ShowDetails, m.width))
}

// runPager returns a command that shows content in the ov pager, pausing and
// resuming rendering around it
func (m *Model) runPager(content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.FetchResultMsg:
		m.handleFetchResult(msg)
		return m, nil

	case spinner.TickMsg:
		// Don't continue the tick loop while the pager owns the terminal
		if m.state.InPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log and surface briefly
			m.log.WithError(msg.err).Warn("pager failed")
			m.state.StatusMessage = fmt.Sprintf("Pager failed: %v", msg.err)
			return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{} })
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, m.spinner.Tick

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil
	}

	return m, nil
}
