package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/simplecrm/internal/crm"
	"github.com/jask/simplecrm/internal/graphql"
	"github.com/jask/simplecrm/internal/i18n"
	"github.com/jask/simplecrm/internal/query"
)

// ViewState is the contacts list's display state: Loading, Failed or Ready.
// A new value replaces the old one on every emission.
type ViewState interface {
	viewState()
}

type Loading struct{}

type Failed struct {
	Message string
}

type Ready struct {
	Contacts []crm.Contact
}

func (Loading) viewState() {}
func (Failed) viewState()  {}
func (Ready) viewState()   {}

// contactsStateMsg carries one emission of the GetContacts watch.
type contactsStateMsg struct {
	gen   uint64
	state query.State[crm.ContactsData]
}

// contactsClosedMsg reports that a watch's channel was closed.
type contactsClosedMsg struct {
	gen uint64
}

type contactCreatedMsg struct {
	gen        uint64
	submission string
	contact    crm.Contact
}

type contactCreateFailedMsg struct {
	gen        uint64
	submission string
	err        error
}

// ContactsPage lists contacts from the GraphQL endpoint and hosts the
// add-contact dialog.
type ContactsPage struct {
	parent context.Context
	exec   *query.Executor
	loc    *i18n.Localizer
	keys   *KeyRegistry
	log    *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	gen     uint64
	mounted bool
	sub     *query.Subscription[crm.ContactsData]

	state     ViewState
	modalOpen bool
	dialog    contactDialog
	table     table.Model
	spinner   spinner.Model
	width     int
	height    int
}

func NewContactsPage(ctx context.Context, exec *query.Executor, loc *i18n.Localizer, keys *KeyRegistry, log *zap.Logger) *ContactsPage {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if keys == nil {
		keys = NewKeyRegistry(DefaultKeyBindings())
	}
	p := &ContactsPage{
		parent:  ctx,
		exec:    exec,
		loc:     loc,
		keys:    keys,
		log:     log.Named("contacts"),
		state:   Loading{},
		dialog:  newContactDialog(),
		table:   table.New(table.WithFocused(true), table.WithStyles(contactsTableStyles())),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle)),
	}
	p.SetSize(100, 20)
	return p
}

func contactsTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Foreground(colorAccent).
		Bold(true)
	s.Selected = s.Selected.Foreground(colorText).Background(colorSurface0).Bold(false)
	return s
}

func (p *ContactsPage) Route() string { return RouteContacts }
func (p *ContactsPage) Title() string { return p.loc.T(i18n.ContactsTitle) }

func (p *ContactsPage) Scope() string {
	if p.modalOpen {
		return scopeAddContact
	}
	return scopeContacts
}

// CapturesInput is true while the dialog is open so typed letters reach
// its fields instead of the shell.
func (p *ContactsPage) CapturesInput() bool { return p.modalOpen }

// State returns the current display state.
func (p *ContactsPage) State() ViewState { return p.state }

// ModalOpen reports whether the add-contact dialog is shown.
func (p *ContactsPage) ModalOpen() bool { return p.modalOpen }

// Mount starts one watch of GetContacts for this mount generation.
func (p *ContactsPage) Mount() tea.Cmd {
	if p.mounted {
		p.Unmount()
	}
	p.gen++
	p.mounted = true
	p.state = Loading{}
	p.modalOpen = false
	p.dialog.reset()
	p.table.SetRows(nil)
	p.layout()
	p.ctx, p.cancel = context.WithCancel(p.parent)
	p.sub = query.Watch[crm.ContactsData](p.ctx, p.exec, graphql.Request{
		OperationName: crm.GetContactsOperation,
		Query:         crm.GetContactsQuery,
	})
	p.log.Debug("mounted", zap.Uint64("gen", p.gen), zap.Uint64("subscription", p.sub.ID()))
	return tea.Batch(p.spinner.Tick, p.wait())
}

// Unmount releases the watch. Results that arrive afterwards are dropped.
func (p *ContactsPage) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	if p.cancel != nil {
		p.cancel()
	}
	if p.sub != nil {
		p.sub.Close()
		p.sub = nil
	}
	p.state = Loading{}
	p.modalOpen = false
	p.dialog.reset()
	p.log.Debug("unmounted", zap.Uint64("gen", p.gen))
}

// wait blocks on the current subscription for its next state.
func (p *ContactsPage) wait() tea.Cmd {
	if p.sub == nil {
		return nil
	}
	gen, ch := p.gen, p.sub.States()
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return contactsClosedMsg{gen: gen}
		}
		return contactsStateMsg{gen: gen, state: st}
	}
}

func (p *ContactsPage) current(gen uint64) bool {
	return p.mounted && gen == p.gen
}

func (p *ContactsPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case contactsStateMsg:
		if !p.current(msg.gen) {
			return nil
		}
		cmd := p.apply(msg.state)
		return tea.Batch(cmd, p.wait())
	case contactsClosedMsg:
		return nil
	case contactCreatedMsg:
		return p.created(msg)
	case contactCreateFailedMsg:
		if !p.current(msg.gen) || !p.modalOpen || msg.submission != p.dialog.submission {
			return nil
		}
		p.log.Warn("create contact failed", zap.Error(msg.err))
		p.dialog.fail(p.loc.Tf(i18n.ContactsDialogFailed, mutationMessage(msg.err)))
		return nil
	case spinner.TickMsg:
		if _, loading := p.state.(Loading); !loading || !p.mounted {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	if p.modalOpen {
		return p.dialog.update(msg)
	}
	return nil
}

// apply converts an executor state into a view state.
func (p *ContactsPage) apply(st query.State[crm.ContactsData]) tea.Cmd {
	switch st.Status {
	case query.Failed:
		msg := ""
		if st.Err != nil {
			msg = st.Err.Error()
		}
		p.log.Warn("load contacts failed", zap.String("error", msg))
		p.state = Failed{Message: msg}
		p.modalOpen = false
		return nil
	case query.Succeeded:
		if st.Data.Contacts == nil {
			p.state = Loading{}
			return p.spinner.Tick
		}
		p.state = Ready{Contacts: st.Data.Contacts}
		p.syncRows()
		return nil
	default:
		_, wasLoading := p.state.(Loading)
		p.state = Loading{}
		if wasLoading {
			return nil
		}
		return p.spinner.Tick
	}
}

func (p *ContactsPage) syncRows() {
	ready, ok := p.state.(Ready)
	if !ok {
		p.table.SetRows(nil)
		return
	}
	rows := make([]table.Row, 0, len(ready.Contacts))
	for _, r := range crm.Rows(ready.Contacts) {
		rows = append(rows, table.Row(r.Cells()))
	}
	p.table.SetRows(rows)
}

func (p *ContactsPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.modalOpen {
		scope := scopeAddContact
		switch {
		case p.keys.IsAction(msg, "close", scope):
			if !p.dialog.submitting {
				p.toggleAddContact()
			}
			return nil
		case p.keys.IsAction(msg, "submit", scope):
			return p.handleAddContact()
		case p.keys.IsAction(msg, "next-field", scope):
			p.dialog.moveFocus(1)
			return nil
		case p.keys.IsAction(msg, "prev-field", scope):
			p.dialog.moveFocus(-1)
			return nil
		}
		if p.dialog.submitting {
			return nil
		}
		return p.dialog.update(msg)
	}

	if _, ready := p.state.(Ready); !ready {
		return nil
	}
	switch {
	case p.keys.IsAction(msg, "add-contact", scopeContacts):
		p.toggleAddContact()
		return textinput.Blink
	case p.keys.IsAction(msg, "filter", scopeContacts):
		return StatusCmd(p.loc.T(i18n.ContactsFilterUnavailable))
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

// toggleAddContact flips the dialog. Opening starts from an empty form.
func (p *ContactsPage) toggleAddContact() {
	p.modalOpen = !p.modalOpen
	p.dialog.reset()
}

// handleAddContact validates the form and submits createContact. Submits
// while a request is in flight are ignored.
func (p *ContactsPage) handleAddContact() tea.Cmd {
	if !p.modalOpen || p.dialog.submitting {
		return nil
	}
	in := p.dialog.value()
	if err := in.Validate(); err != nil {
		p.dialog.err = validationMessage(p.loc, err)
		return nil
	}
	gen, id := p.gen, p.dialog.begin()
	ctx, exec, log := p.ctx, p.exec, p.log
	return func() tea.Msg {
		out, err := query.Mutate[crm.CreateContactData](ctx, exec, graphql.Request{
			OperationName: crm.CreateContactOperation,
			Query:         crm.CreateContactMutation,
			Variables:     in.Variables(),
		})
		if err != nil {
			return contactCreateFailedMsg{gen: gen, submission: id, err: err}
		}
		log.Info("contact created", zap.String("id", out.CreateContact.ID.String()))
		return contactCreatedMsg{gen: gen, submission: id, contact: out.CreateContact}
	}
}

func (p *ContactsPage) created(msg contactCreatedMsg) tea.Cmd {
	if !p.current(msg.gen) || msg.submission != p.dialog.submission {
		return nil
	}
	ready, ok := p.state.(Ready)
	if !ok {
		return nil
	}
	contacts := make([]crm.Contact, 0, len(ready.Contacts)+1)
	contacts = append(contacts, ready.Contacts...)
	contacts = append(contacts, msg.contact)
	p.state = Ready{Contacts: contacts}
	p.syncRows()
	p.modalOpen = false
	p.dialog.reset()
	return StatusCmd(p.loc.Tf(i18n.ContactsCreated, msg.contact.FullName()))
}

func (p *ContactsPage) View(width, height int) string {
	header := titleStyle.Render(p.loc.T(i18n.ContactsHeader))
	var body string
	switch st := p.state.(type) {
	case Failed:
		body = errorStyle.Render(p.loc.T(i18n.ContactsError))
	case Ready:
		body = p.toolbar() + "\n\n" + p.tableView(st)
	default:
		body = p.spinner.View() + " " + mutedStyle.Render(p.loc.T(i18n.ContactsLoading))
	}
	view := fitHeight(header+"\n\n"+body, height)
	if p.modalOpen {
		view = RenderPopup(view, p.dialog.view(p.loc), width, height)
	}
	return view
}

func (p *ContactsPage) toolbar() string {
	add := keyStyle.Render("[a]") + " " + p.loc.T(i18n.ContactsAdd)
	filter := keyStyle.Render("[f]") + " " + mutedStyle.Render(p.loc.T(i18n.ContactsFilter))
	return add + "   " + filter
}

func (p *ContactsPage) tableView(st Ready) string {
	if len(st.Contacts) == 0 {
		return mutedStyle.Render(p.loc.T(i18n.ContactsEmpty))
	}
	return strings.TrimRight(p.table.View(), "\n")
}

// SetSize records the page area and lays the table out for it.
func (p *ContactsPage) SetSize(width, height int) {
	p.width, p.height = width, height
	p.layout()
}

// layout sizes the columns with localized titles. Columns always exist
// before rows are set.
func (p *ContactsPage) layout() {
	inner := max(30, p.width-6)
	nameW := inner * 3 / 10
	orgW := inner * 3 / 10
	p.table.SetColumns([]table.Column{
		{Title: p.loc.T(i18n.ContactsHeaderName), Width: nameW},
		{Title: p.loc.T(i18n.ContactsHeaderOrgs), Width: orgW},
		{Title: p.loc.T(i18n.ContactsHeaderEmail), Width: inner - nameW - orgW},
	})
	p.table.SetWidth(inner + 6)
	p.table.SetHeight(max(3, p.height-5))
}
