package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jask/simplecrm/internal/crm"
	"github.com/jask/simplecrm/internal/graphql"
	"github.com/jask/simplecrm/internal/i18n"
)

const (
	fieldFirst = iota
	fieldLast
	fieldEmail
	fieldCount
)

// contactDialog is the add-contact form.
type contactDialog struct {
	inputs     [fieldCount]textinput.Model
	focus      int
	err        string
	submitting bool
	// submission identifies the in-flight request so late results from an
	// abandoned form are dropped.
	submission string
}

func newContactDialog() contactDialog {
	var d contactDialog
	for i := range d.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = 32
		d.inputs[i] = ti
	}
	d.reset()
	return d
}

// reset clears every field and focuses the first one.
func (d *contactDialog) reset() {
	for i := range d.inputs {
		d.inputs[i].SetValue("")
		d.inputs[i].Blur()
	}
	d.focus = fieldFirst
	d.inputs[fieldFirst].Focus()
	d.err = ""
	d.submitting = false
	d.submission = ""
}

func (d *contactDialog) moveFocus(delta int) {
	d.inputs[d.focus].Blur()
	d.focus = (d.focus + delta + fieldCount) % fieldCount
	d.inputs[d.focus].Focus()
}

func (d *contactDialog) begin() string {
	d.submitting = true
	d.err = ""
	d.submission = uuid.NewString()
	return d.submission
}

func (d *contactDialog) fail(msg string) {
	d.submitting = false
	d.submission = ""
	d.err = msg
}

func (d *contactDialog) value() crm.NewContact {
	return crm.NewContact{
		FirstName: d.inputs[fieldFirst].Value(),
		LastName:  d.inputs[fieldLast].Value(),
		Email:     d.inputs[fieldEmail].Value(),
	}.Normalize()
}

func (d *contactDialog) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return cmd
}

func (d *contactDialog) view(loc *i18n.Localizer) string {
	labels := [fieldCount]string{
		loc.T(i18n.ContactsDialogFirstName),
		loc.T(i18n.ContactsDialogLastName),
		loc.T(i18n.ContactsDialogEmail),
	}
	lines := []string{
		titleStyle.Render(loc.T(i18n.ContactsDialogTitle)),
		mutedStyle.Render(loc.T(i18n.ContactsDialogText)),
		"",
	}
	for i, in := range d.inputs {
		label := labelStyle.Render(labels[i])
		if i == d.focus {
			label = selectedStyle.Width(18).Render(labels[i])
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, in.View()))
	}
	lines = append(lines, "")
	if d.err != "" {
		lines = append(lines, errorStyle.Render(d.err), "")
	}
	if d.submitting {
		lines = append(lines, mutedStyle.Render(loc.T(i18n.ContactsDialogSubmitting)))
	} else {
		lines = append(lines, keyStyle.Render("[enter]")+" "+loc.T(i18n.ContactsDialogSubmit)+
			"  "+keyStyle.Render("[esc]")+" "+loc.T(i18n.ContactsDialogCancel))
	}
	return strings.Join(lines, "\n")
}

// validationMessage maps a crm.ValidationError to one localized line.
func validationMessage(loc *i18n.Localizer, err error) string {
	var ve *crm.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var parts []string
	if ve.Has(crm.FieldFirstName) || ve.Has(crm.FieldLastName) {
		parts = append(parts, loc.T(i18n.ContactsDialogInvalidName))
	}
	if ve.Has(crm.FieldEmail) {
		parts = append(parts, loc.T(i18n.ContactsDialogInvalidEmail))
	}
	return strings.Join(parts, " ")
}

// mutationMessage returns the server's first error message when there is one.
func mutationMessage(err error) string {
	var qe *graphql.QueryError
	if errors.As(err, &qe) && len(qe.Errors) > 0 && qe.Errors[0].Message != "" {
		return qe.Errors[0].Message
	}
	if errors.Is(err, graphql.ErrQueryFailed) {
		return graphql.ErrQueryFailed.Error()
	}
	return err.Error()
}
