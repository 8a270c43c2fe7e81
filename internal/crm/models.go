// Package crm holds the contact domain types shared by the query layer, the
// terminal UI and the headless CLI.
package crm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an opaque identifier. GraphQL servers serialize ID as either a JSON
// string or a JSON number, so both decode to the same value.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Organization is a company or group a contact belongs to.
type Organization struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Contact is a person record as returned by the contacts query.
type Contact struct {
	ID            ID             `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Organizations []Organization `json:"organizations"`
}

// FullName joins first and last name with a single space.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// PrimaryOrganization returns the first organization's name. Summary views
// show only this one even when more exist.
func (c Contact) PrimaryOrganization() string {
	if len(c.Organizations) == 0 {
		return ""
	}
	return c.Organizations[0].Name
}

// Row is the display projection of a contact.
type Row struct {
	Key          ID
	Name         string
	Organization string
	Email        string
}

// Rows projects contacts into rows, preserving input order.
func Rows(contacts []Contact) []Row {
	out := make([]Row, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, Row{
			Key:          c.ID,
			Name:         c.FullName(),
			Organization: c.PrimaryOrganization(),
			Email:        c.Email,
		})
	}
	return out
}

// Cells returns the row as Name, Organizations, Email columns.
func (r Row) Cells() []string {
	return []string{r.Name, r.Organization, r.Email}
}

// NewContact is the input of the createContact mutation.
type NewContact struct {
	FirstName string
	LastName  string
	Email     string
}

// Normalize trims surrounding whitespace from every field.
func (n NewContact) Normalize() NewContact {
	return NewContact{
		FirstName: strings.TrimSpace(n.FirstName),
		LastName:  strings.TrimSpace(n.LastName),
		Email:     strings.TrimSpace(n.Email),
	}
}

// Variables returns the mutation variables for n.
func (n NewContact) Variables() map[string]any {
	return map[string]any{
		"firstName": n.FirstName,
		"lastName":  n.LastName,
		"email":     n.Email,
	}
}
