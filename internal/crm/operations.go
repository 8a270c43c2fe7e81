package crm

// GraphQL documents for the contacts page.
const (
	GetContactsOperation = "GetContacts"
	GetContactsQuery     = `query GetContacts {
  contacts {
    id
    firstName
    lastName
    email
    organizations {
      id
      name
    }
  }
}`

	CreateContactOperation = "CreateContact"
	CreateContactMutation  = `mutation CreateContact($firstName: String!, $lastName: String!, $email: String!) {
  createContact(firstName: $firstName, lastName: $lastName, email: $email) {
    id
    firstName
    lastName
    email
    organizations {
      id
      name
    }
  }
}`
)

// ContactsData is the data payload of GetContacts.
type ContactsData struct {
	Contacts []Contact `json:"contacts"`
}

// CreateContactData is the data payload of CreateContact.
type CreateContactData struct {
	CreateContact Contact `json:"createContact"`
}
