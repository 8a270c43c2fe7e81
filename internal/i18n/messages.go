package i18n

const (
	contactsScope = "app.containers.Contacts"
	overviewScope = "app.containers.Overview"
	settingsScope = "app.containers.Settings"
	notFoundScope = "app.containers.NotFoundPage"
	shellScope    = "app.containers.App"
)

// Contacts page.
const (
	ContactsHeader             = contactsScope + ".header"
	ContactsTitle              = contactsScope + ".title"
	ContactsTable              = contactsScope + ".table"
	ContactsHeaderName         = contactsScope + ".table.header.name"
	ContactsHeaderOrgs         = contactsScope + ".table.header.organizations"
	ContactsHeaderEmail        = contactsScope + ".table.header.email"
	ContactsLoading            = contactsScope + ".loading"
	ContactsError              = contactsScope + ".error"
	ContactsEmpty              = contactsScope + ".empty"
	ContactsAdd                = contactsScope + ".toolbar.add"
	ContactsFilter             = contactsScope + ".toolbar.filter"
	ContactsFilterUnavailable  = contactsScope + ".toolbar.filter.unavailable"
	ContactsDialogTitle        = contactsScope + ".dialog.title"
	ContactsDialogText         = contactsScope + ".dialog.text"
	ContactsDialogFirstName    = contactsScope + ".dialog.firstName"
	ContactsDialogLastName     = contactsScope + ".dialog.lastName"
	ContactsDialogEmail        = contactsScope + ".dialog.email"
	ContactsDialogCancel       = contactsScope + ".dialog.cancel"
	ContactsDialogSubmit       = contactsScope + ".dialog.submit"
	ContactsDialogSubmitting   = contactsScope + ".dialog.submitting"
	ContactsDialogFailed       = contactsScope + ".dialog.failed"
	ContactsDialogInvalidName  = contactsScope + ".dialog.invalid.name"
	ContactsDialogInvalidEmail = contactsScope + ".dialog.invalid.email"
	ContactsCreated            = contactsScope + ".created"
)

// Overview page.
const (
	OverviewHeader = overviewScope + ".header"
	OverviewBody   = overviewScope + ".body"
)

// Settings page.
const (
	SettingsTitle       = settingsScope + ".title"
	SettingsEndpoint    = settingsScope + ".endpoint"
	SettingsLocale      = settingsScope + ".locale"
	SettingsCachePolicy = settingsScope + ".cache.policy"
	SettingsCacheTTL    = settingsScope + ".cache.ttl"
	SettingsSaved       = settingsScope + ".saved"
	SettingsSaveFailed  = settingsScope + ".save.failed"
	SettingsPurged      = settingsScope + ".cache.purged"
	SettingsPurgeFailed = settingsScope + ".cache.purge.failed"
)

// Not found page.
const (
	NotFoundTitle   = notFoundScope + ".title"
	NotFoundBody    = notFoundScope + ".body"
	NotFoundSuggest = notFoundScope + ".suggest"
)

// Shell.
const (
	AppTitle       = shellScope + ".title"
	NavOverview    = shellScope + ".nav.overview"
	NavContacts    = shellScope + ".nav.contacts"
	NavSettings    = shellScope + ".nav.settings"
	AppGoto        = shellScope + ".goto"
	AppGotoPrompt  = shellScope + ".goto.prompt"
	AppReady       = shellScope + ".ready"
	AppNoShortcuts = shellScope + ".shortcuts.none"
)

// All lists every message id the application uses.
var All = []string{
	ContactsHeader, ContactsTitle, ContactsTable, ContactsHeaderName, ContactsHeaderOrgs,
	ContactsHeaderEmail, ContactsLoading, ContactsError, ContactsEmpty, ContactsAdd,
	ContactsFilter, ContactsFilterUnavailable, ContactsDialogTitle, ContactsDialogText,
	ContactsDialogFirstName, ContactsDialogLastName, ContactsDialogEmail, ContactsDialogCancel,
	ContactsDialogSubmit, ContactsDialogSubmitting, ContactsDialogFailed,
	ContactsDialogInvalidName, ContactsDialogInvalidEmail, ContactsCreated,
	OverviewHeader, OverviewBody,
	SettingsTitle, SettingsEndpoint, SettingsLocale, SettingsCachePolicy, SettingsCacheTTL,
	SettingsSaved, SettingsSaveFailed, SettingsPurged, SettingsPurgeFailed,
	NotFoundTitle, NotFoundBody, NotFoundSuggest,
	AppTitle, NavOverview, NavContacts, NavSettings, AppGoto, AppGotoPrompt, AppReady, AppNoShortcuts,
}
