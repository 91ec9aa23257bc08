package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Layout
	message.SetString(lang, "layout.app_name", "Velum")
	message.SetString(lang, "layout.documents", "Documents")
	message.SetString(lang, "layout.links", "Links")
	message.SetString(lang, "layout.datarooms", "Data Rooms")
	message.SetString(lang, "layout.fields", "Fields")
	message.SetString(lang, "layout.settings", "Settings")

	// Documents
	message.SetString(lang, "documents.page_title", "Documents")
	message.SetString(lang, "documents.new_request", "New signing request")
	message.SetString(lang, "documents.empty", "No signing requests yet.")
	message.SetString(lang, "documents.signers_progress", "%d of %d signed")
	message.SetString(lang, "documents.finalize", "Finalize document")
	message.SetString(lang, "documents.delete", "Delete request")
	message.SetString(lang, "documents.artifact_ready", "Final document: %s")

	// Public signing
	message.SetString(lang, "sign.page_title", "Sign %s")
	message.SetString(lang, "sign.greeting", "Hello %s, you have been asked to sign this document.")
	message.SetString(lang, "sign.submit", "Sign document")
	message.SetString(lang, "sign.decline", "Decline")
	message.SetString(lang, "sign.already_signed", "You have already signed this document.")
	message.SetString(lang, "sign.declined", "You declined this document.")

	// Links
	message.SetString(lang, "links.page_title", "Share Links")
	message.SetString(lang, "links.new_link", "New share link")
	message.SetString(lang, "links.empty", "No share links yet.")
	message.SetString(lang, "links.analytics", "Analytics")
	message.SetString(lang, "links.visit_count", "%d visits")
	message.SetString(lang, "links.last_visit", "Last visit: %s")
	message.SetString(lang, "links.never_visited", "Never visited")

	// Public share surface
	message.SetString(lang, "share.page_title", "Shared with you")
	message.SetString(lang, "share.viewing", "You are viewing %s.")
	message.SetString(lang, "share.email_prompt", "Enter your email to continue")
	message.SetString(lang, "share.continue", "Continue")

	// Data rooms
	message.SetString(lang, "datarooms.page_title", "Data Rooms")
	message.SetString(lang, "datarooms.new_room", "New data room")
	message.SetString(lang, "datarooms.empty", "No data rooms yet.")
	message.SetString(lang, "datarooms.documents_count", "%d documents")

	// Custom fields
	message.SetString(lang, "fields.page_title", "Custom Fields")
	message.SetString(lang, "fields.new_field", "New custom field")
	message.SetString(lang, "fields.empty", "No custom fields yet.")
	message.SetString(lang, "fields.required", "Required")
	message.SetString(lang, "fields.optional", "Optional")

	// Settings
	message.SetString(lang, "settings.page_title", "Security Settings")
	message.SetString(lang, "settings.require_email", "Require email to view shared documents")
	message.SetString(lang, "settings.allow_downloads", "Allow downloads")
	message.SetString(lang, "settings.watermark", "Watermark shared documents")
	message.SetString(lang, "settings.notify_on_view", "Notify me when a document is viewed")
	message.SetString(lang, "settings.notify_on_sign", "Notify me when a document is signed")
	message.SetString(lang, "settings.save", "Save settings")

	// Errors
	message.SetString(lang, "error.page_title", "Something went wrong")
	message.SetString(lang, "error.not_found", "The page you are looking for does not exist.")
	message.SetString(lang, "error.link_expired", "This link has expired.")
}
