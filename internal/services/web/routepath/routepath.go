// Package routepath centralizes web route constants so modules and tests
// never drift on path spelling.
package routepath

// AppPrefix is the owner-facing application prefix.
const AppPrefix = "/app/"

// Documents module.
const (
	AppDocuments               = "/app/documents"
	AppDocumentPattern         = "/app/documents/{documentID}"
	AppDocumentFinalizePattern = "/app/documents/{documentID}/finalize"
	AppDocumentDeletePattern   = "/app/documents/{documentID}/delete"
	AppDocumentsPrefix         = "/app/documents/"
)

// Templates live under the documents module.
const (
	AppTemplates             = "/app/documents/templates"
	AppTemplatePattern       = "/app/documents/templates/{templateID}"
	AppTemplateDeletePattern = "/app/documents/templates/{templateID}/delete"
)

// Links module.
const (
	AppLinks                = "/app/links"
	AppLinkPattern          = "/app/links/{linkID}"
	AppLinkDeletePattern    = "/app/links/{linkID}/delete"
	AppLinkAnalyticsPattern = "/app/links/{linkID}/analytics"
	AppLinksPrefix          = "/app/links/"
)

// Data rooms module.
const (
	AppDataRooms              = "/app/datarooms"
	AppDataRoomPattern        = "/app/datarooms/{roomID}"
	AppDataRoomDeletePattern  = "/app/datarooms/{roomID}/delete"
	AppDataRoomMembersPattern = "/app/datarooms/{roomID}/templates"
	AppDataRoomsPrefix        = "/app/datarooms/"
)

// Custom fields module.
const (
	AppFields             = "/app/fields"
	AppFieldDeletePattern = "/app/fields/{fieldID}/delete"
	AppFieldsPrefix       = "/app/fields/"
)

// Settings module.
const (
	AppSettings       = "/app/settings"
	AppSettingsPrefix = "/app/settings/"
)

// Public signing and sharing surface.
const (
	SignPrefix         = "/sign/"
	SignPattern        = "/sign/{token}"
	SignDeclinePattern = "/sign/{token}/decline"
	SharePrefix        = "/l/"
	SharePattern       = "/l/{slug}"
)
