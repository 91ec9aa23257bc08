package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Spanish

	// Layout
	message.SetString(lang, "layout.app_name", "Velum")
	message.SetString(lang, "layout.documents", "Documentos")
	message.SetString(lang, "layout.links", "Enlaces")
	message.SetString(lang, "layout.datarooms", "Salas de datos")
	message.SetString(lang, "layout.fields", "Campos")
	message.SetString(lang, "layout.settings", "Configuración")

	// Documents
	message.SetString(lang, "documents.page_title", "Documentos")
	message.SetString(lang, "documents.new_request", "Nueva solicitud de firma")
	message.SetString(lang, "documents.empty", "Aún no hay solicitudes de firma.")
	message.SetString(lang, "documents.signers_progress", "%d de %d firmados")
	message.SetString(lang, "documents.finalize", "Finalizar documento")
	message.SetString(lang, "documents.delete", "Eliminar solicitud")
	message.SetString(lang, "documents.artifact_ready", "Documento final: %s")

	// Public signing
	message.SetString(lang, "sign.page_title", "Firmar %s")
	message.SetString(lang, "sign.greeting", "Hola %s, se te ha pedido firmar este documento.")
	message.SetString(lang, "sign.submit", "Firmar documento")
	message.SetString(lang, "sign.decline", "Rechazar")
	message.SetString(lang, "sign.already_signed", "Ya has firmado este documento.")
	message.SetString(lang, "sign.declined", "Has rechazado este documento.")

	// Links
	message.SetString(lang, "links.page_title", "Enlaces compartidos")
	message.SetString(lang, "links.new_link", "Nuevo enlace compartido")
	message.SetString(lang, "links.empty", "Aún no hay enlaces compartidos.")
	message.SetString(lang, "links.analytics", "Analíticas")
	message.SetString(lang, "links.visit_count", "%d visitas")
	message.SetString(lang, "links.last_visit", "Última visita: %s")
	message.SetString(lang, "links.never_visited", "Sin visitas")

	// Public share surface
	message.SetString(lang, "share.page_title", "Compartido contigo")
	message.SetString(lang, "share.viewing", "Estás viendo %s.")
	message.SetString(lang, "share.email_prompt", "Introduce tu correo para continuar")
	message.SetString(lang, "share.continue", "Continuar")

	// Data rooms
	message.SetString(lang, "datarooms.page_title", "Salas de datos")
	message.SetString(lang, "datarooms.new_room", "Nueva sala de datos")
	message.SetString(lang, "datarooms.empty", "Aún no hay salas de datos.")
	message.SetString(lang, "datarooms.documents_count", "%d documentos")

	// Custom fields
	message.SetString(lang, "fields.page_title", "Campos personalizados")
	message.SetString(lang, "fields.new_field", "Nuevo campo personalizado")
	message.SetString(lang, "fields.empty", "Aún no hay campos personalizados.")
	message.SetString(lang, "fields.required", "Obligatorio")
	message.SetString(lang, "fields.optional", "Opcional")

	// Settings
	message.SetString(lang, "settings.page_title", "Configuración de seguridad")
	message.SetString(lang, "settings.require_email", "Requerir correo para ver documentos compartidos")
	message.SetString(lang, "settings.allow_downloads", "Permitir descargas")
	message.SetString(lang, "settings.watermark", "Añadir marca de agua a documentos compartidos")
	message.SetString(lang, "settings.notify_on_view", "Notificarme cuando se vea un documento")
	message.SetString(lang, "settings.notify_on_sign", "Notificarme cuando se firme un documento")
	message.SetString(lang, "settings.save", "Guardar configuración")

	// Errors
	message.SetString(lang, "error.page_title", "Algo salió mal")
	message.SetString(lang, "error.not_found", "La página que buscas no existe.")
	message.SetString(lang, "error.link_expired", "Este enlace ha caducado.")
}
