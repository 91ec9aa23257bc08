package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	// Layout
	message.SetString(lang, "layout.app_name", "Velum")
	message.SetString(lang, "layout.documents", "Documentos")
	message.SetString(lang, "layout.links", "Links")
	message.SetString(lang, "layout.datarooms", "Salas de dados")
	message.SetString(lang, "layout.fields", "Campos")
	message.SetString(lang, "layout.settings", "Configurações")

	// Documents
	message.SetString(lang, "documents.page_title", "Documentos")
	message.SetString(lang, "documents.new_request", "Nova solicitação de assinatura")
	message.SetString(lang, "documents.empty", "Ainda não há solicitações de assinatura.")
	message.SetString(lang, "documents.signers_progress", "%d de %d assinados")
	message.SetString(lang, "documents.finalize", "Finalizar documento")
	message.SetString(lang, "documents.delete", "Excluir solicitação")
	message.SetString(lang, "documents.artifact_ready", "Documento final: %s")

	// Public signing
	message.SetString(lang, "sign.page_title", "Assinar %s")
	message.SetString(lang, "sign.greeting", "Olá %s, você foi convidado a assinar este documento.")
	message.SetString(lang, "sign.submit", "Assinar documento")
	message.SetString(lang, "sign.decline", "Recusar")
	message.SetString(lang, "sign.already_signed", "Você já assinou este documento.")
	message.SetString(lang, "sign.declined", "Você recusou este documento.")

	// Links
	message.SetString(lang, "links.page_title", "Links compartilhados")
	message.SetString(lang, "links.new_link", "Novo link compartilhado")
	message.SetString(lang, "links.empty", "Ainda não há links compartilhados.")
	message.SetString(lang, "links.analytics", "Análises")
	message.SetString(lang, "links.visit_count", "%d visitas")
	message.SetString(lang, "links.last_visit", "Última visita: %s")
	message.SetString(lang, "links.never_visited", "Sem visitas")

	// Public share surface
	message.SetString(lang, "share.page_title", "Compartilhado com você")
	message.SetString(lang, "share.viewing", "Você está vendo %s.")
	message.SetString(lang, "share.email_prompt", "Informe seu e-mail para continuar")
	message.SetString(lang, "share.continue", "Continuar")

	// Data rooms
	message.SetString(lang, "datarooms.page_title", "Salas de dados")
	message.SetString(lang, "datarooms.new_room", "Nova sala de dados")
	message.SetString(lang, "datarooms.empty", "Ainda não há salas de dados.")
	message.SetString(lang, "datarooms.documents_count", "%d documentos")

	// Custom fields
	message.SetString(lang, "fields.page_title", "Campos personalizados")
	message.SetString(lang, "fields.new_field", "Novo campo personalizado")
	message.SetString(lang, "fields.empty", "Ainda não há campos personalizados.")
	message.SetString(lang, "fields.required", "Obrigatório")
	message.SetString(lang, "fields.optional", "Opcional")

	// Settings
	message.SetString(lang, "settings.page_title", "Configurações de segurança")
	message.SetString(lang, "settings.require_email", "Exigir e-mail para ver documentos compartilhados")
	message.SetString(lang, "settings.allow_downloads", "Permitir downloads")
	message.SetString(lang, "settings.watermark", "Aplicar marca d'água aos documentos compartilhados")
	message.SetString(lang, "settings.notify_on_view", "Avisar quando um documento for visualizado")
	message.SetString(lang, "settings.notify_on_sign", "Avisar quando um documento for assinado")
	message.SetString(lang, "settings.save", "Salvar configurações")

	// Errors
	message.SetString(lang, "error.page_title", "Algo deu errado")
	message.SetString(lang, "error.not_found", "A página que você procura não existe.")
	message.SetString(lang, "error.link_expired", "Este link expirou.")
}
