package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/velumsign/velum/internal/services/web/routepath"
)

// DocumentRow is one signing request in the documents list.
type DocumentRow struct {
	ID           string
	Title        string
	Status       string
	SignedCount  int
	TotalSigners int
	CreatedAt    string
}

// TemplateOption is one selectable document template.
type TemplateOption struct {
	ID   string
	Name string
}

// DocumentsPage lists signing requests and offers the creation form.
func DocumentsPage(page PageContext, rows []DocumentRow, templateOptions []TemplateOption) templ.Component {
	return Layout(page, T(page.Loc, "documents.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(T(page.Loc, "documents.page_title"))); err != nil {
			return err
		}
		if err := documentCreateForm(w, page, templateOptions); err != nil {
			return err
		}
		if len(rows) == 0 {
			_, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(T(page.Loc, "documents.empty")))
			return err
		}
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(
				w,
				`<tr><td><a href=%q>%s</a></td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				routepath.AppDocuments+"/"+row.ID,
				templ.EscapeString(row.Title),
				templ.EscapeString(row.Status),
				templ.EscapeString(T(page.Loc, "documents.signers_progress", row.SignedCount, row.TotalSigners)),
				templ.EscapeString(row.CreatedAt),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	}))
}

func documentCreateForm(w io.Writer, page PageContext, templateOptions []TemplateOption) error {
	if _, err := fmt.Fprintf(
		w,
		`<form method="post" action=%q><h2>%s</h2><input name="title" required><select name="template_id">`,
		routepath.AppDocuments,
		templ.EscapeString(T(page.Loc, "documents.new_request")),
	); err != nil {
		return err
	}
	for _, option := range templateOptions {
		if _, err := fmt.Fprintf(
			w,
			`<option value=%q>%s</option>`,
			templ.EscapeString(option.ID),
			templ.EscapeString(option.Name),
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select><textarea name="signers" placeholder="name &lt;email&gt;, one per line"></textarea><select name="mode"><option value="parallel">parallel</option><option value="sequential">sequential</option></select><button type="submit">+</button></form>`)
	return err
}

// SignerView is one signer row on a request detail page.
type SignerView struct {
	Name    string
	Email   string
	Order   int
	Status  string
	SignURL string
}

// DocumentDetail is the view model for one signing request.
type DocumentDetail struct {
	ID          string
	Title       string
	Status      string
	Mode        string
	ArtifactKey string
	Signers     []SignerView
}

// DocumentDetailPage renders one signing request with its signers.
func DocumentDetailPage(page PageContext, detail DocumentDetail) templ.Component {
	return Layout(page, detail.Title, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><p>%s · %s</p>`,
			templ.EscapeString(detail.Title),
			templ.EscapeString(detail.Status),
			templ.EscapeString(detail.Mode),
		); err != nil {
			return err
		}
		if detail.ArtifactKey != "" {
			if _, err := fmt.Fprintf(
				w,
				`<p>%s</p>`,
				templ.EscapeString(T(page.Loc, "documents.artifact_ready", detail.ArtifactKey)),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, signer := range detail.Signers {
			if _, err := fmt.Fprintf(
				w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(strconv.Itoa(signer.Order)),
				templ.EscapeString(signer.Name),
				templ.EscapeString(signer.Email),
				templ.EscapeString(signer.Status),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}
		base := routepath.AppDocuments + "/" + detail.ID
		if _, err := fmt.Fprintf(
			w,
			`<form method="post" action=%q><button type="submit">%s</button></form><form method="post" action=%q><button type="submit">%s</button></form>`,
			base+"/finalize",
			templ.EscapeString(T(page.Loc, "documents.finalize")),
			base+"/delete",
			templ.EscapeString(T(page.Loc, "documents.delete")),
		); err != nil {
			return err
		}
		return nil
	}))
}

// SignView is the view model for the public signing page.
type SignView struct {
	Token        string
	RequestTitle string
	SignerName   string
}

// SignPage renders the public signing surface for one signer.
func SignPage(page PageContext, view SignView) templ.Component {
	return PublicLayout(page, T(page.Loc, "sign.page_title", view.RequestTitle), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><p>%s</p>`,
			templ.EscapeString(view.RequestTitle),
			templ.EscapeString(T(page.Loc, "sign.greeting", view.SignerName)),
		); err != nil {
			return err
		}
		base := routepath.SignPrefix + view.Token
		_, err := fmt.Fprintf(
			w,
			`<form method="post" action=%q><textarea name="signature_data" required></textarea><button type="submit">%s</button></form><form method="post" action=%q><button type="submit">%s</button></form>`,
			base,
			templ.EscapeString(T(page.Loc, "sign.submit")),
			base+"/decline",
			templ.EscapeString(T(page.Loc, "sign.decline")),
		)
		return err
	}))
}

// SignDonePage renders the terminal signer states.
func SignDonePage(page PageContext, title, messageKey string) templ.Component {
	return PublicLayout(page, title, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%s</h1><p>%s</p>`,
			templ.EscapeString(title),
			templ.EscapeString(T(page.Loc, messageKey)),
		)
		return err
	}))
}

// SharePage renders the public landing page for one share link.
func SharePage(page PageContext, targetName string) templ.Component {
	return PublicLayout(page, T(page.Loc, "share.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><p>%s</p>`,
			templ.EscapeString(T(page.Loc, "share.page_title")),
			templ.EscapeString(T(page.Loc, "share.viewing", targetName)),
		)
		return err
	}))
}

// ShareEmailPromptPage asks the visitor for an email before showing the
// shared target.
func ShareEmailPromptPage(page PageContext, slug string) templ.Component {
	return PublicLayout(page, T(page.Loc, "share.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><form method="get" action=%q><input name="email" type="email" required><button type="submit">%s</button></form>`,
			templ.EscapeString(T(page.Loc, "share.email_prompt")),
			routepath.SharePrefix+slug,
			templ.EscapeString(T(page.Loc, "share.continue")),
		)
		return err
	}))
}

// LinkRow is one share link in the links list.
type LinkRow struct {
	ID         string
	Slug       string
	TargetKind string
	TargetID   string
	CreatedAt  string
}

// LinksPage lists share links and offers the creation form.
func LinksPage(page PageContext, rows []LinkRow) templ.Component {
	return Layout(page, T(page.Loc, "links.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><form method="post" action=%q><h2>%s</h2><input name="slug" required><select name="target_kind"><option value="template">template</option><option value="dataroom">dataroom</option></select><input name="target_id" required><input name="password" type="password"><button type="submit">+</button></form>`,
			templ.EscapeString(T(page.Loc, "links.page_title")),
			routepath.AppLinks,
			templ.EscapeString(T(page.Loc, "links.new_link")),
		); err != nil {
			return err
		}
		if len(rows) == 0 {
			_, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(T(page.Loc, "links.empty")))
			return err
		}
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(
				w,
				`<tr><td><a href=%q>%s</a></td><td>%s</td><td><a href=%q>%s</a></td><td>%s</td></tr>`,
				routepath.SharePrefix+row.Slug,
				templ.EscapeString(row.Slug),
				templ.EscapeString(row.TargetKind),
				routepath.AppLinks+"/"+row.ID+"/analytics",
				templ.EscapeString(T(page.Loc, "links.analytics")),
				templ.EscapeString(row.CreatedAt),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	}))
}

// LinkVisitView is one visit row on the analytics page.
type LinkVisitView struct {
	VisitorEmail string
	UserAgent    string
	VisitedAt    string
}

// LinkAnalyticsView is the view model for one link's analytics page.
type LinkAnalyticsView struct {
	Slug       string
	VisitCount int
	LastVisit  string
	Visits     []LinkVisitView
}

// LinkAnalyticsPage renders visit analytics for one share link.
func LinkAnalyticsPage(page PageContext, view LinkAnalyticsView) templ.Component {
	return Layout(page, view.Slug, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		lastVisit := T(page.Loc, "links.never_visited")
		if view.LastVisit != "" {
			lastVisit = T(page.Loc, "links.last_visit", view.LastVisit)
		}
		if _, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><p>%s</p><p>%s</p>`,
			templ.EscapeString(view.Slug),
			templ.EscapeString(T(page.Loc, "links.visit_count", view.VisitCount)),
			templ.EscapeString(lastVisit),
		); err != nil {
			return err
		}
		if len(view.Visits) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, visit := range view.Visits {
			if _, err := fmt.Fprintf(
				w,
				`<tr><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(visit.VisitedAt),
				templ.EscapeString(visit.VisitorEmail),
				templ.EscapeString(visit.UserAgent),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	}))
}

// DataRoomRow is one data room in the rooms list.
type DataRoomRow struct {
	ID            string
	Name          string
	DocumentCount int
}

// DataRoomsPage lists data rooms and offers the creation form.
func DataRoomsPage(page PageContext, rows []DataRoomRow) templ.Component {
	return Layout(page, T(page.Loc, "datarooms.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><form method="post" action=%q><h2>%s</h2><input name="name" required><button type="submit">+</button></form>`,
			templ.EscapeString(T(page.Loc, "datarooms.page_title")),
			routepath.AppDataRooms,
			templ.EscapeString(T(page.Loc, "datarooms.new_room")),
		); err != nil {
			return err
		}
		if len(rows) == 0 {
			_, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(T(page.Loc, "datarooms.empty")))
			return err
		}
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(
				w,
				`<tr><td><a href=%q>%s</a></td><td>%s</td></tr>`,
				routepath.AppDataRooms+"/"+row.ID,
				templ.EscapeString(row.Name),
				templ.EscapeString(T(page.Loc, "datarooms.documents_count", row.DocumentCount)),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	}))
}

// DataRoomDetail is the view model for one data room.
type DataRoomDetail struct {
	ID        string
	Name      string
	Templates []TemplateOption
}

// DataRoomDetailPage renders one data room and its template membership.
func DataRoomDetailPage(page PageContext, detail DataRoomDetail) templ.Component {
	return Layout(page, detail.Name, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><ol>`, templ.EscapeString(detail.Name)); err != nil {
			return err
		}
		for _, tpl := range detail.Templates {
			if _, err := fmt.Fprintf(w, `<li>%s</li>`, templ.EscapeString(tpl.Name)); err != nil {
				return err
			}
		}
		base := routepath.AppDataRooms + "/" + detail.ID
		_, err := fmt.Fprintf(
			w,
			`</ol><form method="post" action=%q><textarea name="template_ids" placeholder="template id per line"></textarea><button type="submit">Save</button></form><form method="post" action=%q><button type="submit">Delete</button></form>`,
			base+"/templates",
			base+"/delete",
		)
		return err
	}))
}

// FieldRow is one custom field in the fields list.
type FieldRow struct {
	ID       string
	Label    string
	Type     string
	Required bool
}

// FieldsPage lists custom fields and offers the creation form.
func FieldsPage(page PageContext, rows []FieldRow) templ.Component {
	return Layout(page, T(page.Loc, "fields.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><form method="post" action=%q><h2>%s</h2><input name="label" required><select name="type"><option value="text">text</option><option value="number">number</option><option value="date">date</option><option value="email">email</option><option value="checkbox">checkbox</option></select><label><input type="checkbox" name="required" value="true"> %s</label><button type="submit">+</button></form>`,
			templ.EscapeString(T(page.Loc, "fields.page_title")),
			routepath.AppFields,
			templ.EscapeString(T(page.Loc, "fields.new_field")),
			templ.EscapeString(T(page.Loc, "fields.required")),
		); err != nil {
			return err
		}
		if len(rows) == 0 {
			_, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(T(page.Loc, "fields.empty")))
			return err
		}
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			requiredKey := "fields.optional"
			if row.Required {
				requiredKey = "fields.required"
			}
			if _, err := fmt.Fprintf(
				w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td><form method="post" action=%q><button type="submit">×</button></form></td></tr>`,
				templ.EscapeString(row.Label),
				templ.EscapeString(row.Type),
				templ.EscapeString(T(page.Loc, requiredKey)),
				routepath.AppFields+"/"+row.ID+"/delete",
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	}))
}

// SettingsForm is the view model for the security settings page.
type SettingsForm struct {
	RequireEmail   bool
	AllowDownloads bool
	Watermark      bool
	NotifyOnView   bool
	NotifyOnSign   bool
}

// SettingsPage renders the security settings form.
func SettingsPage(page PageContext, form SettingsForm) templ.Component {
	return Layout(page, T(page.Loc, "settings.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><form method="post" action=%q>`,
			templ.EscapeString(T(page.Loc, "settings.page_title")),
			routepath.AppSettings,
		); err != nil {
			return err
		}
		toggles := []struct {
			name     string
			labelKey string
			checked  bool
		}{
			{"require_email", "settings.require_email", form.RequireEmail},
			{"allow_downloads", "settings.allow_downloads", form.AllowDownloads},
			{"watermark", "settings.watermark", form.Watermark},
			{"notify_on_view", "settings.notify_on_view", form.NotifyOnView},
			{"notify_on_sign", "settings.notify_on_sign", form.NotifyOnSign},
		}
		for _, toggle := range toggles {
			checked := ""
			if toggle.checked {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(
				w,
				`<label><input type="checkbox" name=%q value="true"%s> %s</label>`,
				toggle.name,
				checked,
				templ.EscapeString(T(page.Loc, toggle.labelKey)),
			); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(
			w,
			`<button type="submit">%s</button></form>`,
			templ.EscapeString(T(page.Loc, "settings.save")),
		)
		return err
	}))
}

// ErrorPage renders a localized error surface.
func ErrorPage(page PageContext, messageKey string) templ.Component {
	return PublicLayout(page, T(page.Loc, "error.page_title"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(
			w,
			`<h1>%s</h1><p>%s</p>`,
			templ.EscapeString(T(page.Loc, "error.page_title")),
			templ.EscapeString(T(page.Loc, messageKey)),
		)
		return err
	}))
}
