package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/cms"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/compose"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/layout"
)

// Home renders the landing page: hero, service cards, gallery and a closing
// call to action, in that order.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	t := h.tr(lang)

	sections := []compose.Section{
		{Template: "section_hero", Data: HeroData{
			Title:    t("home.hero.title"),
			Subtitle: t("home.hero.subtitle"),
			CTALabel: t("home.hero.cta"),
			CTAHref:  "/" + lang + "/booking",
		}},
		{Template: "section_cards", Data: CardsData{
			Title:    t("home.services.title"),
			Subtitle: t("home.services.subtitle"),
			Cards: []Card{
				{Title: t("home.services.diagnostics.title"), Desc: t("home.services.diagnostics.desc")},
				{Title: t("home.services.mechanical.title"), Desc: t("home.services.mechanical.desc")},
				{Title: t("home.services.electrical.title"), Desc: t("home.services.electrical.desc")},
			},
		}},
		{Template: "section_gallery", Data: GalleryData{
			Title: t("home.gallery.title"),
			Images: []GalleryImage{
				{Src: "/assets/img/workshop-1.jpg", Alt: t("home.gallery.title")},
				{Src: "/assets/img/workshop-2.jpg", Alt: t("home.gallery.title")},
				{Src: "/assets/img/workshop-3.jpg", Alt: t("home.gallery.title")},
			},
		}},
		{Template: "section_cta", Data: CTAData{
			Title:       t("home.cta.title"),
			ButtonLabel: t("home.cta.button"),
			ButtonHref:  "/" + lang + "/contact",
		}},
	}

	h.renderPublic(w, r, http.StatusOK, t("nav.home"), sections)
}

// Services renders the services page. The long-form body comes from the
// markdown content store; when the page is missing for a locale the section
// is simply skipped rather than failing the whole page.
func (h *Handlers) Services(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	t := h.tr(lang)

	sections := []compose.Section{
		{Template: "section_hero", Data: HeroData{
			Title:    t("services.title"),
			Subtitle: t("services.intro"),
		}},
	}

	if h.content != nil {
		page, err := h.content.GetPage("services", lang)
		switch {
		case err == nil:
			sections = append(sections, compose.Section{Template: "section_text", Data: TextData{
				Title: page.Title,
				Body:  page.Body,
			}})
		case errors.Is(err, cms.ErrPageNotFound):
			// no long-form content for this locale
		default:
			log.Printf("services: load content failed: %v", err)
		}
	}

	sections = append(sections, compose.Section{Template: "section_cta", Data: CTAData{
		Title:       t("home.cta.title"),
		ButtonLabel: t("nav.booking"),
		ButtonHref:  "/" + lang + "/booking",
	}})

	h.renderPublic(w, r, http.StatusOK, t("services.title"), sections)
}

// Booking renders the booking request form.
func (h *Handlers) Booking(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	t := h.tr(lang)

	sections := []compose.Section{
		{Template: "section_booking_form", Data: BookingFormData{
			Title:       t("booking.title"),
			Intro:       t("booking.intro"),
			NameLabel:   t("booking.name"),
			PhoneLabel:  t("booking.phone"),
			CarLabel:    t("booking.car"),
			DateLabel:   t("booking.date"),
			SubmitLabel: t("booking.submit"),
			Action:      "/" + lang + "/booking",
		}},
	}

	h.renderPublic(w, r, http.StatusOK, t("booking.title"), sections)
}

// BookingSubmit accepts the form post. Delivery is handled out of band; the
// handler only acknowledges by redirecting back to the localized home page.
func (h *Handlers) BookingSubmit(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	if err := r.ParseForm(); err == nil {
		log.Printf("booking: request from %q (%s)", r.PostFormValue("name"), r.PostFormValue("phone"))
	}
	http.Redirect(w, r, "/"+lang, http.StatusSeeOther)
}

// Contact renders the contact details page.
func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	t := h.tr(lang)

	sections := []compose.Section{
		{Template: "section_contact", Data: ContactData{
			Title:      t("contact.title"),
			Address:    t("contact.address"),
			PhoneLabel: t("contact.phoneLabel"),
			Phone:      "+359 2 973 11 22",
			HoursTitle: t("contact.hoursTitle"),
			Hours: []string{
				t("contact.hoursWeekdays"),
				t("contact.hoursSaturday"),
			},
		}},
	}

	h.renderPublic(w, r, http.StatusOK, t("contact.title"), sections)
}

// NotFound renders the localized 404 page. It serves both unknown paths
// below a valid locale and paths whose first segment is not a locale at all;
// in the latter case the catalog default locale is used. The shell follows
// the path classification: unknown paths under an admin marker take the bare
// admin shell, with no public header, footer or floating CTA.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	t := h.tr(lang)

	sections := []compose.Section{
		{Template: "notfound", Data: NotFoundData{
			Title:     t("notFound.title"),
			Message:   t("notFound.message"),
			HomeLabel: t("notFound.backHome"),
			HomeHref:  "/" + lang,
		}},
	}

	if layout.Classify(r.URL.Path) == layout.ShellAdmin {
		content, err := compose.Page(h.engine, sections)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		h.renderAdmin(w, r, http.StatusNotFound, t("notFound.title"), content)
		return
	}

	h.renderPublic(w, r, http.StatusNotFound, t("notFound.title"), sections)
}
