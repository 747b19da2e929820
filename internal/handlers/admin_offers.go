package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/compose"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/layout"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/middleware"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/offers"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/view"
)

// OfferArea parameterizes the offer pages over the two gated admin areas.
// Both serve the same offer data; the mechanic variant is restricted to
// status changes and hides customer contact editing.
type OfferArea struct {
	Marker     string
	Restricted bool
}

var (
	// AreaAdmin is the full management area.
	AreaAdmin = OfferArea{Marker: layout.MarkerAdmin}
	// AreaMechanic is the workshop-floor area: status-only editing.
	AreaMechanic = OfferArea{Marker: layout.MarkerMechanic, Restricted: true}
)

func (a OfferArea) base(lang string) string {
	return "/" + lang + "/" + a.Marker + "/offers"
}

const dateLayout = "2006-01-02"

// OffersList renders the filterable offers table.
func (h *Handlers) OffersList(area OfferArea) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := h.lang(r)
		t := h.tr(lang)

		query := parseOffersQuery(r)
		list, err := h.offers.List(r.Context(), query)
		if err != nil {
			log.Printf("offers: list failed: %v", err)
			if sess, ok := middleware.SessionFromContext(r.Context()); ok {
				sess.AddFlash("error", t("admin.offers.flash.loadFailed"))
			}
			list = nil
		}

		data := OffersTableData{
			Title:        t("admin.offers.title"),
			FilterAction: area.base(lang),
			StatusLabel:  t("admin.offers.filter.status"),
			SearchLabel:  t("admin.offers.filter.search"),
			FromLabel:    t("admin.offers.filter.from"),
			ToLabel:      t("admin.offers.filter.to"),
			ApplyLabel:   t("admin.offers.filter.apply"),
			StatusOptions: statusOptions(t, query.Status, true),
			Search:       query.Search,
			From:         r.URL.Query().Get("from"),
			To:           r.URL.Query().Get("to"),
			Columns: OffersColumns{
				Customer: t("admin.offers.table.customer"),
				Vehicle:  t("admin.offers.table.vehicle"),
				Status:   t("admin.offers.table.status"),
				Hours:    t("admin.offers.table.hours"),
				Total:    t("admin.offers.table.total"),
				Created:  t("admin.offers.table.created"),
			},
			EmptyLabel: t("admin.offers.table.empty"),
		}
		if !area.Restricted {
			data.NewHref = area.base(lang) + "/new"
			data.NewLabel = t("admin.offers.new")
		}
		for _, o := range list {
			data.Rows = append(data.Rows, OfferRow{
				Href:        area.base(lang) + "/" + o.ID,
				Customer:    o.CustomerName,
				Vehicle:     strings.TrimSpace(o.VehicleModel + " " + o.VehiclePlate),
				Status:      string(o.Status),
				StatusLabel: t("admin.offers.status." + string(o.Status)),
				Hours:       offers.FormatHours(o.TotalHours()),
				Total:       view.Money(o.TotalMinor()),
				Created:     o.CreatedAt.Format("02.01.2006"),
			})
		}

		h.renderOffersPage(w, r, http.StatusOK, t("admin.offers.title"), "admin_offers_table", data)
	}
}

// OfferNew renders an empty offer form. Only the full admin area creates
// offers.
func (h *Handlers) OfferNew(area OfferArea) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := h.lang(r)
		t := h.tr(lang)

		form := h.newOfferForm(r, area, t("admin.offers.form.title.new"), area.base(lang))
		form.StatusOptions = statusOptions(t, offers.StatusDraft, false)
		form.Items = []ItemRow{{}, {}, {}}

		h.renderOffersPage(w, r, http.StatusOK, form.Title, "admin_offer_form", form)
	}
}

// OfferCreate persists a new offer from the posted form. A persistence
// failure re-renders the form with the entered values and an error flash;
// nothing is lost.
func (h *Handlers) OfferCreate(area OfferArea) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := h.lang(r)
		t := h.tr(lang)

		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		draft := offers.Draft{
			Status:        offers.Status(r.PostFormValue("status")),
			CustomerName:  strings.TrimSpace(r.PostFormValue("customer_name")),
			CustomerPhone: strings.TrimSpace(r.PostFormValue("customer_phone")),
			VehicleModel:  strings.TrimSpace(r.PostFormValue("vehicle_model")),
			VehiclePlate:  strings.TrimSpace(r.PostFormValue("vehicle_plate")),
			Items:         parseItems(r),
		}

		created, err := h.offers.Create(r.Context(), draft)
		if err != nil {
			log.Printf("offers: create failed: %v", err)
			if sess, ok := middleware.SessionFromContext(r.Context()); ok {
				sess.AddFlash("error", t("admin.offers.flash.saveFailed"))
			}
			form := h.newOfferForm(r, area, t("admin.offers.form.title.new"), area.base(lang))
			form.StatusOptions = statusOptions(t, draft.Status, false)
			fillForm(&form, draft)
			h.renderOffersPage(w, r, http.StatusOK, form.Title, "admin_offer_form", form)
			return
		}

		if sess, ok := middleware.SessionFromContext(r.Context()); ok {
			sess.AddFlash("success", t("admin.offers.flash.saved"))
		}
		http.Redirect(w, r, area.base(lang)+"/"+created.ID, http.StatusSeeOther)
	}
}

// OfferEdit renders the edit form for one offer.
func (h *Handlers) OfferEdit(area OfferArea) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := h.lang(r)
		t := h.tr(lang)

		id := chi.URLParam(r, "id")
		offer, err := h.offers.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, offers.ErrOfferNotFound) {
				h.NotFound(w, r)
				return
			}
			log.Printf("offers: get %s failed: %v", id, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		form := h.newOfferForm(r, area, t("admin.offers.form.title.edit"), area.base(lang)+"/"+offer.ID)
		form.StatusOptions = statusOptions(t, offer.Status, false)
		form.Customer = offer.CustomerName
		form.Phone = offer.CustomerPhone
		form.Vehicle = offer.VehicleModel
		form.Plate = offer.VehiclePlate
		for _, it := range offer.Items {
			form.Items = append(form.Items, ItemRow{
				Description: it.Description,
				Hours:       offers.FormatHours(it.Hours),
				Price:       view.Money(it.PriceMinor),
			})
		}
		if !area.Restricted {
			form.Items = append(form.Items, ItemRow{})
		}

		h.renderOffersPage(w, r, http.StatusOK, form.Title, "admin_offer_form", form)
	}
}

// OfferUpdate applies the posted edits. In the restricted area only the
// status field is honoured regardless of what the request carries.
func (h *Handlers) OfferUpdate(area OfferArea) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := h.lang(r)
		t := h.tr(lang)

		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "id")
		patch := offers.Patch{}
		if status := offers.Status(r.PostFormValue("status")); offers.IsValidStatus(status) {
			patch.Status = &status
		}
		if !area.Restricted {
			customer := strings.TrimSpace(r.PostFormValue("customer_name"))
			phone := strings.TrimSpace(r.PostFormValue("customer_phone"))
			vehicle := strings.TrimSpace(r.PostFormValue("vehicle_model"))
			plate := strings.TrimSpace(r.PostFormValue("vehicle_plate"))
			items := parseItems(r)
			patch.CustomerName = &customer
			patch.CustomerPhone = &phone
			patch.VehicleModel = &vehicle
			patch.VehiclePlate = &plate
			patch.Items = &items
		}

		if _, err := h.offers.Update(r.Context(), id, patch); err != nil {
			if errors.Is(err, offers.ErrOfferNotFound) {
				h.NotFound(w, r)
				return
			}
			log.Printf("offers: update %s failed: %v", id, err)
			if sess, ok := middleware.SessionFromContext(r.Context()); ok {
				sess.AddFlash("error", t("admin.offers.flash.saveFailed"))
			}
			form := h.newOfferForm(r, area, t("admin.offers.form.title.edit"), area.base(lang)+"/"+id)
			form.StatusOptions = statusOptions(t, offers.Status(r.PostFormValue("status")), false)
			fillFormFromRequest(&form, r)
			h.renderOffersPage(w, r, http.StatusOK, form.Title, "admin_offer_form", form)
			return
		}

		if sess, ok := middleware.SessionFromContext(r.Context()); ok {
			sess.AddFlash("success", t("admin.offers.flash.saved"))
		}
		http.Redirect(w, r, area.base(lang)+"/"+id, http.StatusSeeOther)
	}
}

func (h *Handlers) newOfferForm(r *http.Request, area OfferArea, title, action string) OfferFormData {
	lang := h.lang(r)
	t := h.tr(lang)

	csrf := ""
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		csrf = sess.CSRFToken()
	}

	return OfferFormData{
		Title:             title,
		Action:            action,
		CSRFToken:         csrf,
		Restricted:        area.Restricted,
		CustomerLabel:     t("admin.offers.form.customer"),
		PhoneLabel:        t("admin.offers.form.phone"),
		VehicleLabel:      t("admin.offers.form.vehicle"),
		PlateLabel:        t("admin.offers.form.plate"),
		StatusLabel:       t("admin.offers.form.status"),
		ItemDescLabel:     t("admin.offers.form.item.description"),
		ItemDurationLabel: t("admin.offers.form.item.duration"),
		ItemPriceLabel:    t("admin.offers.form.item.price"),
		SaveLabel:         t("admin.offers.form.save"),
		CancelLabel:       t("admin.offers.form.cancel"),
		CancelHref:        area.base(lang),
	}
}

func (h *Handlers) renderOffersPage(w http.ResponseWriter, r *http.Request, status int, heading, template string, data any) {
	content, err := compose.Page(h.engine, []compose.Section{{Template: template, Data: data}})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderAdmin(w, r, status, heading, content)
}

// parseOffersQuery reads the list filter controls. Unknown status values and
// malformed dates fall back to the unfiltered default rather than erroring.
func parseOffersQuery(r *http.Request) offers.Query {
	q := offers.Query{Status: offers.StatusAll}

	if status := offers.Status(r.URL.Query().Get("status")); offers.IsValidStatus(status) {
		q.Status = status
	}
	q.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	if from, err := time.Parse(dateLayout, r.URL.Query().Get("from")); err == nil {
		q.CreatedFrom = &from
	}
	if to, err := time.Parse(dateLayout, r.URL.Query().Get("to")); err == nil {
		// the bound is a calendar date; include the whole day
		end := to.Add(24*time.Hour - time.Nanosecond)
		q.CreatedTo = &end
	}
	return q
}

// parseItems reassembles the parallel item_* form fields into line items.
// Rows left entirely blank are dropped.
func parseItems(r *http.Request) []offers.LineItem {
	descriptions := r.PostForm["item_description"]
	durations := r.PostForm["item_duration"]
	prices := r.PostForm["item_price"]

	var items []offers.LineItem
	for i, desc := range descriptions {
		desc = strings.TrimSpace(desc)
		duration := fieldAt(durations, i)
		price := fieldAt(prices, i)
		if desc == "" && duration == "" && price == "" {
			continue
		}
		items = append(items, offers.LineItem{
			Description: desc,
			Hours:       offers.ParseHours(duration),
			PriceMinor:  parsePriceMinor(price),
		})
	}
	return items
}

func fieldAt(values []string, i int) string {
	if i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}

// parsePriceMinor converts a decimal currency amount to minor units. A comma
// decimal separator is accepted; unparseable input counts as zero.
func parsePriceMinor(raw string) int64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int64(value*100 + 0.5)
}

func statusOptions(t func(string) string, selected offers.Status, includeAll bool) []StatusOption {
	var options []StatusOption
	if includeAll {
		options = append(options, StatusOption{
			Value:    string(offers.StatusAll),
			Label:    t("admin.offers.status.all"),
			Selected: selected == offers.StatusAll,
		})
	}
	for _, status := range offers.Statuses() {
		options = append(options, StatusOption{
			Value:    string(status),
			Label:    t("admin.offers.status." + string(status)),
			Selected: status == selected,
		})
	}
	return options
}

// fillForm copies draft fields back into the form after a failed create.
func fillForm(form *OfferFormData, draft offers.Draft) {
	form.Customer = draft.CustomerName
	form.Phone = draft.CustomerPhone
	form.Vehicle = draft.VehicleModel
	form.Plate = draft.VehiclePlate
	for _, it := range draft.Items {
		form.Items = append(form.Items, ItemRow{
			Description: it.Description,
			Hours:       offers.FormatHours(it.Hours),
			Price:       view.Money(it.PriceMinor),
		})
	}
	form.Items = append(form.Items, ItemRow{})
}

// fillFormFromRequest re-renders exactly what the user typed after a failed
// update, without normalizing durations or prices.
func fillFormFromRequest(form *OfferFormData, r *http.Request) {
	form.Customer = strings.TrimSpace(r.PostFormValue("customer_name"))
	form.Phone = strings.TrimSpace(r.PostFormValue("customer_phone"))
	form.Vehicle = strings.TrimSpace(r.PostFormValue("vehicle_model"))
	form.Plate = strings.TrimSpace(r.PostFormValue("vehicle_plate"))

	descriptions := r.PostForm["item_description"]
	durations := r.PostForm["item_duration"]
	prices := r.PostForm["item_price"]
	for i := range descriptions {
		form.Items = append(form.Items, ItemRow{
			Description: strings.TrimSpace(descriptions[i]),
			Hours:       fieldAt(durations, i),
			Price:       fieldAt(prices, i),
		})
	}
}
