package handlers

import "html/template"

// Section view models. Every field is filled by the composing handler from
// the translation catalog or page data; sections carry no cross-cutting
// state of their own.

// HeroData feeds the section_hero template.
type HeroData struct {
	Title    string
	Subtitle string
	CTALabel string
	CTAHref  string
}

// Card is one tile in a cards section.
type Card struct {
	Title string
	Desc  string
}

// CardsData feeds the section_cards template.
type CardsData struct {
	Title    string
	Subtitle string
	Cards    []Card
}

// GalleryImage is one image reference in a gallery section.
type GalleryImage struct {
	Src string
	Alt string
}

// GalleryData feeds the section_gallery template.
type GalleryData struct {
	Title  string
	Images []GalleryImage
}

// CTAData feeds the section_cta template.
type CTAData struct {
	Title       string
	ButtonLabel string
	ButtonHref  string
}

// TextData feeds the section_text template. Body is sanitized HTML produced
// by the content store.
type TextData struct {
	Title string
	Body  template.HTML
}

// BookingFormData feeds the section_booking_form template.
type BookingFormData struct {
	Title       string
	Intro       string
	NameLabel   string
	PhoneLabel  string
	CarLabel    string
	DateLabel   string
	SubmitLabel string
	Action      string
}

// ContactData feeds the section_contact template.
type ContactData struct {
	Title      string
	Address    string
	PhoneLabel string
	Phone      string
	HoursTitle string
	Hours      []string
}

// NotFoundData feeds the notfound template.
type NotFoundData struct {
	Title     string
	Message   string
	HomeLabel string
	HomeHref  string
}

// LoginData feeds the admin_login template.
type LoginData struct {
	Title       string
	TokenLabel  string
	SubmitLabel string
	Error       string
	Action      string
	Next        string
}

// StatusOption is one entry in a status select control.
type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

// OffersColumns carries the localized table headings.
type OffersColumns struct {
	Customer string
	Vehicle  string
	Status   string
	Hours    string
	Total    string
	Created  string
}

// OfferRow is one row of the offers table.
type OfferRow struct {
	Href        string
	Customer    string
	Vehicle     string
	Status      string
	StatusLabel string
	Hours       string
	Total       string
	Created     string
}

// OffersTableData feeds the admin_offers_table template.
type OffersTableData struct {
	Title         string
	NewHref       string
	NewLabel      string
	FilterAction  string
	StatusLabel   string
	SearchLabel   string
	FromLabel     string
	ToLabel       string
	ApplyLabel    string
	StatusOptions []StatusOption
	Search        string
	From          string
	To            string
	Columns       OffersColumns
	Rows          []OfferRow
	EmptyLabel    string
}

// ItemRow is one editable line item in the offer form.
type ItemRow struct {
	Description string
	Hours       string
	Price       string
}

// OfferFormData feeds the admin_offer_form template.
type OfferFormData struct {
	Title             string
	Action            string
	CSRFToken         string
	Restricted        bool
	CustomerLabel     string
	PhoneLabel        string
	VehicleLabel      string
	PlateLabel        string
	StatusLabel       string
	StatusOptions     []StatusOption
	Customer          string
	Phone             string
	Vehicle           string
	Plate             string
	Items             []ItemRow
	ItemDescLabel     string
	ItemDurationLabel string
	ItemPriceLabel    string
	SaveLabel         string
	CancelLabel       string
	CancelHref        string
}
