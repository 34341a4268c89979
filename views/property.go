package views

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/samurai100996/property-preview/models"
)

// Placeholders substituted for absent optional fields. Views never fail
// on a record with missing data.
const (
	PlaceholderText  = "Not specified"
	PlaceholderPrice = "Price on request"
	PlaceholderImage = "/static/placeholder.jpg"
)

// FeaturedLimit bounds the home-page carousel.
const FeaturedLimit = 8

// AmenitiesPreviewLimit bounds the amenities list before expand.
const AmenitiesPreviewLimit = 6

var pricePrinter = message.NewPrinter(language.English)

// Summary is one render-ready catalog item.
type Summary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	Purpose    string `json:"purpose"`
	Price      string `json:"price"`
	Bedrooms   string `json:"bedrooms"`
	Area       string `json:"area"`
	CoverImage string `json:"coverImage"`
	DetailPath string `json:"detailPath"`
}

func NewSummary(p models.Property) Summary {
	return Summary{
		ID:         p.ID.Hex(),
		Title:      textOr(p.Title, PlaceholderText),
		Location:   textOr(p.Location, PlaceholderText),
		Type:       textOr(p.Type, PlaceholderText),
		Purpose:    textOr(p.Purpose, PlaceholderText),
		Price:      formatPrice(p.Price),
		Bedrooms:   countOr(p.Bedrooms, PlaceholderText),
		Area:       areaOr(p.Area),
		CoverImage: coverImage(p.Files),
		DetailPath: "/properties/" + p.ID.Hex(),
	}
}

func Summaries(properties []models.Property) []Summary {
	out := make([]Summary, 0, len(properties))
	for _, p := range properties {
		out = append(out, NewSummary(p))
	}
	return out
}

// FeaturedSummaries returns the bounded carousel preview.
func FeaturedSummaries(properties []models.Property) []Summary {
	if len(properties) > FeaturedLimit {
		properties = properties[:FeaturedLimit]
	}
	return Summaries(properties)
}

// Catalog wraps the full listing with its empty state so the page never
// has to special-case a missing carousel.
type Catalog struct {
	Properties []Summary `json:"properties"`
	Empty      bool      `json:"empty"`
	Message    string    `json:"message,omitempty"`
}

func NewCatalog(properties []models.Property) Catalog {
	if len(properties) == 0 {
		return Catalog{Properties: []Summary{}, Empty: true, Message: "No properties available"}
	}
	return Catalog{Properties: Summaries(properties)}
}

type SpecRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type AgentCard struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Photo   string `json:"photo"`
}

type OutboundLinks struct {
	Tel      string `json:"tel,omitempty"`
	Mailto   string `json:"mailto,omitempty"`
	Map      string `json:"map"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// Detail is the full render-ready record for one property page.
type Detail struct {
	ID             string                  `json:"id"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	Location       string                  `json:"location"`
	Price          string                  `json:"price"`
	Gallery        []models.FileDescriptor `json:"gallery"`
	Specifications []SpecRow               `json:"specifications"`
	Amenities      []string                `json:"amenities"`
	MoreAmenities  int                     `json:"moreAmenities"`
	VideoURL       string                  `json:"videoUrl,omitempty"`
	Agent          AgentCard               `json:"agent"`
	Links          OutboundLinks           `json:"links"`
}

func NewDetail(p models.Property, contactEmail string) Detail {
	amenities := p.Amenities
	more := 0
	if len(amenities) > AmenitiesPreviewLimit {
		more = len(amenities) - AmenitiesPreviewLimit
		amenities = amenities[:AmenitiesPreviewLimit]
	}
	if amenities == nil {
		amenities = []string{}
	}

	gallery := p.Files
	if len(gallery) == 0 {
		gallery = []models.FileDescriptor{{URL: PlaceholderImage, Type: "image/jpeg", Name: "placeholder"}}
	}

	return Detail{
		ID:             p.ID.Hex(),
		Title:          textOr(p.Title, PlaceholderText),
		Description:    textOr(p.Description, PlaceholderText),
		Location:       fullLocation(p),
		Price:          formatPrice(p.Price),
		Gallery:        gallery,
		Specifications: specifications(p),
		Amenities:      amenities,
		MoreAmenities:  more,
		VideoURL:       p.VideoURL,
		Agent: AgentCard{
			Name:    textOr(p.Agent.Name, PlaceholderText),
			Phone:   p.Agent.Phone,
			Company: textOr(p.Agent.Company, PlaceholderText),
			Photo:   p.Agent.Photo,
		},
		Links: outboundLinks(p, contactEmail),
	}
}

func specifications(p models.Property) []SpecRow {
	return []SpecRow{
		{Label: "Type", Value: textOr(p.Type, PlaceholderText)},
		{Label: "Purpose", Value: textOr(p.Purpose, PlaceholderText)},
		{Label: "Bedrooms", Value: countOr(p.Bedrooms, PlaceholderText)},
		{Label: "Parking", Value: countOr(p.Parking, PlaceholderText)},
		{Label: "Area", Value: areaOr(p.Area)},
		{Label: "Carpet Area", Value: areaOr(p.CarpetArea)},
		{Label: "Plot Size", Value: areaOr(p.PlotSize)},
		{Label: "Facing", Value: textOr(p.Facing, PlaceholderText)},
		{Label: "City", Value: textOr(p.City, PlaceholderText)},
		{Label: "State", Value: textOr(p.State, PlaceholderText)},
		{Label: "Country", Value: textOr(p.Country, PlaceholderText)},
		{Label: "Zip Code", Value: textOr(p.ZipCode, PlaceholderText)},
	}
}

func outboundLinks(p models.Property, contactEmail string) OutboundLinks {
	links := OutboundLinks{
		Map: "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(fullLocation(p)),
	}
	if p.Agent.Phone != "" {
		links.Tel = "tel:" + p.Agent.Phone
		links.WhatsApp = whatsAppLink(p)
	}
	if contactEmail != "" {
		links.Mailto = "mailto:" + contactEmail
	}
	return links
}

// whatsAppLink prefills a chat message with the property's bedroom count,
// type and location.
func whatsAppLink(p models.Property) string {
	text := fmt.Sprintf("Hi, I am interested in the %s bedroom %s at %s",
		countOr(p.Bedrooms, "?"), textOr(p.Type, "property"), textOr(p.Location, PlaceholderText))
	return "https://wa.me/" + digitsOnly(p.Agent.Phone) + "?text=" + url.QueryEscape(text)
}

func fullLocation(p models.Property) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Location, p.City, p.State} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return PlaceholderText
	}
	return strings.Join(parts, ", ")
}

func formatPrice(price float64) string {
	if price <= 0 {
		return PlaceholderPrice
	}
	return pricePrinter.Sprintf("%.0f", price)
}

func coverImage(files []models.FileDescriptor) string {
	if len(files) == 0 || files[0].URL == "" {
		return PlaceholderImage
	}
	return files[0].URL
}

func textOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func countOr(n int, fallback string) string {
	if n <= 0 {
		return fallback
	}
	return fmt.Sprintf("%d", n)
}

func areaOr(n float64) string {
	if n <= 0 {
		return PlaceholderText
	}
	return pricePrinter.Sprintf("%.0f sqft", n)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
