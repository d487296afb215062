// Package listing defines the property listing draft and the wizard step model.
package listing

import (
	"slices"
	"sort"
	"strings"
	"time"
)

type PropertyCategory string

const (
	CategoryResidential PropertyCategory = "residential"
	CategoryCommercial  PropertyCategory = "commercial"
	CategoryIndustrial  PropertyCategory = "industrial"
)

type ListingPurpose string

const (
	PurposeSale ListingPurpose = "sale"
	PurposeRent ListingPurpose = "rent"
)

type AvailabilityMode string

const (
	AvailabilityImmediate AvailabilityMode = "immediate"
	AvailabilityScheduled AvailabilityMode = "scheduled"
)

type Furnishing string

const (
	FurnishingFully       Furnishing = "fully"
	FurnishingPartial     Furnishing = "partial"
	FurnishingUnfurnished Furnishing = "unfurnished"
)

type PriceType string

const (
	PriceNone       PriceType = "none"
	PriceNegotiable PriceType = "negotiable"
	PriceFixed      PriceType = "fixed"
	PricePOA        PriceType = "poa"
)

// MediaKind discriminates the asset arrays of a MediaCollection.
type MediaKind string

const (
	KindPhoto       MediaKind = "photo"
	KindVideo       MediaKind = "video"
	KindFloorplan   MediaKind = "floorplan"
	KindVirtualTour MediaKind = "virtualTour"
)

// MediaSource records where an asset came from.
type MediaSource string

const (
	SourceSample  MediaSource = "sample"
	SourceProject MediaSource = "project"
	SourceUpload  MediaSource = "upload"
)

// DefaultBumiLot is the bumi-lot value of a freshly created location.
const DefaultBumiLot = "Do not specify"

// Draft is the listing being assembled during one wizard session.
type Draft struct {
	ID               string             `json:"id"`
	PropertyCategory PropertyCategory   `json:"propertyCategory"`
	ListingPurpose   ListingPurpose     `json:"listingPurpose"`
	Auctioned        bool               `json:"auctioned"`
	AvailabilityMode AvailabilityMode   `json:"availabilityMode"`
	AvailableDate    *string            `json:"availableDate"`
	CoAgency         bool               `json:"coAgency"`
	ReferenceNumber  string             `json:"referenceNumber"`
	Location         *LocationSelection `json:"location"`
	UnitDetails      UnitDetails        `json:"unitDetails"`
	Pricing          Pricing            `json:"pricing"`
	Headline         string             `json:"headline"`
	Description      string             `json:"description"`
	Media            MediaCollection    `json:"media"`
	PlatformSettings PlatformSettings   `json:"platformSettings"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

type LocationSelection struct {
	SearchTerm          string   `json:"searchTerm"`
	DevelopmentName     string   `json:"developmentName"`
	Address             string   `json:"address"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	Geohash             string   `json:"geohash,omitempty"`
	PropertyType        string   `json:"propertyType"`
	PropertySubType     string   `json:"propertySubType"`
	PropertyUnitType    string   `json:"propertyUnitType"`
	State               string   `json:"state"`
	City                string   `json:"city"`
	Street              string   `json:"street"`
	PostalCode          string   `json:"postalCode"`
	Tenure              string   `json:"tenure"`
	CompletionYear      string   `json:"completionYear"`
	TitleType           string   `json:"titleType"`
	LeaseYearsRemaining string   `json:"leaseYearsRemaining"`
	BumiLot             string   `json:"bumiLot"`
}

// EmptyLocation returns the location a partial update merges onto when the
// draft has none yet.
func EmptyLocation() LocationSelection {
	return LocationSelection{BumiLot: DefaultBumiLot}
}

type UnitDetails struct {
	Bedrooms            *int       `json:"bedrooms"`
	Bathrooms           *int       `json:"bathrooms"`
	MaidRooms           int        `json:"maidRooms"`
	BuiltUp             *float64   `json:"builtUp"`
	BuiltUpWidth        *float64   `json:"builtUpWidth"`
	BuiltUpLength       *float64   `json:"builtUpLength"`
	Block               string     `json:"block"`
	Floor               string     `json:"floor"`
	UnitNumber          string     `json:"unitNumber"`
	HideLocationDetails bool       `json:"hideLocationDetails"`
	ParkingSpots        int        `json:"parkingSpots"`
	Furnishing          Furnishing `json:"furnishing"`
	Features            []string   `json:"features"`
}

type Pricing struct {
	PriceType      PriceType `json:"priceType"`
	SellingPrice   *float64  `json:"sellingPrice"`
	MaintenanceFee *float64  `json:"maintenanceFee"`
	PricePerSqft   *float64  `json:"pricePerSqft"`
}

type MediaAsset struct {
	ID           string      `json:"id"`
	Kind         MediaKind   `json:"type"`
	FileName     string      `json:"fileName"`
	URL          string      `json:"url"`
	ThumbnailURL string      `json:"thumbnailUrl,omitempty"`
	SizeBytes    int64       `json:"sizeBytes,omitempty"`
	AltText      string      `json:"altText,omitempty"`
	Order        int         `json:"order"`
	Tag          string      `json:"tag,omitempty"`
	ReferenceID  string      `json:"referenceId,omitempty"`
	Source       MediaSource `json:"source,omitempty"`
}

type MediaCollection struct {
	Photos        []MediaAsset `json:"photos"`
	Videos        []MediaAsset `json:"videos"`
	Floorplans    []MediaAsset `json:"floorplans"`
	VirtualTours  []MediaAsset `json:"virtualTours"`
	ProjectPhotos []MediaAsset `json:"projectPhotos"`
	CoverPhotoID  *string      `json:"coverPhotoId"`
}

// EmptyMedia returns a collection with every array allocated.
func EmptyMedia() MediaCollection {
	return MediaCollection{
		Photos:        []MediaAsset{},
		Videos:        []MediaAsset{},
		Floorplans:    []MediaAsset{},
		VirtualTours:  []MediaAsset{},
		ProjectPhotos: []MediaAsset{},
	}
}

// Cover returns the cover id or "" when unset.
func (m MediaCollection) Cover() string {
	if m.CoverPhotoID == nil {
		return ""
	}
	return *m.CoverPhotoID
}

// HasPhoto reports whether a photo with the given id exists.
func (m MediaCollection) HasPhoto(id string) bool {
	return slices.ContainsFunc(m.Photos, func(a MediaAsset) bool { return a.ID == id })
}

// Photo looks up a photo by id.
func (m MediaCollection) Photo(id string) (MediaAsset, bool) {
	i := slices.IndexFunc(m.Photos, func(a MediaAsset) bool { return a.ID == id })
	if i < 0 {
		return MediaAsset{}, false
	}
	return m.Photos[i], true
}

type PlatformSettings struct {
	PublishIProperty    bool    `json:"publishIProperty"`
	PublishPropertyGuru bool    `json:"publishPropertyGuru"`
	Boost               bool    `json:"boost"`
	ScheduledPublish    bool    `json:"scheduledPublish"`
	ScheduledDate       *string `json:"scheduledDate"`
}

// SamplePhoto is an entry of a static photo library.
type SamplePhoto struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Label    string `json:"label"`
	Tag      string `json:"tag"`
}

// NewDraft returns a fresh draft with the session defaults.
func NewDraft(id string, now time.Time) *Draft {
	return &Draft{
		ID:               id,
		AvailabilityMode: AvailabilityImmediate,
		UnitDetails: UnitDetails{
			Features: []string{},
		},
		Pricing: Pricing{PriceType: PriceNone},
		Media:   EmptyMedia(),
		PlatformSettings: PlatformSettings{
			PublishIProperty: true,
		},
		UpdatedAt: now,
	}
}

// NormalizeFeatures dedupes, trims and sorts feature tags. Blank tags are dropped.
func NormalizeFeatures(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return slices.Compact(out)
}

// Clone returns a deep copy of d.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	c := *d
	c.AvailableDate = clonePtr(d.AvailableDate)
	if d.Location != nil {
		loc := d.Location.Clone()
		c.Location = &loc
	}
	c.UnitDetails = d.UnitDetails.Clone()
	c.Pricing = d.Pricing.Clone()
	c.Media = d.Media.Clone()
	c.PlatformSettings.ScheduledDate = clonePtr(d.PlatformSettings.ScheduledDate)
	return &c
}

func (l LocationSelection) Clone() LocationSelection {
	l.Latitude = clonePtr(l.Latitude)
	l.Longitude = clonePtr(l.Longitude)
	return l
}

func (u UnitDetails) Clone() UnitDetails {
	u.Bedrooms = clonePtr(u.Bedrooms)
	u.Bathrooms = clonePtr(u.Bathrooms)
	u.BuiltUp = clonePtr(u.BuiltUp)
	u.BuiltUpWidth = clonePtr(u.BuiltUpWidth)
	u.BuiltUpLength = clonePtr(u.BuiltUpLength)
	u.Features = cloneSlice(u.Features)
	return u
}

func (p Pricing) Clone() Pricing {
	p.SellingPrice = clonePtr(p.SellingPrice)
	p.MaintenanceFee = clonePtr(p.MaintenanceFee)
	p.PricePerSqft = clonePtr(p.PricePerSqft)
	return p
}

func (m MediaCollection) Clone() MediaCollection {
	m.Photos = cloneSlice(m.Photos)
	m.Videos = cloneSlice(m.Videos)
	m.Floorplans = cloneSlice(m.Floorplans)
	m.VirtualTours = cloneSlice(m.VirtualTours)
	m.ProjectPhotos = cloneSlice(m.ProjectPhotos)
	m.CoverPhotoID = clonePtr(m.CoverPhotoID)
	return m
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneSlice keeps nil as nil and empty as empty.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
