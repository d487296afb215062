package listing

// Value is an optional patch field. The zero value leaves the target untouched;
// Some sets it. For pointer types, Some(nil) clears a nullable field.
type Value[T any] struct {
	Set bool
	V   T
}

// Some wraps v as a present patch value.
func Some[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

// Apply writes the value into dst when present and reports whether it did.
func (v Value[T]) Apply(dst *T) bool {
	if !v.Set {
		return false
	}
	*dst = v.V
	return true
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// ListingTypePatch updates the listing-type section of a draft.
type ListingTypePatch struct {
	PropertyCategory Value[PropertyCategory]
	ListingPurpose   Value[ListingPurpose]
	Auctioned        Value[bool]
	AvailabilityMode Value[AvailabilityMode]
	AvailableDate    Value[*string]
	CoAgency         Value[bool]
	ReferenceNumber  Value[string]
}

// LocationPatch merges into the current location (or a fresh empty one).
type LocationPatch struct {
	SearchTerm          Value[string]
	DevelopmentName     Value[string]
	Address             Value[string]
	Latitude            Value[*float64]
	Longitude           Value[*float64]
	PropertyType        Value[string]
	PropertySubType     Value[string]
	PropertyUnitType    Value[string]
	State               Value[string]
	City                Value[string]
	Street              Value[string]
	PostalCode          Value[string]
	Tenure              Value[string]
	CompletionYear      Value[string]
	TitleType           Value[string]
	LeaseYearsRemaining Value[string]
	BumiLot             Value[string]
}

// Apply merges p into loc.
func (p LocationPatch) Apply(loc *LocationSelection) {
	p.SearchTerm.Apply(&loc.SearchTerm)
	p.DevelopmentName.Apply(&loc.DevelopmentName)
	p.Address.Apply(&loc.Address)
	p.Latitude.Apply(&loc.Latitude)
	p.Longitude.Apply(&loc.Longitude)
	p.PropertyType.Apply(&loc.PropertyType)
	p.PropertySubType.Apply(&loc.PropertySubType)
	p.PropertyUnitType.Apply(&loc.PropertyUnitType)
	p.State.Apply(&loc.State)
	p.City.Apply(&loc.City)
	p.Street.Apply(&loc.Street)
	p.PostalCode.Apply(&loc.PostalCode)
	p.Tenure.Apply(&loc.Tenure)
	p.CompletionYear.Apply(&loc.CompletionYear)
	p.TitleType.Apply(&loc.TitleType)
	p.LeaseYearsRemaining.Apply(&loc.LeaseYearsRemaining)
	p.BumiLot.Apply(&loc.BumiLot)
}

// UnitDetailsPatch updates unit details.
type UnitDetailsPatch struct {
	Bedrooms            Value[*int]
	Bathrooms           Value[*int]
	MaidRooms           Value[int]
	BuiltUp             Value[*float64]
	BuiltUpWidth        Value[*float64]
	BuiltUpLength       Value[*float64]
	Block               Value[string]
	Floor               Value[string]
	UnitNumber          Value[string]
	HideLocationDetails Value[bool]
	ParkingSpots        Value[int]
	Furnishing          Value[Furnishing]
	Features            Value[[]string]
}

// Apply merges p into u and reports whether the built-up area changed.
func (p UnitDetailsPatch) Apply(u *UnitDetails) (builtUpChanged bool) {
	p.Bedrooms.Apply(&u.Bedrooms)
	p.Bathrooms.Apply(&u.Bathrooms)
	p.MaidRooms.Apply(&u.MaidRooms)
	builtUpChanged = p.BuiltUp.Apply(&u.BuiltUp)
	p.BuiltUpWidth.Apply(&u.BuiltUpWidth)
	p.BuiltUpLength.Apply(&u.BuiltUpLength)
	p.Block.Apply(&u.Block)
	p.Floor.Apply(&u.Floor)
	p.UnitNumber.Apply(&u.UnitNumber)
	p.HideLocationDetails.Apply(&u.HideLocationDetails)
	p.ParkingSpots.Apply(&u.ParkingSpots)
	p.Furnishing.Apply(&u.Furnishing)
	if p.Features.Set {
		u.Features = NormalizeFeatures(p.Features.V)
	}
	return builtUpChanged
}

// PricingPatch updates pricing.
type PricingPatch struct {
	PriceType      Value[PriceType]
	SellingPrice   Value[*float64]
	MaintenanceFee Value[*float64]
	PricePerSqft   Value[*float64]
}

// Apply merges p into pr and reports whether the selling price changed.
func (p PricingPatch) Apply(pr *Pricing) (priceChanged bool) {
	p.PriceType.Apply(&pr.PriceType)
	priceChanged = p.SellingPrice.Apply(&pr.SellingPrice)
	p.MaintenanceFee.Apply(&pr.MaintenanceFee)
	p.PricePerSqft.Apply(&pr.PricePerSqft)
	return priceChanged
}

// PlatformPatch updates platform settings.
type PlatformPatch struct {
	PublishIProperty    Value[bool]
	PublishPropertyGuru Value[bool]
	Boost               Value[bool]
	ScheduledPublish    Value[bool]
	ScheduledDate       Value[*string]
}

// Apply merges p into ps.
func (p PlatformPatch) Apply(ps *PlatformSettings) {
	p.PublishIProperty.Apply(&ps.PublishIProperty)
	p.PublishPropertyGuru.Apply(&ps.PublishPropertyGuru)
	p.Boost.Apply(&ps.Boost)
	p.ScheduledPublish.Apply(&ps.ScheduledPublish)
	p.ScheduledDate.Apply(&ps.ScheduledDate)
}
