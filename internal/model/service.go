package model

import "time"

// ServiceCategory classifies a wedding vendor.
type ServiceCategory string

const (
	CategoryHairSalon      ServiceCategory = "hair_salon"
	CategoryNailSalon      ServiceCategory = "nail_salon"
	CategoryMakeup         ServiceCategory = "makeup"
	CategoryDecorator      ServiceCategory = "decorator"
	CategoryPhotographer   ServiceCategory = "photographer"
	CategoryVideographer   ServiceCategory = "videographer"
	CategoryFlorist        ServiceCategory = "florist"
	CategoryCatering       ServiceCategory = "catering"
	CategoryMusicDJ        ServiceCategory = "music_dj"
	CategoryWeddingPlanner ServiceCategory = "wedding_planner"
	CategoryTransport      ServiceCategory = "transport"
	CategoryOther          ServiceCategory = "other"
)

// Valid reports whether c is a known category.
func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryHairSalon, CategoryNailSalon, CategoryMakeup, CategoryDecorator,
		CategoryPhotographer, CategoryVideographer, CategoryFlorist, CategoryCatering,
		CategoryMusicDJ, CategoryWeddingPlanner, CategoryTransport, CategoryOther:
		return true
	}
	return false
}

// VendorService is a non-venue wedding vendor (photographer, florist...).
// It goes through the same moderation gate as venues but is never booked;
// customers reach vendors through inquiries.
type VendorService struct {
	ID             uint64           `json:"id"`
	OwnerID        *uint64          `json:"owner_id,omitempty"`
	Name           string           `json:"name"`
	Description    *string          `json:"description,omitempty"`
	DescriptionSQ  *string          `json:"description_sq,omitempty"`
	DescriptionMK  *string          `json:"description_mk,omitempty"`
	Category       ServiceCategory  `json:"category"`
	Location       string           `json:"location"`
	City           string           `json:"city"`
	Address        *string          `json:"address,omitempty"`
	PriceFromCents *int64           `json:"price_from_cents,omitempty"`
	PriceToCents   *int64           `json:"price_to_cents,omitempty"`
	CoverImage     *string          `json:"cover_image,omitempty"`
	Status         ModerationStatus `json:"status"`
	IsFeatured     bool             `json:"is_featured"`
	ContactPhone   *string          `json:"contact_phone,omitempty"`
	ContactEmail   *string          `json:"contact_email,omitempty"`
	Website        *string          `json:"website,omitempty"`
	Instagram      *string          `json:"instagram,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ServiceFilter narrows vendor service listings.
type ServiceFilter struct {
	Status   ModerationStatus
	OwnerID  uint64
	Category ServiceCategory
	City     string
}
