package models

// Accommodation is a lodge, camp or hotel record. Read-only from the
// gateway's perspective.
type Accommodation struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"` // lodge | camp | hotel
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"price_per_night,string"`
	Amenities     string   `json:"amenities"`
	Image         string   `json:"image"`
	GalleryImages []string `json:"gallery_images,omitempty"`
	Rating        float64  `json:"rating,string"`
	IsFeatured    bool     `json:"is_featured"`
}
