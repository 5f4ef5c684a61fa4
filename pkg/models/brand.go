package models

import (
	"time"
)

// Brand captures the profile a business maintains for content generation.
type Brand struct {
	ID              string    `firestore:"id" json:"id"`
	UserID          string    `firestore:"user_id" json:"user_id"`
	Name            string    `firestore:"name" json:"name"`
	Category        string    `firestore:"category" json:"category"`
	Description     string    `firestore:"description" json:"description"`
	TargetAudience  string    `firestore:"target_audience" json:"target_audience"`
	MajorStrengths  []string  `firestore:"major_strengths" json:"major_strengths"`
	MainProducts    []string  `firestore:"main_products" json:"main_products"`
	BrandVoice      string    `firestore:"brand_voice" json:"brand_voice"`
	ReferenceImages []string  `firestore:"reference_images" json:"reference_images"`
	LogoImage       string    `firestore:"logo_image" json:"logo_image"`
	CreatedAt       time.Time `firestore:"created_at" json:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at" json:"updated_at"`
}
