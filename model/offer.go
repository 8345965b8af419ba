package model

import "time"

// Offer is a scholarship posting. SchoolsOffered is the eligibility universe
// for the offer; Slots and Applied track capacity. Offers are created by
// organizations and are read-only for the recommendation core.
type Offer struct {
	ID             string    `json:"id"`
	ProgramName    string    `json:"programName"`
	ProgramType    string    `json:"programType"`
	SchoolsOffered []string  `json:"schoolsOffered"`
	Slots          int       `json:"slots"`
	Applied        int       `json:"applied"`
	DateAdded      time.Time `json:"dateAdded"`
	CreatedBy      string    `json:"createdBy"`
}

// OfferFromDocument decodes an offer record. Persisted offers may carry a
// missing or malformed schoolsOffered field; those decode to an empty
// eligibility set rather than failing, so one corrupt record never aborts a
// catalog load.
func OfferFromDocument(id string, doc Document) Offer {
	offer := Offer{ID: id}
	if docID, ok := doc.GetID(); ok && id == "" {
		offer.ID = docID
	}
	offer.ProgramName, _ = doc.GetString("programName")
	offer.ProgramType, _ = doc.GetString("programType")
	if schools, ok := doc.GetStringSlice("schoolsOffered"); ok {
		offer.SchoolsOffered = schools
	}
	offer.Slots, _ = doc.GetInt("slots")
	offer.Applied, _ = doc.GetInt("applied")
	offer.CreatedBy, _ = doc.GetString("createdBy")
	if raw, ok := doc.GetString("dateAdded"); ok {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			offer.DateAdded = ts
		}
	}
	return offer
}

// ScoredOffer is an Offer augmented with a similarity score in [0, 1].
// It is derived fresh on every scoring pass and never persisted.
type ScoredOffer struct {
	Offer      Offer   `json:"offer"`
	Similarity float64 `json:"similarity"`
}
