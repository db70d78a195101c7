package models

// Identification is the structured result of one tree identification attempt.
// Values are immutable once produced; CareTips is optional and order-preserving.
type Identification struct {
	CommonName     string   `json:"commonName"`
	ScientificName string   `json:"scientificName"`
	Description    string   `json:"description"`
	CareTips       []string `json:"careTips,omitempty"`
}
