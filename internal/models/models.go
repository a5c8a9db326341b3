package models

import "time"

// User represents a registered user, keyed by the Google identifier
// supplied by the client.
type User struct {
	GoogleID     string    `json:"googleId"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photoUrl"`
	CanComment   bool      `json:"canComment"`
	CanUpload    bool      `json:"canUpload"`
	CreationDate time.Time `json:"creationDate"`
	LastAccess   time.Time `json:"lastAccess"`
}

// Mask represents an uploaded mask record. IDs form a dense sequence
// starting at 0; new masks receive the smallest integer not in use.
type Mask struct {
	ID               int64     `json:"id"`
	MaskURL          string    `json:"maskUrl"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Images           []string  `json:"images"`
	Tags             []string  `json:"tags"`
	UploaderGoogleID string    `json:"uploaderGoogleId"`
	AverageRating    float64   `json:"averageRating"`
	RatingsCount     int       `json:"ratingsCount"`
	UploadedOn       time.Time `json:"uploadedOn"`
	LastAccessedOn   time.Time `json:"lastAccessedOn"`
	IsRemoved        bool      `json:"isRemoved"`
}

// Rating is one user's rating of one mask. At most one row exists per
// (maskId, googleId) pair.
type Rating struct {
	MaskID   int64     `json:"maskId"`
	GoogleID string    `json:"googleId"`
	Rating   float64   `json:"rating"`
	PostedOn time.Time `json:"postedOn"`
}

// Comment is a user comment on a mask.
type Comment struct {
	ID       string    `json:"id"`
	MaskID   int64     `json:"maskId"`
	GoogleID string    `json:"googleId"`
	Comment  string    `json:"comment"`
	PostedOn time.Time `json:"postedOn"`
}

// Report is an abuse report. Reports are append-only; no handler reads
// them back.
type Report struct {
	ID               string    `json:"id"`
	ReportedItemType string    `json:"reportedItemType"`
	ReportedItemID   string    `json:"reportedItemId"`
	ReporterGoogleID string    `json:"reporterGoogleId"`
	Reason           string    `json:"reason"`
	Description      string    `json:"description"`
	ReportedOn       time.Time `json:"reportedOn"`
}
