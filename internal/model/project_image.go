package model

import "time"

type ProjectImage struct {
	ID         int64
	ProjectID  int64
	Filename   string
	ObjectName string // key in the object-store bucket
	Caption    *string
	UploadedBy string // "admin" or "citizen"
	UploadedAt time.Time
}

// PublicImage is a ProjectImage with a presigned URL attached, served to
// citizen-facing pages.
type PublicImage struct {
	ID         int64
	Filename   string
	Caption    string
	UploadedBy string
	UploadedAt time.Time
	URL        string
	ObjectName string
}
