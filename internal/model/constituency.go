package model

type Constituency struct {
	Code       string
	Name       string
	County     string
	MPName     string
	Population *int64
	PASScore   *float64
}
