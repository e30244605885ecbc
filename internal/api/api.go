package api

import (
	"mock-interview/internal/cv"
	"mock-interview/internal/interview"
)

type API struct {
	service   *interview.Service
	parser    *cv.ResumeParser
	extractor *cv.ProfileExtractor
	profiles  interview.ProfileStore
}

func NewAPI(service *interview.Service, parser *cv.ResumeParser, extractor *cv.ProfileExtractor, profiles interview.ProfileStore) *API {
	return &API{
		service:   service,
		parser:    parser,
		extractor: extractor,
		profiles:  profiles,
	}
}
