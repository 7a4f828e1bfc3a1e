package models

import "time"

// Entry is the normalized record produced for one ingested resource.
//
// Metadata is embedded so its fields are promoted into the same flat JSON
// object. Optional fields are omitted entirely when absent.
type Entry struct {
	// Title is the best available document title, trimmed. May be empty.
	Title string `json:"title"`

	// Origin is the site or publisher name.
	Origin string `json:"origin"`

	// Author is the byline, empty when no source names one.
	Author string `json:"author"`

	// URL is the address the entry was ingested from.
	URL string `json:"url"`

	// Content is the extracted body text, capped in length.
	Content string `json:"content"`

	Metadata
}

// Metadata holds independently-sourced optional fields. Absence is a valid,
// common outcome.
type Metadata struct {
	Summary       string     `json:"summary,omitempty"`
	ThumbnailURL  string     `json:"thumbnail_url,omitempty"`
	PublishedTime *time.Time `json:"published_time,omitempty"`
	UpdatedTime   *time.Time `json:"updated_time,omitempty"`
}

// FillFrom copies every field of seed into m that m does not already have.
// Values already present in m are never overwritten.
func (m *Metadata) FillFrom(seed Metadata) {
	if m.Summary == "" {
		m.Summary = seed.Summary
	}
	if m.ThumbnailURL == "" {
		m.ThumbnailURL = seed.ThumbnailURL
	}
	if m.PublishedTime == nil && seed.PublishedTime != nil {
		t := seed.PublishedTime.UTC()
		m.PublishedTime = &t
	}
	if m.UpdatedTime == nil && seed.UpdatedTime != nil {
		t := seed.UpdatedTime.UTC()
		m.UpdatedTime = &t
	}
}

// IsZero reports whether no optional field is set.
func (m Metadata) IsZero() bool {
	return m.Summary == "" && m.ThumbnailURL == "" && m.PublishedTime == nil && m.UpdatedTime == nil
}
