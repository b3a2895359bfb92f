package report

import (
	"golang.org/x/text/language"
	"strings"
	"time"
)

type shortDate struct {
	tag    language.Tag
	layout string
}

// The first entry is the fallback for unknown locales.
var shortDates = []shortDate{
	{tag: language.AmericanEnglish, layout: "1/2/2006"},
	{tag: language.BritishEnglish, layout: "02/01/2006"},
	{tag: language.German, layout: "2.1.2006"},
	{tag: language.French, layout: "02/01/2006"},
	{tag: language.Italian, layout: "2/1/2006"},
	{tag: language.Spanish, layout: "2/1/2006"},
	{tag: language.Dutch, layout: "2-1-2006"},
	{tag: language.Indonesian, layout: "2/1/2006"},
	{tag: language.Japanese, layout: "2006/1/2"},
	{tag: language.Chinese, layout: "2006/1/2"},
}

var shortDateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(shortDates))
	for i, d := range shortDates {
		tags[i] = d.tag
	}
	return language.NewMatcher(tags)
}()

// DateFormatter renders dates in a locale's short form within one time zone.
type DateFormatter struct {
	Locale   language.Tag
	layout   string
	location *time.Location
}

// NewDateFormatter matches locale (a BCP 47 tag such as "en-GB") against the known
// short date forms. An empty or unknown locale falls back to US English and a nil
// location to UTC.
func NewDateFormatter(locale string, location *time.Location) DateFormatter {
	if location == nil {
		location = time.UTC
	}

	idx := 0
	if locale = strings.TrimSpace(locale); locale != "" {
		if tag, err := language.Parse(locale); err == nil {
			_, i, confidence := shortDateMatcher.Match(tag)
			if confidence != language.No {
				idx = i
			}
		}
	}

	return DateFormatter{
		Locale:   shortDates[idx].tag,
		layout:   shortDates[idx].layout,
		location: location,
	}
}

func (f DateFormatter) Short(t time.Time) string {
	if f.layout == "" {
		f = NewDateFormatter("", f.location)
	}
	return t.In(f.location).Format(f.layout)
}

func (f DateFormatter) Location() *time.Location {
	if f.location == nil {
		return time.UTC
	}
	return f.location
}
