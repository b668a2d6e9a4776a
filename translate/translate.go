// Package translate routes user visible text through a locale aware
// message printer.
package translate

import (
	"fmt"
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// supported languages; the first entry is the fallback.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.German,
}

var matcher = language.NewMatcher(supported)

var (
	current language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("accvm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	current = match(locales...)
	printer = message.NewPrinter(current)
}

// match picks the closest supported language for the desired locales.
func match(locales ...string) language.Tag {
	var desired []language.Tag
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		desired = append(desired, tag)
	}

	_, index, _ := matcher.Match(desired...)
	return supported[index]
}

// SetLanguage overrides the detected locale with a BCP 47 tag.
func SetLanguage(tag string) (err error) {
	_, err = language.Parse(tag)
	if err != nil {
		return fmt.Errorf("accvm: language %q: %w", tag, err)
	}

	current = match(tag)
	printer = message.NewPrinter(current)
	return
}

// Language returns the language currently used for output.
func Language() language.Tag {
	return current
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf translates an en-US format and writes it to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return printer.Fprintf(w, key, args...)
}
