package courier

import (
	"regexp"
	"strings"
	"time"
)

// deliveryDateLayout is the date format couriers embed in status phrases.
const deliveryDateLayout = "02.01.2006"

var deliveryDatePattern = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

var trailingDeliveryDatePattern = regexp.MustCompile(`\s*\d{2}\.\d{2}\.\d{4}\s*$`)

// ExtractLastDeliveryDate finds the last DD.MM.YYYY token in a message and
// parses it. Returns false when the message carries no parseable date; a
// missing date is normal, not an error.
func ExtractLastDeliveryDate(text string) (time.Time, bool) {
	matches := deliveryDatePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return time.Time{}, false
	}

	date, err := time.Parse(deliveryDateLayout, matches[len(matches)-1])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// StripTrailingDeliveryDate removes a trailing DD.MM.YYYY token (plus
// surrounding whitespace) from a message. Dictionary entries are stored
// without the variable date suffix so one entry covers every occurrence of
// the phrase.
func StripTrailingDeliveryDate(text string) string {
	return strings.TrimSpace(trailingDeliveryDatePattern.ReplaceAllString(text, ""))
}
