// CLAUDE:SUMMARY Language selection and the message catalog used to localize rule messages.
package a11y

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supportedLangs = []language.Tag{language.English, language.Hebrew}

var langMatcher = language.NewMatcher(supportedLangs)

// ParseLang maps a BCP 47 string ("he", "he-IL", "en-GB", "") to one of the
// supported report languages. Unknown or empty input yields English.
func ParseLang(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	_, idx, conf := langMatcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supportedLangs[idx]
}

func isHebrew(t language.Tag) bool {
	base, _ := t.Base()
	heBase, _ := language.Hebrew.Base()
	return base == heBase
}

// Message keys double as the English format strings.
const (
	msgLangPresent      = "lang attribute present"
	msgLangMissing      = "lang attribute missing"
	msgTitlePresent     = "page title present"
	msgTitleMissing     = "page title missing"
	msgViewportSet      = "viewport is set"
	msgViewportMissing  = "viewport is not set"
	msgSkipPresent      = "skip link present"
	msgSkipMissing      = "no skip link"
	msgLandmarksFound   = "found: %v"
	msgLandmarksMissing = "landmarks missing"
	msgNoEmptyLinks     = "no empty links"
	msgEmptyLinks       = "%d empty links"
	msgHeadingsValid    = "heading sequence is valid"
	msgHeadingsInvalid  = "heading sequence is invalid: %v"
	msgImgAltOK         = "all images have alt"
	msgImgAltMissing    = "%d images without alt"
	msgCaptionsOK       = "videos have captions"
	msgCaptionsMissing  = "%d videos without captions"
	msgContrastOK       = "contrast is sufficient"
	msgContrastLow      = "%d elements with insufficient contrast"
	msgResizeManual     = "verify in browser"
	msgLabelsOK         = "all fields are labelled"
	msgLabelsMissing    = "%d fields without label"
	msgNamesOK          = "all elements are named"
	msgNamesMissing     = "%d elements without aria label"
	msgStatementPresent = "accessibility statement present"
	msgStatementMissing = "accessibility statement missing"
	msgRuleError        = "rule error: %v"
	msgNetworkClause    = "Network"
)

var hebrewMessages = map[string]string{
	msgLangPresent:      "קיים lang",
	msgLangMissing:      "אין lang",
	msgTitlePresent:     "כותרת קיימת",
	msgTitleMissing:     "חסרה כותרת",
	msgViewportSet:      "viewport מוגדר",
	msgViewportMissing:  "לא מוגדר viewport",
	msgSkipPresent:      "קישור לדילוג קיים",
	msgSkipMissing:      "אין קישור לדילוג",
	msgLandmarksFound:   "נמצאו: %v",
	msgLandmarksMissing: "landmarks חסרים",
	msgNoEmptyLinks:     "אין קישורים ריקים",
	msgEmptyLinks:       "%d קישורים ריקים",
	msgHeadingsValid:    "רצף כותרות תקין",
	msgHeadingsInvalid:  "רצף כותרות לא תקין: %v",
	msgImgAltOK:         "לכל התמונות ALT",
	msgImgAltMissing:    "%d תמונות ללא ALT",
	msgCaptionsOK:       "וידאו עם כתוביות",
	msgCaptionsMissing:  "%d וידאו ללא כתוביות",
	msgContrastOK:       "ניגוד תקין",
	msgContrastLow:      "%d אלמנטים בעייתיים",
	msgResizeManual:     "בודק בדפדפן",
	msgLabelsOK:         "כל השדות מתויגים",
	msgLabelsMissing:    "%d שדות ללא תווית",
	msgNamesOK:          "כל האלמנטים מוגדרים",
	msgNamesMissing:     "%d אלמנטים ללא aria",
	msgStatementPresent: "הצהרת נגישות קיימת",
	msgStatementMissing: "חסרה הצהרה",
	msgRuleError:        "שגיאת בדיקה: %v",
	msgNetworkClause:    "רשת",
}

// messages is built once and never mutated afterwards.
var messages = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, he := range hebrewMessages {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := b.SetString(language.Hebrew, key, he); err != nil {
			panic(err)
		}
	}
	return b
}()

func newPrinter(lang language.Tag) *message.Printer {
	return message.NewPrinter(lang, message.Catalog(messages))
}
