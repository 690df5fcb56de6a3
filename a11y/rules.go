// CLAUDE:SUMMARY The fourteen rule checks of the catalogue, each a pure function over a goquery document.
package a11y

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"

	"github.com/hazyhaar/a11ycheck/contrast"
)

var (
	selHTML         = cascadia.MustCompile("html")
	selTitle        = cascadia.MustCompile("title")
	selViewport     = cascadia.MustCompile(`meta[name="viewport"]`)
	selInPageLink   = cascadia.MustCompile(`a[href^="#"]`)
	selClassed      = cascadia.MustCompile("[class]")
	selRole         = cascadia.MustCompile("[role]")
	selAnchor       = cascadia.MustCompile("a")
	selImg          = cascadia.MustCompile("img")
	selVideo        = cascadia.MustCompile("video")
	selTrack        = cascadia.MustCompile("track")
	selStyled       = cascadia.MustCompile("[style]")
	selFormField    = cascadia.MustCompile("input, select, textarea")
	selLabelFor     = cascadia.MustCompile("label[for]")
	selNamedControl = cascadia.MustCompile("button, a")
)

var skipClassRe = regexp.MustCompile(`(?i)skip`)

var landmarkRoles = []string{"banner", "navigation", "main", "contentinfo"}

func checkHTMLLang(doc *goquery.Document, _ Env) Outcome {
	root := doc.FindMatcher(selHTML).First()
	if root.Length() > 0 && strings.TrimSpace(root.AttrOr("lang", "")) != "" {
		return pass(msgLangPresent)
	}
	return fail(msgLangMissing)
}

func checkTitle(doc *goquery.Document, _ Env) Outcome {
	if hasText(doc.FindMatcher(selTitle).First()) {
		return pass(msgTitlePresent)
	}
	return fail(msgTitleMissing)
}

func checkMetaViewport(doc *goquery.Document, _ Env) Outcome {
	if doc.FindMatcher(selViewport).Length() > 0 {
		return pass(msgViewportSet)
	}
	return fail(msgViewportMissing)
}

func checkSkipLink(doc *goquery.Document, _ Env) Outcome {
	if doc.FindMatcher(selInPageLink).Length() > 0 {
		return pass(msgSkipPresent)
	}
	skip := doc.FindMatcher(selClassed).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return skipClassRe.MatchString(s.AttrOr("class", ""))
	})
	if skip.Length() > 0 {
		return pass(msgSkipPresent)
	}
	return fail(msgSkipMissing)
}

func checkLandmarks(doc *goquery.Document, _ Env) Outcome {
	present := make(map[string]bool)
	doc.FindMatcher(selRole).Each(func(_ int, s *goquery.Selection) {
		present[s.AttrOr("role", "")] = true
	})
	found := make([]string, 0, len(landmarkRoles))
	for _, role := range landmarkRoles {
		if present[role] {
			found = append(found, role)
		}
	}
	if len(found) >= 2 {
		return pass(msgLandmarksFound, found)
	}
	return fail(msgLandmarksMissing)
}

func checkEmptyLinks(doc *goquery.Document, _ Env) Outcome {
	if n := violations(doc.FindMatcher(selAnchor), hasText); n > 0 {
		return fail(msgEmptyLinks, n)
	}
	return pass(msgNoEmptyLinks)
}

// checkHeaderSequence requires heading levels to never decrease and to
// deepen by at most one level at a time.
func checkHeaderSequence(doc *goquery.Document, _ Env) Outcome {
	var levels []int
	for _, root := range doc.Nodes {
		walkElements(root, func(n *html.Node) {
			if l := headingLevel(n); l > 0 {
				levels = append(levels, l)
			}
		})
	}
	if !headingsOrdered(levels) {
		return fail(msgHeadingsInvalid, levels)
	}
	return pass(msgHeadingsValid)
}

func headingsOrdered(levels []int) bool {
	for i := 1; i < len(levels); i++ {
		prev, cur := levels[i-1], levels[i]
		if cur < prev || cur > prev+1 {
			return false
		}
	}
	return true
}

func checkImgAlt(doc *goquery.Document, _ Env) Outcome {
	n := violations(doc.FindMatcher(selImg), func(s *goquery.Selection) bool {
		return nonEmptyAttr(s, "alt")
	})
	if n > 0 {
		return fail(msgImgAltMissing, n)
	}
	return pass(msgImgAltOK)
}

func checkVideoCaptions(doc *goquery.Document, _ Env) Outcome {
	n := violations(doc.FindMatcher(selVideo), func(s *goquery.Selection) bool {
		captions := s.FindMatcher(selTrack).FilterFunction(func(_ int, t *goquery.Selection) bool {
			return strings.EqualFold(strings.TrimSpace(t.AttrOr("kind", "")), "captions")
		})
		return captions.Length() > 0
	})
	if n > 0 {
		return fail(msgCaptionsMissing, n)
	}
	return pass(msgCaptionsOK)
}

func checkContrast(doc *goquery.Document, _ Env) Outcome {
	n := violations(doc.FindMatcher(selStyled), func(s *goquery.Selection) bool {
		fg, bg, ok := inlineColors(s.AttrOr("style", ""))
		if !ok {
			return true
		}
		return contrast.Ratio(fg, bg) >= contrast.AAThreshold
	})
	if n > 0 {
		return fail(msgContrastLow, n)
	}
	return pass(msgContrastOK)
}

// inlineColors extracts the effective color and background-color of an inline
// style. ok is false when either is absent or not a 6-hex-digit color, which
// excludes the element from the contrast check.
func inlineColors(style string) (fg, bg contrast.Color, ok bool) {
	// douceur drops the value of a final declaration that has no ';'.
	style = strings.TrimSpace(style)
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return fg, bg, false
	}
	var fgVal, bgVal string
	for _, d := range decls {
		switch strings.ToLower(strings.TrimSpace(d.Property)) {
		case "color":
			fgVal = d.Value
		case "background-color":
			bgVal = d.Value
		}
	}
	if fgVal == "" || bgVal == "" {
		return fg, bg, false
	}
	fg, errFG := contrast.Parse(fgVal)
	bg, errBG := contrast.Parse(bgVal)
	if errFG != nil || errBG != nil {
		return fg, bg, false
	}
	return fg, bg, true
}

func checkTextResize(_ *goquery.Document, _ Env) Outcome {
	return pass(msgResizeManual)
}

func checkFormLabels(doc *goquery.Document, _ Env) Outcome {
	labelled := make(map[string]bool)
	doc.FindMatcher(selLabelFor).Each(func(_ int, s *goquery.Selection) {
		labelled[s.AttrOr("for", "")] = true
	})
	n := violations(doc.FindMatcher(selFormField), func(s *goquery.Selection) bool {
		id := s.AttrOr("id", "")
		return id != "" && labelled[id]
	})
	if n > 0 {
		return fail(msgLabelsMissing, n)
	}
	return pass(msgLabelsOK)
}

func checkAriaLabels(doc *goquery.Document, _ Env) Outcome {
	n := violations(doc.FindMatcher(selNamedControl), func(s *goquery.Selection) bool {
		return hasText(s) || nonEmptyAttr(s, "aria-label")
	})
	if n > 0 {
		return fail(msgNamesMissing, n)
	}
	return pass(msgNamesOK)
}

func checkAccessibilityStatement(doc *goquery.Document, env Env) Outcome {
	fold := cases.Fold()
	terms := make([]string, 0, len(env.StatementTerms))
	for _, t := range env.StatementTerms {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, fold.String(t))
		}
	}
	found := false
	for _, root := range doc.Nodes {
		found = found || anyText(root, func(text string) bool {
			folded := fold.String(text)
			for _, t := range terms {
				if strings.Contains(folded, t) {
					return true
				}
			}
			return false
		})
	}
	if found {
		return pass(msgStatementPresent)
	}
	return fail(msgStatementMissing)
}
