package extract

import (
	"strings"

	"github.com/goliatone/go-recipes/internal/document"
)

type cursorState uint8

const (
	cursorInactive cursorState = iota
	cursorUntitled
	cursorTitled
)

// sectionRules specialises the shared top-level scan for one kind of section.
type sectionRules[S any] struct {
	// opens reports whether a level-2 heading starts a section of interest.
	opens func(heading string) bool
	// subsections lets level-3 headings open titled sections while active.
	subsections bool
	// start builds the in-progress value for a new section. titled is false
	// for the section opened by the level-2 heading itself.
	start     func(heading string, titled bool) S
	list      func(section *S, list *document.List) error
	paragraph func(section *S, p *document.Paragraph) error
	// keep filters finished sections; nil keeps everything.
	keep func(section S) bool
}

// scan walks the top-level blocks once, tracking the current section. Blocks
// seen while no section is open are ignored. The in-progress section is owned
// by the scan and moved into the result when the next section opens, when a
// level 1/2 heading closes it, or when the document ends.
func scan[S any](doc document.Document, rules sectionRules[S]) ([]S, error) {
	var (
		out     []S
		current S
		state   = cursorInactive
	)

	flush := func() {
		if state == cursorInactive {
			return
		}
		if rules.keep == nil || rules.keep(current) {
			out = append(out, current)
		}
		var zero S
		current = zero
		state = cursorInactive
	}

	for _, node := range doc.Blocks {
		switch n := node.(type) {
		case *document.Heading:
			text := headingText(n)
			switch {
			case n.Level == 2 && rules.opens(text):
				flush()
				current = rules.start(text, false)
				state = cursorUntitled
			case n.Level <= 2:
				flush()
			case n.Level == 3 && rules.subsections && state != cursorInactive:
				flush()
				current = rules.start(text, true)
				state = cursorTitled
			}
		case *document.List:
			if state == cursorInactive || rules.list == nil {
				continue
			}
			if err := rules.list(&current, n); err != nil {
				return nil, err
			}
		case *document.Paragraph:
			if state == cursorInactive || rules.paragraph == nil {
				continue
			}
			if err := rules.paragraph(&current, n); err != nil {
				return nil, err
			}
		}
	}
	flush()

	return out, nil
}

func labelMatcher(labels ...string) func(string) bool {
	return func(heading string) bool {
		for _, label := range labels {
			if strings.EqualFold(heading, label) {
				return true
			}
		}
		return false
	}
}

// listAfterHeading returns the first list that follows a heading labelled
// label, at any level, before another heading starts.
func listAfterHeading(doc document.Document, label string) (*document.List, bool) {
	matches := labelMatcher(label)
	found := false
	for _, node := range doc.Blocks {
		switch n := node.(type) {
		case *document.Heading:
			if found {
				return nil, false
			}
			found = matches(headingText(n))
		case *document.List:
			if found {
				return n, true
			}
		}
	}
	return nil, false
}
