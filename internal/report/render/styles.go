package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Scheme is the pair of header fills used for one report section.
type Scheme struct {
	OrgFill    string
	HeaderFill string
}

var (
	RegularScheme = Scheme{OrgFill: "BDD7EE", HeaderFill: "D9E1F2"}
	SpecialScheme = Scheme{OrgFill: "C5E0B4", HeaderFill: "E2EFDA"}
)

const (
	zebraFill        = "F2F2F2"
	sectionTitleFill = "F4CCCC"
	resolvedFill     = "C6EFCE"
	unresolvedFill   = "FFC7CE"
	borderColor      = "000000"
)

type schemeStyles struct {
	org    int
	header int
}

type styles struct {
	regular      schemeStyles
	special      schemeStyles
	sectionTitle int
	cell         int
	cellZebra    int
	notes        int
	notesZebra   int
	resolved     int
	unresolved   int
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func newStyles(f *excelize.File) (*styles, error) {
	var (
		s   styles
		err error
	)

	mk := func(dst *int, st *excelize.Style) {
		if err != nil {
			return
		}
		*dst, err = f.NewStyle(st)
	}
	mkCond := func(dst *int, st *excelize.Style) {
		if err != nil {
			return
		}
		*dst, err = f.NewConditionalStyle(st)
	}

	bold := &excelize.Font{Bold: true}
	middle := &excelize.Alignment{Horizontal: "left", Vertical: "center"}
	wrapped := &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}

	for _, sc := range []struct {
		dst    *schemeStyles
		scheme Scheme
	}{
		{&s.regular, RegularScheme},
		{&s.special, SpecialScheme},
	} {
		mk(&sc.dst.org, &excelize.Style{Font: bold, Fill: solid(sc.scheme.OrgFill), Border: thinBorder()})
		mk(&sc.dst.header, &excelize.Style{Font: bold, Fill: solid(sc.scheme.HeaderFill), Border: thinBorder(), Alignment: middle})
	}
	mk(&s.sectionTitle, &excelize.Style{Font: bold, Fill: solid(sectionTitleFill), Border: thinBorder()})
	mk(&s.cell, &excelize.Style{Border: thinBorder(), Alignment: middle})
	mk(&s.cellZebra, &excelize.Style{Border: thinBorder(), Alignment: middle, Fill: solid(zebraFill)})
	mk(&s.notes, &excelize.Style{Border: thinBorder(), Alignment: wrapped})
	mk(&s.notesZebra, &excelize.Style{Border: thinBorder(), Alignment: wrapped, Fill: solid(zebraFill)})
	mkCond(&s.resolved, &excelize.Style{Fill: solid(resolvedFill)})
	mkCond(&s.unresolved, &excelize.Style{Fill: solid(unresolvedFill)})

	if err != nil {
		return nil, fmt.Errorf("create styles: %w", err)
	}
	return &s, nil
}

func (s *styles) scheme(special bool) schemeStyles {
	if special {
		return s.special
	}
	return s.regular
}
