// Package marking implements the rubric checklist: the paired
// positive/negative checkbox state machine and the score and pass band
// derived from it.
package marking

import (
	"errors"
	"fmt"
)

// TopCriteria is how many leading positive criteria are worth double.
const TopCriteria = 3

// Section identifies one of the three rubric domains.
type Section string

const (
	ClinicalManagement Section = "clinicalManagement"
	RelatingToOthers   Section = "relatingToOthers"
	DataGathering      Section = "dataGathering"
)

// Sections lists the rubric domains in page order.
var Sections = []Section{ClinicalManagement, RelatingToOthers, DataGathering}

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown marking section %q", s)
}

type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

func ParsePolarity(s string) (Polarity, error) {
	switch Polarity(s) {
	case Positive, Negative:
		return Polarity(s), nil
	}
	return "", fmt.Errorf("unknown polarity %q", s)
}

// Band is the pass band for a percentage score.
type Band struct {
	Label string
	Class string
}

var (
	ClearFail      = Band{Label: "Clear Fail", Class: "clear-fail"}
	BorderlineFail = Band{Label: "Borderline Fail", Class: "borderline-fail"}
	BorderlinePass = Band{Label: "Borderline Pass", Class: "borderline-pass"}
	ClearPass      = Band{Label: "Clear Pass", Class: "clear-pass"}
	// StartMarking is the band shown before any interaction.
	StartMarking = Band{Label: "Start marking", Class: "start-marking"}
)

// BandClasses are all classes a result element may carry.
var BandClasses = []string{ClearPass.Class, BorderlinePass.Class, BorderlineFail.Class, ClearFail.Class, StartMarking.Class}

// BandFor maps a percentage to its band.
func BandFor(percentage float64) Band {
	switch {
	case percentage <= 25:
		return ClearFail
	case percentage <= 50:
		return BorderlineFail
	case percentage <= 75:
		return BorderlinePass
	default:
		return ClearPass
	}
}

var ErrIndexOutOfRange = errors.New("criterion index out of range")

// Sheet is the checkbox state of one section. Indexes are checklist
// positions, zero based.
type Sheet struct {
	positive []bool
	negative []bool
}

// NewSheet returns an unmarked sheet.
func NewSheet(positiveCount, negativeCount int) *Sheet {
	return &Sheet{
		positive: make([]bool, max(positiveCount, 0)),
		negative: make([]bool, max(negativeCount, 0)),
	}
}

// SheetFromState restores a sheet from submitted checkbox values.
func SheetFromState(positive, negative []bool) *Sheet {
	s := NewSheet(len(positive), len(negative))
	copy(s.positive, positive)
	copy(s.negative, negative)
	return s
}

// Toggle records that the checkbox at index was set to checked and forces
// its sibling at the same index to the opposite state. There is no way back
// to "neither" once a pair has been touched.
func (s *Sheet) Toggle(p Polarity, index int, checked bool) error {
	own, sibling := s.positive, s.negative
	if p == Negative {
		own, sibling = s.negative, s.positive
	}
	if index < 0 || index >= len(own) {
		return fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, p, index, len(own))
	}
	own[index] = checked
	if index < len(sibling) {
		sibling[index] = !checked
	}
	return nil
}

func (s *Sheet) Positive() []bool { return append([]bool(nil), s.positive...) }
func (s *Sheet) Negative() []bool { return append([]bool(nil), s.negative...) }

// Score awards 2 for each checked positive among the first TopCriteria
// positions and 1 for every later one.
func (s *Sheet) Score() int {
	score := 0
	for i, checked := range s.positive {
		if !checked {
			continue
		}
		if i < TopCriteria {
			score += 2
		} else {
			score++
		}
	}
	return score
}

// MaxScore is the rubric maximum: the top criteria always count as a full
// set of double-weighted items and the rest add one each. An empty sheet has
// no maximum.
func (s *Sheet) MaxScore() int {
	n := len(s.positive)
	if n == 0 {
		return 0
	}
	return 2*TopCriteria + max(n-TopCriteria, 0)
}

// Percentage of MaxScore achieved. An empty sheet scores 0.
func (s *Sheet) Percentage() float64 {
	maxScore := s.MaxScore()
	if maxScore == 0 {
		return 0
	}
	return float64(s.Score()) / float64(maxScore) * 100
}

func (s *Sheet) Band() Band {
	return BandFor(s.Percentage())
}
