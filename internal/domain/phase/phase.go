package phase

import "github.com/mkjeldsen/matchchain/internal/domain/event"

// Play-phase labels attached to shots from annotation qualifiers.
const (
	LabelPenalty        = "Penalty"
	LabelRegularPlay    = "Regular play"
	LabelFastBreak      = "Fast break"
	LabelSetPiece       = "Set piece"
	LabelCorner         = "Corner"
	LabelFreekick       = "Freekick"
	LabelCornerSit      = "Corner situation"
	LabelDirectFreekick = "Direct freekick"
	LabelThrowIn        = "Throw in"
	LabelIndividualPlay = "Individual play"
)

type rule struct {
	qualifier int
	label     string
}

// Specific situations are checked first, in a fixed order, so a penalty
// always wins over any open-play qualifier present on the same shot.
var specific = []rule{
	{9, LabelPenalty},
	{25, LabelCorner},
	{96, LabelCornerSit},
	{97, LabelDirectFreekick},
	{26, LabelFreekick},
	{24, LabelSetPiece},
	{160, LabelThrowIn},
	{23, LabelFastBreak},
}

const (
	qualifierRegularPlay    = 22
	qualifierIndividualPlay = 215
)

// Classify maps a shot's annotation qualifier set to exactly one play-phase
// label. Total: every input, including the empty set, yields a label.
func Classify(qs event.QualifierSet) string {
	for _, r := range specific {
		if qs.Has(r.qualifier) {
			return r.label
		}
	}
	if qs.Has(qualifierRegularPlay) {
		return LabelRegularPlay
	}
	if qs.Has(qualifierIndividualPlay) {
		return LabelIndividualPlay
	}
	return LabelRegularPlay
}
