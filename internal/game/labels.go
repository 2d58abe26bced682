package game

import "sort"

// Label is a playstyle badge earned by one game's stat line. At most two
// labels survive per gametape, chosen by ascending priority.
type Label string

const (
	LabelTripleDouble Label = "Triple Double"
	LabelMicrowave    Label = "Microwave"
	LabelStopper      Label = "Stopper"
	LabelBruiser      Label = "Bruiser"
	LabelGlueGuy      Label = "Glue Guy"
	LabelFloorGeneral Label = "Floor General"
	LabelRimProtector Label = "Rim Protector"
	LabelSlasher      Label = "Slasher"
	LabelThreeAndD    Label = "3 and D"
)

// labelPriority ranks which labels win when more than two qualify.
// Lower is better.
var labelPriority = map[Label]int{
	LabelTripleDouble: 1,
	LabelMicrowave:    2,
	LabelStopper:      3,
	LabelBruiser:      4,
	LabelGlueGuy:      5,
	LabelFloorGeneral: 6,
	LabelRimProtector: 7,
	LabelSlasher:      8,
	LabelThreeAndD:    9,
}

// maxLabelsPerTape caps how many labels a single gametape carries.
const maxLabelsPerTape = 2

// DetectLabels evaluates every label threshold against one game, keeping
// the two highest-priority qualifiers. Hustle and advanced sub-stats are
// optional; checks fall back to box-score proxies when they are absent.
func DetectLabels(rec GameRecord, extras BoxScoreExtras) []Label {
	var qualified []Label

	if countDoubleDigitCategories(rec) >= 3 {
		qualified = append(qualified, LabelTripleDouble)
	}
	if rec.Min <= 24 && rec.Pts >= 15 && rec.Fga > 0 &&
		float64(rec.Fgm)/float64(rec.Fga) > 0.48 {
		qualified = append(qualified, LabelMicrowave)
	}
	if isStopper(rec, extras) {
		qualified = append(qualified, LabelStopper)
	}
	if isBruiser(rec, extras) {
		qualified = append(qualified, LabelBruiser)
	}
	if rec.PlusMinus > 10 && rec.Ast >= 3 && rec.Pts <= 15 {
		qualified = append(qualified, LabelGlueGuy)
	}
	if rec.Ast >= 6 && assistTurnoverRatio(rec, extras) > 3.0 {
		qualified = append(qualified, LabelFloorGeneral)
	}
	if rec.Blk >= 2 && rec.DReb >= 8 {
		qualified = append(qualified, LabelRimProtector)
	}
	if rec.Fga > 0 && rec.Fta >= 6 && rec.Fg3a <= 3 &&
		float64(rec.Fta)/float64(rec.Fga) > 0.35 {
		qualified = append(qualified, LabelSlasher)
	}
	if isThreeAndD(rec, extras) {
		qualified = append(qualified, LabelThreeAndD)
	}

	sort.Slice(qualified, func(i, j int) bool {
		return labelPriority[qualified[i]] < labelPriority[qualified[j]]
	})
	if len(qualified) > maxLabelsPerTape {
		qualified = qualified[:maxLabelsPerTape]
	}
	return qualified
}

func countDoubleDigitCategories(rec GameRecord) int {
	n := 0
	for _, v := range []int{rec.Pts, rec.Reb, rec.Ast, rec.Stl, rec.Blk} {
		if v >= 10 {
			n++
		}
	}
	return n
}

func isStopper(rec GameRecord, extras BoxScoreExtras) bool {
	if extras.Deflections > 0 || extras.ChargesDrawn > 0 {
		return extras.Deflections >= 2 && extras.ChargesDrawn >= 1
	}
	return rec.Stl >= 2 && rec.Pf >= 4
}

func isBruiser(rec GameRecord, extras BoxScoreExtras) bool {
	if extras.ScreenAssists > 0 {
		return extras.ScreenAssists >= 4
	}
	return rec.OReb >= 3 && rec.Pf >= 4
}

func assistTurnoverRatio(rec GameRecord, extras BoxScoreExtras) float64 {
	if extras.AstToRatio > 0 {
		return extras.AstToRatio
	}
	if rec.Tov > 0 {
		return float64(rec.Ast) / float64(rec.Tov)
	}
	// A zero-turnover game: the assist count itself is the ratio.
	return float64(rec.Ast)
}

func isThreeAndD(rec GameRecord, extras BoxScoreExtras) bool {
	if rec.Fg3m < 2 || extras.PctAssisted3PM <= 0.75 {
		return false
	}
	usage := extras.UsagePct
	if usage == 0 {
		usage = 20
	} else if usage <= 1 {
		// Some sources report usage as a fraction of possessions.
		usage *= 100
	}
	return usage < 18
}

// ApplyLabelMoveBonuses adjusts the move histogram before deck build:
// "3 and D" shooters erase up to two misses, a "Glue Guy" brings four
// extra weak attacks. Stopper acts on the opponent's pool instead and is
// applied when the battle starts, not here.
func ApplyLabelMoveBonuses(m MoveSet, labels []Label) MoveSet {
	for _, l := range labels {
		switch l {
		case LabelThreeAndD:
			m[MoveMiss] = max(0, m[MoveMiss]-2)
		case LabelGlueGuy:
			m[MoveWeakAttack] += 4
		}
	}
	return m
}

// HasLabelIn reports whether the label appears in the slice.
func HasLabelIn(labels []Label, want Label) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}
