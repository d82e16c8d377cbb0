package schoolpoints

// WeeklyPoints is the league-agnostic points ledger row for one school in one
// week. Rows are always written whole.
type WeeklyPoints struct {
	SchoolID        string
	SeasonID        string
	Week            int
	BasePoints      int
	ConferenceBonus int
	Over50Bonus     int
	ShutoutBonus    int
	Ranked25Bonus   int
	Ranked10Bonus   int
	TotalPoints     int
	SourceGameID    string
}

func (p WeeklyPoints) componentSum() int {
	return p.BasePoints + p.ConferenceBonus + p.Over50Bonus + p.ShutoutBonus + p.Ranked25Bonus + p.Ranked10Bonus
}

// Key identifies the ledger row.
type Key struct {
	SchoolID string
	SeasonID string
	Week     int
}

func (p WeeklyPoints) Key() Key {
	return Key{SchoolID: p.SchoolID, SeasonID: p.SeasonID, Week: p.Week}
}

// add folds another game's components into the row for the same week.
func (p *WeeklyPoints) add(o WeeklyPoints) {
	p.BasePoints += o.BasePoints
	p.ConferenceBonus += o.ConferenceBonus
	p.Over50Bonus += o.Over50Bonus
	p.ShutoutBonus += o.ShutoutBonus
	p.Ranked25Bonus += o.Ranked25Bonus
	p.Ranked10Bonus += o.Ranked10Bonus
	p.TotalPoints = p.componentSum()
}
