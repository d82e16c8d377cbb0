package schoolpoints

import "fmt"

// Rules stores the season's point values for game outcomes.
type Rules struct {
	WinPoints       int
	LossPoints      int
	ConferenceBonus int
	Over50Bonus     int
	ShutoutBonus    int
	Ranked25Bonus   int
	Ranked10Bonus   int
	BlowoutMargin   int
}

func DefaultRules() Rules {
	return Rules{
		WinPoints:       1,
		LossPoints:      0,
		ConferenceBonus: 1,
		Over50Bonus:     1,
		ShutoutBonus:    1,
		Ranked25Bonus:   1,
		Ranked10Bonus:   1,
		BlowoutMargin:   50,
	}
}

func (r Rules) Validate() error {
	if r.BlowoutMargin <= 0 {
		return fmt.Errorf("blowout margin must be > 0")
	}
	if r.LossPoints > r.WinPoints {
		return fmt.Errorf("loss points (%d) cannot exceed win points (%d)", r.LossPoints, r.WinPoints)
	}
	return nil
}
