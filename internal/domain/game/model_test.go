package game

import "testing"

func intPtr(v int) *int { return &v }

func TestGameOutcome(t *testing.T) {
	g := Game{
		HomeSchoolID: "georgia",
		AwaySchoolID: "auburn",
		HomeScore:    intPtr(17),
		AwayScore:    intPtr(24),
		Status:       StatusFinal,
	}

	result, ok := g.Outcome()
	if !ok {
		t.Fatalf("expected final game outcome")
	}
	if result.WinnerID != "auburn" || result.LoserID != "georgia" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Margin() != 7 {
		t.Fatalf("unexpected margin: %d", result.Margin())
	}
}

func TestGameOutcome_NotFinal(t *testing.T) {
	tests := []Game{
		{Status: StatusInProgress, HomeScore: intPtr(7), AwayScore: intPtr(3)},
		{Status: StatusFinal, HomeScore: intPtr(7)},
		{Status: StatusScheduled},
	}
	for _, g := range tests {
		if _, ok := g.Outcome(); ok {
			t.Fatalf("expected no outcome for %+v", g)
		}
	}
}

func TestParsePlayoffRound(t *testing.T) {
	if got, err := ParsePlayoffRound(" Quarterfinal "); err != nil || got != RoundQuarterfinal {
		t.Fatalf("unexpected parse result: got=%q err=%v", got, err)
	}
	if got, err := ParsePlayoffRound(""); err != nil || got != RoundNone {
		t.Fatalf("expected empty round, got=%q err=%v", got, err)
	}
	if _, err := ParsePlayoffRound("wildcard"); err == nil {
		t.Fatalf("expected error for unknown round")
	}
}
