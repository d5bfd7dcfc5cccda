package model

import "github.com/rotisserie/eris"

// Round identifies a tournament round. The numeric values are what the
// classifier was trained on, so the label mapping below must stay a total
// bijection over the seven legal rounds.
type Round int

const (
	RoundPlayIn Round = iota
	RoundFirst
	RoundSecond
	RoundSweetSixteen
	RoundEliteEight
	RoundFinalFour
	RoundChampionship
)

var roundLabels = [...]string{
	RoundPlayIn:       "Play-In",
	RoundFirst:        "First Round",
	RoundSecond:       "Second Round",
	RoundSweetSixteen: "Sweet Sixteen",
	RoundEliteEight:   "Elite Eight",
	RoundFinalFour:    "Final Four",
	RoundChampionship: "National Championship",
}

var labelToRound = func() map[string]Round {
	m := make(map[string]Round, len(roundLabels))
	for r, label := range roundLabels {
		m[label] = Round(r)
	}
	return m
}()

// Valid reports whether r is one of the seven legal rounds.
func (r Round) Valid() bool {
	return r >= RoundPlayIn && r <= RoundChampionship
}

// Label returns the display string for the round.
func (r Round) Label() string {
	if !r.Valid() {
		return "Unknown"
	}
	return roundLabels[r]
}

// Next returns the following round, or false when r is the championship.
func (r Round) Next() (Round, bool) {
	if r >= RoundChampionship {
		return r, false
	}
	return r + 1, true
}

// RoundFromLabel maps a display string back to its round. Labels outside the
// fixed set are an error, never a default.
func RoundFromLabel(label string) (Round, error) {
	r, ok := labelToRound[label]
	if !ok {
		return 0, eris.Errorf("model: unknown round label %q", label)
	}
	return r, nil
}

// AllRounds lists the rounds in play order.
func AllRounds() []Round {
	rs := make([]Round, 0, len(roundLabels))
	for r := range roundLabels {
		rs = append(rs, Round(r))
	}
	return rs
}
