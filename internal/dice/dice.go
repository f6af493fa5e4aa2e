// Package dice implements the d20 check engine: rolls, modifiers,
// advantage, difficulty classification, and preview odds.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// D20 is the die used for every stat check.
const D20 = 20

// Roller produces die rolls. The random source is injected so that
// callers (and tests) control determinism.
type Roller interface {
	// Die returns a uniform value in [1, sides].
	Die(sides int) int
}

type randRoller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller seeded with the given value. The same seed
// always produces the same roll sequence.
func NewRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Die(sides int) int {
	return r.rng.Intn(sides) + 1
}

// RandomSeed generates a seed using crypto/rand.
func RandomSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Modifier converts a stat value to a roll modifier. A stat of 2 gives
// +0; equipment can push the effective stat, and therefore the
// modifier, past the soft cap.
func Modifier(stat int) int {
	return stat - 2
}

// Result captures a single resolved stat check.
type Result struct {
	Stat       string
	StatValue  int
	DieRoll    int
	Modifier   int
	Total      int
	Difficulty int
	Success    bool
}

// Check rolls a d20 against a difficulty. A total equal to the
// difficulty succeeds.
func Check(r Roller, stat string, statValue, difficulty int) Result {
	roll := r.Die(D20)
	mod := Modifier(statValue)
	total := roll + mod
	return Result{
		Stat:       stat,
		StatValue:  statValue,
		DieRoll:    roll,
		Modifier:   mod,
		Total:      total,
		Difficulty: difficulty,
		Success:    total >= difficulty,
	}
}

// PassiveResult captures a passive check: an automatic success above
// the threshold, otherwise a roll with advantage.
type PassiveResult struct {
	StatValue int
	Threshold int
	Automatic bool
	Rolls     []int
	Best      int
	Modifier  int
	Total     int
	Success   bool
}

// PassiveCheck succeeds automatically, with no roll, when the stat
// value meets the threshold. Otherwise it rolls twice, keeps the
// higher die, and applies the normal modifier.
func PassiveCheck(r Roller, statValue, threshold int) PassiveResult {
	if statValue >= threshold {
		return PassiveResult{
			StatValue: statValue,
			Threshold: threshold,
			Automatic: true,
			Success:   true,
		}
	}
	first := r.Die(D20)
	second := r.Die(D20)
	best := first
	if second > best {
		best = second
	}
	mod := Modifier(statValue)
	total := best + mod
	return PassiveResult{
		StatValue: statValue,
		Threshold: threshold,
		Rolls:     []int{first, second},
		Best:      best,
		Modifier:  mod,
		Total:     total,
		Success:   total >= threshold,
	}
}

// Classify buckets a difficulty for display.
func Classify(difficulty int) string {
	switch {
	case difficulty <= 10:
		return "Easy"
	case difficulty <= 15:
		return "Medium"
	default:
		return "Hard"
	}
}

// SuccessChance estimates the percent chance of passing a check with
// the given modifier. Display only; the check itself never consults it.
func SuccessChance(modifier, difficulty int) int {
	minRoll := difficulty - modifier
	switch {
	case minRoll <= 1:
		return 95
	case minRoll > D20:
		return 0
	default:
		return (D20 + 1 - minRoll) * 100 / D20
	}
}
