package osuapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Mods is the bitwise mod combination the api reports for scores, games and difficulty lookups
type Mods uint32

const (
	NoMod       Mods = 0
	NoFail      Mods = 1 << 0
	Easy        Mods = 1 << 1
	TouchDevice Mods = 1 << 2
	Hidden      Mods = 1 << 3
	HardRock    Mods = 1 << 4
	SuddenDeath Mods = 1 << 5
	DoubleTime  Mods = 1 << 6
	Relax       Mods = 1 << 7
	HalfTime    Mods = 1 << 8
	Nightcore   Mods = 1 << 9 // only set along with DoubleTime, i.e. NC alone is 576
	Flashlight  Mods = 1 << 10
	Autoplay    Mods = 1 << 11
	SpunOut     Mods = 1 << 12
	Autopilot   Mods = 1 << 13
	Perfect     Mods = 1 << 14 // only set along with SuddenDeath, i.e. PF alone is 16416
	Key4        Mods = 1 << 15
	Key5        Mods = 1 << 16
	Key6        Mods = 1 << 17
	Key7        Mods = 1 << 18
	Key8        Mods = 1 << 19
	FadeIn      Mods = 1 << 20
	Random      Mods = 1 << 21
	Cinema      Mods = 1 << 22
	Target      Mods = 1 << 23
	Key9        Mods = 1 << 24
	KeyCoop     Mods = 1 << 25
	Key1        Mods = 1 << 26
	Key3        Mods = 1 << 27
	Key2        Mods = 1 << 28
	ScoreV2     Mods = 1 << 29
	Mirror      Mods = 1 << 30
)

type modName struct {
	mod  Mods
	name string
}

// Print order, scorepost style
var modOrder = []modName{
	{Easy, "EZ"},
	{Hidden, "HD"},
	{DoubleTime, "DT"},
	{Nightcore, "NC"},
	{HalfTime, "HT"},
	{HardRock, "HR"},
	{Flashlight, "FL"},
	{SuddenDeath, "SD"},
	{Perfect, "PF"},
	{NoFail, "NF"},
	{SpunOut, "SO"},
	{TouchDevice, "TD"},
	{Relax, "RX"},
	{Autopilot, "AP"},
	{Autoplay, "AT"},
	{Cinema, "CN"},
	{FadeIn, "FI"},
	{Random, "RD"},
	{Target, "TP"},
	{Key1, "1K"},
	{Key2, "2K"},
	{Key3, "3K"},
	{Key4, "4K"},
	{Key5, "5K"},
	{Key6, "6K"},
	{Key7, "7K"},
	{Key8, "8K"},
	{Key9, "9K"},
	{KeyCoop, "CP"},
	{ScoreV2, "V2"},
	{Mirror, "MR"},
}

// Has reports whether every mod in m is enabled
func (mods Mods) Has(m Mods) bool {
	return mods&m == m
}

// List returns the enabled mods' acronyms. DT is hidden behind NC and SD behind PF.
func (mods Mods) List() []string {
	names := make([]string, 0, 4)
	for _, m := range modOrder {
		if !mods.Has(m.mod) {
			continue
		}
		if m.mod == DoubleTime && mods.Has(Nightcore) {
			continue
		}
		if m.mod == SuddenDeath && mods.Has(Perfect) {
			continue
		}
		names = append(names, m.name)
	}
	return names
}

func (mods Mods) String() string {
	if mods == NoMod {
		return "NM"
	}
	return strings.Join(mods.List(), "")
}

// ParseMods turns a string like "HDDTHR", "hd+dt" or "HD, HR" into a mod combination
func ParseMods(s string) (Mods, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '+', ',', '|', '-':
			return -1
		}
		return r
	}, strings.ToUpper(s))

	if len(clean)%2 != 0 {
		return NoMod, fmt.Errorf("%w: %q", ErrInvalidMods, s)
	}

	var mods Mods
	for i := 0; i < len(clean); i += 2 {
		acronym := clean[i : i+2]
		if acronym == "NM" {
			continue
		}
		m, ok := lookupMod(acronym)
		if !ok {
			return NoMod, fmt.Errorf("%w: unknown mod %q in %q", ErrInvalidMods, acronym, s)
		}
		mods |= m
	}

	if mods.Has(Nightcore) {
		mods |= DoubleTime
	}
	if mods.Has(Perfect) {
		mods |= SuddenDeath
	}
	return mods, nil
}

func lookupMod(acronym string) (Mods, bool) {
	for _, m := range modOrder {
		if m.name == acronym {
			return m.mod, true
		}
	}
	return NoMod, false
}

// UnmarshalJSON accepts the v1 api's quoted integers as well as plain numbers
func (mods *Mods) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*mods = NoMod
		return nil
	}

	v, err := strconv.ParseUint(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("mods %s: %w", data, err)
	}
	*mods = Mods(v)
	return nil
}

// MarshalJSON writes the combination as its integer value
func (mods Mods) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint32(mods))
}
