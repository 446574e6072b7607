package osuapi

import "fmt"

// Mode is an osu! gamemode
type Mode int

const (
	ModeStandard Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

var modeNames = map[Mode]string{
	ModeStandard: "standard",
	ModeTaiko:    "taiko",
	ModeCatch:    "ctb",
	ModeMania:    "mania",
}

func (m Mode) String() string { return enumString("Mode", int(m), modeNames[m]) }

// ParseMode accepts a mode name or its number
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "0", "osu", "std", "standard":
		return ModeStandard, nil
	case "1", "taiko":
		return ModeTaiko, nil
	case "2", "ctb", "catch", "fruits":
		return ModeCatch, nil
	case "3", "mania":
		return ModeMania, nil
	}
	return ModeStandard, fmt.Errorf("unknown mode %q", s)
}

// Approval is the stage of a beatmap in the ranking process
type Approval int

const (
	ApprovalGraveyard Approval = -2
	ApprovalWIP       Approval = -1
	ApprovalPending   Approval = 0
	ApprovalRanked    Approval = 1
	ApprovalApproved  Approval = 2
	ApprovalQualified Approval = 3
	ApprovalLoved     Approval = 4
)

var approvalNames = map[Approval]string{
	ApprovalGraveyard: "graveyard",
	ApprovalWIP:       "wip",
	ApprovalPending:   "pending",
	ApprovalRanked:    "ranked",
	ApprovalApproved:  "approved",
	ApprovalQualified: "qualified",
	ApprovalLoved:     "loved",
}

func (a Approval) String() string { return enumString("Approval", int(a), approvalNames[a]) }

// Genre of a beatmap's song. 8 is not used by the api.
type Genre int

const (
	GenreAny Genre = iota
	GenreUnspecified
	GenreVideoGame
	GenreAnime
	GenreRock
	GenrePop
	GenreOther
	GenreNovelty
	_
	GenreHipHop
	GenreElectronic
	GenreMetal
	GenreClassical
	GenreFolk
	GenreJazz
)

var genreNames = map[Genre]string{
	GenreAny:         "any",
	GenreUnspecified: "unspecified",
	GenreVideoGame:   "video game",
	GenreAnime:       "anime",
	GenreRock:        "rock",
	GenrePop:         "pop",
	GenreOther:       "other",
	GenreNovelty:     "novelty",
	GenreHipHop:      "hip hop",
	GenreElectronic:  "electronic",
	GenreMetal:       "metal",
	GenreClassical:   "classical",
	GenreFolk:        "folk",
	GenreJazz:        "jazz",
}

func (g Genre) String() string { return enumString("Genre", int(g), genreNames[g]) }

// Language of a beatmap's song
type Language int

const (
	LanguageAny Language = iota
	LanguageUnspecified
	LanguageEnglish
	LanguageJapanese
	LanguageChinese
	LanguageInstrumental
	LanguageKorean
	LanguageFrench
	LanguageGerman
	LanguageSwedish
	LanguageSpanish
	LanguageItalian
	LanguageRussian
	LanguagePolish
	LanguageOther
)

var languageNames = map[Language]string{
	LanguageAny:          "any",
	LanguageUnspecified:  "unspecified",
	LanguageEnglish:      "english",
	LanguageJapanese:     "japanese",
	LanguageChinese:      "chinese",
	LanguageInstrumental: "instrumental",
	LanguageKorean:       "korean",
	LanguageFrench:       "french",
	LanguageGerman:       "german",
	LanguageSwedish:      "swedish",
	LanguageSpanish:      "spanish",
	LanguageItalian:      "italian",
	LanguageRussian:      "russian",
	LanguagePolish:       "polish",
	LanguageOther:        "other",
}

func (l Language) String() string { return enumString("Language", int(l), languageNames[l]) }

// Team a player was on in a multiplayer game
type Team int

const (
	TeamNone Team = iota
	TeamBlue
	TeamRed
)

var teamNames = map[Team]string{
	TeamNone: "none",
	TeamBlue: "blue",
	TeamRed:  "red",
}

func (t Team) String() string { return enumString("Team", int(t), teamNames[t]) }

// TeamType is how players were grouped in a multiplayer game
type TeamType int

const (
	TeamTypeHeadToHead TeamType = iota
	TeamTypeTagCoop
	TeamTypeTeamVs
	TeamTypeTagTeamVs
)

var teamTypeNames = map[TeamType]string{
	TeamTypeHeadToHead: "head to head",
	TeamTypeTagCoop:    "tag co-op",
	TeamTypeTeamVs:     "team vs",
	TeamTypeTagTeamVs:  "tag team vs",
}

func (t TeamType) String() string { return enumString("TeamType", int(t), teamTypeNames[t]) }

// WinCondition is how a multiplayer game was scored
type WinCondition int

const (
	WinConditionScore WinCondition = iota
	WinConditionAccuracy
	WinConditionCombo
	WinConditionScoreV2
)

var winConditionNames = map[WinCondition]string{
	WinConditionScore:    "score",
	WinConditionAccuracy: "accuracy",
	WinConditionCombo:    "combo",
	WinConditionScoreV2:  "scorev2",
}

func (w WinCondition) String() string {
	return enumString("WinCondition", int(w), winConditionNames[w])
}

func enumString(typ string, v int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s(%d)", typ, v)
	}
	return name
}
