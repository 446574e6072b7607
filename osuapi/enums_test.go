package osuapi

import (
	"encoding/json"
	"testing"
)

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{ModeCatch.String(), "ctb"},
		{ApprovalLoved.String(), "loved"},
		{ApprovalGraveyard.String(), "graveyard"},
		{GenreHipHop.String(), "hip hop"},
		{Genre(8).String(), "Genre(8)"},
		{LanguagePolish.String(), "polish"},
		{TeamRed.String(), "red"},
		{TeamTypeTagCoop.String(), "tag co-op"},
		{WinConditionAccuracy.String(), "accuracy"},
		{Mode(9).String(), "Mode(9)"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":       ModeStandard,
		"osu":    ModeStandard,
		"1":      ModeTaiko,
		"fruits": ModeCatch,
		"mania":  ModeMania,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("4"); err == nil {
		t.Errorf("ParseMode(4) should fail")
	}
}

func TestEnumsDecodeFromQuotedNumbers(t *testing.T) {
	var v struct {
		Approval Approval `json:"approved,string"`
		Genre    Genre    `json:"genre_id,string"`
	}
	if err := json.Unmarshal([]byte(`{"approved":"-1","genre_id":"10"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Approval != ApprovalWIP || v.Genre != GenreElectronic {
		t.Fatalf("unexpected enums: %+v", v)
	}
}
