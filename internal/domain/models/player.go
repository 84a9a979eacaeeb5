package models

const UnknownValue = "unknown"

type PlayerName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type PlayerAffiliation struct {
	Army string `json:"army"`
	Team string `json:"team"`
}

// RosterEntry is one row of an event page player table. Index is the row
// position the name and title were read from.
type RosterEntry struct {
	Index int
	PlayerName
	PlayerAffiliation
}

type NicknameLookup struct {
	Found    bool
	Nickname string
}

// ScrapedPlayer is the output record of the page scrape flow.
type ScrapedPlayer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Army      string `json:"army"`
	Team      string `json:"team"`
	Nickname  string `json:"nickname"`
}

func NewScrapedPlayer(entry RosterEntry, lookup NicknameLookup) ScrapedPlayer {
	nickname := UnknownValue
	if lookup.Found && lookup.Nickname != "" {
		nickname = lookup.Nickname
	}

	return ScrapedPlayer{
		FirstName: entry.FirstName,
		LastName:  entry.LastName,
		Army:      entry.Army,
		Team:      entry.Team,
		Nickname:  nickname,
	}
}
