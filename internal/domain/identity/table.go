package identity

const UnknownPlayerName = "Unknown"

// Table resolves team and player ids to display names and sides. The three
// source documents do not agree on id formats (the roster prefixes ids with
// a type letter, the event and annotation feeds sometimes do not), so every
// prefixed id is also registered under its bare numeric alias.
type Table struct {
	teamNames   map[string]string
	teamSides   map[string]string
	playerNames map[string]string
}

func NewTable() *Table {
	return &Table{
		teamNames:   make(map[string]string),
		teamSides:   make(map[string]string),
		playerNames: make(map[string]string),
	}
}

func (t *Table) AddTeam(id, name string) {
	if id == "" || name == "" {
		return
	}
	t.teamNames[id] = name
	if alias, ok := bareAlias(id); ok {
		t.teamNames[alias] = name
	}
}

func (t *Table) AddTeamSide(ref, side string) {
	if ref == "" || side == "" {
		return
	}
	t.teamSides[ref] = side
	if alias, ok := bareAlias(ref); ok {
		t.teamSides[alias] = side
	}
}

func (t *Table) AddPlayer(id, name string) {
	if id == "" {
		return
	}
	if name == "" {
		name = UnknownPlayerName
	}
	t.playerNames[id] = name
	if alias, ok := bareAlias(id); ok {
		t.playerNames[alias] = name
	}
}

// TeamName resolves a team id, falling back to the raw id when unknown.
func (t *Table) TeamName(id string) string {
	if name, ok := t.teamNames[id]; ok {
		return name
	}
	return id
}

// TeamSide returns "Home", "Away" or "" when the side was never declared.
func (t *Table) TeamSide(id string) string {
	return t.teamSides[id]
}

// PlayerName resolves a player id, falling back to the raw id, then to
// "Unknown" for an empty id.
func (t *Table) PlayerName(id string) string {
	if name, ok := t.playerNames[id]; ok {
		return name
	}
	if id == "" {
		return UnknownPlayerName
	}
	return id
}

func (t *Table) TeamCount() int {
	return len(t.teamNames)
}

func (t *Table) PlayerCount() int {
	return len(t.playerNames)
}

// bareAlias strips a single leading prefix letter ("t123" -> "123") when the
// remainder is all digits.
func bareAlias(id string) (string, bool) {
	if len(id) < 2 {
		return "", false
	}
	c := id[0]
	if c >= '0' && c <= '9' {
		return "", false
	}
	rest := id[1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return "", false
		}
	}
	return rest, true
}
