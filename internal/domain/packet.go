package domain

// Packet is a single record from the source document.
type Packet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SourceDocument is the parsed remote payload.
type SourceDocument struct {
	ServerBound []Packet `json:"serverBound"`
	ClientBound []Packet `json:"clientBound"`
}

// Packets returns the packet list for dir.
func (d SourceDocument) Packets(dir Direction) []Packet {
	switch dir {
	case ServerBound:
		return d.ServerBound
	case ClientBound:
		return d.ClientBound
	default:
		return nil
	}
}

// Entry is one registered id -> name mapping.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Listing is the full ordered catalog, one sequence per direction.
type Listing struct {
	ServerBound []Entry `json:"serverBound"`
	ClientBound []Entry `json:"clientBound"`
}

// Entries returns the sequence for dir.
func (l Listing) Entries(dir Direction) []Entry {
	switch dir {
	case ServerBound:
		return l.ServerBound
	case ClientBound:
		return l.ClientBound
	default:
		return nil
	}
}

// Result is a successful single-packet lookup.
type Result struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Direction Direction `json:"-"`
}
