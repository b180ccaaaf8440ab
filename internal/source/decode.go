// Package source parses the packet source document and wraps fetchers with
// retry.
package source

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bft-labs/i2p/internal/domain"
)

// MaxDocumentSize bounds how much of a source document is read (10MB).
const MaxDocumentSize = 10 << 20

var errMissingField = errors.New("missing required field")

// rawPacket uses pointers so absent fields can be told apart from empty ones.
type rawPacket struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type rawDocument struct {
	ServerBound *[]rawPacket `json:"serverBound"`
	ClientBound *[]rawPacket `json:"clientBound"`
}

// Decode parses a source document. Unknown fields are ignored; both packet
// arrays and every id/name must be present. Errors wrap *domain.ParseError.
func Decode(data []byte) (domain.SourceDocument, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.SourceDocument{}, &domain.ParseError{Path: typeErr.Field, Err: err}
		}
		return domain.SourceDocument{}, &domain.ParseError{Err: err}
	}

	server, err := convert("serverBound", raw.ServerBound)
	if err != nil {
		return domain.SourceDocument{}, err
	}
	client, err := convert("clientBound", raw.ClientBound)
	if err != nil {
		return domain.SourceDocument{}, err
	}
	return domain.SourceDocument{ServerBound: server, ClientBound: client}, nil
}

func convert(key string, list *[]rawPacket) ([]domain.Packet, error) {
	if list == nil {
		return nil, &domain.ParseError{Path: key, Err: errMissingField}
	}
	packets := make([]domain.Packet, 0, len(*list))
	for i, p := range *list {
		if p.ID == nil {
			return nil, &domain.ParseError{Path: fmt.Sprintf("%s[%d].id", key, i), Err: errMissingField}
		}
		if p.Name == nil {
			return nil, &domain.ParseError{Path: fmt.Sprintf("%s[%d].name", key, i), Err: errMissingField}
		}
		packets = append(packets, domain.Packet{ID: *p.ID, Name: *p.Name})
	}
	return packets, nil
}
