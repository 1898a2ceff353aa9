package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "m0convert",
		Category:    "graph",
		Version:     "v1",
		Description: "Serialized target graph written by a conversion run",
		Factory:     func() any { return &GraphPayload{} },
	})
	if err != nil {
		panic("failed to register GraphPayload: " + err.Error())
	}
}

// GraphType is the message type for published graphs.
var GraphType = message.Type{Domain: "m0convert", Category: "graph", Version: "v1"}

// GraphPayload carries one serialized output graph.
type GraphPayload struct {
	Graph       string    `json:"graph"`
	Format      string    `json:"format"`
	MIMEType    string    `json:"mime_type"`
	Triples     int       `json:"triples"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

func (g *GraphPayload) Schema() message.Type { return GraphType }

func (g *GraphPayload) Validate() error {
	if g.Graph == "" {
		return errors.New("graph name is required")
	}
	if g.Format == "" {
		return errors.New("format is required")
	}
	return nil
}

func (g *GraphPayload) MarshalJSON() ([]byte, error) {
	type Alias GraphPayload
	return json.Marshal((*Alias)(g))
}

func (g *GraphPayload) UnmarshalJSON(data []byte) error {
	type Alias GraphPayload
	return json.Unmarshal(data, (*Alias)(g))
}
