package lens

import (
	"encoding/json"
	"fmt"

	"github.com/lensdb/lensdb/internal/jtd"
	"github.com/lensdb/lensdb/internal/value"
)

// wireAddRemove is the on-disk shape of an add/remove lens: a JTD
// sub-schema plus the default value newly-present (add) or
// newly-absent (remove) records should carry.
type wireAddRemove struct {
	Name    string      `json:"name"`
	Type    *jtd.Schema `json:"type"`
	Default value.Value `json:"default"`
}

type wireRename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type wireExtractEmbed struct {
	Host string `json:"host"`
	Name string `json:"name"`
}

type wireWrapHead struct {
	Name string `json:"name"`
}

type wireIn struct {
	Name string `json:"name"`
	Ops  []Lens `json:"ops"`
}

type wireMap struct {
	Ops []Lens `json:"ops"`
}

type wireConvert struct {
	Name     string                 `json:"name"`
	FromType *jtd.Schema            `json:"from_type"`
	ToType   *jtd.Schema            `json:"to_type"`
	Forward  map[string]value.Value `json:"forward"`
	Reverse  map[string]value.Value `json:"reverse"`
}

// MarshalJSON encodes l tagged by a single lowercase key naming its
// kind, matching the migration file format's lens shape.
func (l Lens) MarshalJSON() ([]byte, error) {
	var payload any
	switch l.kind {
	case KindAdd, KindRemove:
		payload = wireAddRemove{Name: l.addRemove.Name, Type: l.addRemove.Type, Default: l.addRemove.Default}
	case KindRename:
		payload = wireRename{From: l.rename.From, To: l.rename.To}
	case KindExtract, KindEmbed:
		payload = wireExtractEmbed{Host: l.extractEmbed.Host, Name: l.extractEmbed.Name}
	case KindHead, KindWrap:
		payload = wireWrapHead{Name: l.wrapHead.Name}
	case KindIn:
		payload = wireIn{Name: l.in.Name, Ops: l.in.Ops}
	case KindMap:
		payload = wireMap{Ops: l.mapOp.Ops}
	case KindConvert:
		forward, err := mapToWire(l.convert.Forward)
		if err != nil {
			return nil, fmt.Errorf("lens: convert: forward: %w", err)
		}
		reverse, err := mapToWire(l.convert.Reverse)
		if err != nil {
			return nil, fmt.Errorf("lens: convert: reverse: %w", err)
		}
		payload = wireConvert{
			Name:     l.convert.Name,
			FromType: l.convert.FromType,
			ToType:   l.convert.ToType,
			Forward:  forward,
			Reverse:  reverse,
		}
	default:
		return nil, fmt.Errorf("lens: cannot marshal unknown kind")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{l.kind.String(): body})
}

// UnmarshalJSON decodes a single-key tagged lens object back into l.
func (l *Lens) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("lens: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("lens: expected exactly one tag key, got %d", len(tagged))
	}

	for tag, body := range tagged {
		switch tag {
		case "add", "remove":
			var w wireAddRemove
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("lens: %s: %w", tag, err)
			}
			if typ, ok := w.Type.Type(); ok {
				if err := typ.Validate(w.Default); err != nil {
					return fmt.Errorf("lens: %s %q: default fails type validation: %w", tag, w.Name, err)
				}
			}
			p := AddRemove{Name: w.Name, Type: w.Type, Default: w.Default}
			if tag == "add" {
				*l = Add(p)
			} else {
				*l = Remove(p)
			}
		case "rename":
			var w wireRename
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("lens: rename: %w", err)
			}
			*l = RenameOp(w.From, w.To)
		case "extract", "embed":
			var w wireExtractEmbed
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("lens: %s: %w", tag, err)
			}
			if tag == "extract" {
				*l = Extract(w.Host, w.Name)
			} else {
				*l = Embed(w.Host, w.Name)
			}
		case "head", "wrap":
			var w wireWrapHead
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("lens: %s: %w", tag, err)
			}
			if tag == "head" {
				*l = Head(w.Name)
			} else {
				*l = Wrap(w.Name)
			}
		case "in":
			var w wireIn
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("lens: in: %w", err)
			}
			*l = InOp(w.Name, w.Ops)
		case "map":
			var w wireMap
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("lens: map: %w", err)
			}
			*l = MapOp(w.Ops)
		case "convert":
			var w wireConvert
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("lens: convert: %w", err)
			}
			forward, err := mapFromWire(w.Forward)
			if err != nil {
				return fmt.Errorf("lens: convert: forward: %w", err)
			}
			reverse, err := mapFromWire(w.Reverse)
			if err != nil {
				return fmt.Errorf("lens: convert: reverse: %w", err)
			}
			*l = ConvertOp(Convert{
				Name:     w.Name,
				FromType: w.FromType,
				ToType:   w.ToType,
				Forward:  forward,
				Reverse:  reverse,
			})
		default:
			return fmt.Errorf("lens: unknown tag %q", tag)
		}
	}
	return nil
}

// mapToWire re-keys a forward/reverse conversion map by each key's own
// JSON text, matching spec.md §6's documented wire format: a JSON
// object whose keys are the stringified values being converted from,
// rather than an array of pairs (a value.Value can't be a Go map key
// on the wire, but its JSON text can be a JSON object key).
func mapToWire(m map[value.Value]value.Value) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(m))
	for k, v := range m {
		text, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		out[string(text)] = v
	}
	return out, nil
}

func mapFromWire(w map[string]value.Value) (map[value.Value]value.Value, error) {
	out := make(map[value.Value]value.Value, len(w))
	for text, v := range w {
		var k value.Value
		if err := json.Unmarshal([]byte(text), &k); err != nil {
			return nil, fmt.Errorf("key %q: %w", text, err)
		}
		out[k] = v
	}
	return out, nil
}
