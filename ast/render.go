package ast

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAML renders the tree as a YAML document. Mapping keys keep the field
// declaration order.
func ToYAML(n Node) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{yamlNode(n)}}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func str(v string) *yaml.Node { return scalar("!!str", v) }

func locYAML(l Location) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: []*yaml.Node{
		scalar("!!int", strconv.Itoa(l.Start)),
		scalar("!!int", strconv.Itoa(l.End)),
	}}
}

func yamlNode(n Node) *yaml.Node {
	if IsNil(n) {
		return scalar("!!null", "null")
	}
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(k string, v *yaml.Node) { m.Content = append(m.Content, str(k), v) }
	add("type", str(n.Type().String()))
	add("location", locYAML(n.Loc()))
	if fl := FlagNames(n); len(fl) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, f := range fl {
			seq.Content = append(seq.Content, str(f))
		}
		add("flags", seq)
	}
	for _, f := range Fields(n) {
		switch f.Kind {
		case FieldNode:
			add(f.Name, yamlNode(f.Node))
		case FieldNodeList:
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, c := range f.Nodes {
				seq.Content = append(seq.Content, yamlNode(c))
			}
			add(f.Name, seq)
		case FieldLocation:
			add(f.Name, locYAML(f.Loc))
		case FieldStrings:
			seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, s := range f.Strs {
				seq.Content = append(seq.Content, str(s))
			}
			add(f.Name, seq)
		case FieldString:
			add(f.Name, str(f.Str))
		case FieldBytes:
			add(f.Name, str(string(f.Bytes)))
		case FieldInt:
			add(f.Name, scalar("!!int", strconv.Itoa(f.Int)))
		case FieldBigInt:
			if f.Big == nil {
				add(f.Name, scalar("!!null", "null"))
			} else {
				add(f.Name, scalar("!!int", f.Big.String()))
			}
		case FieldFloat:
			add(f.Name, scalar("!!float", yamlFloat(f.Float)))
		}
	}
	return m
}

// ToJSON renders the tree as JSON using the same shape as ToYAML.
func ToJSON(n Node, indent string) ([]byte, error) {
	raw, err := json.Marshal(jsonNode{n})
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return raw, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type jsonNode struct{ n Node }

func (j jsonNode) MarshalJSON() ([]byte, error) {
	if IsNil(j.n) {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('{')
	first := true
	put := func(k string, v any) error {
		if !first {
			b.WriteByte(',')
		}
		first = false
		kb, _ := json.Marshal(k)
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		b.Write(vb)
		return nil
	}
	loc := func(l Location) [2]int { return [2]int{l.Start, l.End} }
	if err := put("type", j.n.Type().String()); err != nil {
		return nil, err
	}
	if err := put("location", loc(j.n.Loc())); err != nil {
		return nil, err
	}
	if fl := FlagNames(j.n); len(fl) > 0 {
		if err := put("flags", fl); err != nil {
			return nil, err
		}
	}
	for _, f := range Fields(j.n) {
		var v any
		switch f.Kind {
		case FieldNode:
			v = jsonNode{f.Node}
		case FieldNodeList:
			list := make([]jsonNode, len(f.Nodes))
			for i, c := range f.Nodes {
				list[i] = jsonNode{c}
			}
			v = list
		case FieldLocation:
			v = loc(f.Loc)
		case FieldStrings:
			if f.Strs == nil {
				v = []string{}
			} else {
				v = f.Strs
			}
		case FieldString:
			v = f.Str
		case FieldBytes:
			v = string(f.Bytes)
		case FieldInt:
			v = f.Int
		case FieldBigInt:
			if f.Big != nil {
				v = json.Number(f.Big.String())
			}
		case FieldFloat:
			if math.IsInf(f.Float, 0) || math.IsNaN(f.Float) {
				v = strconv.FormatFloat(f.Float, 'g', -1, 64)
			} else {
				v = f.Float
			}
		}
		if err := put(f.Name, v); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
