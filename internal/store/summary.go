package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fjacquet/income-recon/internal/fileutils"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"
	"fjacquet/income-recon/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// LoadSummary reads a daily summary document.
// Numeric leaves are kept as json.Number so no amount passes through float64.
func (l *Loader) LoadSummary(path string) (models.DailySummary, error) {
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading daily summary: %w", err)
	}

	var doc models.DailySummary
	switch fileutils.DetectFormat(path) {
	case fileutils.FormatJSON:
		doc, err = decodeSummaryJSON(data)
	case fileutils.FormatYAML:
		doc, err = decodeSummaryYAML(data)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".json, .yaml or .yml",
			Msg:            "unsupported daily summary extension",
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error loading daily summary %s: %w", path, err)
	}

	l.logger.Info("Loaded daily summary",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(doc)))
	return doc, nil
}

func decodeSummaryJSON(data []byte) (models.DailySummary, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, &parsererror.ParseError{Parser: "json", Field: "summary", Value: snippet(data), Index: -1, Err: err}
	}
	if doc == nil {
		return nil, &parsererror.ValidationError{Reason: "summary is null"}
	}
	return models.DailySummary(doc), nil
}

func decodeSummaryYAML(data []byte) (models.DailySummary, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &parsererror.ParseError{Parser: "yaml", Field: "summary", Value: snippet(data), Index: -1, Err: err}
	}

	doc, ok := nodeValue(&root).(map[string]interface{})
	if !ok {
		return nil, &parsererror.ValidationError{Reason: "summary is not a mapping"}
	}
	return models.DailySummary(doc), nil
}

// nodeValue converts a YAML node into plain maps and slices.
// Integer and float scalars become json.Number with their source text.
func nodeValue(n *yaml.Node) interface{} {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = nodeValue(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			items = append(items, nodeValue(c))
		}
		return items
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil
		}
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			return intNumber(n)
		case "!!float":
			return json.Number(strings.ReplaceAll(n.Value, "_", ""))
		case "!!null":
			return nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return b
			}
			return n.Value
		default:
			return n.Value
		}
	default:
		return nil
	}
}

// intNumber renders a YAML integer in decimal notation. Hex, octal and underscore forms
// resolve through the YAML decoder; values beyond 64 bits keep their source text.
func intNumber(n *yaml.Node) json.Number {
	var i int64
	if err := n.Decode(&i); err == nil {
		return json.Number(strconv.FormatInt(i, 10))
	}
	var u uint64
	if err := n.Decode(&u); err == nil {
		return json.Number(strconv.FormatUint(u, 10))
	}
	return json.Number(strings.ReplaceAll(n.Value, "_", ""))
}
