// Package store loads transaction snapshots and daily summaries from files.
//
// Records are decoded one at a time: a record that cannot be decoded is logged, reported in
// the LoadResult and skipped, and the rest of the snapshot still loads.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"fjacquet/income-recon/internal/fileutils"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"
	"fjacquet/income-recon/internal/parsererror"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const supportedFormats = ".json, .yaml, .yml or .csv"

// snippetLength bounds the raw record text kept in a ParseError
const snippetLength = 80

// LoadResult is a loaded snapshot together with the records that had to be skipped
type LoadResult struct {
	Transactions []models.Transaction
	Skipped      []*parsererror.ParseError
	Files        []string
}

// Loader reads snapshots and summaries from disk
type Loader struct {
	logger    logging.Logger
	delimiter rune
}

// NewLoader creates a Loader. delimiter is the CSV field separator; zero means ','.
func NewLoader(logger logging.Logger, delimiter rune) *Loader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{
		logger:    logger,
		delimiter: delimiter,
	}
}

// LoadTransactions loads a snapshot from a file, or from every supported file of a directory.
// Files of a directory are read concurrently and concatenated in file-name order.
func (l *Loader) LoadTransactions(ctx context.Context, path string) (*LoadResult, error) {
	if !fileutils.DirectoryExists(path) {
		return l.loadFile(path)
	}

	files, err := fileutils.ListSupportedFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error listing snapshot directory: %w", err)
	}
	l.logger.Info("Loading snapshot directory",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(files)))

	results := make([]*LoadResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := l.loadFile(file)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &LoadResult{}
	for _, res := range results {
		merged.Transactions = append(merged.Transactions, res.Transactions...)
		merged.Skipped = append(merged.Skipped, res.Skipped...)
		merged.Files = append(merged.Files, res.Files...)
	}
	return merged, nil
}

func (l *Loader) loadFile(path string) (*LoadResult, error) {
	format := fileutils.DetectFormat(path)
	if format == fileutils.FormatUnknown {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: supportedFormats,
			Msg:            "unsupported file extension",
		}
	}

	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	var res *LoadResult
	switch format {
	case fileutils.FormatJSON:
		res, err = l.decodeJSON(data)
	case fileutils.FormatYAML:
		res, err = l.decodeYAML(data)
	case fileutils.FormatCSV:
		res, err = l.decodeCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading snapshot %s: %w", path, err)
	}
	res.Files = []string{path}

	l.assignIDs(res.Transactions)
	for _, skipped := range res.Skipped {
		l.logger.Warn("Skipping undecodable transaction record",
			logging.F(logging.FieldFile, filepath.Base(path)),
			logging.F(logging.FieldReason, skipped.Error()))
	}
	l.logger.Info("Loaded transaction snapshot",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(res.Transactions)),
		logging.F(logging.FieldSkipped, len(res.Skipped)))
	return res, nil
}

// assignIDs gives every record without an id a random one so findings and logs can name it.
func (l *Loader) assignIDs(txs []models.Transaction) {
	for i := range txs {
		if txs[i].ID == "" {
			txs[i].ID = uuid.NewString()
			l.logger.Debug("Assigned transaction id", logging.F(logging.FieldTransactionID, txs[i].ID))
		}
	}
}

// decodeJSON accepts either a bare array of records or an object with a "transactions" array.
func (l *Loader) decodeJSON(data []byte) (*LoadResult, error) {
	res := &LoadResult{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return res, nil
	}

	var raws []json.RawMessage
	if trimmed[0] == '{' {
		var wrapper struct {
			Transactions []json.RawMessage `json:"transactions"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, &parsererror.ParseError{Parser: "json", Field: "document", Value: snippet(trimmed), Index: -1, Err: err}
		}
		raws = wrapper.Transactions
	} else if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, &parsererror.ParseError{Parser: "json", Field: "document", Value: snippet(trimmed), Index: -1, Err: err}
	}

	for i, raw := range raws {
		var tx models.Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			res.Skipped = append(res.Skipped, &parsererror.ParseError{
				Parser: "json", Field: jsonField(err), Value: snippet(raw), Index: i, Err: err,
			})
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res, nil
}

// decodeYAML accepts either a sequence of records or a mapping with a "transactions" sequence.
func (l *Loader) decodeYAML(data []byte) (*LoadResult, error) {
	res := &LoadResult{}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &parsererror.ParseError{Parser: "yaml", Field: "document", Value: snippet(data), Index: -1, Err: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return res, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.MappingNode {
		node = mappingValue(node, "transactions")
		if node == nil {
			return res, nil
		}
	}
	if node.Kind != yaml.SequenceNode {
		return nil, &parsererror.ParseError{
			Parser: "yaml", Field: "document", Value: node.Value, Index: -1,
			Err: fmt.Errorf("expected a sequence of transactions at line %d", node.Line),
		}
	}

	for i, item := range node.Content {
		var tx models.Transaction
		if err := item.Decode(&tx); err != nil {
			res.Skipped = append(res.Skipped, &parsererror.ParseError{
				Parser: "yaml", Field: "record", Value: fmt.Sprintf("line %d", item.Line), Index: i, Err: err,
			})
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func jsonField(err error) string {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
		return typeErr.Field
	}
	return "record"
}

func snippet(data []byte) string {
	s := string(bytes.TrimSpace(data))
	if len(s) > snippetLength {
		return s[:snippetLength] + "..."
	}
	return s
}
