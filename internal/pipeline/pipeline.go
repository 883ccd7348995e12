// Package pipeline wires the six stages into one sequential run:
// Loader -> Cleaner -> Encoder -> Balancer -> Transformer -> Writer.
// There is no feedback, retry or partial completion: a run either
// finishes with fully transformed partitions on disk or aborts with a
// fatal error.
package pipeline

import (
	"goprep/domain/table"
	"goprep/internal"
	"goprep/internal/balance"
	"goprep/internal/clean"
	"goprep/internal/encode"
	apperrors "goprep/internal/errors"
	"goprep/internal/report"
)

// Reader loads the raw table from disk
type Reader interface {
	Read(schema table.Schema) (*table.Table, error)
}

// Writer persists a table to disk
type Writer interface {
	Write(t *table.Table) error
}

// Cleaner repairs data-quality defects
type Cleaner interface {
	Clean(t *table.Table) (*table.Table, *clean.Stats, error)
}

// Encoder converts categorical columns to numeric form
type Encoder interface {
	Encode(t *table.Table) (*table.Table, []encode.Mapping, error)
}

// Balancer splits and rebalances the table
type Balancer interface {
	Balance(t *table.Table) (*balance.Result, error)
}

// Transformer scales and derives features
type Transformer interface {
	Transform(t *table.Table) (*table.Table, error)
}

// Pipeline runs the stages in order over one in-flight table
type Pipeline struct {
	schema      table.Schema
	reader      Reader
	cleaner     Cleaner
	encoder     Encoder
	balancer    Balancer
	transformer Transformer
	trainWriter Writer
	testWriter  Writer // optional
	logger      *internal.Logger
}

// New assembles a pipeline. testWriter may be nil, in which case only
// the training partition is persisted.
func New(schema table.Schema, r Reader, c Cleaner, e Encoder, b Balancer, tr Transformer, trainW, testW Writer, logger *internal.Logger) *Pipeline {
	return &Pipeline{
		schema:      schema,
		reader:      r,
		cleaner:     c,
		encoder:     e,
		balancer:    b,
		transformer: tr,
		trainWriter: trainW,
		testWriter:  testW,
		logger:      logger.WithComponent("pipeline"),
	}
}

// Run executes the full pipeline and returns the run report
func (p *Pipeline) Run(inputPath string) (*report.Report, error) {
	rep := report.New(inputPath)

	t, err := p.reader.Read(p.schema)
	if err != nil {
		return nil, apperrors.Wrap(err, "load stage failed")
	}
	rep.RowsLoaded = t.NumRows()
	rep.Columns = append([]string(nil), t.Columns...)
	p.logger.Info("loaded %d rows, %d columns", t.NumRows(), t.NumColumns())

	cleaned, cleanStats, err := p.cleaner.Clean(t)
	if err != nil {
		return nil, apperrors.Wrap(err, "clean stage failed")
	}
	rep.CleanStats = cleanStats

	encoded, mappings, err := p.encoder.Encode(cleaned)
	if err != nil {
		return nil, apperrors.Wrap(err, "encode stage failed")
	}
	rep.Mappings = mappings

	balanced, err := p.balancer.Balance(encoded)
	if err != nil {
		return nil, apperrors.Wrap(err, "balance stage failed")
	}
	rep.Balance = balanced

	train, err := p.transformer.Transform(balanced.Train)
	if err != nil {
		return nil, apperrors.Wrapf(err, "transform stage failed on %s partition", "train")
	}
	test, err := p.transformer.Transform(balanced.Test)
	if err != nil {
		return nil, apperrors.Wrapf(err, "transform stage failed on %s partition", "test")
	}
	rep.TrainRows = train.NumRows()
	rep.TestRows = test.NumRows()

	if err := p.trainWriter.Write(train); err != nil {
		return nil, apperrors.Wrap(err, "write stage failed")
	}
	if p.testWriter != nil {
		if err := p.testWriter.Write(test); err != nil {
			return nil, apperrors.Wrap(err, "write stage failed")
		}
	}
	p.logger.Info("run complete: %d train rows, %d test rows", train.NumRows(), test.NumRows())
	return rep, nil
}
