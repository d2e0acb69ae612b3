package history

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// searchIndex wraps the bleve index over solve records.
type searchIndex struct {
	index bleve.Index
}

func openSearchIndex(path string) (*searchIndex, error) {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create search index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to open search index: %w", err)
	}

	return &searchIndex{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	solveMapping := bleve.NewDocumentMapping()

	questionField := bleve.NewTextFieldMapping()
	questionField.Analyzer = standard.Name
	questionField.Store = false
	questionField.Index = true
	solveMapping.AddFieldMappingsAt("question", questionField)

	answerField := bleve.NewTextFieldMapping()
	answerField.Analyzer = standard.Name
	answerField.Store = false
	answerField.Index = true
	solveMapping.AddFieldMappingsAt("answer", answerField)

	statusField := bleve.NewTextFieldMapping()
	statusField.Analyzer = keyword.Name
	statusField.Store = false
	statusField.Index = true
	solveMapping.AddFieldMappingsAt("status", statusField)

	indexMapping.DefaultMapping = solveMapping
	return indexMapping
}

func (si *searchIndex) add(rec *Record) error {
	doc := map[string]interface{}{
		"question": rec.Question,
		"answer":   rec.Answer,
		"status":   rec.Status,
	}
	if err := si.index.Index(rec.ID, doc); err != nil {
		return fmt.Errorf("failed to index solve record: %w", err)
	}
	return nil
}

func (si *searchIndex) search(query string, k int) ([]string, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = k

	result, err := si.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("history search failed: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (si *searchIndex) close() error {
	return si.index.Close()
}
