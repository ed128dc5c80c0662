// internal/form/submission/indexer.go
package submission

import (
	"bytes"
	"context"
	"encoding/json"

	"intake-service/internal/common/database"
	"intake-service/internal/common/logger"
	"intake-service/internal/models"
)

// Indexer copies submitted applications into Elasticsearch for back-office
// search. Indexing is best-effort; the submission is already durable in
// Postgres when this runs.
type Indexer struct {
	es    *database.ElasticsearchClient
	index string
	log   logger.Logger
}

func NewIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *Indexer {
	return &Indexer{
		es:    es,
		index: index,
		log:   log.WithFields(map[string]interface{}{"component": "submission-indexer"}),
	}
}

// Index writes the submission document keyed by its application ID.
func (i *Indexer) Index(ctx context.Context, sub *models.Submission) {
	body, err := json.Marshal(sub)
	if err != nil {
		i.log.WithError(err).Warn("Skipping index of unmarshalable submission", map[string]interface{}{
			"application_id": sub.ID,
		})
		return
	}

	client := i.es.GetClient()
	res, err := client.Index(
		i.index,
		bytes.NewReader(body),
		client.Index.WithContext(ctx),
		client.Index.WithDocumentID(sub.ID),
	)
	if err != nil {
		i.log.WithError(err).Warn("Elasticsearch index failed", map[string]interface{}{
			"application_id": sub.ID,
		})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		i.log.Warn("Elasticsearch index returned error status", map[string]interface{}{
			"application_id": sub.ID,
			"status":         res.Status(),
		})
	}
}
