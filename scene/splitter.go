// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/metric"
)

// Result carries the two independently servable halves of a split payload.
// Document is nil when the document part could not be decoded or rewritten;
// that case is logged, never surfaced as a protocol exception.
type Result struct {
	Document []byte
	Binary   []byte
}

// Splitter separates a scene payload into its document and binary parts,
// rewrites the document's buffer reference so the binary part can be fetched
// later by id, and caches the binary part under (model, resource id).
type Splitter struct {
	store    store.S
	measures metric.Measures
	logger   *zap.Logger
}

func NewSplitter(s store.S, measures metric.Measures, logger *zap.Logger) *Splitter {
	return &Splitter{store: s, measures: measures, logger: logger}
}

// Split processes one payload for (modelName, resourceID). The cached binary
// part is never overwritten: repeated splits for the same key keep the first
// writer's bytes.
func (s *Splitter) Split(ctx context.Context, modelName, resourceID string, payload Payload) Result {
	log := s.logger.With(zap.String("model", modelName), zap.String("resourceId", resourceID))
	if err := payload.Validate(); err != nil {
		log.Warn("rejecting malformed scene payload", zap.Error(err))
		return Result{}
	}

	var out Result

	bin, _ := payload.BinaryPart()
	out.Binary = bin.Data
	s.measures.CacheAdds.WithLabelValues(store.SceneBucket, store.AddType).Inc()
	if err := s.store.Add(store.SceneKey(modelName, resourceID), model.Blob{Data: bin.Data}); err != nil {
		log.Warn("failed caching scene binary part", zap.Error(err))
	}

	doc, _ := payload.DocumentPart()
	rewritten, err := rewriteDocument(doc.Data, modelName, resourceID)
	if err != nil {
		log.Warn("skipping scene document part", zap.Error(err))
		return out
	}
	out.Document = rewritten
	return out
}

// rewriteDocument decodes the UTF-8 glTF document, rewrites the first buffer
// URI to <model>/<uri>?id=<resourceID> and re-encodes it.
func rewriteDocument(data []byte, modelName, resourceID string) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("document part is not valid UTF-8")
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document part is not a JSON object: %w", err)
	}
	if err := rewriteBufferURI(doc, modelName, resourceID); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func rewriteBufferURI(doc map[string]interface{}, modelName, resourceID string) error {
	switch buffers := doc["buffers"].(type) {
	case []interface{}:
		// glTF 2.0: buffers is an array
		for _, raw := range buffers {
			buffer, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if uri, ok := buffer["uri"].(string); ok {
				buffer["uri"] = rewrittenURI(modelName, uri, resourceID)
				return nil
			}
		}
	case map[string]interface{}:
		// glTF 1.0: buffers is a name-keyed object; take the first
		// entry in name order so rewrites are deterministic
		names := make([]string, 0, len(buffers))
		for name := range buffers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			buffer, ok := buffers[name].(map[string]interface{})
			if !ok {
				continue
			}
			if uri, ok := buffer["uri"].(string); ok {
				buffer["uri"] = rewrittenURI(modelName, uri, resourceID)
				return nil
			}
		}
	}
	return fmt.Errorf("document has no buffer uri to rewrite")
}

func rewrittenURI(modelName, uri, resourceID string) string {
	return fmt.Sprintf("%s/%s?id=%s", modelName, uri, resourceID)
}
