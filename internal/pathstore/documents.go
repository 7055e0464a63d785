package pathstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/docform/internal/doctree"
)

const documentsPrefix = "documents"

// Source tags every node this service writes.
const Source = "docform"

// Content is a stored document's raw string plus the optional pre-rendered
// markup variant for content that arrived already structured.
type Content struct {
	Raw    string `json:"raw"`
	Markup string `json:"markup,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Text returns the string to structure: the markup variant when present.
func (c *Content) Text() string {
	if strings.TrimSpace(c.Markup) != "" {
		return c.Markup
	}
	return c.Raw
}

// Meta is the summary written next to a stored document.
type Meta struct {
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash"`
	Format      string    `json:"format"`
	Blocks      int       `json:"blocks"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentKey returns the node path for one part of a document.
func DocumentKey(docID, part string) string {
	return documentsPrefix + "/" + docID + "/" + part
}

func hashKey(hash string) string {
	return documentsPrefix + "/by_hash/" + hash
}

// GetContent loads a document's content. A missing document yields nil and no error.
func (c *Client) GetContent(ctx context.Context, docID string) (*Content, error) {
	node, err := c.GetNode(ctx, DocumentKey(docID, "content"))
	if err != nil || node == nil {
		return nil, err
	}
	m, ok := node.Value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("content %s: unexpected value type %T", docID, node.Value)
	}
	return &Content{
		Raw:    stringField(m, "raw"),
		Markup: stringField(m, "markup"),
		Title:  stringField(m, "title"),
	}, nil
}

// PutContent stores a document's content.
func (c *Client) PutContent(ctx context.Context, docID string, content Content) error {
	return c.PutNode(ctx, DocumentKey(docID, "content"), NodeRequest{
		Value:  content,
		Source: Source + ":" + docID,
	})
}

// PutStructured stores the structured form of a document.
func (c *Client) PutStructured(ctx context.Context, docID string, doc *doctree.Document) error {
	return c.PutNode(ctx, DocumentKey(docID, "structured"), NodeRequest{
		Value:  doc,
		Source: Source + ":" + docID,
	})
}

// PutMeta stores the document summary and indexes it by content hash.
func (c *Client) PutMeta(ctx context.Context, docID string, meta Meta) error {
	if err := c.PutNode(ctx, DocumentKey(docID, "meta"), NodeRequest{
		Value:  meta,
		Source: Source + ":" + docID,
	}); err != nil {
		return err
	}
	if meta.ContentHash == "" {
		return nil
	}
	return c.PutNode(ctx, hashKey(meta.ContentHash)+"/"+docID, NodeRequest{
		Value: map[string]any{
			"filename":   meta.Filename,
			"created_at": meta.CreatedAt.Format(time.RFC3339),
		},
		Source: Source + ":" + docID,
	})
}

// FindByHash returns the ID of a document already stored with this content
// hash, or "" if there is none.
func (c *Client) FindByHash(ctx context.Context, hash string) (string, error) {
	children, err := c.ListChildren(ctx, hashKey(hash), 1)
	if err != nil || len(children) == 0 {
		return "", err
	}
	key := children[0].Key
	if i := strings.LastIndexAny(key, "./"); i >= 0 {
		key = key[i+1:]
	}
	return key, nil
}

// DeleteDocument removes every node stored under a document and its hash
// index entry.
func (c *Client) DeleteDocument(ctx context.Context, docID string) error {
	meta, err := c.GetNode(ctx, DocumentKey(docID, "meta"))
	if err != nil {
		return err
	}
	if meta != nil {
		if m, ok := meta.Value.(map[string]any); ok {
			if hash := stringField(m, "content_hash"); hash != "" {
				if err := c.DeleteNode(ctx, hashKey(hash)+"/"+docID, false); err != nil {
					return err
				}
			}
		}
	}
	return c.DeleteNode(ctx, documentsPrefix+"/"+docID, true)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
