/*
Package json serializes fitted forests and their trees as JSON, so a
fit can be persisted to a file or a byte-oriented store and reloaded
without refitting.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/teazrq/springer-surv/survforest"
)

/*
TreeCodec encodes trees into byte slices and decodes them back. It
satisfies the encode-decoder interfaces of byte-oriented tree store
backends.
*/
type TreeCodec struct{}

/*
Encode receives a *survforest.Tree and returns a slice of bytes with
the tree encoded as JSON or an error if the encoding could not be
performed.
*/
func (TreeCodec) Encode(t *survforest.Tree) ([]byte, error) {
	return json.Marshal(t)
}

/*
Decode receives a slice of bytes and returns a *survforest.Tree
decoded from it or an error if the decoding could not be performed.
*/
func (TreeCodec) Decode(data []byte) (*survforest.Tree, error) {
	t := &survforest.Tree{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

/*
WriteJSONForest takes a context.Context, a TreeStore and an io.Writer
and serializes the store's trees, in ensemble order, as a JSON object
with a single "trees" array field. An error is returned if the store
cannot be traversed or the serialization cannot be written.
*/
func WriteJSONForest(ctx context.Context, store survforest.TreeStore, w io.Writer) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(`{"trees":[`)); err != nil {
		return err
	}
	codec := TreeCodec{}
	for i := 0; i < count; i++ {
		t, err := store.Get(ctx, i)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("tree %d missing from store", i)
		}
		if i != 0 {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}
		data, err := codec.Encode(t)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONForest takes a context.Context, a TreeStore and an io.Reader
and unmarshals the forest serialized on the reader onto the store. An
error is returned if the JSON cannot be decoded or the store cannot
be written.
*/
func ReadJSONForest(ctx context.Context, store survforest.TreeStore, r io.Reader) error {
	jf := &struct {
		Trees []*json.RawMessage `json:"trees"`
	}{}
	if err := json.NewDecoder(r).Decode(jf); err != nil {
		return err
	}
	codec := TreeCodec{}
	for i, jt := range jf.Trees {
		t, err := codec.Decode(*jt)
		if err != nil {
			return fmt.Errorf("decoding tree %d: %v", i, err)
		}
		if err := store.Store(ctx, i, t); err != nil {
			return err
		}
	}
	return nil
}
